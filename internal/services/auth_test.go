package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/dkorchagin/recipe-api/internal/models"
	"github.com/dkorchagin/recipe-api/internal/services"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		email    string
		expected string
	}{
		{"test1@EXAMPLE.COM", "test1@example.com"},
		{"Test2@Example.COM", "Test2@example.com"},
		{"TEST3@EXAMPLE.COM", "TEST3@example.com"},
		{"test4@example.com", "test4@example.com"},
		{"no-at-sign", "no-at-sign"},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.expected, services.NormalizeEmail(tt.email))
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		email        string
		savedEmail   string
		existingUser *models.UserDB
		readerErr    error
		writerErr    error
		wantErr      error
	}{
		{
			name:       "successful registration",
			email:      "alice@example.com",
			savedEmail: "alice@example.com",
		},
		{
			name:       "email domain is normalized",
			email:      "Alice@EXAMPLE.COM",
			savedEmail: "Alice@example.com",
		},
		{
			name:         "user already exists",
			email:        "bob@example.com",
			savedEmail:   "bob@example.com",
			existingUser: &models.UserDB{UserID: uuid.New()},
			wantErr:      services.ErrUserAlreadyExists,
		},
		{
			name:       "reader error",
			email:      "eve@example.com",
			savedEmail: "eve@example.com",
			readerErr:  errors.New("db error"),
			wantErr:    errors.New("db error"),
		},
		{
			name:       "writer error",
			email:      "carol@example.com",
			savedEmail: "carol@example.com",
			writerErr:  errors.New("save error"),
			wantErr:    errors.New("save error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockUserReader(ctrl)
			mockWriter := services.NewMockUserWriter(ctrl)

			svc := services.NewAuthService(mockReader, mockWriter, nil, nil)

			mockReader.EXPECT().
				GetByEmail(gomock.Any(), tt.savedEmail).
				Return(tt.existingUser, tt.readerErr)

			if tt.existingUser == nil && tt.readerErr == nil {
				mockWriter.EXPECT().
					Save(gomock.Any(), tt.savedEmail, gomock.Any(), "", false, false).
					DoAndReturn(func(_ context.Context, email, passwordHash, name string, isStaff, isSuperuser bool) (*models.UserDB, error) {
						if tt.writerErr != nil {
							return nil, tt.writerErr
						}
						// Password must arrive hashed, never in plaintext.
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte("pass123")))
						return &models.UserDB{UserID: uuid.New(), Email: email, PasswordHash: passwordHash}, nil
					})
			}

			user, err := svc.Register(context.Background(), tt.email, "pass123", "")
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, user)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.savedEmail, user.Email)
		})
	}
}

func TestAuthService_Register_EmptyEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := services.NewAuthService(services.NewMockUserReader(ctrl), services.NewMockUserWriter(ctrl), nil, nil)

	user, err := svc.Register(context.Background(), "", "pass123", "")
	assert.ErrorIs(t, err, services.ErrEmailRequired)
	assert.Nil(t, user)
}

func TestAuthService_RegisterSuperuser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	svc := services.NewAuthService(mockReader, mockWriter, nil, nil)

	mockReader.EXPECT().
		GetByEmail(gomock.Any(), "root@example.com").
		Return(nil, nil)

	mockWriter.EXPECT().
		Save(gomock.Any(), "root@example.com", gomock.Any(), "", true, true).
		Return(&models.UserDB{
			UserID:      uuid.New(),
			Email:       "root@example.com",
			IsStaff:     true,
			IsSuperuser: true,
		}, nil)

	user, err := svc.RegisterSuperuser(context.Background(), "root@example.com", "pass123")
	assert.NoError(t, err)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
}

func TestAuthService_Authenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	userID := uuid.New()

	tests := []struct {
		name     string
		password string
		user     *models.UserDB
		wantErr  error
	}{
		{
			name:     "valid credentials",
			password: "secret",
			user:     &models.UserDB{UserID: userID, Email: "u@example.com", PasswordHash: string(hash), IsActive: true},
		},
		{
			name:     "wrong password",
			password: "wrong",
			user:     &models.UserDB{UserID: userID, Email: "u@example.com", PasswordHash: string(hash), IsActive: true},
			wantErr:  services.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			password: "secret",
			user:     nil,
			wantErr:  services.ErrInvalidCredentials,
		},
		{
			name:     "inactive user",
			password: "secret",
			user:     &models.UserDB{UserID: userID, Email: "u@example.com", PasswordHash: string(hash), IsActive: false},
			wantErr:  services.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockUserReader(ctrl)
			svc := services.NewAuthService(mockReader, services.NewMockUserWriter(ctrl), nil, nil)

			mockReader.EXPECT().
				GetByEmail(gomock.Any(), "u@example.com").
				Return(tt.user, nil)

			user, err := svc.Authenticate(context.Background(), "u@example.com", tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, userID, user.UserID)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	userID := uuid.New()
	user := &models.UserDB{UserID: userID, Email: "u@example.com", PasswordHash: string(hash), IsActive: true}

	t.Run("returns token", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockJWT := services.NewMockJWTGenerator(ctrl)
		svc := services.NewAuthService(mockReader, services.NewMockUserWriter(ctrl), mockJWT, nil)

		mockReader.EXPECT().GetByEmail(gomock.Any(), "u@example.com").Return(user, nil)
		mockJWT.EXPECT().Generate(gomock.Any(), userID).Return("token123", nil)

		token, err := svc.Login(context.Background(), "u@example.com", "secret")
		assert.NoError(t, err)
		assert.Equal(t, "token123", token)
	})

	t.Run("bad credentials", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		svc := services.NewAuthService(mockReader, services.NewMockUserWriter(ctrl), services.NewMockJWTGenerator(ctrl), nil)

		mockReader.EXPECT().GetByEmail(gomock.Any(), "u@example.com").Return(user, nil)

		token, err := svc.Login(context.Background(), "u@example.com", "wrong")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
		assert.Empty(t, token)
	})

	t.Run("jwt error", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockJWT := services.NewMockJWTGenerator(ctrl)
		svc := services.NewAuthService(mockReader, services.NewMockUserWriter(ctrl), mockJWT, nil)

		mockReader.EXPECT().GetByEmail(gomock.Any(), "u@example.com").Return(user, nil)
		mockJWT.EXPECT().Generate(gomock.Any(), userID).Return("", errors.New("sign error"))

		token, err := svc.Login(context.Background(), "u@example.com", "secret")
		assert.Error(t, err)
		assert.Empty(t, token)
	})
}
