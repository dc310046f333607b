package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dkorchagin/recipe-api/internal/logger"
	"github.com/dkorchagin/recipe-api/internal/models"
)

// Error variables
var (
	ErrEmailRequired      = errors.New("email is required")
	ErrUserAlreadyExists  = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, email, passwordHash, name string, isStaff, isSuperuser bool) (*models.UserDB, error)
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
}

// NormalizeEmail lowercases the domain part of an email address. The local
// part is preserved verbatim: Test2@Example.COM -> Test2@example.com.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// AuthService is the identity store: it creates accounts keyed by normalized
// email and resolves identities from credentials.
type AuthService struct {
	reader UserReader
	writer UserWriter
	jwt    JWTGenerator
	audit  *AuditPublisher
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, jwt JWTGenerator, audit *AuditPublisher) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		jwt:    jwt,
		audit:  audit,
	}
}

// CreateUser creates an account with the given privilege flags. The email is
// mandatory and gets normalized before the uniqueness check; the password is
// stored as a bcrypt hash.
func (svc *AuthService) CreateUser(ctx context.Context, email, password, name string, isStaff, isSuperuser bool) (*models.UserDB, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	email = NormalizeEmail(email)

	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Errorw("user already exists", "email", email)
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user, err := svc.writer.Save(ctx, email, string(hashedPassword), name, isStaff, isSuperuser)
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	svc.audit.Publish(ctx, EventUserRegistered, user.UserID.String(), map[string]string{
		"user_id": user.UserID.String(),
		"email":   user.Email,
	})

	return user, nil
}

// Register creates a regular account.
func (svc *AuthService) Register(ctx context.Context, email, password, name string) (*models.UserDB, error) {
	return svc.CreateUser(ctx, email, password, name, false, false)
}

// RegisterSuperuser creates an elevated account with the staff and superuser
// flags forced on.
func (svc *AuthService) RegisterSuperuser(ctx context.Context, email, password string) (*models.UserDB, error) {
	return svc.CreateUser(ctx, email, password, "", true, true)
}

// Authenticate resolves a user from credentials. A missing account, a wrong
// password and a deactivated account all surface as the same
// ErrInvalidCredentials.
func (svc *AuthService) Authenticate(ctx context.Context, email, password string) (*models.UserDB, error) {
	user, err := svc.reader.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates a user and returns a JWT token.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := svc.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := svc.jwt.Generate(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}
