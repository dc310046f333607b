package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndGetUserID(t *testing.T) {
	j := New("test-secret", time.Minute)
	ctx := context.Background()
	userID := uuid.New()

	token, err := j.Generate(ctx, userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedID, err := j.GetUserID(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, userID, parsedID)
}

func TestGetUserID_WrongSecret(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	token, err := New("secret-a", time.Minute).Generate(ctx, userID)
	assert.NoError(t, err)

	_, err = New("secret-b", time.Minute).GetUserID(ctx, token)
	assert.Error(t, err)
}

func TestGetUserID_Expired(t *testing.T) {
	ctx := context.Background()
	j := New("test-secret", -time.Minute)

	token, err := j.Generate(ctx, uuid.New())
	assert.NoError(t, err)

	_, err = j.GetUserID(ctx, token)
	assert.Error(t, err)
}

func TestGetTokenFromRequest(t *testing.T) {
	j := New("test-secret", time.Minute)
	ctx := context.Background()

	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   bool
	}{
		{name: "valid bearer", header: "Bearer abc.def.ghi", wantToken: "abc.def.ghi"},
		{name: "lowercase bearer", header: "bearer abc.def.ghi", wantToken: "abc.def.ghi"},
		{name: "missing header", header: "", wantErr: true},
		{name: "wrong scheme", header: "Basic abc", wantErr: true},
		{name: "no token part", header: "Bearer", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			token, err := j.GetTokenFromRequest(ctx, req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}
