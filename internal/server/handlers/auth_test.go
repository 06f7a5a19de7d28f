package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/socialmesh/internal/models"
	"github.com/iudanet/socialmesh/internal/server/storage"
	"github.com/iudanet/socialmesh/pkg/api"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		Secret:         []byte("test-secret"),
		AccessTokenTTL: time.Hour,
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		storageErr error
		name       string
		username   string
		password   string
		wantStatus int
	}{
		{
			name:       "success",
			username:   "alice",
			password:   "password123",
			wantStatus: http.StatusCreated,
		},
		{
			name:       "username taken",
			username:   "alice",
			password:   "password123",
			storageErr: storage.ErrUserAlreadyExists,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "invalid username",
			username:   "a",
			password:   "password123",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "short password",
			username:   "alice",
			password:   "short",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStorage := &storage.UserStorageMock{
				CreateUserFunc: func(ctx context.Context, user *models.User) error {
					return tt.storageErr
				},
			}
			h := NewAuthHandler(slog.Default(), userStorage, testJWTConfig())

			rec := postJSON(t, h.Register, "/api/v1/auth/register", api.RegisterRequest{
				Username: tt.username,
				Password: tt.password,
			})

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp api.RegisterResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.username, resp.Username)
				assert.NotEmpty(t, resp.UserID)

				// Пароль хешируется bcrypt, не хранится открытым
				calls := userStorage.CreateUserCalls()
				require.Len(t, calls, 1)
				saved := calls[0].User
				assert.NotEqual(t, tt.password, saved.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte(tt.password)))
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		ID:           "user-1",
		Username:     "alice",
		PasswordHash: string(hash),
	}

	userStorage := &storage.UserStorageMock{
		GetUserByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			if username == "alice" {
				return user, nil
			}
			return nil, storage.ErrUserNotFound
		},
	}

	cfg := testJWTConfig()
	h := NewAuthHandler(slog.Default(), userStorage, cfg)

	t.Run("success", func(t *testing.T) {
		rec := postJSON(t, h.Login, "/api/v1/auth/login", api.LoginRequest{
			Username: "alice",
			Password: "password123",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, "alice", resp.Username)

		// Токен валиден и несет данные пользователя
		claims, err := ValidateAccessToken(cfg, resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "alice", claims.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := postJSON(t, h.Login, "/api/v1/auth/login", api.LoginRequest{
			Username: "alice",
			Password: "wrongpassword",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := postJSON(t, h.Login, "/api/v1/auth/login", api.LoginRequest{
			Username: "nobody",
			Password: "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	cfg := testJWTConfig()

	token, _, err := GenerateAccessToken(cfg, "user-1", "alice")
	require.NoError(t, err)

	other := JWTConfig{Secret: []byte("other-secret"), AccessTokenTTL: time.Hour}
	_, err = ValidateAccessToken(other, token)
	assert.Error(t, err)
}
