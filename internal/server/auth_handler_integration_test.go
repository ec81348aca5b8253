package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadim/adgm-agent/internal/config"
	"github.com/nadim/adgm-agent/internal/db"
	"github.com/nadim/adgm-agent/internal/server/middleware"
	"github.com/nadim/adgm-agent/internal/types"
)

const integrationJWTSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

// newIntegrationAuthHandler wires the handler against the real
// database; the JWT secret is fixed so tokens can be re-validated.
func newIntegrationAuthHandler(t *testing.T) (*AuthHandler, *db.DB) {
	t.Helper()
	database := setupTestDB(t)

	passwordConfig, err := config.NewPasswordConfig()
	require.NoError(t, err)
	jwtConfig := &config.JWTConfig{Secret: integrationJWTSecret, ExpirationHours: 24}

	return NewAuthHandler(NewUserService(database, passwordConfig), NewJWTService(jwtConfig)), database
}

// registerViaAPI registers a fresh account through the HTTP handler and
// schedules its row for deletion.
func registerViaAPI(t *testing.T, handler *AuthHandler, database *db.DB, password string) (types.LoginResponse, string) {
	t.Helper()
	email := "it-auth-" + uuid.New().String() + "@gulfventures.ae"

	w := postJSON(t, handler.Register, "/auth/register", types.CreateUserRequest{
		Name:     "Integration Auth User",
		Email:    email,
		Password: password,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	t.Cleanup(func() { _ = database.DeleteUser(context.Background(), resp.User.ID) })
	return resp, email
}

func TestIntegration_AuthHandler_Register(t *testing.T) {
	handler, database := newIntegrationAuthHandler(t)

	resp, email := registerViaAPI(t, handler, database, "testpassword123")
	assert.Equal(t, email, resp.User.Email)
	assert.True(t, resp.User.PasswordSet)
	assert.NotEmpty(t, resp.Token)

	// The row landed in the database with a hashed password.
	dbUser, err := database.GetUserByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, dbUser)
	assert.Equal(t, resp.User.ID, dbUser.ID)
	assert.NotEmpty(t, dbUser.PasswordHash)
	assert.NotEqual(t, "testpassword123", dbUser.PasswordHash)

	// The issued token identifies the new user.
	jwtSvc := NewJWTService(&config.JWTConfig{Secret: integrationJWTSecret, ExpirationHours: 24})
	claims, err := jwtSvc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.GetUserID())
}

func TestIntegration_AuthHandler_Register_DuplicateEmail(t *testing.T) {
	handler, database := newIntegrationAuthHandler(t)

	_, email := registerViaAPI(t, handler, database, "password123")

	w := postJSON(t, handler.Register, "/auth/register", types.CreateUserRequest{
		Name:     "Second Applicant",
		Email:    email,
		Password: "password456",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "email already registered")
}

func TestIntegration_AuthHandler_Login(t *testing.T) {
	handler, database := newIntegrationAuthHandler(t)

	registered, email := registerViaAPI(t, handler, database, "loginpassword123")

	w := postJSON(t, handler.Login, "/auth/login", types.LoginRequest{
		Email:    email,
		Password: "loginpassword123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, registered.User.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)

	jwtSvc := NewJWTService(&config.JWTConfig{Secret: integrationJWTSecret, ExpirationHours: 24})
	claims, err := jwtSvc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.GetUserID())
}

func TestIntegration_AuthHandler_Login_InvalidCredentials(t *testing.T) {
	handler, database := newIntegrationAuthHandler(t)

	_, email := registerViaAPI(t, handler, database, "correctpassword123")

	for _, req := range []types.LoginRequest{
		{Email: email, Password: "wrongpassword"},
		{Email: "nobody-" + uuid.New().String() + "@gulfventures.ae", Password: "anypassword"},
	} {
		w := postJSON(t, handler.Login, "/auth/login", req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid email or password")
	}
}

func TestIntegration_AuthHandler_UpdatePassword(t *testing.T) {
	handler, database := newIntegrationAuthHandler(t)

	registered, email := registerViaAPI(t, handler, database, "oldpassword123")

	// UpdatePassword reads the user ID the auth middleware put in the
	// request context.
	updateWithContext := func(body types.UpdatePasswordRequest) *httptest.ResponseRecorder {
		return postJSON(t, func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.UserIDKey(), registered.User.ID)
			handler.UpdatePassword(w, r.WithContext(ctx))
		}, "/users/me/password", body)
	}

	w := updateWithContext(types.UpdatePasswordRequest{
		CurrentPassword: "oldpassword123",
		NewPassword:     "newpassword456",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updateResp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updateResp))
	assert.Equal(t, "Password updated successfully", updateResp["message"])

	// Old password is dead, new one works.
	w = postJSON(t, handler.Login, "/auth/login", types.LoginRequest{Email: email, Password: "oldpassword123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = postJSON(t, handler.Login, "/auth/login", types.LoginRequest{Email: email, Password: "newpassword456"})
	assert.Equal(t, http.StatusOK, w.Code)

	// A wrong current password is rejected with 401.
	w = updateWithContext(types.UpdatePasswordRequest{
		CurrentPassword: "not-the-password",
		NewPassword:     "whatever-789",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "current password is incorrect")
}
