package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/types"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/auth/register", "", map[string]string{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jane@example.com")

	rec := env.do(t, "POST", "/auth/register", "", map[string]string{
		"name":     "Jane Again",
		"email":    "jane@example.com",
		"password": "password456",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing email", map[string]string{"name": "Jane", "password": "password123"}},
		{"bad email", map[string]string{"name": "Jane", "email": "nope", "password": "password123"}},
		{"short password", map[string]string{"name": "Jane", "email": "jane@example.com", "password": "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, "POST", "/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jane@example.com")

	rec := env.do(t, "POST", "/auth/login", "", map[string]string{
		"email":    "jane@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jane@example.com")

	rec := env.do(t, "POST", "/auth/login", "", map[string]string{
		"email":    "jane@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "jane@example.com")

	wrongPassword := env.do(t, "POST", "/auth/login", "", map[string]string{
		"email": "jane@example.com", "password": "wrong-password",
	})
	unknownEmail := env.do(t, "POST", "/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "password123",
	})

	assert.Equal(t, wrongPassword.Code, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestUpdatePassword(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")

	rec := env.do(t, "PUT", "/auth/password", token, map[string]string{
		"current_password": "password123",
		"new_password":     "new-password-456",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Old password no longer works, new one does.
	old := env.do(t, "POST", "/auth/login", "", map[string]string{
		"email": "jane@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, old.Code)

	fresh := env.do(t, "POST", "/auth/login", "", map[string]string{
		"email": "jane@example.com", "password": "new-password-456",
	})
	assert.Equal(t, http.StatusOK, fresh.Code)
}

func TestUpdatePassword_WrongCurrent(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")

	rec := env.do(t, "PUT", "/auth/password", token, map[string]string{
		"current_password": "not-the-password",
		"new_password":     "new-password-456",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTService_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	_, userID := env.register(t, "jane@example.com")

	token, err := env.server.jwtService.GenerateToken(userID)
	require.NoError(t, err)

	claims, err := env.server.jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())

	_, err = env.server.jwtService.ValidateToken(token + "tampered")
	assert.Error(t, err)

	_, err = env.server.jwtService.ValidateToken("")
	assert.Error(t, err)
}
