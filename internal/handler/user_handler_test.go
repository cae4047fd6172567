package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	r := setupTest(t)

	userID, _ := signup(t, r, "alice")
	assert.NotZero(t, userID)

	w := doRequest(t, r, http.MethodPost, "/api/v1/auth/login", "", LoginInput{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp AuthResponse
	decode(t, w, &resp)
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEmpty(t, resp.Token)
}

func TestSignupDuplicateIdentity(t *testing.T) {
	r := setupTest(t)
	signup(t, r, "alice")

	w := doRequest(t, r, http.MethodPost, "/api/v1/auth/signup", "", SignupInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/v1/auth/signup", "", SignupInput{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupTest(t)
	signup(t, r, "alice")

	w := doRequest(t, r, http.MethodPost, "/api/v1/auth/login", "", LoginInput{
		Email:    "alice@example.com",
		Password: "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetMe(t *testing.T) {
	r := setupTest(t)
	userID, token := signup(t, r, "alice")

	w := doRequest(t, r, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp UserResponse
	decode(t, w, &resp)
	assert.Equal(t, userID, resp.ID)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)
}

func TestGetMeUnauthenticated(t *testing.T) {
	r := setupTest(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/v1/auth/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
