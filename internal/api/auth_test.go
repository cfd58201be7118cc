package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginFlow(t *testing.T) {
	a := setupTestAPI(t)

	w := a.do(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		Email:    "sam@example.com",
		Password: "hunter2hunter2",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var registered struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	require.NotEmpty(t, registered.Token)

	// the issued token grants access to the protected surface
	w = a.do(t, http.MethodGet, "/api/v1/entries", registered.Token, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{
		Email:    "sam@example.com",
		Password: "hunter2hunter2",
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterDuplicate(t *testing.T) {
	a := setupTestAPI(t)

	body := RegisterRequest{Email: "sam@example.com", Password: "hunter2hunter2"}
	w := a.do(t, http.MethodPost, "/api/v1/auth/register", "", body, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = a.do(t, http.MethodPost, "/api/v1/auth/register", "", body, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	a := setupTestAPI(t)

	w := a.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
