package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"estatehub/internal/auth"
	apperrors "estatehub/internal/errors"
	"estatehub/internal/handlers"
	"estatehub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func userRouter(svc *MockUserService, asUser string) http.Handler {
	h := handlers.NewUserHandler(svc)
	r := newTestRouter(asUser)
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/users/search", h.SearchUsers)
	return r
}

func TestRegister(t *testing.T) {
	svc := new(MockUserService)
	user := &models.User{ID: primitive.NewObjectID(), Name: "Alice", Email: "alice@example.com", Password: "hashed"}
	token := &auth.TokenDetails{Token: "tok", TokenType: "Bearer", ExpiresIn: "3600"}
	svc.On("Register", mock.Anything, "Alice", "alice@example.com", "secret1").Return(token, user, nil)

	w := doJSON(userRouter(svc, ""), http.MethodPost, "/auth/register",
		map[string]string{"name": "Alice", "email": "alice@example.com", "password": "secret1"})

	require.Equal(t, http.StatusCreated, w.Code)
	var body handlers.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "tok", body.Token.Token)
	assert.Equal(t, user.ID, body.User.ID)
	assert.NotContains(t, w.Body.String(), "hashed")
}

func TestRegister_EmailTaken(t *testing.T) {
	svc := new(MockUserService)
	svc.On("Register", mock.Anything, "Alice", "alice@example.com", "secret1").Return(nil, nil, apperrors.ErrEmailTaken)

	w := doJSON(userRouter(svc, ""), http.MethodPost, "/auth/register",
		map[string]string{"name": "Alice", "email": "alice@example.com", "password": "secret1"})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperrors.ErrCodeEmailTaken, errorCode(t, w))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := new(MockUserService)
	svc.On("Login", mock.Anything, "alice@example.com", "nope").Return(nil, nil, apperrors.ErrInvalidCredentials)

	w := doJSON(userRouter(svc, ""), http.MethodPost, "/auth/login",
		map[string]string{"email": "alice@example.com", "password": "nope"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.ErrCodeInvalidCredentials, errorCode(t, w))
}

func TestSearchUsers(t *testing.T) {
	svc := new(MockUserService)
	svc.On("SearchByEmail", mock.Anything, "bob").Return([]models.UserSummary{{Name: "Bob", Email: "bob@example.com"}}, nil)

	w := doJSON(userRouter(svc, testUserID), http.MethodGet, "/users/search?email=bob", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bob@example.com")

	w = doJSON(userRouter(svc, ""), http.MethodGet, "/users/search?email=bob", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
