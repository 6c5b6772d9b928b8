package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/hexasocial/internal/user/application"
	"github.com/davicafu/hexasocial/shared/platform/query"
	"github.com/davicafu/hexasocial/tests/mocks"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	users := mocks.NewInMemoryUserRepo()
	service := application.NewUserService(users, mocks.NewInMemoryFollowRepo(users), nil,
		query.DefaultOptions, zap.NewNop())
	r := gin.New()
	RegisterUserRoutes(r, NewUserHandler(service, "https://api.example.com"))
	return r
}

func do(r *gin.Engine, method, target string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createUser(t *testing.T, r *gin.Engine, nickname string) {
	t.Helper()
	w := do(r, http.MethodPost, "/users", map[string]string{"nickname": nickname, "email": nickname + "@example.com"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestUserEndpoints_FollowFlow(t *testing.T) {
	// Arrange
	r := setupRouter()
	for _, n := range []string{"ana", "bea", "carla"} {
		createUser(t, r, n)
	}

	// Act
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/users/2/following/1", nil).Code)
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/users/3/following/1", nil).Code)
	w := do(r, http.MethodPatch, "/users/1/followers/3/confirm", nil)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isConfirmed":true`)

	w = do(r, http.MethodGet, "/users/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"followerCount":1`)

	w = do(r, http.MethodGet, "/users/1/followers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Data []map[string]interface{} `json:"data"`
		Next *string                  `json:"next"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	assert.EqualValues(t, 3, page.Data[0]["followerId"])

	w = do(r, http.MethodGet, "/users/1/followers?includeNotConfirmed=true&take=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	require.NotNil(t, page.Next)
	assert.Equal(t, "https://api.example.com/users/1/followers?includeNotConfirmed=true&take=1&where__followerId__more_than=2", *page.Next)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/users/3/following/1", nil).Code)
	w = do(r, http.MethodGet, "/users/1", nil)
	assert.Contains(t, w.Body.String(), `"followerCount":0`)
}

func TestUserEndpoints_Errors(t *testing.T) {
	r := setupRouter()
	createUser(t, r, "ana")
	createUser(t, r, "bea")

	assert.Equal(t, http.StatusConflict, do(r, http.MethodPost, "/users",
		map[string]string{"nickname": "ana", "email": "x@example.com"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/users",
		map[string]string{"nickname": "zoe", "email": "no-es-email"}).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/users/9", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/users/1/following/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPatch, "/users/1/followers/2/confirm", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/users/1/followers?includeNotConfirmed=quizas", nil).Code)

	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/users/1/following/2", nil).Code)
	assert.Equal(t, http.StatusConflict, do(r, http.MethodPost, "/users/1/following/2", nil).Code)

	w := do(r, http.MethodGet, "/users?order__nickname=DESC&page=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":2`)
}
