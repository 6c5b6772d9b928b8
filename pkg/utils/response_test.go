package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/davicafu/hexasocial/shared/platform/query"
)

func newContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestSendListError(t *testing.T) {
	c, w := newContext("/posts")
	SendListError(c, fmt.Errorf("%w: %q", query.ErrUnknownField, "password"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown field")

	c, w = newContext("/posts")
	SendListError(c, errors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListParamsAndLinkBase(t *testing.T) {
	c, _ := newContext("/posts?take=2&order__id=DESC")

	assert.Equal(t, map[string]string{"take": "2", "order__id": "DESC"}, ListParams(c))
	assert.Equal(t, "http://api.local/posts", LinkBase(c, "http://api.local/"))
}

func TestParamID(t *testing.T) {
	c, w := newContext("/posts/x")
	c.Params = gin.Params{{Key: "id", Value: "x"}}

	_, ok := ParamID(c, "id")

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, _ = newContext("/posts/7")
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	id, ok := ParamID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)
}
