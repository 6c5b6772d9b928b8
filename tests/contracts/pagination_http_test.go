package contracts

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	chatApp "github.com/davicafu/hexasocial/internal/chat/application"
	chatHttp "github.com/davicafu/hexasocial/internal/chat/infra/inbound/http"
	chatRepo "github.com/davicafu/hexasocial/internal/chat/infra/outbound/db/sqldb"
	commentApp "github.com/davicafu/hexasocial/internal/comment/application"
	commentHttp "github.com/davicafu/hexasocial/internal/comment/infra/inbound/http"
	commentRepo "github.com/davicafu/hexasocial/internal/comment/infra/outbound/db/sqldb"
	"github.com/davicafu/hexasocial/internal/infra/db/relational"
	"github.com/davicafu/hexasocial/internal/infra/db/sqlite"
	postApp "github.com/davicafu/hexasocial/internal/post/application"
	postHttp "github.com/davicafu/hexasocial/internal/post/infra/inbound/http"
	postRepo "github.com/davicafu/hexasocial/internal/post/infra/outbound/db/sqldb"
	userApp "github.com/davicafu/hexasocial/internal/user/application"
	userHttp "github.com/davicafu/hexasocial/internal/user/infra/inbound/http"
	userRepo "github.com/davicafu/hexasocial/internal/user/infra/outbound/db/sqldb"
	"github.com/davicafu/hexasocial/shared/persistence/sqlstore"
	"github.com/davicafu/hexasocial/shared/platform/query"
	"github.com/davicafu/hexasocial/tests/mocks"
)

const baseURL = "https://api.example.com"

// setupAPI monta todas las rutas sobre una SQLite en memoria.
func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, relational.InitSchema(ctx, db, sqlstore.SQLite))

	log := zap.NewNop()
	opts := query.DefaultOptions
	posts := postApp.NewPostService(postRepo.NewPostRepoSQL(db, sqlstore.SQLite), mocks.NewDummyCache(), nil, opts, log)
	comments := commentApp.NewCommentService(commentRepo.NewCommentRepoSQL(db, sqlstore.SQLite), posts, opts, log)
	chats := chatApp.NewChatService(chatRepo.NewChatRepoSQL(db, sqlstore.SQLite), chatRepo.NewMessageRepoSQL(db, sqlstore.SQLite), opts, log)
	users := userApp.NewUserService(userRepo.NewUserRepoSQL(db, sqlstore.SQLite), userRepo.NewFollowRepoSQL(db, sqlstore.SQLite), nil, opts, log)

	r := gin.New()
	postHttp.RegisterPostRoutes(r, postHttp.NewPostHandler(posts, baseURL))
	commentHttp.RegisterCommentRoutes(r, commentHttp.NewCommentHandler(comments, baseURL))
	chatHttp.RegisterChatRoutes(r, chatHttp.NewChatHandler(chats, baseURL))
	userHttp.RegisterUserRoutes(r, userHttp.NewUserHandler(users, baseURL))
	return r
}

func call(t *testing.T, r *gin.Engine, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type idRow struct {
	ID int64 `json:"id"`
}

type cursorPage struct {
	Data   []idRow         `json:"data"`
	Cursor json.RawMessage `json:"cursor"`
	Count  int64           `json:"count"`
	Next   *string         `json:"next"`
}

type offsetPage struct {
	Data  []idRow `json:"data"`
	Total int64   `json:"total"`
}

func getCursorPage(t *testing.T, r *gin.Engine, target string) cursorPage {
	t.Helper()
	w := call(t, r, http.MethodGet, target, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page cursorPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	return page
}

func ids(rows []idRow) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

// walk sigue los enlaces next desde target y devuelve los ids en orden.
func walk(t *testing.T, r *gin.Engine, target string) ([]int64, int) {
	t.Helper()
	var (
		all   []int64
		pages int
	)
	for {
		page := getCursorPage(t, r, target)
		pages++
		all = append(all, ids(page.Data)...)
		if page.Next == nil {
			return all, pages
		}
		require.True(t, strings.HasPrefix(*page.Next, baseURL), *page.Next)
		target = strings.TrimPrefix(*page.Next, baseURL)
		require.Less(t, pages, 50, "demasiadas páginas")
	}
}

func createPosts(t *testing.T, r *gin.Engine, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		w := call(t, r, http.MethodPost, "/posts", map[string]interface{}{
			"authorId": 1, "title": "post", "content": "contenido",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
}

func TestPosts_AscendingCursorContract(t *testing.T) {
	// Arrange
	r := setupAPI(t)
	createPosts(t, r, 3)

	// Act
	first := getCursorPage(t, r, "/posts?order__id=ASC&take=2")

	// Assert
	assert.Equal(t, []int64{1, 2}, ids(first.Data))
	assert.Equal(t, int64(2), first.Count)
	assert.JSONEq(t, `{"after":2}`, string(first.Cursor))
	require.NotNil(t, first.Next)
	assert.Equal(t, baseURL+"/posts?order__id=ASC&take=2&where__id__more_than=2", *first.Next)

	second := getCursorPage(t, r, strings.TrimPrefix(*first.Next, baseURL))
	assert.Equal(t, []int64{3}, ids(second.Data))
	assert.Nil(t, second.Next)
}

func TestPosts_DescendingCursorContract(t *testing.T) {
	r := setupAPI(t)
	createPosts(t, r, 3)

	first := getCursorPage(t, r, "/posts?order__id=DESC&take=2")
	assert.Equal(t, []int64{3, 2}, ids(first.Data))
	require.NotNil(t, first.Next)
	assert.Equal(t, baseURL+"/posts?order__id=DESC&take=2&where__id__less_than=2", *first.Next)

	second := getCursorPage(t, r, strings.TrimPrefix(*first.Next, baseURL))
	assert.Equal(t, []int64{1}, ids(second.Data))
	assert.Nil(t, second.Next)
}

func TestPosts_WalkByCreatedAtVisitsEveryRowOnce(t *testing.T) {
	r := setupAPI(t)
	createPosts(t, r, 7)

	got, pages := walk(t, r, "/posts?order__createdAt=DESC&take=3")

	assert.ElementsMatch(t, []int64{1, 2, 3, 4, 5, 6, 7}, got)
	assert.Equal(t, 3, pages)
}

func TestUsers_OffsetContract(t *testing.T) {
	// Arrange
	r := setupAPI(t)
	for i := 1; i <= 15; i++ {
		w := call(t, r, http.MethodPost, "/users", map[string]string{
			"nickname": "user" + string(rune('a'+i)),
			"email":    "user" + string(rune('a'+i)) + "@example.com",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	// Act
	w := call(t, r, http.MethodGet, "/users?page=2&take=10", nil)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	var page offsetPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(15), page.Total)
	assert.Equal(t, []int64{11, 12, 13, 14, 15}, ids(page.Data))
	assert.NotContains(t, w.Body.String(), `"next"`)

	w = call(t, r, http.MethodGet, "/users?page=3&take=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"total":15}`, w.Body.String())
}

func TestComments_ScopedWalkKeepsFilters(t *testing.T) {
	r := setupAPI(t)
	createPosts(t, r, 2)
	for i := 0; i < 5; i++ {
		for _, post := range []string{"1", "2"} {
			w := call(t, r, http.MethodPost, "/posts/"+post+"/comments", map[string]interface{}{
				"authorId": 9, "comment": "hola",
			})
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		}
	}

	first := getCursorPage(t, r, "/posts/2/comments?take=2&where__authorId__equal=9")
	require.NotNil(t, first.Next)
	assert.Equal(t, baseURL+"/posts/2/comments?take=2&where__authorId__equal=9&where__id__more_than=4", *first.Next)

	got, _ := walk(t, r, "/posts/2/comments?take=2&where__authorId__equal=9")
	assert.Equal(t, []int64{2, 4, 6, 8, 10}, got)
}

func TestChats_MessagesDescendingWalk(t *testing.T) {
	r := setupAPI(t)
	w := call(t, r, http.MethodPost, "/chats", map[string]interface{}{"userIds": []int64{1, 2}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	for i := 0; i < 4; i++ {
		w = call(t, r, http.MethodPost, "/chats/1/messages", map[string]interface{}{"authorId": 1, "message": "hola"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	got, pages := walk(t, r, "/chats/1/messages?order__id=DESC&take=2")

	assert.Equal(t, []int64{4, 3, 2, 1}, got)
	// La segunda página está llena, la tercera sale vacía y sin next.
	assert.Equal(t, 3, pages)
}

func TestInvalidQueries_Return400(t *testing.T) {
	r := setupAPI(t)

	for _, target := range []string{
		"/posts?where__nope__equal=1",
		"/posts?order__title=SIDEWAYS",
		"/posts?take=0",
		"/users?where__id__between=1",
		"/chats?page=-1",
	} {
		w := call(t, r, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}
