package http_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"personal-workspace/internal/domain"
	handlerhttp "personal-workspace/internal/handler/http"
	"personal-workspace/internal/middleware"
	"personal-workspace/internal/repository"
	"personal-workspace/internal/repository/mocks"
	"personal-workspace/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	alice = domain.Identity{UserID: 1, Username: "alice"}
	bob   = domain.Identity{UserID: 2, Username: "bob"}
)

// cookieAuth treats the session cookie value as a username.
type cookieAuth struct{}

func (cookieAuth) Authenticate(_ context.Context, token string) (domain.Identity, error) {
	switch token {
	case alice.Username:
		return alice, nil
	case bob.Username:
		return bob, nil
	}
	return domain.Identity{}, service.ErrUnauthenticated
}

type testEnv struct {
	router   *gin.Engine
	users    *mocks.UserRepository
	sessions *mocks.SessionRepository
	posts    *mocks.PostRepository
	comments *mocks.CommentRepository
	diaries  *mocks.DiaryRepository
	todos    *mocks.TodoRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		users:    new(mocks.UserRepository),
		sessions: new(mocks.SessionRepository),
		posts:    new(mocks.PostRepository),
		comments: new(mocks.CommentRepository),
		diaries:  new(mocks.DiaryRepository),
		todos:    new(mocks.TodoRepository),
	}

	authService, err := service.NewAuthService(env.users, env.sessions, nil, "test-secret", 1)
	require.NoError(t, err)

	env.router = gin.New()
	env.router.Use(middleware.Session(cookieAuth{}))
	handlerhttp.RegisterRoutes(env.router, handlerhttp.Handlers{
		Auth:  handlerhttp.NewAuthHandler(authService),
		Board: handlerhttp.NewBoardHandler(service.NewBoardService(env.posts, env.comments, nil)),
		Diary: handlerhttp.NewDiaryHandler(service.NewDiaryService(env.diaries, nil)),
		Todo:  handlerhttp.NewTodoHandler(service.NewTodoService(env.todos, nil)),
	})
	return env
}

func (env *testEnv) do(method, target string, as *domain.Identity, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if as != nil {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: as.Username})
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// flashesOf decodes the last flash cookie written by the response.
func flashesOf(t *testing.T, w *httptest.ResponseRecorder) []middleware.Flash {
	t.Helper()
	var raw string
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.FlashCookie {
			raw = c.Value
		}
	}
	require.NotEmpty(t, raw, "expected a flash cookie")
	data, err := base64.RawURLEncoding.DecodeString(raw)
	require.NoError(t, err)
	var flashes []middleware.Flash
	require.NoError(t, json.Unmarshal(data, &flashes))
	return flashes
}

// lastFlashCookie returns the final flash Set-Cookie of the response, which is the one a browser keeps.
func lastFlashCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	var last *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.FlashCookie {
			last = c
		}
	}
	require.NotNil(t, last, "expected a flash cookie")
	return last
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder, data interface{}) handlerhttp.Page {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page struct {
		handlerhttp.Page
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	if data != nil {
		require.NoError(t, json.Unmarshal(page.Data, data))
	}
	return page.Page
}

func TestIndex(t *testing.T) {
	env := newTestEnv(t)

	page := decodePage(t, env.do(http.MethodGet, "/", nil, nil), nil)
	assert.Equal(t, "default", page.Template)

	page = decodePage(t, env.do(http.MethodGet, "/", &alice, nil), nil)
	assert.Equal(t, "main_logged_in", page.Template)
	assert.Equal(t, "alice", page.Username)
}

func TestProtectedRoutesRedirectAnonymous(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/board", "/diary", "/todos", "/todos/reschedule/1"} {
		w := env.do(http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.Equal(t, "/", w.Header().Get("Location"), path)
	}
	env.todos.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/dashboard", nil, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, middleware.FlashError, flashesOf(t, w)[0].Severity)

	w = env.do(http.MethodGet, "/dashboard", &alice, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	env := newTestEnv(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	env.users.On("FindByUsername", mock.Anything, "alice").
		Return(&domain.User{ID: 1, Username: "alice", Password: string(hash)}, nil).Once()
	env.sessions.On("Create", mock.Anything, mock.AnythingOfType("repository.Session"), time.Hour).Return(nil).Once()

	w := env.do(http.MethodPost, "/login", nil, url.Values{"username": {"alice"}, "password": {"secret"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.NotEmpty(t, session.Value)
	assert.True(t, session.HttpOnly)
	assert.Equal(t, "Welcome, alice!", flashesOf(t, w)[0].Message)
}

func TestLogin_BadPassword(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("FindByUsername", mock.Anything, "alice").Return(nil, repository.ErrUserNotFound).Once()

	w := env.do(http.MethodPost, "/login", nil, url.Values{"username": {"alice"}, "password": {"nope"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, middleware.FlashError, flashesOf(t, w)[0].Severity)
}

func TestRegister_UsernameTaken(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("FindByUsername", mock.Anything, "alice").Return(&domain.User{ID: 1, Username: "alice"}, nil).Once()

	w := env.do(http.MethodPost, "/register", nil, url.Values{"username": {"alice"}, "password": {"pw"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, flashesOf(t, w)[0].Message, "already exists")
	env.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBoardEdit_ByNonAuthorIsForbidden(t *testing.T) {
	env := newTestEnv(t)
	env.posts.On("FindByID", mock.Anything, uint(3)).
		Return(&domain.Post{ID: 3, UserID: alice.UserID, Title: "Mine", Content: "mine"}, nil)

	w := env.do(http.MethodPost, "/board/edit/3", &bob, url.Values{"title": {"x"}, "content": {"y"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/board/view/3", w.Header().Get("Location"))
	assert.Equal(t, middleware.FlashError, flashesOf(t, w)[0].Severity)

	w = env.do(http.MethodGet, "/board/edit/3", &bob, nil)
	assert.Equal(t, "/board/view/3", w.Header().Get("Location"))

	w = env.do(http.MethodPost, "/board/delete/3", &bob, nil)
	assert.Equal(t, "/board/view/3", w.Header().Get("Location"))

	env.posts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	env.posts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestBoardView_MissingPost(t *testing.T) {
	env := newTestEnv(t)
	env.posts.On("FindByID", mock.Anything, uint(9)).Return(nil, repository.ErrPostNotFound).Once()

	w := env.do(http.MethodGet, "/board/view/9", &alice, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/board", w.Header().Get("Location"))
}

func TestBoardWrite_ValidationGoesBackToForm(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/board/write", &alice, url.Values{"title": {""}, "content": {"body"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/board/write", w.Header().Get("Location"))
	assert.Equal(t, "Title and content are required.", flashesOf(t, w)[0].Message)
}

func TestBoardView_RendersPostAndComments(t *testing.T) {
	env := newTestEnv(t)
	env.posts.On("FindByID", mock.Anything, uint(3)).Return(&domain.Post{
		ID: 3, UserID: alice.UserID, Title: "Hello", Content: "World",
		Author: domain.User{ID: alice.UserID, Username: "alice"},
	}, nil).Once()
	env.comments.On("ListByPost", mock.Anything, uint(3)).Return([]domain.Comment{
		{ID: 1, PostID: 3, UserID: bob.UserID, Content: "first", Author: domain.User{ID: bob.UserID, Username: "bob"}},
	}, nil).Once()

	var data struct {
		Post struct {
			Title   string `json:"title"`
			IsOwner bool   `json:"is_owner"`
			Author  struct {
				Username string `json:"username"`
			} `json:"author"`
		} `json:"post"`
		Comments []struct {
			Content string `json:"content"`
		} `json:"comments"`
	}
	page := decodePage(t, env.do(http.MethodGet, "/board/view/3", &bob, nil), &data)
	assert.Equal(t, "view_post", page.Template)
	assert.Equal(t, "Hello", data.Post.Title)
	assert.Equal(t, "alice", data.Post.Author.Username)
	assert.False(t, data.Post.IsOwner)
	require.Len(t, data.Comments, 1)
	assert.Equal(t, "first", data.Comments[0].Content)
}

func TestDiaryCalendar(t *testing.T) {
	env := newTestEnv(t)
	env.diaries.On("ListDatesInMonth", mock.Anything, alice.UserID, 2025, 2).
		Return([]time.Time{time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)}, nil).Once()

	var data struct {
		Year       int      `json:"year"`
		Month      int      `json:"month"`
		MonthName  string   `json:"month_name"`
		Weeks      [][7]int `json:"weeks"`
		EntryDates []string `json:"entry_dates"`
		Prev       struct {
			Year  int `json:"year"`
			Month int `json:"month"`
		} `json:"prev"`
	}
	page := decodePage(t, env.do(http.MethodGet, "/diary/calendar/2025/2", &alice, nil), &data)
	assert.Equal(t, "diary_calendar", page.Template)
	assert.Equal(t, "February", data.MonthName)
	assert.Equal(t, []string{"2025-02-14"}, data.EntryDates)
	assert.Equal(t, 1, data.Prev.Month)
	assert.Equal(t, [7]int{0, 0, 0, 0, 0, 0, 1}, data.Weeks[0])
}

func TestDiaryCalendar_InvalidMonth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/diary/calendar/2025/13", &alice, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/diary", w.Header().Get("Location"))
}

func TestDiarySaveEntry_RedirectsToMonth(t *testing.T) {
	env := newTestEnv(t)
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	env.diaries.On("FindByDate", mock.Anything, alice.UserID, day).Return(nil, repository.ErrNotFound).Once()
	env.diaries.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.DiaryEntry")).Return(nil).Once()
	env.diaries.On("FindByDate", mock.Anything, alice.UserID, day).
		Return(&domain.DiaryEntry{ID: 4, UserID: alice.UserID, EntryDate: day, Content: "text"}, nil).Once()

	w := env.do(http.MethodPost, "/diary/entry/2025-03-14", &alice, url.Values{"title": {"Fri"}, "content": {"text"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/diary/calendar/2025/3", w.Header().Get("Location"))
	assert.Equal(t, middleware.FlashSuccess, flashesOf(t, w)[0].Severity)
}

func TestDiarySaveEntry_EmptyContent(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/diary/entry/2025-03-14", &alice, url.Values{"content": {"   "}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/diary/entry/2025-03-14", w.Header().Get("Location"))
	env.diaries.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestTodoSetDueDate_DoneBecomesIncomplete(t *testing.T) {
	env := newTestEnv(t)
	newDue := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	env.todos.On("FindByID", mock.Anything, uint(8)).
		Return(&domain.Todo{ID: 8, UserID: alice.UserID, Task: "Report", Status: domain.TodoDone}, nil).Once()
	env.todos.On("UpdateDueDate", mock.Anything, uint(8), alice.UserID, newDue, domain.TodoIncomplete).Return(nil).Once()

	w := env.do(http.MethodPost, "/todos/set_due_date/8", &alice, url.Values{"new_due_date": {"2025-03-15"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/todos", w.Header().Get("Location"))
	assert.Equal(t, "Due date moved to 2025-03-15.", flashesOf(t, w)[0].Message)
	env.todos.AssertExpectations(t)
}

func TestTodoDelete_OtherUsersTodo(t *testing.T) {
	env := newTestEnv(t)
	env.todos.On("FindByID", mock.Anything, uint(8)).Return(&domain.Todo{ID: 8, UserID: alice.UserID}, nil).Once()

	w := env.do(http.MethodPost, "/todos/delete/8", &bob, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/todos", w.Header().Get("Location"))
	env.todos.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestTodoList(t *testing.T) {
	env := newTestEnv(t)
	done := domain.TodoDone
	env.todos.On("List", mock.Anything, alice.UserID, repository.TodoFilter{Status: &done, Query: "report"}).
		Return([]domain.Todo{{ID: 8, UserID: alice.UserID, Task: "Report", Status: domain.TodoDone}}, nil).Once()

	var data struct {
		Todos []struct {
			Task   string `json:"task"`
			Status string `json:"status"`
		} `json:"todos"`
		StatusFilter  string   `json:"status_filter"`
		StatusOptions []string `json:"status_options"`
	}
	page := decodePage(t, env.do(http.MethodGet, "/todos?status=done&query=report", &alice, nil), &data)
	assert.Equal(t, "todos_list", page.Template)
	require.Len(t, data.Todos, 1)
	assert.Equal(t, "done", data.Todos[0].Status)
	assert.Equal(t, "done", data.StatusFilter)
	assert.Equal(t, []string{"incomplete", "in_progress", "done", "rescheduled"}, data.StatusOptions)

	w := env.do(http.MethodGet, "/todos?status=archived", &alice, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestTodoList_StoreDownShowsErrorOnce(t *testing.T) {
	env := newTestEnv(t)
	env.todos.On("List", mock.Anything, alice.UserID, repository.TodoFilter{}).
		Return(nil, errors.New("dial tcp: connection refused")).Once()

	w := env.do(http.MethodGet, "/todos", &alice, nil)
	page := decodePage(t, w, nil)
	assert.Equal(t, "todos_list", page.Template)
	require.Len(t, page.Flashes, 1)
	assert.Equal(t, middleware.FlashError, page.Flashes[0].Severity)
	assert.Less(t, lastFlashCookie(t, w).MaxAge, 0)
}

func TestBoardList_StoreDownShowsErrorOnce(t *testing.T) {
	env := newTestEnv(t)
	env.posts.On("List", mock.Anything, "").Return(nil, errors.New("dial tcp: connection refused")).Once()

	w := env.do(http.MethodGet, "/board", &alice, nil)
	page := decodePage(t, w, nil)
	assert.Equal(t, "board_list", page.Template)
	require.Len(t, page.Flashes, 1)
	assert.Contains(t, page.Flashes[0].Message, "Failed to load the board")
	assert.Less(t, lastFlashCookie(t, w).MaxAge, 0)
}

func TestTodoUpdateStatus_InvalidStatus(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/todos/update_status/8/archived", &alice, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/todos", w.Header().Get("Location"))
	env.todos.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestTodoReschedule_InvalidMonthGoesBackToCalendar(t *testing.T) {
	env := newTestEnv(t)
	env.todos.On("FindByID", mock.Anything, uint(8)).Return(&domain.Todo{ID: 8, UserID: alice.UserID}, nil).Once()

	w := env.do(http.MethodGet, "/todos/reschedule/8/2025/13", &alice, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/todos/reschedule/8", w.Header().Get("Location"))
}
