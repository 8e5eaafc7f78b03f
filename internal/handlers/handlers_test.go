package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/messenger/internal/database"
	"github.com/thereayou/messenger/internal/database/databasetest"
	"github.com/thereayou/messenger/internal/flash"
	"github.com/thereayou/messenger/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router *gin.Engine
	db     *database.Database
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db := databasetest.Open(t)
	log := quietLogger()
	svc := services.NewMessengerService(services.NewStore(db), log)
	router := NewRouter(log,
		NewAPIHandler(svc),
		NewWebHandler(svc, flash.NewMemoryStore(time.Minute), log, "Messenger"),
		NewHealthHandler(map[string]Pinger{"database": db}),
	)
	return &testApp{router: router, db: db}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) doJSON(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return a.do(req)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decode(t, rec, &body)
	return body["error"]
}

// createUser создаёт пользователя через API и возвращает его id
func (a *testApp) createUser(t *testing.T, username string) uint64 {
	t.Helper()
	rec := a.doJSON(t, http.MethodPost, "/api/users",
		`{"username":"`+username+`","display_name":"`+strings.ToUpper(username)+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var user struct {
		ID uint64 `json:"id"`
	}
	decode(t, rec, &user)
	return user.ID
}

func jsonBody(t *testing.T, v interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(v))
	return buf.String()
}

func formRequest(path string, values url.Values, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}
