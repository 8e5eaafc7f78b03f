package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thereayou/messenger/internal/models"
)

func TestAPI_Users(t *testing.T) {
	app := newTestApp(t)

	rec := app.doJSON(t, http.MethodPost, "/api/users",
		`{"username":"  alice ","display_name":"Alice","email":"alice@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t,
		`{"id":1,"username":"alice","display_name":"Alice","email":"alice@example.com"}`,
		rec.Body.String())

	app.createUser(t, "bob")

	rec = app.doJSON(t, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var users []map[string]interface{}
	decode(t, rec, &users)
	require.Len(t, users, 2)
	require.Equal(t, "alice", users[0]["username"])
	require.Nil(t, users[1]["email"])

	rec = app.doJSON(t, http.MethodGet, "/api/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.doJSON(t, http.MethodGet, "/api/users/99", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "user not found", errorOf(t, rec))

	rec = app.doJSON(t, http.MethodGet, "/api/users/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid id", errorOf(t, rec))
}

func TestAPI_CreateUserValidation(t *testing.T) {
	app := newTestApp(t)

	for _, body := range []string{
		`{"username":"alice"}`,
		`{"username":"   ","display_name":"Alice"}`,
		`{}`,
		`not json`,
		"",
	} {
		rec := app.doJSON(t, http.MethodPost, "/api/users", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		require.Equal(t, "username and display_name are required", errorOf(t, rec), body)
	}
}

func TestAPI_CreateUserDuplicate(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "alice")

	rec := app.doJSON(t, http.MethodPost, "/api/users", `{"username":"alice","display_name":"Again"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "username already exists", errorOf(t, rec))
}

func TestAPI_Chats(t *testing.T) {
	app := newTestApp(t)
	alice := app.createUser(t, "alice")
	bob := app.createUser(t, "bob")

	rec := app.doJSON(t, http.MethodPost, "/api/chats", jsonBody(t, map[string]interface{}{
		"title":           "General",
		"description":     "daily talk",
		"participant_ids": []uint64{bob, alice},
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID           uint64  `json:"id"`
		Title        string  `json:"title"`
		Description  *string `json:"description"`
		Participants []struct {
			ID uint64 `json:"id"`
		} `json:"participants"`
		Messages interface{} `json:"messages"`
	}
	decode(t, rec, &created)
	require.Equal(t, "General", created.Title)
	require.Equal(t, "daily talk", *created.Description)
	require.Len(t, created.Participants, 2)
	require.Equal(t, bob, created.Participants[0].ID)
	require.Nil(t, created.Messages)

	rec = app.doJSON(t, http.MethodGet, "/api/chats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var chats []map[string]interface{}
	decode(t, rec, &chats)
	require.Len(t, chats, 1)
	require.NotContains(t, chats[0], "messages")

	rec = app.doJSON(t, http.MethodGet, fmt.Sprintf("/api/chats/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail map[string]interface{}
	decode(t, rec, &detail)
	require.Equal(t, []interface{}{}, detail["messages"])

	rec = app.doJSON(t, http.MethodGet, "/api/chats/404", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "chat not found", errorOf(t, rec))
}

func TestAPI_CreateChatValidation(t *testing.T) {
	app := newTestApp(t)
	alice := app.createUser(t, "alice")

	cases := []struct {
		body string
		want string
	}{
		{`{"participant_ids":[1]}`, "title is required"},
		{`{"title":"  ","participant_ids":[1]}`, "title is required"},
		{`{"title":"T"}`, "participant_ids must be a non-empty list"},
		{`{"title":"T","participant_ids":[]}`, "participant_ids must be a non-empty list"},
		{`{"title":"T","participant_ids":"1"}`, "participant_ids must be a non-empty list"},
		{`{"title":"T","participant_ids":[-1]}`, "participant_ids must be a non-empty list"},
		{`garbage`, "title is required"},
	}
	for _, tc := range cases {
		rec := app.doJSON(t, http.MethodPost, "/api/chats", tc.body)
		require.Equal(t, http.StatusBadRequest, rec.Code, tc.body)
		require.Equal(t, tc.want, errorOf(t, rec), tc.body)
	}

	rec := app.doJSON(t, http.MethodPost, "/api/chats", fmt.Sprintf(`{"title":"T","participant_ids":[%d,77,78]}`, alice))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "participants not found: [77 78]", errorOf(t, rec))
}

func TestAPI_Messages(t *testing.T) {
	app := newTestApp(t)
	alice := app.createUser(t, "alice")
	bob := app.createUser(t, "bob")

	rec := app.doJSON(t, http.MethodPost, "/api/chats", fmt.Sprintf(`{"title":"T","participant_ids":[%d]}`, alice))
	require.Equal(t, http.StatusCreated, rec.Code)
	var chat struct {
		ID uint64 `json:"id"`
	}
	decode(t, rec, &chat)
	messagesPath := fmt.Sprintf("/api/chats/%d/messages", chat.ID)

	rec = app.doJSON(t, http.MethodPost, messagesPath, fmt.Sprintf(`{"author_id":%d,"content":" hello "}`, bob))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sent map[string]interface{}
	decode(t, rec, &sent)
	require.Equal(t, "hello", sent["content"])
	require.NotContains(t, sent, "author")
	require.NotNil(t, sent["created_at"])

	rec = app.doJSON(t, http.MethodPost, messagesPath, fmt.Sprintf(`{"author_id":%d,"content":"second"}`, alice))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = app.doJSON(t, http.MethodGet, messagesPath, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []struct {
		Content string `json:"content"`
		Author  struct {
			Username string `json:"username"`
		} `json:"author"`
	}
	decode(t, rec, &listed)
	require.Len(t, listed, 2)
	require.Equal(t, "hello", listed[0].Content)
	require.Equal(t, "bob", listed[0].Author.Username)
	require.Equal(t, "second", listed[1].Content)

	// bob вошёл в чат, отправив сообщение
	rec = app.doJSON(t, http.MethodGet, fmt.Sprintf("/api/chats/%d", chat.ID), "")
	var detail struct {
		Participants []struct {
			ID uint64 `json:"id"`
		} `json:"participants"`
		Messages []struct {
			Author *struct {
				ID uint64 `json:"id"`
			} `json:"author"`
		} `json:"messages"`
	}
	decode(t, rec, &detail)
	require.Len(t, detail.Participants, 2)
	require.Len(t, detail.Messages, 2)
	require.Equal(t, bob, detail.Messages[0].Author.ID)
}

func TestAPI_SendMessageErrors(t *testing.T) {
	app := newTestApp(t)
	alice := app.createUser(t, "alice")
	rec := app.doJSON(t, http.MethodPost, "/api/chats", fmt.Sprintf(`{"title":"T","participant_ids":[%d]}`, alice))
	require.Equal(t, http.StatusCreated, rec.Code)

	for _, body := range []string{`{"content":"hi"}`, `{"author_id":1,"content":"  "}`, `{"author_id":null,"content":"hi"}`, ``} {
		rec = app.doJSON(t, http.MethodPost, "/api/chats/1/messages", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		require.Equal(t, "author_id and content are required", errorOf(t, rec), body)
	}

	rec = app.doJSON(t, http.MethodPost, "/api/chats/99/messages", `{"author_id":99,"content":"hi"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "chat not found", errorOf(t, rec))

	rec = app.doJSON(t, http.MethodPost, "/api/chats/1/messages", `{"author_id":99,"content":"hi"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "user not found", errorOf(t, rec))

	rec = app.doJSON(t, http.MethodGet, "/api/chats/99/messages", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_DeleteChat(t *testing.T) {
	app := newTestApp(t)
	alice := app.createUser(t, "alice")
	rec := app.doJSON(t, http.MethodPost, "/api/chats", fmt.Sprintf(`{"title":"T","participant_ids":[%d]}`, alice))
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = app.doJSON(t, http.MethodPost, "/api/chats/1/messages", fmt.Sprintf(`{"author_id":%d,"content":"hi"}`, alice))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = app.doJSON(t, http.MethodDelete, "/api/chats/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.doJSON(t, http.MethodGet, "/api/chats/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.doJSON(t, http.MethodDelete, "/api/chats/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

// brokenMessenger имитирует недоступную базу
type brokenMessenger struct {
	Messenger
}

func (brokenMessenger) ListUsers(context.Context) ([]models.User, error) {
	return nil, errors.New("connection refused")
}

func TestAPI_InternalErrorIsHidden(t *testing.T) {
	log := quietLogger()
	router := NewRouter(log, NewAPIHandler(brokenMessenger{}), NewWebHandler(brokenMessenger{}, nil, log, "Messenger"), NewHealthHandler(nil))

	rec := httptestDo(router, http.MethodGet, "/api/users")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "internal server error", errorOf(t, rec))
	require.NotContains(t, rec.Body.String(), "connection refused")
}
