package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/thereayou/messenger/internal/flash"
	"github.com/thereayou/messenger/internal/handlers/dto"
	"github.com/thereayou/messenger/internal/middleware"
	"github.com/thereayou/messenger/internal/services"
)

// WebHandler отдаёт HTML-страницы. Ошибки показываются flash-сообщением
// на странице, куда ведёт редирект.
type WebHandler struct {
	svc     Messenger
	flashes flash.Store
	log     logrus.FieldLogger
	appName string
}

func NewWebHandler(svc Messenger, flashes flash.Store, log logrus.FieldLogger, appName string) *WebHandler {
	return &WebHandler{svc: svc, flashes: flashes, log: log, appName: appName}
}

func (h *WebHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()

	chats, err := h.svc.ListChats(ctx)
	if err != nil {
		h.internalError(c, err)
		return
	}
	users, err := h.svc.ListUsers(ctx)
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"AppName": h.appName,
		"Flashes": h.popFlashes(c),
		"Chats":   dto.NewChatList(chats),
		"Users":   dto.NewUserList(users),
	})
}

func (h *WebHandler) CreateUser(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	displayName := strings.TrimSpace(c.PostForm("display_name"))
	if username == "" || displayName == "" {
		h.redirectWith(c, "/", flash.Error("Username and display name are required"))
		return
	}

	var email *string
	if raw := strings.TrimSpace(c.PostForm("email")); raw != "" {
		email = &raw
	}

	if _, err := h.svc.CreateUser(c.Request.Context(), username, displayName, email); err != nil {
		if h.isInternal(c, err) {
			return
		}
		h.redirectWith(c, "/", flash.Error(sentence(err.Error())))
		return
	}

	h.redirectWith(c, "/", flash.Success("User created"))
}

func (h *WebHandler) CreateChat(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		h.redirectWith(c, "/", flash.Error("Chat title is required"))
		return
	}

	var description *string
	if raw := c.PostForm("description"); raw != "" {
		description = &raw
	}

	ids, err := parseIDList(c.PostForm("participant_ids"))
	if err != nil {
		h.redirectWith(c, "/", flash.Error("Participant ids must be integers"))
		return
	}
	if len(ids) == 0 {
		h.redirectWith(c, "/", flash.Error("Provide at least one participant id"))
		return
	}

	chat, err := h.svc.CreateChat(c.Request.Context(), title, ids, description)
	if err != nil {
		if h.isInternal(c, err) {
			return
		}
		h.redirectWith(c, "/", flash.Error(sentence(err.Error())))
		return
	}

	h.redirectWith(c, chatPath(chat.ID), flash.Success(fmt.Sprintf("Chat '%s' created", chat.Title)))
}

func (h *WebHandler) ViewChat(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.notFound(c)
		return
	}

	ctx := c.Request.Context()
	chat, err := h.svc.GetChat(ctx, id, true)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if chat == nil {
		h.notFound(c)
		return
	}

	users, err := h.svc.ListUsers(ctx)
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.HTML(http.StatusOK, "chat.tmpl", gin.H{
		"AppName": h.appName,
		"Flashes": h.popFlashes(c),
		"Chat":    dto.NewChatDetailResponse(*chat),
		"Users":   dto.NewUserList(users),
	})
}

func (h *WebHandler) PostMessage(c *gin.Context) {
	chatID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.notFound(c)
		return
	}
	back := chatPath(chatID)

	authorRaw := strings.TrimSpace(c.PostForm("author_id"))
	content := strings.TrimSpace(c.PostForm("content"))
	if authorRaw == "" || content == "" {
		h.redirectWith(c, back, flash.Error("Author and content are required"))
		return
	}

	authorID, err := strconv.ParseUint(authorRaw, 10, 64)
	if err != nil {
		h.redirectWith(c, back, flash.Error("Author must be a user id"))
		return
	}

	if _, err := h.svc.SendMessage(c.Request.Context(), chatID, authorID, content); err != nil {
		if h.isInternal(c, err) {
			return
		}
		h.redirectWith(c, back, flash.Error(sentence(err.Error())))
		return
	}

	c.Redirect(http.StatusFound, back)
}

// NotFound рендерит страницу 404 для неизвестных HTML-маршрутов
func (h *WebHandler) NotFound(c *gin.Context) {
	h.notFound(c)
}

func (h *WebHandler) redirectWith(c *gin.Context, location string, f flash.Flash) {
	if err := h.flashes.Push(c.Request.Context(), middleware.GetSessionID(c), f); err != nil {
		h.log.WithError(err).WithField("request_id", middleware.GetRequestID(c)).Warn("flash not stored")
	}
	c.Redirect(http.StatusFound, location)
}

func (h *WebHandler) popFlashes(c *gin.Context) []flash.Flash {
	flashes, err := h.flashes.Pop(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.log.WithError(err).WithField("request_id", middleware.GetRequestID(c)).Warn("flashes not loaded")
		return nil
	}
	return flashes
}

// isInternal отвечает страницей 500, если ошибка не доменная
func (h *WebHandler) isInternal(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, services.ErrDuplicateIdentity),
		errors.Is(err, services.ErrParticipantsNotFound),
		errors.Is(err, services.ErrNoParticipants),
		errors.Is(err, services.ErrChatNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return false
	}
	h.internalError(c, err)
	return true
}

func (h *WebHandler) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{
		"AppName": h.appName,
		"Status":  http.StatusInternalServerError,
		"Message": "Something went wrong. Please try again.",
	})
}

func (h *WebHandler) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "error.tmpl", gin.H{
		"AppName": h.appName,
		"Status":  http.StatusNotFound,
		"Message": "Page not found.",
	})
}

func chatPath(id uint64) string {
	return "/chats/" + strconv.FormatUint(id, 10)
}

// parseIDList разбирает "1, 2,3"; пустые элементы пропускаются
func parseIDList(raw string) ([]uint64, error) {
	var ids []uint64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// sentence делает первую букву заглавной: "chat not found" -> "Chat not found"
func sentence(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
