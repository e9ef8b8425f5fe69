package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/interviewxp/backend/internal/services"
	"github.com/interviewxp/backend/internal/utils"
)

type ChatHandler struct {
	svc      services.ChatService
	sessions services.SessionService
}

func NewChatHandler(svc services.ChatService, sessions services.SessionService) *ChatHandler {
	return &ChatHandler{svc: svc, sessions: sessions}
}

type ChatMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *ChatHandler) Start(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if _, ok := requireOwnedSession(c, h.sessions, userID); !ok {
		return
	}

	welcome, err := h.svc.StartChat(c.Request.Context(), userID, c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, welcome)
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if _, ok := requireOwnedSession(c, h.sessions, userID); !ok {
		return
	}

	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ChatHandler.SendMessage", "invalid request body", err))
		return
	}

	reply, err := h.svc.ProcessMessage(c.Request.Context(), userID, c.Param("session_id"), req.Message)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, reply)
}

func (h *ChatHandler) Transcript(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if _, ok := requireOwnedSession(c, h.sessions, userID); !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.svc.Transcript(c.Request.Context(), userID, c.Param("session_id"), limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// RecentActivity returns the caller's latest transcript rows across sessions.
func (h *ChatHandler) RecentActivity(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	n, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	entries, err := h.svc.RecentActivity(c.Request.Context(), userID, n)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *ChatHandler) Reset(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if _, ok := requireOwnedSession(c, h.sessions, userID); !ok {
		return
	}

	welcome, err := h.svc.Reset(c.Request.Context(), userID, c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, welcome)
}

func (h *ChatHandler) Status(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if _, ok := requireOwnedSession(c, h.sessions, userID); !ok {
		return
	}

	status := h.svc.Status(c.Request.Context(), userID, c.Param("session_id"))
	c.JSON(http.StatusOK, status)
}
