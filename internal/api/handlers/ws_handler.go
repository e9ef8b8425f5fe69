package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/interviewxp/backend/internal/models"
	"github.com/interviewxp/backend/internal/services"
	"github.com/interviewxp/backend/internal/utils"
)

type WSHandler struct {
	sessions services.SessionService
	chat     services.ChatService
	redis    *redis.Client
	upgrader websocket.Upgrader
}

func NewWSHandler(sessions services.SessionService, chat services.ChatService, rdb *redis.Client) *WSHandler {
	return &WSHandler{
		sessions: sessions,
		chat:     chat,
		redis:    rdb,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsClientMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`

	// reset/status/end_session -> no fields
}

type wsChatFrame struct {
	Type    string             `json:"type"`
	Message models.ChatMessage `json:"message"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeText(b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (w *wsConn) writeJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return w.writeText(b)
}

func (h *WSHandler) SessionWS(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sessionID := c.Param("session_id")
	if sessionID == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "WSHandler.SessionWS", "missing session_id", nil))
		return
	}

	// authorize session ownership
	sess, err := h.sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	if sess.UserID != userID {
		writeError(c, utils.E(utils.CodeForbidden, "WSHandler.SessionWS", "forbidden", nil))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// greet with the latest assistant message so a reconnecting client has
	// a conversation anchor; an in-flight interview keeps its state
	last, err := h.chat.Resume(ctx, userID, sessionID)
	if err == nil && last.Content != "" {
		_ = wc.writeJSON(wsChatFrame{Type: "chat_message", Message: last})
	}

	// reader: WS -> chat service
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})

		for {
			_, data, rerr := conn.ReadMessage()
			if rerr != nil {
				return
			}
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

			var msg wsClientMsg
			if err := json.Unmarshal(data, &msg); err != nil {
				_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"invalid json"}`))
				continue
			}

			switch msg.Type {
			case "chat_message":
				if msg.Message == "" {
					_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"message is required"}`))
					continue
				}

				reply, perr := h.chat.ProcessMessage(ctx, userID, sessionID, msg.Message)
				if perr != nil {
					_ = wc.writeText([]byte(`{"type":"error","code":"INTERNAL","message":"failed to process message"}`))
					continue
				}
				_ = wc.writeJSON(wsChatFrame{Type: "chat_message", Message: reply})

			case "reset":
				fresh, rerr := h.chat.Reset(ctx, userID, sessionID)
				if rerr != nil {
					_ = wc.writeText([]byte(`{"type":"error","code":"INTERNAL","message":"failed to reset"}`))
					continue
				}
				_ = wc.writeJSON(wsChatFrame{Type: "chat_message", Message: fresh})

			case "status":
				status := h.chat.Status(ctx, userID, sessionID)
				_ = wc.writeJSON(gin.H{"type": "status", "status": status})

			case "end_session":
				_, _ = h.sessions.End(ctx, sessionID)
				_ = wc.writeText([]byte(`{"type":"status","status":"ended","message":"session ended"}`))
				return

			default:
				_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"unknown message type"}`))
			}
		}
	}()

	if h.redis == nil {
		<-readDone
		return
	}

	// writer: the summary worker publishes session events here
	eventsCh := "session:" + sessionID + ":events"
	pubsub := h.redis.Subscribe(ctx, eventsCh)
	defer pubsub.Close()

	events := pubsub.Channel()
	for {
		select {
		case <-readDone:
			return
		case <-ctx.Done():
			return
		case m, ok := <-events:
			if !ok {
				return
			}
			// forward as-is (payload expected JSON string)
			if werr := wc.writeText([]byte(m.Payload)); werr != nil {
				return
			}
		}
	}
}
