package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/interviewxp/backend/internal/models"
	"github.com/interviewxp/backend/internal/services"
	"github.com/interviewxp/backend/internal/utils"
)

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, APIError{
			Code:    ae.Code,
			Message: ae.Message,
		})
		return
	}

	c.JSON(status, APIError{
		Code:    utils.CodeInternal,
		Message: http.StatusText(status),
	})
}

func requireUserID(c *gin.Context) (string, bool) {
	if v, ok := c.Get("user_id"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}

	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil))
	return "", false
}

// requireOwnedSession loads the session named in the path and checks the
// caller owns it.
func requireOwnedSession(c *gin.Context, sessions services.SessionService, userID string) (*models.InterviewSession, bool) {
	sessionID := c.Param("session_id")
	sess, err := sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if sess.UserID != userID {
		writeError(c, utils.E(utils.CodeForbidden, "Auth", "forbidden", nil))
		return nil, false
	}
	return sess, true
}
