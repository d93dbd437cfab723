package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/classpulse/wordcloud-backend/internal/middleware"
	"github.com/classpulse/wordcloud-backend/internal/models"
	"github.com/classpulse/wordcloud-backend/internal/store"
)

type sessionCore interface {
	CreateSession(ctx context.Context, teacherID, classID string, wordLimit int) (*models.Session, error)
	StartSession(ctx context.Context, code, slide string) (*models.Session, error)
	EndSession(ctx context.Context, code string) (*models.Session, error)
	SessionWords(ctx context.Context, teacherID, code string) ([]store.SessionWord, error)
}

type SessionController struct {
	Core   sessionCore
	Logger *zap.Logger
}

type createSessionRequest struct {
	ClassID   string `json:"class_id" binding:"required"`
	WordLimit int    `json:"word_limit" binding:"omitempty,gt=0"`
}

type startSessionRequest struct {
	Code string `json:"code" binding:"required"`
	// SlideImage is an opaque payload (typically base64) relayed to the room.
	SlideImage string `json:"slide_image"`
}

type endSessionRequest struct {
	Code string `json:"code" binding:"required"`
}

func (sc *SessionController) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := sc.Core.CreateSession(c.Request.Context(), middleware.TeacherID(c), req.ClassID, req.WordLimit)
	if err != nil {
		failDomain(c, sc.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "code": sess.Code})
}

func (sc *SessionController) StartSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := sc.Core.StartSession(c.Request.Context(), req.Code, req.SlideImage); err != nil {
		failDomain(c, sc.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "session started"})
}

func (sc *SessionController) EndSession(c *gin.Context) {
	var req endSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := sc.Core.EndSession(c.Request.Context(), req.Code); err != nil {
		failDomain(c, sc.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "session ended"})
}

// SessionResponses returns the stored words of the teacher's session, so a
// reconnecting dashboard can rebuild its view (the room does not replay).
func (sc *SessionController) SessionResponses(c *gin.Context) {
	words, err := sc.Core.SessionWords(c.Request.Context(), middleware.TeacherID(c), c.Param("code"))
	if err != nil {
		failDomain(c, sc.Logger, err)
		return
	}
	if words == nil {
		words = []store.SessionWord{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "responses": words})
}
