package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/classpulse/wordcloud-backend/internal/models"
	"github.com/classpulse/wordcloud-backend/internal/service"
)

type joinCore interface {
	CheckSession(ctx context.Context, code, fileNumber, name string) (*service.JoinInfo, error)
	Submit(ctx context.Context, code, fileNumber, name, word string) (*models.Response, error)
}

type StudentController struct {
	Core   joinCore
	Logger *zap.Logger
}

type checkSessionRequest struct {
	Code       string `json:"code" binding:"required"`
	FileNumber string `json:"file_number" binding:"required"`
	Name       string `json:"name"`
}

type submitRequest struct {
	Code       string `json:"code" binding:"required"`
	FileNumber string `json:"file_number" binding:"required"`
	Name       string `json:"name"`
	Word       string `json:"word" binding:"required"`
}

func (sc *StudentController) CheckSession(c *gin.Context) {
	var req checkSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "missing fields")
		return
	}

	info, err := sc.Core.CheckSession(c.Request.Context(), req.Code, req.FileNumber, req.Name)
	if err != nil {
		failDomain(c, sc.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"title":        info.Title,
		"is_active":    info.IsActive,
		"student_name": info.StudentName,
	})
}

func (sc *StudentController) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "missing fields")
		return
	}

	if _, err := sc.Core.Submit(c.Request.Context(), req.Code, req.FileNumber, req.Name, req.Word); err != nil {
		failDomain(c, sc.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "word submitted successfully"})
}
