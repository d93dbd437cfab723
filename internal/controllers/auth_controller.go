package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/classpulse/wordcloud-backend/internal/middleware"
	"github.com/classpulse/wordcloud-backend/internal/models"
	"github.com/classpulse/wordcloud-backend/internal/store"
	"github.com/classpulse/wordcloud-backend/internal/utils"
)

type teacherAccounts interface {
	Create(ctx context.Context, t *models.Teacher) error
	FindByEmail(ctx context.Context, email string) (*models.Teacher, error)
}

type AuthController struct {
	Teachers  teacherAccounts
	JWTSecret string
	ExpiresIn time.Duration
	Logger    *zap.Logger
}

type registerRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	teacher := &models.Teacher{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := a.Teachers.Create(c.Request.Context(), teacher); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			fail(c, http.StatusBadRequest, "email exists")
			return
		}
		failDomain(c, a.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "account created successfully"})
}

func (a *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	teacher, err := a.Teachers.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		failDomain(c, a.Logger, err)
		return
	}
	if !utils.CheckPassword(teacher.PasswordHash, req.Password) {
		fail(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := a.issueToken(teacher)
	if err != nil {
		failDomain(c, a.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"token":      token,
		"teacher_id": teacher.ID,
		"name":       teacher.FullName,
	})
}

// VerifyToken runs behind the auth middleware; reaching it means the token
// is good.
func (a *AuthController) VerifyToken(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Token is valid"})
}

func (a *AuthController) issueToken(teacher *models.Teacher) (string, error) {
	now := time.Now().UTC()
	claims := middleware.Claims{
		TeacherID: teacher.ID,
		Email:     teacher.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "wordcloud-backend",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ExpiresIn)),
			Subject:   teacher.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.JWTSecret))
}
