package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/classpulse/wordcloud-backend/internal/config"
	"github.com/classpulse/wordcloud-backend/internal/controllers"
	"github.com/classpulse/wordcloud-backend/internal/middleware"
	"github.com/classpulse/wordcloud-backend/internal/service"
	"github.com/classpulse/wordcloud-backend/internal/store"
	"github.com/classpulse/wordcloud-backend/internal/ws"
)

func Register(r *gin.Engine, db *gorm.DB, cfg *config.Config, hub *ws.Hub, logger *zap.Logger) {
	teachers := &store.TeacherStore{DB: db}
	classes := &store.ClassStore{DB: db}
	students := &store.StudentStore{DB: db}
	sessions := &store.SessionStore{DB: db}
	responses := &store.ResponseStore{DB: db}

	core := service.NewOrchestrator(sessions, classes, students, responses, hub, logger, cfg.WalkInSubmissions)

	expires, err := time.ParseDuration(cfg.JWTExpiresIn + "m")
	if err != nil || expires == 0 {
		expires = 60 * time.Minute
	}

	authCtrl := &controllers.AuthController{
		Teachers:  teachers,
		JWTSecret: cfg.JWTSecret,
		ExpiresIn: expires,
		Logger:    logger,
	}
	classCtrl := &controllers.ClassController{Classes: classes, Students: students, Logger: logger}
	sessCtrl := &controllers.SessionController{Core: core, Logger: logger}
	stuCtrl := &controllers.StudentController{Core: core, Logger: logger}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "word cloud backend running"})
	})

	teacher := r.Group("/api/teacher")
	{
		teacher.POST("/register", authCtrl.Register)
		teacher.POST("/login", authCtrl.Login)

		protected := teacher.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
		{
			protected.GET("/verify-token", authCtrl.VerifyToken)

			protected.POST("/classes", classCtrl.CreateClass)
			protected.GET("/classes", classCtrl.ListClasses)
			protected.DELETE("/classes/:id", classCtrl.DeleteClass)
			protected.POST("/classes/:id/students", classCtrl.EnrollStudent)
			protected.GET("/classes/:id/students", classCtrl.ListStudents)
			protected.DELETE("/classes/:id/students/:sid", classCtrl.DeleteStudent)

			protected.POST("/create-session", sessCtrl.CreateSession)
			protected.POST("/start-session", sessCtrl.StartSession)
			protected.POST("/end-session", sessCtrl.EndSession)
			protected.GET("/sessions/:code/responses", sessCtrl.SessionResponses)
		}
	}

	student := r.Group("/api/student")
	{
		student.POST("/check-session", stuCtrl.CheckSession)
		student.POST("/submit", stuCtrl.Submit)
	}

	r.GET("/ws", ws.Handler(hub))
}
