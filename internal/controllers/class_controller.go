package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/classpulse/wordcloud-backend/internal/middleware"
	"github.com/classpulse/wordcloud-backend/internal/models"
	"github.com/classpulse/wordcloud-backend/internal/store"
)

type classRegistry interface {
	Create(ctx context.Context, cl *models.Class) error
	ListByTeacher(ctx context.Context, teacherID string) ([]store.ClassWithCount, error)
	FindByIDForTeacher(ctx context.Context, id, teacherID string) (*models.Class, error)
	Delete(ctx context.Context, id, teacherID string) error
}

type studentRegistry interface {
	Enroll(ctx context.Context, st *models.Student) error
	ListByClass(ctx context.Context, classID string) ([]models.Student, error)
	Delete(ctx context.Context, classID, studentID string) error
}

type ClassController struct {
	Classes  classRegistry
	Students studentRegistry
	Logger   *zap.Logger
}

type createClassRequest struct {
	Name string `json:"name" binding:"required"`
}

type enrollStudentRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	FileNumber string `json:"file_number" binding:"required"`
}

func (cc *ClassController) CreateClass(c *gin.Context) {
	var req createClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	class := &models.Class{
		Name:      strings.TrimSpace(req.Name),
		TeacherID: middleware.TeacherID(c),
	}
	if class.Name == "" {
		fail(c, http.StatusBadRequest, "missing name")
		return
	}
	if err := cc.Classes.Create(c.Request.Context(), class); err != nil {
		failDomain(c, cc.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"class":   gin.H{"id": class.ID, "name": class.Name},
	})
}

func (cc *ClassController) ListClasses(c *gin.Context) {
	classes, err := cc.Classes.ListByTeacher(c.Request.Context(), middleware.TeacherID(c))
	if err != nil {
		failDomain(c, cc.Logger, err)
		return
	}
	if classes == nil {
		classes = []store.ClassWithCount{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "classes": classes})
}

func (cc *ClassController) DeleteClass(c *gin.Context) {
	err := cc.Classes.Delete(c.Request.Context(), c.Param("id"), middleware.TeacherID(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, "class not found")
			return
		}
		failDomain(c, cc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "class deleted"})
}

func (cc *ClassController) EnrollStudent(c *gin.Context) {
	class, err := cc.ownedClass(c)
	if err != nil {
		return
	}

	var req enrollStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	student := &models.Student{
		FullName:   strings.TrimSpace(req.FullName),
		FileNumber: strings.TrimSpace(req.FileNumber),
		ClassID:    class.ID,
	}
	if student.FullName == "" || student.FileNumber == "" {
		fail(c, http.StatusBadRequest, "missing full_name or file_number")
		return
	}
	if err := cc.Students.Enroll(c.Request.Context(), student); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			fail(c, http.StatusBadRequest, "file number already enrolled in this class")
			return
		}
		failDomain(c, cc.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"student": studentView(student),
	})
}

func (cc *ClassController) ListStudents(c *gin.Context) {
	class, err := cc.ownedClass(c)
	if err != nil {
		return
	}

	students, err := cc.Students.ListByClass(c.Request.Context(), class.ID)
	if err != nil {
		failDomain(c, cc.Logger, err)
		return
	}

	out := make([]gin.H, 0, len(students))
	for i := range students {
		out = append(out, studentView(&students[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "students": out})
}

func (cc *ClassController) DeleteStudent(c *gin.Context) {
	class, err := cc.ownedClass(c)
	if err != nil {
		return
	}

	err = cc.Students.Delete(c.Request.Context(), class.ID, c.Param("sid"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, "student not found")
			return
		}
		failDomain(c, cc.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "student removed"})
}

// ownedClass resolves the :id path param within the caller's classes and
// writes the error response itself on a miss.
func (cc *ClassController) ownedClass(c *gin.Context) (*models.Class, error) {
	class, err := cc.Classes.FindByIDForTeacher(c.Request.Context(), c.Param("id"), middleware.TeacherID(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, "class not found")
			return nil, err
		}
		failDomain(c, cc.Logger, err)
		return nil, err
	}
	return class, nil
}

func studentView(s *models.Student) gin.H {
	return gin.H{
		"id":          s.ID,
		"full_name":   s.FullName,
		"file_number": s.FileNumber,
	}
}
