package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/classpulse/wordcloud-backend/internal/models"
	"github.com/classpulse/wordcloud-backend/internal/store"
)

const (
	eventNewWord    = "new_word"
	eventSlideImage = "slide_image"
)

type sessionRegistry interface {
	Create(ctx context.Context, classID string, wordLimit int) (*models.Session, error)
	FindByCode(ctx context.Context, code string) (*models.Session, error)
	Activate(ctx context.Context, code string) (*models.Session, error)
	Deactivate(ctx context.Context, code string) (*models.Session, error)
}

type classDirectory interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
	FindByIDForTeacher(ctx context.Context, id, teacherID string) (*models.Class, error)
}

type studentRoster interface {
	FindByFileNumber(ctx context.Context, classID, fileNumber string) (*models.Student, error)
	Enroll(ctx context.Context, st *models.Student) error
}

type submissionLedger interface {
	AppendWithinQuota(ctx context.Context, sessionID, studentID, word string, limit int) (*models.Response, error)
	ListBySession(ctx context.Context, sessionID string) ([]store.SessionWord, error)
}

type broadcaster interface {
	Publish(code, event string, payload interface{})
}

// SlidePayload is broadcast to a room when its session starts.
type SlidePayload struct {
	Code  string `json:"code"`
	Slide string `json:"slide,omitempty"`
}

// WordPayload is broadcast to a room for each accepted submission.
type WordPayload struct {
	Word string `json:"word"`
	Name string `json:"name"`
}

// JoinInfo is what a student sees before entering a session.
type JoinInfo struct {
	Title       string
	IsActive    bool
	StudentName string
}

// Orchestrator enforces the session business rules. The stores underneath it
// are plain CRUD; every policy decision lives here.
type Orchestrator struct {
	sessions sessionRegistry
	classes  classDirectory
	students studentRoster
	ledger   submissionLedger
	rooms    broadcaster
	logger   *zap.Logger

	// walkIn enrolls unknown file numbers lazily on first submission
	// instead of rejecting them.
	walkIn bool
}

func NewOrchestrator(
	sessions sessionRegistry,
	classes classDirectory,
	students studentRoster,
	ledger submissionLedger,
	rooms broadcaster,
	logger *zap.Logger,
	walkIn bool,
) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		sessions: sessions,
		classes:  classes,
		students: students,
		ledger:   ledger,
		rooms:    rooms,
		logger:   logger,
		walkIn:   walkIn,
	}
}

// CreateSession makes a new inactive session on one of the teacher's
// classes. A class owned by someone else reads as not found.
func (o *Orchestrator) CreateSession(ctx context.Context, teacherID, classID string, wordLimit int) (*models.Session, error) {
	if _, err := o.classes.FindByIDForTeacher(ctx, classID, teacherID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	sess, err := o.sessions.Create(ctx, classID, wordLimit)
	if err != nil {
		if errors.Is(err, store.ErrCodeExhausted) {
			return nil, ErrCodeExhausted
		}
		return nil, err
	}
	return sess, nil
}

// StartSession activates the session and pushes the slide to the room. The
// slide event goes out even when no slide was supplied, so waiting clients
// always learn the session went live.
func (o *Orchestrator) StartSession(ctx context.Context, code, slide string) (*models.Session, error) {
	code = normalizeCode(code)
	sess, err := o.sessions.Activate(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	o.rooms.Publish(sess.Code, eventSlideImage, SlidePayload{Code: sess.Code, Slide: slide})
	return sess, nil
}

// EndSession deactivates the session. Ending an already-ended session
// succeeds and just moves end_time.
func (o *Orchestrator) EndSession(ctx context.Context, code string) (*models.Session, error) {
	sess, err := o.sessions.Deactivate(ctx, normalizeCode(code))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return sess, nil
}

// CheckSession validates a join attempt. Joining an inactive session is
// allowed (the client shows a waiting screen); only submission is gated on
// activity.
func (o *Orchestrator) CheckSession(ctx context.Context, code, fileNumber, name string) (*JoinInfo, error) {
	sess, err := o.sessions.FindByCode(ctx, normalizeCode(code))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	class, err := o.classes.FindByID(ctx, sess.ClassID)
	if err != nil {
		// Unreachable while the FK holds; never crash on it.
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMalformedSession
		}
		return nil, err
	}

	student, err := o.resolveStudent(ctx, class.ID, fileNumber, name, false)
	if err != nil {
		return nil, err
	}

	teacherName := "Teacher"
	if class.Teacher != nil && class.Teacher.FullName != "" {
		teacherName = class.Teacher.FullName
	}

	return &JoinInfo{
		Title:       fmt.Sprintf("Word Cloud – %s", teacherName),
		IsActive:    sess.IsActive,
		StudentName: student.FullName,
	}, nil
}

// Submit runs the whole submission pipeline: trim, session lookup, active
// gate, identity resolution, quota-checked append, room broadcast. The
// stored response is the source of truth; the broadcast is best effort and
// can never fail the submission.
func (o *Orchestrator) Submit(ctx context.Context, code, fileNumber, name, word string) (*models.Response, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, ErrEmptyWord
	}

	sess, err := o.sessions.FindByCode(ctx, normalizeCode(code))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if !sess.IsActive {
		return nil, ErrSessionInactive
	}

	class, err := o.classes.FindByID(ctx, sess.ClassID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMalformedSession
		}
		return nil, err
	}

	student, err := o.resolveStudent(ctx, class.ID, fileNumber, name, true)
	if err != nil {
		return nil, err
	}

	resp, err := o.ledger.AppendWithinQuota(ctx, sess.ID, student.ID, word, sess.WordLimit)
	if err != nil {
		if errors.Is(err, store.ErrQuotaExceeded) {
			return nil, ErrQuotaExceeded
		}
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	o.rooms.Publish(sess.Code, eventNewWord, WordPayload{Word: word, Name: student.FullName})
	return resp, nil
}

// SessionWords returns the stored words of one of the teacher's sessions,
// in submission order.
func (o *Orchestrator) SessionWords(ctx context.Context, teacherID, code string) ([]store.SessionWord, error) {
	sess, err := o.sessions.FindByCode(ctx, normalizeCode(code))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if _, err := o.classes.FindByIDForTeacher(ctx, sess.ClassID, teacherID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return o.ledger.ListBySession(ctx, sess.ID)
}

// resolveStudent maps a file number to an enrolled student. In walk-in mode
// an unknown file number is tolerated: on submission it is enrolled, on a
// plain check it is answered with a transient identity that is not persisted.
func (o *Orchestrator) resolveStudent(ctx context.Context, classID, fileNumber, displayName string, enroll bool) (*models.Student, error) {
	fileNumber = strings.TrimSpace(fileNumber)
	st, err := o.students.FindByFileNumber(ctx, classID, fileNumber)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if !o.walkIn {
		return nil, ErrStudentNotFound
	}

	st = &models.Student{
		ClassID:    classID,
		FileNumber: fileNumber,
		FullName:   fallbackName(displayName),
	}
	if !enroll {
		return st, nil
	}
	if err := o.students.Enroll(ctx, st); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// Lost an enrollment race; the row exists now.
			return o.students.FindByFileNumber(ctx, classID, fileNumber)
		}
		return nil, err
	}
	o.logger.Info("walk-in student enrolled",
		zap.String("class_id", classID),
		zap.String("file_number", fileNumber),
	)
	return st, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func fallbackName(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return "Anonymous"
}
