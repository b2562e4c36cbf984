package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/varix/internal/correction"
	"github.com/abhisek/varix/internal/questiongen"
	"github.com/abhisek/varix/internal/session"
)

// maxUploadBytes caps exam uploads at 10 MiB.
const maxUploadBytes = 10 << 20

type startRequest struct {
	QuestionText string `json:"question_text" binding:"required"`
}

type startResponse struct {
	SessionID string                          `json:"session_id"`
	Questions []questiongen.GeneratedQuestion `json:"questions"`
	Requested int                             `json:"requested"`
	Generated int                             `json:"generated"`
}

type submitRequest struct {
	Answers map[int]string `json:"answers" binding:"required"`
}

// sessionView is the snapshot payload. The answer key and report are
// only exposed once the session has been graded.
type sessionView struct {
	SessionID        string                          `json:"session_id"`
	OriginalQuestion string                          `json:"original_question"`
	Identified       *questiongen.IdentifiedSkills   `json:"identified_skills,omitempty"`
	Questions        []questiongen.GeneratedQuestion `json:"questions,omitempty"`
	AnswerKey        *questiongen.AnswerKey          `json:"answer_key,omitempty"`
	Report           *correction.Report              `json:"report,omitempty"`
	Submitted        bool                            `json:"submitted"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// startSession accepts either a JSON body with the question text or a
// multipart upload (field "file") routed through the extractor.
func (s *Server) startSession(c *gin.Context) {
	text, ok := s.questionText(c)
	if !ok {
		return
	}

	sess, err := s.svc.Start(c.Request.Context(), text)
	s.writeGenerationResult(c, sess, err)
}

// regenerateSession re-runs generation for an unsubmitted session.
func (s *Server) regenerateSession(c *gin.Context) {
	sess, err := s.svc.Regenerate(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, session.ErrAlreadySubmitted):
		c.JSON(http.StatusConflict, gin.H{"error": "session already submitted"})
	case errors.Is(err, session.ErrGenerationInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "generation already in flight"})
	default:
		s.writeGenerationResult(c, sess, err)
	}
}

// writeGenerationResult maps a generation outcome to the start payload.
// A degraded result still ships; the counts expose the shortfall.
func (s *Server) writeGenerationResult(c *gin.Context, sess *session.Session, err error) {
	var degraded *questiongen.DegradedError
	switch {
	case err == nil:
	case errors.As(err, &degraded):
	default:
		status := http.StatusInternalServerError
		var interp *questiongen.InterpretationError
		var exhausted *questiongen.ExhaustedError
		if errors.As(err, &interp) || errors.As(err, &exhausted) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	requested := len(sess.Questions)
	if degraded != nil {
		requested = degraded.Requested
	}
	c.JSON(http.StatusOK, startResponse{
		SessionID: sess.ID,
		Questions: sess.Questions,
		Requested: requested,
		Generated: len(sess.Questions),
	})
}

func (s *Server) questionText(c *gin.Context) (string, bool) {
	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/") {
		file, _, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "multipart upload requires a \"file\" field"})
			return "", false
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "read upload: " + err.Error()})
			return "", false
		}
		text, err := s.extractor.Extract(c.Request.Context(), data)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "extract question text: " + err.Error()})
			return "", false
		}
		return text, true
	}

	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return req.QuestionText, true
}

func (s *Server) getSession(c *gin.Context) {
	sess, err := s.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	view := sessionView{
		SessionID:        sess.ID,
		OriginalQuestion: sess.OriginalQuestion,
		Identified:       sess.Identified,
		Questions:        sess.Questions,
		Submitted:        sess.Submitted(),
	}
	if sess.Submitted() {
		view.AnswerKey = sess.AnswerKey
		view.Report = sess.Report
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) submitAnswers(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := s.svc.Submit(c.Request.Context(), c.Param("id"), req.Answers)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"report": report})
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, session.ErrAlreadySubmitted):
		c.JSON(http.StatusConflict, gin.H{"error": "session already submitted"})
	case errors.Is(err, session.ErrMissingAnswerKey):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "session has no answer key"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
