package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/yildizm/scrollmark/internal/logger"
	"github.com/yildizm/scrollmark/internal/metrics"
	"github.com/yildizm/scrollmark/internal/session"
	"github.com/yildizm/scrollmark/internal/virality"
)

// Snapshot is the wire form of a session
type Snapshot struct {
	ID                string           `json:"id"`
	Status            session.Status   `json:"status"`
	File              *session.FileRef `json:"file"`
	Progress          int              `json:"progress"`
	ProgressSimulated bool             `json:"progress_simulated"`
	Loaded            bool             `json:"loaded"`
	CanAnalyze        bool             `json:"can_analyze"`
	Attempt           int              `json:"attempt"`
	Error             string           `json:"error,omitempty"`
	Message           string           `json:"message,omitempty"`
}

// PredictRequest is the body of POST /api/virality/predict
type PredictRequest struct {
	Content string `json:"content"`
}

func (s *Server) snapshot(sess session.Session) Snapshot {
	snap := Snapshot{
		ID:                sess.ID,
		Status:            sess.Status,
		File:              sess.File,
		Progress:          sess.Progress,
		ProgressSimulated: true,
		Loaded:            sess.Loaded(),
		CanAnalyze:        sess.CanAnalyze(),
		Attempt:           sess.Attempt,
	}
	if sess.Err != nil {
		snap.Error = sess.Err.Error()
		snap.Message = fmt.Sprintf("Failed to analyze data. Ensure the analysis service is running at %s.", s.endpoint)
	}
	return snap
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGetSession(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshot(s.ctrl.Snapshot()))
}

func (s *Server) handleUpload(c *gin.Context) {
	// refuse before writing anything to disk
	if current := s.ctrl.Snapshot(); current.Analyzing() {
		abortWithSessionError(c, session.ErrBusy, current)
		return
	} else if current.Loaded() {
		abortWithSessionError(c, session.ErrLoaded, current)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field \"file\" is required"})
		return
	}
	name := filepath.Base(fh.Filename)
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .csv files can be analyzed"})
		return
	}

	if err := os.MkdirAll(s.uploadDir, 0o750); err != nil {
		s.log.Error("failed to create upload dir: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}
	dst := filepath.Join(s.uploadDir, ulid.Make().String()+"-"+name)
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		s.log.Error("failed to save upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}

	previous := s.ctrl.Snapshot().File
	sess, err := s.ctrl.Select(dst)
	if err != nil {
		_ = os.Remove(dst)
		abortWithSessionError(c, err, sess)
		return
	}
	s.removeUpload(previous)
	s.log.InfoWithFields("upload stored", []logger.Field{logger.Session(sess.ID), logger.F("bytes", fh.Size)})
	c.JSON(http.StatusOK, s.snapshot(sess))
}

func (s *Server) handleAnalyze(c *gin.Context) {
	sess, err := s.ctrl.Start(s.baseCtx)
	if err != nil {
		abortWithSessionError(c, err, sess)
		return
	}
	c.JSON(http.StatusAccepted, s.snapshot(sess))
}

func (s *Server) handleReset(c *gin.Context) {
	previous := s.ctrl.Snapshot().File
	sess, err := s.ctrl.Reset()
	if err != nil {
		abortWithSessionError(c, err, sess)
		return
	}
	s.removeUpload(previous)
	c.JSON(http.StatusOK, s.snapshot(sess))
}

func (s *Server) handleResult(c *gin.Context) {
	sess := s.ctrl.Snapshot()
	if !sess.Loaded() {
		c.JSON(http.StatusNotFound, gin.H{"error": "no result loaded"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", sess.Result.Raw())
}

func (s *Server) handleDomainResult(c *gin.Context) {
	d, err := metrics.ParseDomain(c.Param("domain"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	sess := s.ctrl.Snapshot()
	if !sess.Loaded() {
		c.JSON(http.StatusNotFound, gin.H{"error": "no result loaded"})
		return
	}
	raw, ok := sess.Result.DomainJSON(d)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("domain %s not in result", d)})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

func (s *Server) handlePredict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if s.predictor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "virality predictor is not configured"})
		return
	}

	pred, err := s.predictor.Predict(c.Request.Context(), req.Content)
	switch {
	case errors.Is(err, virality.ErrEmptyContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, pred)
	}
}

// removeUpload deletes a stored copy that no session refers to any more.
// Files outside the upload dir are never touched.
func (s *Server) removeUpload(ref *session.FileRef) {
	if ref == nil || filepath.Dir(ref.Path) != filepath.Clean(s.uploadDir) {
		return
	}
	if err := os.Remove(ref.Path); err != nil && !os.IsNotExist(err) {
		s.log.Warn("failed to remove upload %s: %v", ref.Path, err)
	}
}

// abortWithSessionError maps controller preconditions to 409 Conflict
func abortWithSessionError(c *gin.Context, err error, sess session.Session) {
	switch {
	case errors.Is(err, session.ErrNoFile),
		errors.Is(err, session.ErrBusy),
		errors.Is(err, session.ErrLoaded):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "status": sess.Status})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
