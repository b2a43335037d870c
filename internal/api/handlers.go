package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"studybuddy/internal/extract"
	"studybuddy/internal/metrics"
	"studybuddy/internal/models"
	"studybuddy/internal/prompt"
	"studybuddy/internal/service/ai"
)

const defaultMaxUploadBytes = 10 << 20 // 10 MB

// Handler wires the study-tool HTTP routes to the generation client. It holds
// no mutable state; every request is independent.
type Handler struct {
	client    ai.Client
	uploadDir string
	maxUpload int64
}

// NewHandler constructs a Handler instance.
func NewHandler(client ai.Client, uploadDir string, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{client: client, uploadDir: uploadDir, maxUpload: maxUploadBytes}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.health)
	router.POST("/summarize-text", h.summarizeText)
	router.POST("/summarize-pdf", h.summarizeUpload)
	router.POST("/generate-quiz", h.generateQuiz)
	router.POST("/flashcards", h.flashcards)
	router.POST("/study-planner", h.studyPlanner)
	router.POST("/mindmap", h.mindmap)
	router.POST("/motivation", h.motivation)
}

func (h *Handler) health(c *gin.Context) {
	c.String(http.StatusOK, "studybuddy api is running")
}

func errorJSON(c *gin.Context, status int, tag, details, hint string) {
	body := gin.H{"error": tag}
	if details != "" {
		body["details"] = details
	}
	if hint != "" {
		body["hint"] = hint
	}
	c.JSON(status, body)
}

// respond runs the tail of every feature pipeline: model call, bilingual
// wrap, JSON body under the feature's success key.
func (h *Handler) respond(c *gin.Context, mode prompt.Mode, instruction, language, key string) {
	start := time.Now()
	answer, err := h.client.Generate(c.Request.Context(), instruction, mode.Temperature())
	metrics.ObserveUpstream(mode.String(), time.Since(start))
	if err != nil {
		metrics.ObserveFeature(mode.String(), "error")
		log.Error().Err(err).
			Str("feature", mode.String()).
			Dur("duration", time.Since(start)).
			Msg("generation failed")
		errorJSON(c, http.StatusInternalServerError, mode.String()+"_failed", err.Error(), "")
		return
	}
	metrics.ObserveFeature(mode.String(), "ok")
	c.JSON(http.StatusOK, gin.H{key: prompt.Wrap(answer, language)})
}

// textRequest is the shared body of the text-fed features.
type textRequest struct {
	Text     string `json:"text"`
	Count    *int   `json:"count"`
	Language string `json:"language"`
}

// bindText decodes and validates a textRequest, short-circuiting with 400
// before any network call.
func bindText(c *gin.Context) (textRequest, bool) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "missing_text", "invalid request body", "")
		return req, false
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		errorJSON(c, http.StatusBadRequest, "missing_text", "", `provide study material in the "text" field`)
		return req, false
	}
	return req, true
}

// resolveCount applies the mode default when the field is absent and clamps
// explicit values to [1, max]. A non-numeric count is rejected by JSON
// binding before this runs.
func resolveCount(n *int, def, max int) int {
	if n == nil {
		return def
	}
	v := *n
	if v < 1 {
		return 1
	}
	if v > max {
		return max
	}
	return v
}

func (h *Handler) summarizeText(c *gin.Context) {
	req, ok := bindText(c)
	if !ok {
		return
	}
	h.respond(c, prompt.ModeSummary, prompt.Summary(req.Text, ""), req.Language, "summary")
}

func (h *Handler) generateQuiz(c *gin.Context) {
	req, ok := bindText(c)
	if !ok {
		return
	}
	n := resolveCount(req.Count, prompt.DefaultQuizCount, prompt.MaxQuizCount)
	h.respond(c, prompt.ModeQuiz, prompt.Quiz(req.Text, n), req.Language, "quiz")
}

func (h *Handler) flashcards(c *gin.Context) {
	req, ok := bindText(c)
	if !ok {
		return
	}
	n := resolveCount(req.Count, prompt.DefaultFlashcardCount, prompt.MaxFlashcardCount)
	h.respond(c, prompt.ModeFlashcards, prompt.Flashcards(req.Text, n), req.Language, "cards")
}

func (h *Handler) mindmap(c *gin.Context) {
	req, ok := bindText(c)
	if !ok {
		return
	}
	h.respond(c, prompt.ModeMindmap, prompt.Mindmap(req.Text), req.Language, "mermaid")
}

type planRequest struct {
	Subjects    []string `json:"subjects"`
	ExamDate    string   `json:"examDate"`
	HoursPerDay *int     `json:"hoursPerDay"`
	Language    string   `json:"language"`
}

func (h *Handler) studyPlanner(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "missing_fields", "invalid request body", "")
		return
	}
	subjects := make([]string, 0, len(req.Subjects))
	for _, s := range req.Subjects {
		if s = strings.TrimSpace(s); s != "" {
			subjects = append(subjects, s)
		}
	}
	if len(subjects) == 0 || strings.TrimSpace(req.ExamDate) == "" {
		errorJSON(c, http.StatusBadRequest, "missing_fields", "", "subjects[] and examDate are required")
		return
	}
	examDate, err := time.Parse("2006-01-02", strings.TrimSpace(req.ExamDate))
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "missing_fields", "examDate must be formatted YYYY-MM-DD", "")
		return
	}
	hours := resolveCount(req.HoursPerDay, prompt.DefaultHoursPerDay, prompt.MaxHoursPerDay)
	instruction := prompt.StudyPlan(subjects, examDate, hours, time.Now())
	h.respond(c, prompt.ModeStudyPlan, instruction, req.Language, "plan")
}

type motivationRequest struct {
	Context  string `json:"context"`
	Language string `json:"language"`
}

func (h *Handler) motivation(c *gin.Context) {
	var req motivationRequest
	// every field is optional; an empty or absent body is fine
	_ = c.ShouldBindJSON(&req)
	h.respond(c, prompt.ModeMotivation, prompt.Motivation(req.Context), req.Language, "message")
}

func (h *Handler) summarizeUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "no_file", "", `attach a document in the "file" field`)
		return
	}
	if fileHeader.Size > h.maxUpload {
		errorJSON(c, http.StatusBadRequest, "file_too_large",
			fmt.Sprintf("upload limit is %d MB", h.maxUpload>>20), "")
		return
	}
	language := c.PostForm("language")

	upload, err := h.saveUpload(c, fileHeader)
	if err != nil {
		log.Error().Err(err).Str("file", fileHeader.Filename).Msg("saving upload failed")
		errorJSON(c, http.StatusInternalServerError, "upload_failed", err.Error(), "")
		return
	}
	defer h.removeUpload(upload)

	text, err := extract.Text(upload.Path, extract.NormalizeExt(upload.Name))
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) {
			errorJSON(c, http.StatusBadRequest, "unsupported_type", "", "supported types: pdf, docx, txt")
			return
		}
		log.Error().Err(err).Str("file", upload.Name).Msg("extraction failed")
		errorJSON(c, http.StatusInternalServerError, "summary_failed", err.Error(), "")
		return
	}
	if strings.TrimSpace(text) == "" {
		errorJSON(c, http.StatusBadRequest, "empty_file", "", "the document contains no extractable text")
		return
	}
	h.respond(c, prompt.ModeSummary, prompt.Summary(text, ""), language, "summary")
}

// saveUpload stores the document under a per-request unique name for the
// duration of this request.
func (h *Handler) saveUpload(c *gin.Context, fh *multipart.FileHeader) (*models.UploadedFile, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	name := filepath.Base(fh.Filename)
	dest := filepath.Join(h.uploadDir, uuid.NewString()+filepath.Ext(name))
	if err := c.SaveUploadedFile(fh, dest); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}
	return &models.UploadedFile{Name: name, Path: dest, Size: fh.Size}, nil
}

// removeUpload is best effort; a failed delete never changes the response.
func (h *Handler) removeUpload(f *models.UploadedFile) {
	if err := os.Remove(f.Path); err != nil {
		log.Debug().Err(err).Str("path", f.Path).Msg("temp file cleanup failed")
	}
}
