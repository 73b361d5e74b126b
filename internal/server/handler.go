package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"instagist/internal/database"
	"instagist/internal/domain"
	"instagist/internal/export"
	"instagist/internal/extract"
	"instagist/internal/gist"
	"instagist/internal/summarizer"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

type DocumentExtractor interface {
	FromText(ctx context.Context, pasted string) (domain.Document, error)
	FromUpload(filename string, data []byte) (domain.Document, error)
}

type SummaryService interface {
	Summarize(ctx context.Context, req gist.Request) (gist.Result, error)
}

type SummaryStore interface {
	InsertSummary(ctx context.Context, summary *domain.Summary) (int64, error)
	GetSummary(ctx context.Context, id int64) (*domain.Summary, error)
	ListSummaries(ctx context.Context, limit int64, offset int64) ([]domain.Summary, error)
	CountSummaries(ctx context.Context) (int64, error)
	DeleteSummary(ctx context.Context, id int64) error
}

type Handler struct {
	extractor      DocumentExtractor
	service        SummaryService
	store          SummaryStore
	maxInputChars  int
	maxUploadBytes int64
	log            *slog.Logger
}

func NewHandler(
	extractor DocumentExtractor,
	service SummaryService,
	store SummaryStore,
	maxInputChars int,
	maxUploadBytes int64,
	log *slog.Logger,
) *Handler {
	return &Handler{
		extractor:      extractor,
		service:        service,
		store:          store,
		maxInputChars:  maxInputChars,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

type summarizeInput struct {
	text       string
	filename   string
	data       []byte
	upload     bool
	style      domain.Style
	regenerate bool
}

func (h *Handler) PostSummarize(c *gin.Context) {
	ctx := c.Request.Context()

	input, ok := h.parseSummarizeInput(c)
	if !ok {
		return
	}

	var doc domain.Document
	var err error

	if input.upload {
		doc, err = h.extractor.FromUpload(input.filename, input.data)
	} else {
		doc, err = h.extractor.FromText(ctx, input.text)
	}
	if err != nil {
		h.respondExtractError(c, err)

		return
	}

	inputChars := int64(utf8.RuneCountInString(doc.Text))
	if h.maxInputChars > 0 && inputChars > int64(h.maxInputChars) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Input exceeds %d characters", h.maxInputChars),
		})

		return
	}

	result, err := h.service.Summarize(ctx, gist.Request{
		Document:   doc,
		Style:      input.style,
		Regenerate: input.regenerate,
	})
	if err != nil {
		if errors.Is(err, summarizer.ErrEmptyInput) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Please enter some text to summarize",
			})

			return
		}

		h.log.ErrorContext(ctx, "Failed to summarize input",
			"error", err,
			"sourceKind", doc.SourceKind,
			"style", input.style,
			"textLen", len(doc.Text))
		c.JSON(http.StatusBadGateway, gin.H{
			"error": fmt.Sprintf("Summarization failed: %v", err),
		})

		return
	}

	summary := &domain.Summary{
		CreatedAt:   time.Now().UTC(),
		Style:       input.style,
		SourceKind:  doc.SourceKind,
		SourceName:  doc.SourceName,
		Provider:    result.Provider,
		Model:       result.Model,
		InputChars:  inputChars,
		InputSHA256: inputSHA256(doc.Text),
		Text:        result.Text,
	}

	// A failed insert degrades history and downloads but the summary
	// itself is still worth returning.
	id, err := h.store.InsertSummary(ctx, summary)
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to store summary",
			"error", err,
			"sourceKind", doc.SourceKind,
			"style", input.style)
	}
	summary.ID = id

	c.JSON(http.StatusOK, toSummarizeResponse(summary, doc, result))
}

func (h *Handler) GetSummaries(c *gin.Context) {
	ctx := c.Request.Context()

	limit := h.queryLimit(c)
	offset := h.queryOffset(c)

	items, err := h.store.ListSummaries(ctx, limit, offset)
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to list summaries",
			"error", err,
			"limit", limit,
			"offset", offset)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})

		return
	}

	total, err := h.store.CountSummaries(ctx)
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to count summaries", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})

		return
	}

	res := SummariesResponse{
		Items:  []SummaryResponse{},
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}

	for _, item := range items {
		res.Items = append(res.Items, toSummaryResponse(item))
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetSummary(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	summary, ok := h.fetchSummary(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, toSummaryResponse(*summary))
}

func (h *Handler) DownloadSummary(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	format, ok := export.ParseFormat(c.Query("format"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown format"})

		return
	}

	summary, ok := h.fetchSummary(c, id)
	if !ok {
		return
	}

	file, err := export.Render(summary, format)
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "Failed to render summary",
			"error", err,
			"id", id,
			"format", format)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Render error"})

		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func (h *Handler) DeleteSummary(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	if err := h.store.DeleteSummary(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrSummaryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Summary not found"})

			return
		}

		h.log.ErrorContext(c.Request.Context(), "Failed to delete summary",
			"error", err,
			"id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetHealth(c *gin.Context) {
	if _, err := h.store.CountSummaries(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "connected",
	})
}

func (h *Handler) parseSummarizeInput(c *gin.Context) (summarizeInput, bool) {
	var input summarizeInput
	var rawStyle string

	if c.ContentType() == "multipart/form-data" {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})

			return input, false
		}

		if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("File exceeds %d bytes", h.maxUploadBytes),
			})

			return input, false
		}

		file, err := fileHeader.Open()
		if err != nil {
			h.log.ErrorContext(c.Request.Context(), "Failed to open upload",
				"error", err,
				"filename", fileHeader.Filename)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read file"})

			return input, false
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil {
				h.log.WarnContext(c.Request.Context(), "Failed to close upload",
					"error", closeErr,
					"filename", fileHeader.Filename)
			}
		}()

		data, err := io.ReadAll(file)
		if err != nil {
			h.log.ErrorContext(c.Request.Context(), "Failed to read upload",
				"error", err,
				"filename", fileHeader.Filename)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read file"})

			return input, false
		}

		input.upload = true
		input.filename = fileHeader.Filename
		input.data = data
		input.regenerate = parseBool(c.PostForm("regenerate"))
		rawStyle = c.PostForm("style")
	} else {
		var req summarizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})

			return input, false
		}

		input.text = req.Text
		input.regenerate = req.Regenerate
		rawStyle = req.Style
	}

	style, ok := domain.ParseStyle(rawStyle)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown style"})

		return input, false
	}
	input.style = style

	return input, true
}

func (h *Handler) respondExtractError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, extract.ErrNoContent):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Please enter some text to summarize",
		})
	case errors.Is(err, extract.ErrBinaryFile):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "File looks binary, expected text",
		})
	default:
		h.log.ErrorContext(c.Request.Context(), "Failed to extract input",
			"error", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Could not fetch the source",
		})
	}
}

func (h *Handler) fetchSummary(c *gin.Context, id int64) (*domain.Summary, bool) {
	summary, err := h.store.GetSummary(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrSummaryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Summary not found"})

			return nil, false
		}

		h.log.ErrorContext(c.Request.Context(), "Failed to fetch summary",
			"error", err,
			"id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})

		return nil, false
	}

	return summary, true
}

func (h *Handler) paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})

		return 0, false
	}

	return id, true
}

func (h *Handler) queryInt(c *gin.Context, name string, defaultValue int64) int64 {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.log.WarnContext(c.Request.Context(),
			"Invalid query parameter, using default",
			"param", name,
			"value", raw,
			"default", defaultValue)

		return defaultValue
	}

	return parsed
}

func (h *Handler) queryLimit(c *gin.Context) int64 {
	limit := h.queryInt(c, "limit", defaultListLimit)
	if limit < 1 {
		return defaultListLimit
	}

	if limit > maxListLimit {
		return maxListLimit
	}

	return limit
}

func (h *Handler) queryOffset(c *gin.Context) int64 {
	offset := h.queryInt(c, "offset", 0)
	if offset < 0 {
		return 0
	}

	return offset
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func inputSHA256(text string) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(text)))

	return hex.EncodeToString(hash[:])
}
