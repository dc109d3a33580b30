package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/Aayushman-Codes/Legal-Analysis-App/models"
	"github.com/Aayushman-Codes/Legal-Analysis-App/repository"
	"github.com/Aayushman-Codes/Legal-Analysis-App/service"
	"github.com/Aayushman-Codes/Legal-Analysis-App/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalysisHandler handles HTTP requests for contract analysis. The document
// repository and storage are optional: when either is nil uploads are
// analyzed without being archived.
type AnalysisHandler struct {
	analyzer         *service.AnalyzerService
	docRepo          *repository.DocumentRepository
	storage          storage.Storage
	logger           *zap.Logger
	maxFileSize      int64
	allowedMimeTypes map[string]bool
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analyzer *service.AnalyzerService, docRepo *repository.DocumentRepository, docStorage storage.Storage, logger *zap.Logger) *AnalysisHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisHandler{
		analyzer:    analyzer,
		docRepo:     docRepo,
		storage:     docStorage,
		logger:      logger,
		maxFileSize: 10 * 1024 * 1024, // 10MB
		allowedMimeTypes: map[string]bool{
			"application/pdf": true,
			"text/plain":      true,
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true, // .docx
		},
	}
}

// AnalyzeTextRequest represents the request body for text analysis
type AnalyzeTextRequest struct {
	Text string `json:"text"`
}

// AskRequest represents the request body for question answering
type AskRequest struct {
	Text     string `json:"text"`
	Question string `json:"question"`
}

// AnalyzeDocument handles POST /api/analyze
func (h *AnalysisHandler) AnalyzeDocument(c *gin.Context) {
	start := time.Now()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "File is required",
			},
		})
		return
	}

	if fileHeader.Size > h.maxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_TOO_LARGE",
				"message": fmt.Sprintf("File size exceeds maximum of %d bytes", h.maxFileSize),
			},
		})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = inferMimeType(fileHeader.Filename)
	}

	if !h.allowedMimeTypes[mimeType] && !strings.HasPrefix(mimeType, "text/") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNSUPPORTED_FILE_TYPE",
				"message": "File type not allowed. Allowed types: PDF, DOCX, TXT",
			},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_OPEN_ERROR",
				"message": err.Error(),
			},
		})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_READ_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	if len(content) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EMPTY_FILE",
				"message": "Empty file uploaded",
			},
		})
		return
	}

	result, clauses, text, err := h.analyzer.AnalyzeDocument(c.Request.Context(), content, mimeType)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.archiveDocument(c, content, fileHeader.Filename, mimeType, len(text), len(clauses))

	metadata := gin.H{
		"analysis_id":             uuid.New(),
		"file_type":               mimeType,
		"text_length":             len(text),
		"clauses_identified":      len(clauses),
		"processing_time_seconds": roundSeconds(time.Since(start)),
		"timestamp":               time.Now().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     buildAnalysisData(result, clauses, text),
		"metadata": metadata,
		"message":  "Document analyzed successfully",
	})
}

// AnalyzeText handles POST /api/analyze-text
func (h *AnalysisHandler) AnalyzeText(c *gin.Context) {
	var req AnalyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	start := time.Now()

	result, clauses, text, err := h.analyzer.AnalyzeText(c.Request.Context(), req.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}

	metadata := gin.H{
		"analysis_id":             uuid.New(),
		"text_length":             len(text),
		"clauses_identified":      len(clauses),
		"processing_time_seconds": roundSeconds(time.Since(start)),
		"timestamp":               time.Now().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     buildAnalysisData(result, clauses, text),
		"metadata": metadata,
		"message":  "Text analyzed successfully",
	})
}

// AskQuestion handles POST /api/ask
func (h *AnalysisHandler) AskQuestion(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	answer, err := h.analyzer.AnswerQuestion(c.Request.Context(), req.Question, req.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"question":   req.Question,
			"answer":     answer.Answer,
			"confidence": answer.Confidence,
			"source":     answer.Source,
		},
		"metadata": gin.H{
			"question_answered": true,
			"answer_confidence": answer.Confidence,
			"timestamp":         time.Now().Format(time.RFC3339),
		},
		"message": "Question answered successfully",
	})
}

// GetDocument handles GET /api/documents/:id
func (h *AnalysisHandler) GetDocument(c *gin.Context) {
	if h.docRepo == nil || h.storage == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ARCHIVE_DISABLED",
				"message": "Document archive is not enabled",
			},
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid document ID format",
			},
		})
		return
	}

	doc, err := h.docRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Document not found",
			},
		})
		return
	}

	reader, err := h.storage.Download(c.Request.Context(), doc.StoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DOWNLOAD_FAILED",
				"message": fmt.Sprintf("Failed to download document: %v", err),
			},
		})
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.DataFromReader(http.StatusOK, doc.Size, doc.MimeType, reader, nil)
}

// archiveDocument stores the original upload when the archive is enabled.
// Archive failures are logged and never fail the analysis request.
func (h *AnalysisHandler) archiveDocument(c *gin.Context, content []byte, filename, mimeType string, textLength, clauseCount int) {
	if h.docRepo == nil || h.storage == nil {
		return
	}

	docID := uuid.New()
	storagePath, err := h.storage.Upload(c.Request.Context(), docID, filename, bytes.NewReader(content))
	if err != nil {
		h.logger.Warn("failed to archive document", zap.String("filename", filename), zap.Error(err))
		return
	}

	doc := &models.Document{
		ID:          docID,
		Filename:    filename,
		MimeType:    mimeType,
		Size:        int64(len(content)),
		StoragePath: storagePath,
		TextLength:  textLength,
		ClauseCount: clauseCount,
	}

	if err := h.docRepo.Create(c.Request.Context(), doc); err != nil {
		// Clean up the stored file so the archive stays consistent
		h.storage.Delete(c.Request.Context(), storagePath)
		h.logger.Warn("failed to save document record", zap.String("filename", filename), zap.Error(err))
	}
}

// respondError maps service errors to the HTTP envelope. Validation and
// extraction failures are client errors; everything else is a server error.
func (h *AnalysisHandler) respondError(c *gin.Context, err error) {
	code := "ANALYSIS_FAILED"
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrTextTooShort):
		code, status = "TEXT_TOO_SHORT", http.StatusBadRequest
	case errors.Is(err, service.ErrEmptyDocument):
		code, status = "EMPTY_FILE", http.StatusBadRequest
	case errors.Is(err, service.ErrUnsupportedFileType):
		code, status = "UNSUPPORTED_FILE_TYPE", http.StatusBadRequest
	case errors.Is(err, service.ErrExtractionFailed):
		code, status = "EXTRACTION_FAILED", http.StatusBadRequest
	case errors.Is(err, service.ErrMissingText):
		code, status = "MISSING_TEXT", http.StatusBadRequest
	case errors.Is(err, service.ErrMissingQuestion):
		code, status = "MISSING_QUESTION", http.StatusBadRequest
	}

	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": err.Error(),
		},
	})
}

// buildAnalysisData assembles the response payload from an analysis result
func buildAnalysisData(result *models.AnalysisResult, clauses []models.Clause, text string) gin.H {
	return gin.H{
		"summary": gin.H{
			"message": fmt.Sprintf("Analysis completed. Found %d clauses with %d categories.",
				len(clauses), len(result.CategoryOrder)),
			"total_clauses":         len(clauses),
			"categories_identified": len(result.CategoryOrder),
			"risk_level":            result.RiskAssessment.RiskLevel,
		},
		"clauses":    result.ProvisionsByCategory,
		"compliance": result.ComplianceAnalysis,
		"risk":       result.RiskAssessment,
		"document_stats": gin.H{
			"total_words":   len(strings.Fields(text)),
			"total_clauses": len(clauses),
			"risk_level":    result.RiskAssessment.RiskLevel,
		},
	}
}

// inferMimeType guesses a MIME type from the filename extension
func inferMimeType(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(lower, ".txt"):
		return "text/plain"
	case strings.HasSuffix(lower, ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

// roundSeconds rounds a duration to hundredths of a second for metadata
func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
