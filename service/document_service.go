package service

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Aayushman-Codes/Legal-Analysis-App/models"

	"github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyDocument       = errors.New("empty document")
	ErrExtractionFailed    = errors.New("failed to extract document text")
)

// maxClauseLength bounds the greedy sentence accumulation during segmentation
const maxClauseLength = 500

// minClauseWords is the word-count filter: shorter clauses are dropped from
// the segmenter output
const minClauseWords = 5

var (
	whitespaceRun    = regexp.MustCompile(`\s+`)
	sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)
)

// DocumentService extracts text from uploaded documents and prepares it for
// analysis: normalization and clause segmentation
type DocumentService struct {
	logger *zap.Logger
}

// DocumentServiceOption is a functional option for DocumentService
type DocumentServiceOption func(*DocumentService)

// DocumentWithLogger sets the logger
func DocumentWithLogger(logger *zap.Logger) DocumentServiceOption {
	return func(s *DocumentService) {
		s.logger = logger
	}
}

// NewDocumentService creates a new document service
func NewDocumentService(opts ...DocumentServiceOption) *DocumentService {
	s := &DocumentService{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExtractText extracts plain text from raw document bytes according to the
// declared MIME type. PDF and DOCX go through their respective parsers;
// anything text/* is decoded directly.
func (s *DocumentService) ExtractText(content []byte, mimeType string) (string, error) {
	if len(content) == 0 {
		return "", ErrEmptyDocument
	}

	switch {
	case mimeType == "application/pdf":
		return s.extractPDF(content)
	case mimeType == "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return s.extractDOCX(content)
	case mimeType == "text/plain" || strings.HasPrefix(mimeType, "text/"):
		return s.extractTxt(content)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, mimeType)
	}
}

// extractPDF concatenates page text with newline separators. Encrypted PDFs
// are attempted with an empty password; anything else is an extraction error.
func (s *DocumentService) extractPDF(content []byte) (string, error) {
	reader, err := pdf.NewReaderEncrypted(bytes.NewReader(content), int64(len(content)), func() string { return "" })
	if err != nil {
		s.logger.Error("PDF extraction error", zap.Error(err))
		return "", fmt.Errorf("%w: error reading PDF: %v", ErrExtractionFailed, err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			s.logger.Warn("skipping unreadable PDF page", zap.Int("page", i), zap.Error(err))
			continue
		}
		if strings.TrimSpace(pageText) != "" {
			sb.WriteString(pageText)
			sb.WriteString("\n")
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: no extractable text found in PDF", ErrExtractionFailed)
	}

	return text, nil
}

// extractDOCX concatenates paragraph text with newline separators
func (s *DocumentService) extractDOCX(content []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		s.logger.Error("DOCX extraction error", zap.Error(err))
		return "", fmt.Errorf("%w: error reading DOCX: %v", ErrExtractionFailed, err)
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if text := strings.TrimSpace(para.String()); text != "" {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	}

	return strings.TrimSpace(sb.String()), nil
}

// extractTxt decodes plain text as UTF-8, falling back to Latin-1
func (s *DocumentService) extractTxt(content []byte) (string, error) {
	if utf8.Valid(content) {
		return strings.TrimSpace(string(content)), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
	if err != nil {
		return "", fmt.Errorf("%w: unable to decode text file", ErrExtractionFailed)
	}

	return strings.TrimSpace(string(decoded)), nil
}

// PreprocessText collapses all whitespace runs (including newlines and tabs)
// to a single space and trims the result
func (s *DocumentService) PreprocessText(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// SegmentClauses splits normalized text into length-bounded clause units.
// Sentences are accumulated greedily while the buffer stays under 500
// characters; terminal punctuation stays with its sentence. Clause ids are
// numbered in accumulation order before the word-count filter runs, so ids in
// the returned slice may be non-contiguous.
func (s *DocumentService) SegmentClauses(text string) []models.Clause {
	sentences := splitSentences(text)

	var accumulated []models.Clause
	current := ""

	for _, sentence := range sentences {
		if len(current)+len(sentence) < maxClauseLength {
			if current == "" {
				current = sentence
			} else {
				current += " " + sentence
			}
		} else {
			if current != "" {
				accumulated = append(accumulated, newClause(current, len(accumulated)+1))
			}
			current = sentence
		}
	}

	if current != "" {
		accumulated = append(accumulated, newClause(current, len(accumulated)+1))
	}

	clauses := make([]models.Clause, 0, len(accumulated))
	for _, clause := range accumulated {
		if clause.WordCount > minClauseWords {
			clauses = append(clauses, clause)
		}
	}

	return clauses
}

// splitSentences splits on whitespace following a sentence-terminal
// character, keeping the terminal character with the preceding sentence
func splitSentences(text string) []string {
	var sentences []string
	prev := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		sentences = append(sentences, text[prev:loc[0]+1])
		prev = loc[1]
	}
	sentences = append(sentences, text[prev:])
	return sentences
}

func newClause(text string, index int) models.Clause {
	trimmed := strings.TrimSpace(text)
	return models.Clause{
		ID:        fmt.Sprintf("clause_%d", index),
		Text:      trimmed,
		WordCount: len(strings.Fields(trimmed)),
	}
}
