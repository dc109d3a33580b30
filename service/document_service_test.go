package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocessText(t *testing.T) {
	svc := NewDocumentService()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"collapses runs", "This  is\n\na   test.", "This is a test."},
		{"trims ends", "   leading and trailing \t ", "leading and trailing"},
		{"tabs and newlines", "clause\tone\r\nclause two", "clause one clause two"},
		{"empty", "", ""},
		{"whitespace only", " \n\t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, svc.PreprocessText(tt.input))
		})
	}
}

func TestSegmentClauses_SingleClause(t *testing.T) {
	svc := NewDocumentService()

	text := "This Agreement shall be governed by the laws of India. Any dispute shall be resolved through arbitration in Delhi."
	clauses := svc.SegmentClauses(text)

	require.Len(t, clauses, 1)
	assert.Equal(t, "clause_1", clauses[0].ID)
	assert.Equal(t, text, clauses[0].Text)
	assert.Equal(t, 20, clauses[0].WordCount)
}

func TestSegmentClauses_KeepsTerminalPunctuation(t *testing.T) {
	svc := NewDocumentService()

	long := strings.TrimSpace(strings.Repeat("the party shall perform its obligations hereunder ", 10)) + "."
	text := long + " Is this binding? " + long

	clauses := svc.SegmentClauses(text)
	require.Len(t, clauses, 2)
	assert.True(t, strings.HasSuffix(clauses[0].Text, "."))
	assert.True(t, strings.HasSuffix(clauses[1].Text, "."))
}

func TestSegmentClauses_DropsShortClauses(t *testing.T) {
	svc := NewDocumentService()

	// five words or fewer never survives the filter
	clauses := svc.SegmentClauses("Signed and sealed in Delhi.")
	assert.Empty(t, clauses)

	clauses = svc.SegmentClauses("Signed and sealed by both parties today.")
	require.Len(t, clauses, 1)
	assert.Equal(t, 7, clauses[0].WordCount)
}

func TestSegmentClauses_NonContiguousIDs(t *testing.T) {
	svc := NewDocumentService()

	// Each long sentence exceeds the accumulation bound on its own, so the
	// short middle sentence becomes its own clause and is then filtered out.
	// The surviving ids keep their pre-filter numbers.
	long := strings.TrimSpace(strings.Repeat("lorem ipsum dolor sit amet ", 19)) + "."
	require.GreaterOrEqual(t, len(long), 500)

	clauses := svc.SegmentClauses(long + " Ok. " + long)

	require.Len(t, clauses, 2)
	assert.Equal(t, "clause_1", clauses[0].ID)
	assert.Equal(t, "clause_3", clauses[1].ID)
}

func TestSegmentClauses_Idempotent(t *testing.T) {
	svc := NewDocumentService()

	text := strings.TrimSpace(strings.Repeat("the lessee shall pay rent monthly in advance. ", 20))
	for _, clause := range svc.SegmentClauses(text) {
		again := svc.SegmentClauses(clause.Text)
		require.Len(t, again, 1)
		assert.Equal(t, clause.Text, again[0].Text)
		assert.Equal(t, clause.WordCount, again[0].WordCount)
	}
}

func TestSegmentClauses_Empty(t *testing.T) {
	svc := NewDocumentService()
	assert.Empty(t, svc.SegmentClauses(""))
}

func TestExtractText_Plain(t *testing.T) {
	svc := NewDocumentService()

	text, err := svc.ExtractText([]byte("  An agreement between the parties.  \n"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "An agreement between the parties.", text)
}

func TestExtractText_Latin1Fallback(t *testing.T) {
	svc := NewDocumentService()

	text, err := svc.ExtractText([]byte("caf\xe9 agreement"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "café agreement", text)
}

func TestExtractText_TextSubtype(t *testing.T) {
	svc := NewDocumentService()

	text, err := svc.ExtractText([]byte("plain enough"), "text/markdown")
	require.NoError(t, err)
	assert.Equal(t, "plain enough", text)
}

func TestExtractText_Empty(t *testing.T) {
	svc := NewDocumentService()

	_, err := svc.ExtractText(nil, "text/plain")
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestExtractText_UnsupportedType(t *testing.T) {
	svc := NewDocumentService()

	_, err := svc.ExtractText([]byte("content"), "application/msword")
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestExtractText_CorruptPDF(t *testing.T) {
	svc := NewDocumentService()

	_, err := svc.ExtractText([]byte("not a pdf at all"), "application/pdf")
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestExtractText_CorruptDOCX(t *testing.T) {
	svc := NewDocumentService()

	_, err := svc.ExtractText([]byte("not a zip archive"), "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	assert.ErrorIs(t, err, ErrExtractionFailed)
}
