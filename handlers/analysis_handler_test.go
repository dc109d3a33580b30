package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/Aayushman-Codes/Legal-Analysis-App/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleContract = "This Agreement shall be governed by the laws of India. Any dispute shall be resolved through arbitration in Delhi."

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewAnalysisHandler(service.NewAnalyzerService(), nil, nil, nil)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/analyze", handler.AnalyzeDocument)
	api.POST("/analyze-text", handler.AnalyzeText)
	api.POST("/ask", handler.AskQuestion)
	api.GET("/documents/:id", handler.GetDocument)
	return router
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func errorCode(t *testing.T, body map[string]interface{}) string {
	t.Helper()
	errObj, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "expected error object in response")
	return errObj["code"].(string)
}

func TestAnalyzeText_TooShort(t *testing.T) {
	router := newTestRouter()

	payload := `{"text":"too short to analyze"}`
	req := httptest.NewRequest("POST", "/api/analyze-text", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "TEXT_TOO_SHORT", errorCode(t, body))
}

func TestAnalyzeText_InvalidJSON(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("POST", "/api/analyze-text", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, decodeBody(t, w)))
}

func TestAnalyzeText_Success(t *testing.T) {
	router := newTestRouter()

	payload, err := json.Marshal(map[string]string{"text": sampleContract})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/analyze-text", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Text analyzed successfully", body["message"])

	data := body["data"].(map[string]interface{})
	summary := data["summary"].(map[string]interface{})
	assert.Equal(t, float64(1), summary["total_clauses"])
	assert.NotEmpty(t, summary["risk_level"])
	assert.Contains(t, data, "clauses")
	assert.Contains(t, data, "compliance")
	assert.Contains(t, data, "risk")

	metadata := body["metadata"].(map[string]interface{})
	assert.Equal(t, float64(1), metadata["clauses_identified"])
	assert.NotEmpty(t, metadata["analysis_id"])
}

func TestAskQuestion_MissingQuestion(t *testing.T) {
	router := newTestRouter()

	payload := `{"text":"some contract text","question":"  "}`
	req := httptest.NewRequest("POST", "/api/ask", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_QUESTION", errorCode(t, decodeBody(t, w)))
}

func TestAskQuestion_MissingText(t *testing.T) {
	router := newTestRouter()

	payload := `{"text":"","question":"What about termination?"}`
	req := httptest.NewRequest("POST", "/api/ask", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_TEXT", errorCode(t, decodeBody(t, w)))
}

func TestAskQuestion_FallbackAnswer(t *testing.T) {
	router := newTestRouter()

	payload := `{"text":"some contract text","question":"What about liability and damages?"}`
	req := httptest.NewRequest("POST", "/api/ask", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "fallback_knowledge", data["source"])
	assert.Equal(t, 0.7, data["confidence"])
	assert.Contains(t, data["answer"], "Sections 73-74")
}

func TestAnalyzeDocument_MissingFile(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("POST", "/api/analyze", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FILE", errorCode(t, decodeBody(t, w)))
}

func multipartUpload(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestAnalyzeDocument_TxtUpload(t *testing.T) {
	router := newTestRouter()

	buf, contentType := multipartUpload(t, "contract.txt", "text/plain", []byte(sampleContract))
	req := httptest.NewRequest("POST", "/api/analyze", buf)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Document analyzed successfully", body["message"])

	metadata := body["metadata"].(map[string]interface{})
	assert.Equal(t, "text/plain", metadata["file_type"])
	assert.Equal(t, float64(len(sampleContract)), metadata["text_length"])
}

func TestAnalyzeDocument_UnsupportedType(t *testing.T) {
	router := newTestRouter()

	buf, contentType := multipartUpload(t, "contract.exe", "application/octet-stream", []byte("binary"))
	req := httptest.NewRequest("POST", "/api/analyze", buf)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", errorCode(t, decodeBody(t, w)))
}

func TestAnalyzeDocument_EmptyFile(t *testing.T) {
	router := newTestRouter()

	buf, contentType := multipartUpload(t, "contract.txt", "text/plain", nil)
	req := httptest.NewRequest("POST", "/api/analyze", buf)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMPTY_FILE", errorCode(t, decodeBody(t, w)))
}

func TestGetDocument_ArchiveDisabled(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("GET", "/api/documents/0f8f5a1e-8f66-4f58-bb1e-2c1a8f0a9d11", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ARCHIVE_DISABLED", errorCode(t, decodeBody(t, w)))
}
