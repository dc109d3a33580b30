package models

// AnalysisResult aggregates a full document analysis. It is built once per
// request and discarded after response serialization; nothing here is
// persisted or cached across requests.
type AnalysisResult struct {
	ProvisionsAnalysis   []ClassifiedClause            `json:"provisions_analysis"`
	ProvisionsByCategory map[Category][]ClassifiedClause `json:"provisions_by_category"`
	// CategoryOrder records the first-seen order of categories during
	// grouping. JSON object keys carry no order, so the order lives here.
	CategoryOrder      []Category       `json:"-"`
	ComplianceAnalysis ComplianceReport `json:"compliance_analysis"`
	RiskAssessment     RiskAssessment   `json:"risk_assessment"`
}

// AnswerSource identifies where an answer came from
type AnswerSource string

const (
	SourceRemoteModel       AnswerSource = "remote_model"
	SourceFallbackKnowledge AnswerSource = "fallback_knowledge"
)

// AnswerResult is the outcome of answering a question against document context
type AnswerResult struct {
	Answer     string       `json:"answer"`
	Confidence float64      `json:"confidence"`
	Source     AnswerSource `json:"source"`
}
