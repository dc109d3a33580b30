package models

// RiskLevel buckets the weighted risk score
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// RiskAssessment is the document-level risk verdict. RiskScore is the sum of
// fixed signal weights; RiskFactors lists the triggered signals in check order.
type RiskAssessment struct {
	RiskLevel   RiskLevel `json:"risk_level"`
	RiskScore   int       `json:"risk_score"`
	RiskFactors []string  `json:"risk_factors"`
}
