package models

// Severity indicates how serious a compliance issue is
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// ComplianceIssue flags a mismatch against a named Indian statute
type ComplianceIssue struct {
	Law      string   `json:"law"`
	Issue    string   `json:"issue"`
	Severity Severity `json:"severity"`
}

// ComplianceStatus is the overall document verdict
type ComplianceStatus string

const (
	Compliant    ComplianceStatus = "COMPLIANT"
	NonCompliant ComplianceStatus = "NON-COMPLIANT"
)

// ComplianceReport holds the issues found in check order. OverallCompliance
// is COMPLIANT iff the issue list is empty.
type ComplianceReport struct {
	ComplianceIssues  []ComplianceIssue `json:"compliance_issues"`
	OverallCompliance ComplianceStatus  `json:"overall_compliance"`
}
