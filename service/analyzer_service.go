package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/Aayushman-Codes/Legal-Analysis-App/inference"
	"github.com/Aayushman-Codes/Legal-Analysis-App/models"

	"go.uber.org/zap"
)

var (
	ErrTextTooShort    = errors.New("text too short for analysis")
	ErrMissingText     = errors.New("document text is required")
	ErrMissingQuestion = errors.New("question is required")
)

// minAnalysisLength is the minimum trimmed document length accepted by the
// analysis entry points
const minAnalysisLength = 50

// minClassifiableLength short-circuits classification for fragments: no
// remote call is attempted below this trimmed length
const minClassifiableLength = 10

// qaContextLimit caps how much document context is sent with a question
const qaContextLimit = 1000

// qaMaxLength is the max_length generation parameter for answers
const qaMaxLength = 500

// labelMapping maps remote model labels to canonical categories by substring
// containment. The list is scanned in order and the first match wins, so the
// order is part of the contract ("liability" must be tried before
// "limitation").
var labelMapping = []struct {
	substr   string
	category models.Category
}{
	{"confidential", models.CategoryConfidentiality},
	{"terminat", models.CategoryTermination},
	{"liability", models.CategoryLiability},
	{"indemnif", models.CategoryIndemnification},
	{"intellectual", models.CategoryIntellectualProperty},
	{"governing", models.CategoryGoverningLaw},
	{"payment", models.CategoryPaymentTerms},
	{"warrant", models.CategoryWarranties},
	{"limitation", models.CategoryLimitationOfLiability},
	{"dispute", models.CategoryDisputeResolution},
	{"jurisdiction", models.CategoryJurisdiction},
	{"force", models.CategoryForceMajeure},
	{"compete", models.CategoryNonCompete},
	{"severability", models.CategorySeverability},
	{"assignment", models.CategoryAssignment},
}

// categoryPatterns holds the rule-based fallback patterns per category.
// Patterns are matched case-insensitively against the clause text; each match
// adds 2 points to the category score.
var categoryPatterns = []struct {
	category models.Category
	patterns []string
}{
	{models.CategoryConfidentiality, []string{
		`\b(?:confidential|non.?disclosure|proprietary information|trade secret)\b`,
		`\b(?:not disclose|maintain secrecy)\b`,
	}},
	{models.CategoryTermination, []string{
		`\b(?:terminat|expir|cancell|end of|valid until)\b`,
		`\b(?:duration|term of|early termination)\b`,
	}},
	{models.CategoryLiability, []string{
		`\b(?:liability|liable|responsible|obligation)\b`,
		`\b(?:damages|compensation|accountable)\b`,
	}},
	{models.CategoryIndemnification, []string{
		`\b(?:indemnif|hold harmless|make good)\b`,
		`\b(?:reimburse|compensate for loss)\b`,
	}},
	{models.CategoryIntellectualProperty, []string{
		`\b(?:intellectual property|copyright|patent|trademark)\b`,
		`\b(?:ip rights|proprietary rights)\b`,
	}},
	{models.CategoryGoverningLaw, []string{
		`\b(?:governing law|applicable law)\b`,
		`\b(?:laws of india|indian law)\b`,
	}},
	{models.CategoryPaymentTerms, []string{
		`\b(?:payment|fee|compensation|consideration|price)\b`,
		`\b(?:within \d+ days|upon delivery|invoice)\b`,
	}},
	{models.CategoryWarranties, []string{
		`\b(?:warrant|guarantee|representation)\b`,
		`\b(?:assurance|certify)\b`,
	}},
	{models.CategoryLimitationOfLiability, []string{
		`\b(?:limitation of liability|cap on damages)\b`,
		`\b(?:maximum liability|limited to)\b`,
	}},
	{models.CategoryDisputeResolution, []string{
		`\b(?:dispute|arbitration|mediation|conciliation)\b`,
		`\b(?:arbitral tribunal|arbitrator)\b`,
	}},
	{models.CategoryJurisdiction, []string{
		`\b(?:jurisdiction|courts of|competent court)\b`,
		`\b(?:territorial jurisdiction)\b`,
	}},
	{models.CategoryForceMajeure, []string{
		`\b(?:force majeure|act of god|unforeseen circumstances)\b`,
		`\b(?:natural calamity)\b`,
	}},
	{models.CategoryNonCompete, []string{
		`\b(?:non.?compete|non.?competition)\b`,
		`\b(?:restrictive covenant)\b`,
	}},
	{models.CategorySeverability, []string{
		`\b(?:severability|severable)\b`,
		`\b(?:if any provision)\b`,
	}},
	{models.CategoryAssignment, []string{
		`\b(?:assignment|assign)\b`,
		`\b(?:transfer rights)\b`,
	}},
}

// indianCities are the jurisdiction terms that boost the jurisdiction score
// during rule-based classification
var indianCities = []string{"delhi", "mumbai", "chennai", "kolkata", "bangalore", "hyderabad"}

// indianJurisdictionTerms are the terms the compliance checker accepts as an
// Indian jurisdiction reference
var indianJurisdictionTerms = []string{"delhi", "mumbai", "chennai", "kolkata", "bangalore", "india", "indian"}

type categoryRule struct {
	category models.Category
	patterns []*regexp.Regexp
}

// AnalyzerService performs clause classification, compliance checking, risk
// assessment and question answering for Indian legal contracts. Remote model
// calls always degrade to deterministic local logic on failure; none of the
// analysis methods return remote-call errors.
type AnalyzerService struct {
	client              *inference.Client
	classificationModel string
	qaModel             string
	docService          *DocumentService
	logger              *zap.Logger
	rules               []categoryRule
}

// AnalyzerServiceOption is a functional option for AnalyzerService
type AnalyzerServiceOption func(*AnalyzerService)

// AnalyzerWithInferenceClient sets the remote inference client. Without a
// client every classification and answer uses the local fallback.
func AnalyzerWithInferenceClient(client *inference.Client) AnalyzerServiceOption {
	return func(s *AnalyzerService) {
		s.client = client
	}
}

// AnalyzerWithClassificationModel sets the remote classification model id
func AnalyzerWithClassificationModel(model string) AnalyzerServiceOption {
	return func(s *AnalyzerService) {
		s.classificationModel = model
	}
}

// AnalyzerWithQAModel sets the remote question-answering model id
func AnalyzerWithQAModel(model string) AnalyzerServiceOption {
	return func(s *AnalyzerService) {
		s.qaModel = model
	}
}

// AnalyzerWithDocumentService sets the document service used by the analysis
// entry points for preprocessing and segmentation
func AnalyzerWithDocumentService(docService *DocumentService) AnalyzerServiceOption {
	return func(s *AnalyzerService) {
		s.docService = docService
	}
}

// AnalyzerWithLogger sets the logger
func AnalyzerWithLogger(logger *zap.Logger) AnalyzerServiceOption {
	return func(s *AnalyzerService) {
		s.logger = logger
	}
}

// NewAnalyzerService creates a new analyzer service. The rule-based pattern
// tables are compiled once here; a pattern that fails to compile is logged
// and skipped rather than aborting construction.
func NewAnalyzerService(opts ...AnalyzerServiceOption) *AnalyzerService {
	s := &AnalyzerService{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.docService == nil {
		s.docService = NewDocumentService(DocumentWithLogger(s.logger))
	}

	for _, entry := range categoryPatterns {
		rule := categoryRule{category: entry.category}
		for _, pattern := range entry.patterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				s.logger.Warn("skipping invalid classification pattern",
					zap.String("category", string(entry.category)),
					zap.String("pattern", pattern),
					zap.Error(err))
				continue
			}
			rule.patterns = append(rule.patterns, re)
		}
		s.rules = append(s.rules, rule)
	}

	return s
}

// ClassifyClause classifies a single clause text. It first attempts the
// remote classification model; on any failure it falls back to rule-based
// scoring. It never returns an error.
func (s *AnalyzerService) ClassifyClause(ctx context.Context, text string) models.ClassificationResult {
	if len(strings.TrimSpace(text)) < minClassifiableLength {
		return models.ClassificationResult{
			Category:      models.CategoryOther,
			Confidence:    0.0,
			OriginalLabel: "too_short",
		}
	}

	if s.client != nil {
		labels, err := s.client.Classify(ctx, s.classificationModel, text)
		if err != nil {
			s.logger.Warn("classification call failed, using rule-based fallback", zap.Error(err))
		} else {
			top := labels[0]
			return models.ClassificationResult{
				Category:      s.mapToCategory(top.Label, text),
				Confidence:    top.Score,
				OriginalLabel: top.Label,
			}
		}
	}

	return s.classifyRuleBased(text)
}

// mapToCategory maps a raw model label to a canonical category. The label is
// tried against the ordered substring table first; unmapped labels go through
// the Indian-domain overrides on the clause text itself.
func (s *AnalyzerService) mapToCategory(label, text string) models.Category {
	labelLower := strings.ToLower(label)
	textLower := strings.ToLower(text)

	for _, m := range labelMapping {
		if strings.Contains(labelLower, m.substr) {
			return m.category
		}
	}

	switch {
	case containsAny(textLower, "stamp duty", "stamp act"):
		return models.CategoryOther
	case containsAny(textLower, "arbitration", "arbitral tribunal"):
		return models.CategoryDisputeResolution
	case containsAny(textLower, "notice", "notify", "communication"):
		return models.CategoryOther
	}

	return models.CategoryOther
}

// classifyRuleBased scores the clause against every category's pattern list
// and picks the strictly highest score in canonical category order.
func (s *AnalyzerService) classifyRuleBased(text string) models.ClassificationResult {
	textLower := strings.ToLower(text)

	scores := make(map[models.Category]int, len(models.Categories)+1)
	for _, rule := range s.rules {
		for _, re := range rule.patterns {
			scores[rule.category] += len(re.FindAllStringIndex(textLower, -1)) * 2
		}
	}

	// Indian legal boosts
	if strings.Contains(textLower, "indian contract act") {
		scores[models.CategoryGoverningLaw] += 3
	}
	if containsAny(textLower, indianCities...) {
		scores[models.CategoryJurisdiction] += 3
	}
	if containsAny(textLower, "stamp duty", "stamp act") {
		scores[models.CategoryOther] += 2
	}

	bestCategory := models.CategoryOther
	bestScore := 0
	for _, category := range models.Categories {
		if scores[category] > bestScore {
			bestScore = scores[category]
			bestCategory = category
		}
	}
	if scores[models.CategoryOther] > bestScore {
		bestScore = scores[models.CategoryOther]
		bestCategory = models.CategoryOther
	}

	confidence := 0.0
	if bestScore > 0 {
		confidence = math.Min(float64(bestScore)/10.0, 1.0)
	}

	return models.ClassificationResult{
		Category:      bestCategory,
		Confidence:    confidence,
		OriginalLabel: "rule_based",
	}
}

// AnalyzeCompliance scans the full document text for statutory red flags.
// Checks run in a fixed order and the issue sequence preserves that order.
func (s *AnalyzerService) AnalyzeCompliance(text string) models.ComplianceReport {
	textLower := strings.ToLower(text)
	issues := []models.ComplianceIssue{}

	if !containsAny(textLower, "consideration", "payment", "price") {
		issues = append(issues, models.ComplianceIssue{
			Law:      "Indian Contract Act, 1872",
			Issue:    "Consideration not clearly specified",
			Severity: models.SeverityHigh,
		})
	}

	if !containsAny(textLower, indianJurisdictionTerms...) {
		issues = append(issues, models.ComplianceIssue{
			Law:      "Code of Civil Procedure, 1908",
			Issue:    "Jurisdiction not specified for Indian courts",
			Severity: models.SeverityHigh,
		})
	}

	if containsAny(textLower, "company", "private limited", "ltd", "pvt") {
		if !containsAny(textLower, "board resolution", "authorized signatory") {
			issues = append(issues, models.ComplianceIssue{
				Law:      "Companies Act, 2013",
				Issue:    "Corporate authorization not specified",
				Severity: models.SeverityMedium,
			})
		}
	}

	status := models.Compliant
	if len(issues) > 0 {
		status = models.NonCompliant
	}

	return models.ComplianceReport{
		ComplianceIssues:  issues,
		OverallCompliance: status,
	}
}

// AssessRisk scores document-level risk from weighted heuristic signals
// evaluated in a fixed order: 3 points per high-risk signal, 2 per medium,
// 1 per low. Score thresholds: >=6 HIGH, >=3 MEDIUM, else LOW.
func (s *AnalyzerService) AssessRisk(text string) models.RiskAssessment {
	textLower := strings.ToLower(text)
	factors := []string{}
	score := 0

	if strings.Contains(textLower, "unlimited liability") {
		factors = append(factors, "Unlimited liability clause - high risk")
		score += 3
	}

	if !containsAny(textLower, "arbitration", "mediation", "court", "jurisdiction") {
		factors = append(factors, "No dispute resolution mechanism - high risk")
		score += 3
	}

	if strings.Contains(textLower, "foreign law") && !strings.Contains(textLower, "india") {
		factors = append(factors, "Foreign governing law without Indian jurisdiction - high risk")
		score += 3
	}

	if containsAny(textLower, "as soon as possible", "reasonable time") {
		factors = append(factors, "Vague timeframes - medium risk")
		score += 2
	}

	if strings.Contains(textLower, "penalty") && !strings.Contains(textLower, "liquidated damages") {
		factors = append(factors, "Penalty clauses without liquidated damages - medium risk")
		score += 2
	}

	if !containsAny(textLower, "confidential", "proprietary") {
		factors = append(factors, "No confidentiality provisions - low risk")
		score += 1
	}

	level := models.RiskLow
	switch {
	case score >= 6:
		level = models.RiskHigh
	case score >= 3:
		level = models.RiskMedium
	}

	return models.RiskAssessment{
		RiskLevel:   level,
		RiskScore:   score,
		RiskFactors: factors,
	}
}

// AnswerQuestion answers a free-text question against document context. The
// remote generative model is attempted first; any failure or empty generation
// falls back to the keyword-routed knowledge base.
func (s *AnalyzerService) AnswerQuestion(ctx context.Context, question, docText string) (models.AnswerResult, error) {
	if strings.TrimSpace(docText) == "" {
		return models.AnswerResult{}, ErrMissingText
	}
	if strings.TrimSpace(question) == "" {
		return models.AnswerResult{}, ErrMissingQuestion
	}

	if s.client != nil {
		contextText := docText
		if len(contextText) > qaContextLimit {
			contextText = contextText[:qaContextLimit]
		}
		prompt := fmt.Sprintf("Context: %s\nQuestion: %s\nAnswer:", contextText, question)

		answer, err := s.client.Generate(ctx, s.qaModel, prompt, qaMaxLength)
		if err != nil {
			s.logger.Warn("question answering call failed, using fallback knowledge", zap.Error(err))
		} else {
			return models.AnswerResult{
				Answer:     answer,
				Confidence: 0.8,
				Source:     models.SourceRemoteModel,
			}, nil
		}
	}

	return s.fallbackAnswer(question), nil
}

// fallbackAnswer routes the question to one of the canned Indian-law answers
// by keyword group, evaluated in fixed order with first match winning
func (s *AnalyzerService) fallbackAnswer(question string) models.AnswerResult {
	questionLower := strings.ToLower(question)

	var answer string
	switch {
	case containsAny(questionLower, "termination", "end contract"):
		answer = "Under Indian Contract Act, termination rights must be clearly specified with proper notice periods. Check for termination clauses specifying conditions, notice periods, and consequences."
	case containsAny(questionLower, "payment", "consideration"):
		answer = "Consideration is essential for contract validity under Indian Contract Act Section 25. Payment terms should include amounts, due dates, payment methods, and consequences of late payment."
	case containsAny(questionLower, "liability", "damages"):
		answer = "Liability clauses are governed by Sections 73-74 of Indian Contract Act. Look for limitations of liability, caps on damages, indemnification provisions, and exclusion of consequential damages."
	case containsAny(questionLower, "jurisdiction", "court"):
		answer = "Jurisdiction clauses should specify Indian courts for enforceability. Common choices are courts in Delhi, Mumbai, Chennai, Kolkata, or Bangalore under Indian legal framework."
	case containsAny(questionLower, "arbitration", "dispute"):
		answer = "Arbitration clauses must comply with Arbitration and Conciliation Act, 1996. They should specify seat of arbitration (usually Indian city), governing rules, and appointment of arbitrators."
	case containsAny(questionLower, "confidential", "nda"):
		answer = "Confidentiality clauses protect proprietary information. They should define confidential information, obligations of parties, exceptions, and duration of confidentiality obligations."
	default:
		answer = "Based on Indian legal principles, ensure contract compliance with Indian Contract Act, proper jurisdiction clauses, clear dispute resolution mechanisms, and adequate protection of parties' rights."
	}

	return models.AnswerResult{
		Answer:     answer,
		Confidence: 0.7,
		Source:     models.SourceFallbackKnowledge,
	}
}

// ComprehensiveAnalysis classifies every clause, groups the results by
// category (first-seen category order, clause order within each group), and
// runs compliance and risk checks on the full text. Classification never
// fails, so neither does the aggregation.
func (s *AnalyzerService) ComprehensiveAnalysis(ctx context.Context, text string, clauses []models.Clause) *models.AnalysisResult {
	classified := make([]models.ClassifiedClause, 0, len(clauses))
	for _, clause := range clauses {
		result := s.ClassifyClause(ctx, clause.Text)
		classified = append(classified, models.ClassifiedClause{
			Clause:        clause,
			Category:      result.Category,
			Confidence:    result.Confidence,
			OriginalLabel: result.OriginalLabel,
		})
	}

	byCategory := make(map[models.Category][]models.ClassifiedClause)
	var categoryOrder []models.Category
	for _, clause := range classified {
		if _, seen := byCategory[clause.Category]; !seen {
			categoryOrder = append(categoryOrder, clause.Category)
		}
		byCategory[clause.Category] = append(byCategory[clause.Category], clause)
	}

	return &models.AnalysisResult{
		ProvisionsAnalysis:   classified,
		ProvisionsByCategory: byCategory,
		CategoryOrder:        categoryOrder,
		ComplianceAnalysis:   s.AnalyzeCompliance(text),
		RiskAssessment:       s.AssessRisk(text),
	}
}

// AnalyzeText validates, normalizes, segments and analyzes raw document text
func (s *AnalyzerService) AnalyzeText(ctx context.Context, text string) (*models.AnalysisResult, []models.Clause, string, error) {
	if len(strings.TrimSpace(text)) < minAnalysisLength {
		return nil, nil, "", ErrTextTooShort
	}

	normalized := s.docService.PreprocessText(text)
	clauses := s.docService.SegmentClauses(normalized)
	result := s.ComprehensiveAnalysis(ctx, normalized, clauses)

	return result, clauses, normalized, nil
}

// AnalyzeDocument extracts text from raw document bytes and analyzes it
func (s *AnalyzerService) AnalyzeDocument(ctx context.Context, content []byte, mimeType string) (*models.AnalysisResult, []models.Clause, string, error) {
	text, err := s.docService.ExtractText(content, mimeType)
	if err != nil {
		return nil, nil, "", err
	}

	return s.AnalyzeText(ctx, text)
}

// containsAny reports whether s contains at least one of the terms
func containsAny(s string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
