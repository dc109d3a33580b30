package models

// Clause represents a segmented unit of contract text
type Clause struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
}

// ClassificationResult represents the outcome of classifying a single clause
type ClassificationResult struct {
	Category      Category `json:"category"`
	Confidence    float64  `json:"confidence"`
	OriginalLabel string   `json:"original_label"`
}

// ClassifiedClause merges a clause with its classification. The clause itself
// is never mutated; classification produces a new record.
type ClassifiedClause struct {
	Clause
	Category      Category `json:"category"`
	Confidence    float64  `json:"confidence"`
	OriginalLabel string   `json:"original_label"`
}
