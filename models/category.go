package models

// Category is a canonical Indian contract clause category
type Category string

const (
	CategoryConfidentiality       Category = "confidentiality"
	CategoryTermination           Category = "termination"
	CategoryLiability             Category = "liability"
	CategoryIndemnification       Category = "indemnification"
	CategoryIntellectualProperty  Category = "intellectual_property"
	CategoryGoverningLaw          Category = "governing_law"
	CategoryPaymentTerms          Category = "payment_terms"
	CategoryWarranties            Category = "warranties"
	CategoryLimitationOfLiability Category = "limitation_of_liability"
	CategoryDisputeResolution     Category = "dispute_resolution"
	CategoryJurisdiction          Category = "jurisdiction"
	CategoryForceMajeure          Category = "force_majeure"
	CategoryNonCompete            Category = "non_compete"
	CategorySeverability          Category = "severability"
	CategoryAssignment            Category = "assignment"

	// CategoryOther is the overflow label for clauses that match no canonical category
	CategoryOther Category = "other"
)

// Categories is the closed set of canonical categories in scan order.
// Rule-based classification iterates this slice, so the order is part of
// the tie-break contract: the first category reaching the highest score wins.
var Categories = []Category{
	CategoryConfidentiality,
	CategoryTermination,
	CategoryLiability,
	CategoryIndemnification,
	CategoryIntellectualProperty,
	CategoryGoverningLaw,
	CategoryPaymentTerms,
	CategoryWarranties,
	CategoryLimitationOfLiability,
	CategoryDisputeResolution,
	CategoryJurisdiction,
	CategoryForceMajeure,
	CategoryNonCompete,
	CategorySeverability,
	CategoryAssignment,
}
