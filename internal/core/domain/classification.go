package domain

import "math"

// Classification is the verdict of the legal document-type classifier.
type Classification struct {
	// IsLegal reports whether the document looks like a legal document.
	IsLegal bool `json:"is_legal_document"`

	// Confidence is in [0, 1].
	Confidence float64 `json:"confidence"`

	// DocumentType is a short label such as "Lease Agreement" or "Non-legal".
	DocumentType string `json:"document_type"`

	// Explanation is a one-line rationale.
	Explanation string `json:"explanation"`

	// Indicators lists lexical indicators found, when the lexical
	// classifier produced the verdict.
	Indicators []string `json:"indicators,omitempty"`
}

// Classification thresholds.
const (
	// AcceptConfidence is the minimum confidence for a legal verdict to be
	// accepted on validation.
	AcceptConfidence = 0.6

	// RejectConfidence is the confidence at which a non-legal verdict
	// rejects a batch upload.
	RejectConfidence = 0.7

	// WarnConfidence is the confidence at which a non-legal verdict is
	// logged as a warning during batch upload.
	WarnConfidence = 0.5
)

// UnknownClassification is the conservative verdict used when nothing
// better is available.
func UnknownClassification(explanation string) Classification {
	return Classification{
		IsLegal:      false,
		Confidence:   0.2,
		DocumentType: "Unknown",
		Explanation:  explanation,
	}
}

// Accepted reports whether the document passes validation.
func (c Classification) Accepted() bool {
	return c.IsLegal && c.Confidence >= AcceptConfidence
}

// Rejected reports whether a batch upload must refuse the document.
func (c Classification) Rejected() bool {
	return !c.IsLegal && c.Confidence >= RejectConfidence
}

// ConfidencePercent returns the confidence as a percentage rounded to one
// decimal place.
func (c Classification) ConfidencePercent() float64 {
	return math.Round(c.Confidence*1000) / 10
}

// ClampConfidence normalises a raw confidence value into [0, 1].
// Values above 1 are treated as percentages.
func ClampConfidence(v float64) float64 {
	if v > 1.0 {
		v /= 100.0
	}
	return math.Max(0, math.Min(1, v))
}
