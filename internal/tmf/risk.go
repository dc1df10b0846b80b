package tmf

import "strconv"

// RiskSpecification is the payload produced by the Threat Risk Assessor and
// Privacy Quantifier. CPE identifies the affected platform; the scores are
// optional so that either assessor can report independently.
type RiskSpecification struct {
	CPE          string   `json:"cpe,omitempty"`
	RiskScore    *float64 `json:"risk_score,omitempty"`
	PrivacyScore *float64 `json:"privacy_score,omitempty"`
	Anomalies    []any    `json:"anomalies,omitempty"`
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
