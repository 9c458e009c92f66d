// internal/services/gate.go
package services

import "github.com/craftconnect/backend/internal/models"

// Confidence thresholds for AI-generated metadata. Below the rejection line
// suggestions are discarded outright; between the two lines the seller must
// confirm them; at or above the acceptance line they apply as-is.
const (
	ConfidenceRejectBelow = 0.40
	ConfidenceAutoAccept  = 0.70
)

func ClassifyConfidence(score float64) models.AnalysisStatus {
	switch {
	case score < ConfidenceRejectBelow:
		return models.AnalysisStatusRejected
	case score < ConfidenceAutoAccept:
		return models.AnalysisStatusNeedsConfirmation
	default:
		return models.AnalysisStatusAutoAccepted
	}
}
