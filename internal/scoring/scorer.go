// Package scoring assigns risk verdicts to candidate transactions.
//
// The score is a deterministic heuristic over amount, user-to-merchant
// distance and the merchant identifier. The tier thresholds are the
// service contract: clients trust risk_level and never re-derive it from
// risk_score.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/fraudguard/fraudguard/internal/domain"
)

// Weights for the three score components. They sum above 1 so a large
// amount far from home at a flagged merchant can saturate to Fraud.
const (
	amountWeight   = 0.45
	distanceWeight = 0.35
	merchantWeight = 0.25

	// amountScale is the amount at which the amount factor saturates.
	amountScale = 400.0
	// distanceScale is the coordinate distance (in degrees) at which the
	// distance factor saturates.
	distanceScale = 15.0
)

// Distance is the flat coordinate distance between the user and merchant
// locations, as the feature pipeline computes it.
func Distance(rec domain.TransactionRecord) float64 {
	dLat := rec.Lat - rec.MerchLat
	dLon := rec.Long - rec.MerchLon
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

// Score returns the risk score in [0, 1] for a transaction.
func Score(rec domain.TransactionRecord) float64 {
	amtFactor := math.Min(rec.Amt/amountScale, 1)
	distFactor := math.Min(Distance(rec)/distanceScale, 1)

	merchantFactor := 0.0
	if strings.HasPrefix(rec.Merchant, "fraud_") {
		merchantFactor = 1.0
	}

	score := amountWeight*amtFactor + distanceWeight*distFactor + merchantWeight*merchantFactor
	return math.Min(score, 1)
}

// Level maps a risk score to its tier. Thresholds: below 0.20 Risk Free,
// 0.50 Low, 0.80 Medium, 0.95 High, otherwise Fraud.
func Level(score float64) domain.RiskLevel {
	switch {
	case score < 0.20:
		return domain.RiskFree
	case score < 0.50:
		return domain.LowRisk
	case score < 0.80:
		return domain.MediumRisk
	case score < 0.95:
		return domain.HighRisk
	default:
		return domain.Fraud
	}
}

// Verdict scores a transaction and assembles the complete response.
// Only the Fraud tier sets is_fraud; High Risk is flagged for attention
// but not auto-confirmed.
func Verdict(rec domain.TransactionRecord) domain.RiskVerdict {
	score := Score(rec)
	level := Level(score)

	prediction := 0
	if score >= 0.5 {
		prediction = 1
	}

	action := domain.ActionNone
	switch level {
	case domain.Fraud:
		action = domain.ActionBlocked
	case domain.HighRisk:
		action = domain.ActionFlagged
	}

	return domain.RiskVerdict{
		Prediction:  prediction,
		RiskScore:   score,
		IsFraud:     level == domain.Fraud,
		RiskLevel:   level,
		Details:     fmt.Sprintf("%s detected (%.1f%%)", level, score*100),
		ActionTaken: action,
	}
}
