// Package domain holds the transaction and verdict types shared by the
// scoring service and the dashboard. It is pure: no infrastructure
// dependencies.
package domain

import "time"

// Category is a transaction merchant category.
type Category string

// Categories is the fixed set of merchant categories accepted by the
// scoring service, in form-display order.
var Categories = []Category{
	"grocery_pos",
	"gas_transport",
	"entertainment",
	"shopping_pos",
	"shopping_net",
	"misc_net",
}

// Genders accepted on a transaction record.
var Genders = []string{"M", "F"}

// TransactionRecord is one candidate transaction submitted for risk
// assessment. Field names are the service wire contract.
//
// Amt, CityPop and the four coordinates are always numeric on the wire,
// never strings, regardless of whether the record came from a typed form
// or the randomizer. Normalize enforces this.
type TransactionRecord struct {
	TransDateTransTime string   `json:"trans_date_trans_time"`
	Merchant           string   `json:"merchant"`
	Category           Category `json:"category"`
	Amt                float64  `json:"amt"`
	Gender             string   `json:"gender"`
	State              string   `json:"state"`
	Job                string   `json:"job"`
	CityPop            int      `json:"city_pop"`
	Lat                float64  `json:"lat"`
	Long               float64  `json:"long"`
	MerchLat           float64  `json:"merch_lat"`
	MerchLon           float64  `json:"merch_lon"`
}

// RiskLevel is the ordered categorical verdict tier.
type RiskLevel string

const (
	RiskFree   RiskLevel = "Risk Free"
	LowRisk    RiskLevel = "Low Risk"
	MediumRisk RiskLevel = "Medium Risk"
	HighRisk   RiskLevel = "High Risk"
	Fraud      RiskLevel = "Fraud"
)

// Rank returns the position of the level in the Risk Free < Low < Medium
// < High < Fraud ordering. Unknown levels rank below Risk Free.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskFree:
		return 1
	case LowRisk:
		return 2
	case MediumRisk:
		return 3
	case HighRisk:
		return 4
	case Fraud:
		return 5
	}
	return 0
}

// Actions the service may take automatically on a scored transaction.
const (
	ActionNone    = "None"
	ActionFlagged = "Flagged for Review"
	ActionBlocked = "Card Blocked & Email Sent"
)

// RiskVerdict is the scoring service's complete response for one
// transaction. RiskLevel is authoritative; the dashboard never re-derives
// it from RiskScore.
type RiskVerdict struct {
	Prediction  int       `json:"prediction"`
	RiskScore   float64   `json:"risk_score"`
	IsFraud     bool      `json:"is_fraud"`
	RiskLevel   RiskLevel `json:"risk_level"`
	Details     string    `json:"details"`
	ActionTaken string    `json:"action_taken,omitempty"`
}

// HistoryEntry is a persisted transaction + verdict pair as returned by
// the history endpoint, in chronological (insertion) order.
//
// Lat and Long are pointers so an entry with a missing coordinate decodes
// as nil rather than a garbage zero; the geo projection skips those.
// RiskLevel may be empty on old entries, in which case display code falls
// back to IsFraud (display concern only, never re-derived elsewhere).
type HistoryEntry struct {
	ID                 string    `json:"id"`
	TransDateTransTime string    `json:"trans_date_trans_time"`
	Merchant           string    `json:"merchant"`
	Category           Category  `json:"category"`
	Amt                float64   `json:"amt"`
	Gender             string    `json:"gender"`
	State              string    `json:"state"`
	Job                string    `json:"job"`
	CityPop            int       `json:"city_pop"`
	Lat                *float64  `json:"lat"`
	Long               *float64  `json:"long"`
	MerchLat           float64   `json:"merch_lat"`
	MerchLon           float64   `json:"merch_lon"`
	Dist               float64   `json:"dist"`
	Prediction         int       `json:"prediction"`
	RiskScore          float64   `json:"risk_score"`
	IsFraud            bool      `json:"is_fraud"`
	RiskLevel          RiskLevel `json:"risk_level"`
	ActionTaken        string    `json:"action_taken"`
}

// DefaultRecord returns a complete, well-formed record so a submission is
// valid even before the operator edits anything.
func DefaultRecord() TransactionRecord {
	return TransactionRecord{
		TransDateTransTime: time.Now().Format(time.RFC3339),
		Merchant:           "fraud_test_merchant",
		Category:           "grocery_pos",
		Amt:                50.0,
		Gender:             "M",
		State:              "NY",
		Job:                "Software Engineer",
		CityPop:            10000,
		Lat:                40.7128,
		Long:               -74.0060,
		MerchLat:           40.7200,
		MerchLon:           -74.0100,
	}
}
