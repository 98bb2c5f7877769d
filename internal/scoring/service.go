package scoring

import (
	"github.com/rs/zerolog"

	"github.com/fraudguard/fraudguard/internal/domain"
)

// Alerter notifies the cardholder when a transaction is confirmed fraud.
type Alerter interface {
	SendFraudAlert(entry domain.HistoryEntry) error
}

// Recorder persists scored transactions.
type Recorder interface {
	Create(entry domain.HistoryEntry) (string, error)
}

// Service scores transactions, records them, and triggers automatic
// actions for the Fraud tier.
type Service struct {
	recorder Recorder
	alerter  Alerter
	log      zerolog.Logger
}

// NewService creates a scoring service.
func NewService(recorder Recorder, alerter Alerter, log zerolog.Logger) *Service {
	return &Service{
		recorder: recorder,
		alerter:  alerter,
		log:      log.With().Str("component", "scoring").Logger(),
	}
}

// Analyze scores one transaction, persists the entry, and returns the
// verdict. A failed alert email never fails the analysis; the block
// decision already stands.
func (s *Service) Analyze(rec domain.TransactionRecord) (domain.RiskVerdict, error) {
	verdict := Verdict(rec)

	lat := rec.Lat
	long := rec.Long
	entry := domain.HistoryEntry{
		TransDateTransTime: rec.TransDateTransTime,
		Merchant:           rec.Merchant,
		Category:           rec.Category,
		Amt:                rec.Amt,
		Gender:             rec.Gender,
		State:              rec.State,
		Job:                rec.Job,
		CityPop:            rec.CityPop,
		Lat:                &lat,
		Long:               &long,
		MerchLat:           rec.MerchLat,
		MerchLon:           rec.MerchLon,
		Dist:               Distance(rec),
		Prediction:         verdict.Prediction,
		RiskScore:          verdict.RiskScore,
		IsFraud:            verdict.IsFraud,
		RiskLevel:          verdict.RiskLevel,
		ActionTaken:        verdict.ActionTaken,
	}

	id, err := s.recorder.Create(entry)
	if err != nil {
		return domain.RiskVerdict{}, err
	}
	entry.ID = id

	if verdict.RiskLevel == domain.Fraud && s.alerter != nil {
		if err := s.alerter.SendFraudAlert(entry); err != nil {
			s.log.Error().Err(err).Str("id", id).Msg("Failed to send fraud alert")
		}
	}

	return verdict, nil
}
