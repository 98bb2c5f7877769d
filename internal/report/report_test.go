package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudguard/fraudguard/internal/domain"
)

func TestGenerateProducesPDF(t *testing.T) {
	lat, long := 40.7128, -74.0060
	entry := domain.HistoryEntry{
		ID:                 "abc-123",
		TransDateTransTime: "2026-01-15 12:00:00",
		Merchant:           "fraud_test_merchant",
		Category:           "grocery_pos",
		Amt:                499.99,
		State:              "NY",
		CityPop:            10000,
		Lat:                &lat,
		Long:               &long,
		MerchLat:           40.72,
		MerchLon:           -74.01,
		Dist:               0.01,
		RiskScore:          0.97,
		RiskLevel:          domain.Fraud,
		IsFraud:            true,
		ActionTaken:        domain.ActionBlocked,
	}

	var buf bytes.Buffer
	require.NoError(t, Generate(entry, &buf))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output should be a PDF document")
	assert.Greater(t, buf.Len(), 1000)
}

func TestGenerateWithoutCoordinates(t *testing.T) {
	entry := domain.HistoryEntry{
		ID:       "no-coords",
		Merchant: "corner_store",
		Amt:      12.50,
		IsFraud:  false,
	}

	var buf bytes.Buffer
	require.NoError(t, Generate(entry, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
