package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudguard/fraudguard/internal/database"
	"github.com/fraudguard/fraudguard/internal/domain"
	"github.com/fraudguard/fraudguard/pkg/logger"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := database.Open("file::memory:?cache=shared&_pragma=foreign_keys(ON)")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.New(logger.Config{Level: "error", Pretty: false})
	return NewRepository(db.Conn(), log)
}

func sampleEntry(merchant string, level domain.RiskLevel) domain.HistoryEntry {
	lat := 40.7128
	long := -74.0060
	return domain.HistoryEntry{
		TransDateTransTime: "2026-08-30T12:00:00Z",
		Merchant:           merchant,
		Category:           "grocery_pos",
		Amt:                50,
		Gender:             "M",
		State:              "NY",
		Job:                "Software Engineer",
		CityPop:            10000,
		Lat:                &lat,
		Long:               &long,
		MerchLat:           40.72,
		MerchLon:           -74.01,
		Dist:               0.0082,
		RiskScore:          0.1,
		RiskLevel:          level,
		IsFraud:            level == domain.Fraud,
		ActionTaken:        domain.ActionNone,
	}
}

func TestRepository_CreateAndList_InsertionOrder(t *testing.T) {
	repo := testRepo(t)

	for _, m := range []string{"first", "second", "third"} {
		_, err := repo.Create(sampleEntry(m, domain.RiskFree))
		require.NoError(t, err)
	}

	entries, err := repo.List()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "first", entries[0].Merchant)
	assert.Equal(t, "second", entries[1].Merchant)
	assert.Equal(t, "third", entries[2].Merchant)
	assert.NotEmpty(t, entries[0].ID)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestRepository_GetByID(t *testing.T) {
	repo := testRepo(t)

	id, err := repo.Create(sampleEntry("merchant_7", domain.Fraud))
	require.NoError(t, err)

	entry, err := repo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "merchant_7", entry.Merchant)
	assert.True(t, entry.IsFraud)
	require.NotNil(t, entry.Lat)
	assert.Equal(t, 40.7128, *entry.Lat)

	missing, err := repo.GetByID("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_NullCoordinates(t *testing.T) {
	repo := testRepo(t)

	e := sampleEntry("merchant_1", domain.RiskFree)
	e.Lat = nil
	e.Long = nil
	id, err := repo.Create(e)
	require.NoError(t, err)

	got, err := repo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.Lat)
	assert.Nil(t, got.Long)
}

func TestRepository_ListEmpty(t *testing.T) {
	repo := testRepo(t)

	entries, err := repo.List()
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestRepository_PurgeOlderThan(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.Create(sampleEntry("keep", domain.RiskFree))
	require.NoError(t, err)

	// Nothing predates a cutoff in the past.
	purged, err := repo.PurgeOlderThan(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, purged)

	// Everything predates a cutoff in the future.
	purged, err = repo.PurgeOlderThan(time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}
