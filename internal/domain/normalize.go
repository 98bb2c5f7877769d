package domain

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"
)

// ErrValidation marks a malformed or missing numeric field. The normalizer
// catches these before anything reaches the network layer.
var ErrValidation = errors.New("validation error")

// Normalize builds a TransactionRecord from raw field values (strings from
// a form, numbers from the randomizer). It starts from DefaultRecord so no
// field is ever missing, then overlays raw, coercing amt, the four
// coordinates and city_pop to numbers. String fields pass through as-is.
func Normalize(raw map[string]any) (TransactionRecord, error) {
	rec := DefaultRecord()

	for key, val := range raw {
		switch key {
		case "trans_date_trans_time":
			rec.TransDateTransTime = toString(val)
		case "merchant":
			rec.Merchant = toString(val)
		case "category":
			rec.Category = Category(toString(val))
		case "gender":
			rec.Gender = toString(val)
		case "state":
			rec.State = toString(val)
		case "job":
			rec.Job = toString(val)
		case "amt":
			f, err := toFloat(key, val)
			if err != nil {
				return TransactionRecord{}, err
			}
			rec.Amt = f
		case "lat":
			f, err := toFloat(key, val)
			if err != nil {
				return TransactionRecord{}, err
			}
			rec.Lat = f
		case "long":
			f, err := toFloat(key, val)
			if err != nil {
				return TransactionRecord{}, err
			}
			rec.Long = f
		case "merch_lat":
			f, err := toFloat(key, val)
			if err != nil {
				return TransactionRecord{}, err
			}
			rec.MerchLat = f
		case "merch_lon":
			f, err := toFloat(key, val)
			if err != nil {
				return TransactionRecord{}, err
			}
			rec.MerchLon = f
		case "city_pop":
			f, err := toFloat(key, val)
			if err != nil {
				return TransactionRecord{}, err
			}
			rec.CityPop = int(f)
		}
	}

	return rec, nil
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toFloat(field string, v any) (float64, error) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case string:
		parsed, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: field %q: %q is not numeric", ErrValidation, field, x)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("%w: field %q: unsupported type %T", ErrValidation, field, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: field %q: value is not finite", ErrValidation, field)
	}
	return f, nil
}

// RandomRecord produces a synthetic record so an operator can exercise the
// pipeline without hand-authoring one. Amount is uniform in [0, 500]
// rounded to cents; both coordinate pairs are drawn independently from the
// continental box lat 30-40, long -100..-80, rounded to 4 decimals.
func RandomRecord(rng *rand.Rand) TransactionRecord {
	return TransactionRecord{
		TransDateTransTime: time.Now().Format(time.RFC3339),
		Merchant:           fmt.Sprintf("merchant_%d", rng.Intn(1000)),
		Category:           Categories[rng.Intn(len(Categories))],
		Amt:                round2(rng.Float64() * 500),
		Gender:             Genders[rng.Intn(len(Genders))],
		State:              "NY",
		Job:                "Random Job",
		CityPop:            rng.Intn(100000) + 1000,
		Lat:                round4(30 + rng.Float64()*10),
		Long:               round4(-100 + rng.Float64()*20),
		MerchLat:           round4(30 + rng.Float64()*10),
		MerchLon:           round4(-100 + rng.Float64()*20),
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
