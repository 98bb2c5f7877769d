package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fraudguard/fraudguard/internal/domain"
)

type formField int

const (
	fieldMerchant formField = iota
	fieldCategory
	fieldAmt
	fieldGender
	fieldState
	fieldJob
	fieldCityPop
	fieldLat
	fieldLong
	fieldMerchLat
	fieldMerchLon
	fieldCount
)

var fieldLabels = map[formField]string{
	fieldMerchant: "Merchant",
	fieldCategory: "Category",
	fieldAmt:      "Amount ($)",
	fieldGender:   "Gender",
	fieldState:    "State",
	fieldJob:      "Job",
	fieldCityPop:  "City Population",
	fieldLat:      "Latitude",
	fieldLong:     "Longitude",
	fieldMerchLat: "Merchant Latitude",
	fieldMerchLon: "Merchant Longitude",
}

// form is the analyze input panel. Category and gender are fixed-choice
// selectors cycled with left/right; everything else is free text that the
// normalizer coerces on submit.
type form struct {
	inputs      map[formField]textinput.Model
	categoryIdx int
	genderIdx   int
	focused     formField
}

func newForm(rec domain.TransactionRecord) form {
	f := form{inputs: make(map[formField]textinput.Model)}
	for field := fieldMerchant; field < fieldCount; field++ {
		if field == fieldCategory || field == fieldGender {
			continue
		}
		in := textinput.New()
		in.CharLimit = 64
		in.Width = 28
		f.inputs[field] = in
	}
	f.setRecord(rec)
	f.focus(fieldMerchant)
	return f
}

// setRecord fills every field from a complete record.
func (f *form) setRecord(rec domain.TransactionRecord) {
	set := func(field formField, val string) {
		in := f.inputs[field]
		in.SetValue(val)
		f.inputs[field] = in
	}
	set(fieldMerchant, rec.Merchant)
	set(fieldAmt, strconv.FormatFloat(rec.Amt, 'f', 2, 64))
	set(fieldState, rec.State)
	set(fieldJob, rec.Job)
	set(fieldCityPop, strconv.Itoa(rec.CityPop))
	set(fieldLat, strconv.FormatFloat(rec.Lat, 'f', 4, 64))
	set(fieldLong, strconv.FormatFloat(rec.Long, 'f', 4, 64))
	set(fieldMerchLat, strconv.FormatFloat(rec.MerchLat, 'f', 4, 64))
	set(fieldMerchLon, strconv.FormatFloat(rec.MerchLon, 'f', 4, 64))

	f.categoryIdx = 0
	for i, c := range domain.Categories {
		if c == rec.Category {
			f.categoryIdx = i
			break
		}
	}
	f.genderIdx = 0
	for i, g := range domain.Genders {
		if g == rec.Gender {
			f.genderIdx = i
			break
		}
	}
}

// payload builds the raw submission map. Numeric fields stay strings
// here; normalization owns the coercion and its failures.
func (f form) payload() map[string]any {
	p := map[string]any{
		"merchant": f.inputs[fieldMerchant].Value(),
		"category": string(domain.Categories[f.categoryIdx]),
		"gender":   domain.Genders[f.genderIdx],
		"state":    f.inputs[fieldState].Value(),
		"job":      f.inputs[fieldJob].Value(),
	}
	for field, key := range map[formField]string{
		fieldAmt:      "amt",
		fieldCityPop:  "city_pop",
		fieldLat:      "lat",
		fieldLong:     "long",
		fieldMerchLat: "merch_lat",
		fieldMerchLon: "merch_lon",
	} {
		if v := f.inputs[field].Value(); v != "" {
			p[key] = v
		}
	}
	return p
}

func (f *form) focus(field formField) {
	f.focused = field
	for k, in := range f.inputs {
		if k == field {
			in.Focus()
		} else {
			in.Blur()
		}
		f.inputs[k] = in
	}
}

func (f *form) next() {
	f.focus((f.focused + 1) % fieldCount)
}

func (f *form) prev() {
	f.focus((f.focused + fieldCount - 1) % fieldCount)
}

// cycle advances the focused selector. No-op on free-text fields.
func (f *form) cycle(delta int) {
	switch f.focused {
	case fieldCategory:
		n := len(domain.Categories)
		f.categoryIdx = (f.categoryIdx + delta + n) % n
	case fieldGender:
		n := len(domain.Genders)
		f.genderIdx = (f.genderIdx + delta + n) % n
	}
}

// update forwards a message to the focused text input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	in, ok := f.inputs[f.focused]
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	in, cmd = in.Update(msg)
	f.inputs[f.focused] = in
	return cmd
}
