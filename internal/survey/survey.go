// Package survey models the structured answers collected for a session.
//
// Values arrive already typed from the dialogue collaborator; this package
// never interprets free text. A nil field means the question has not been
// answered yet.
package survey

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Section string

const (
	SectionIntroduction   Section = "introduction"
	SectionHomeEnergy     Section = "home_energy"
	SectionTransportation Section = "transportation"
	SectionConsumption    Section = "consumption"
)

type ResponseType string

const (
	TypeText    ResponseType = "text"
	TypeNumber  ResponseType = "number"
	TypeBoolean ResponseType = "boolean"
	TypeChoice  ResponseType = "choice"
)

type Introduction struct {
	Name          *string `json:"name,omitempty"`
	City          *string `json:"city,omitempty"`
	State         *string `json:"state,omitempty"`
	HouseholdSize *int    `json:"household_size,omitempty"`
	HousingType   *string `json:"housing_type,omitempty"`
}

type HomeEnergy struct {
	SquareFootage      *float64 `json:"square_footage,omitempty"`
	MonthlyElectricity *float64 `json:"monthly_electricity,omitempty"`
	HeatingType        *string  `json:"heating_type,omitempty"`
	HeatingBill        *float64 `json:"heating_bill,omitempty"`
	SolarPanels        *bool    `json:"solar_panels,omitempty"`
}

type Transportation struct {
	VehicleYear          *int     `json:"vehicle_year,omitempty"`
	VehicleMake          *string  `json:"vehicle_make,omitempty"`
	VehicleModel         *string  `json:"vehicle_model,omitempty"`
	AnnualMiles          *float64 `json:"annual_miles,omitempty"`
	DomesticFlights      *int     `json:"domestic_flights,omitempty"`
	InternationalFlights *int     `json:"international_flights,omitempty"`
}

type Consumption struct {
	DietType          *string `json:"diet_type,omitempty"`
	ShoppingFrequency *string `json:"shopping_frequency,omitempty"`
}

// Responses is the full survey state of one session.
type Responses struct {
	Introduction   Introduction   `json:"introduction"`
	HomeEnergy     HomeEnergy     `json:"home_energy"`
	Transportation Transportation `json:"transportation"`
	Consumption    Consumption    `json:"consumption"`
}

// Record is one stored answer.
type Record struct {
	Section     Section
	QuestionKey string
	Value       string
	Type        ResponseType
}

type field struct {
	section Section
	key     string
	typ     ResponseType
	get     func(r *Responses) (string, bool)
	set     func(r *Responses, v string) error
}

var fields = []field{
	textField(SectionIntroduction, "name", TypeText, func(r *Responses) **string { return &r.Introduction.Name }),
	textField(SectionIntroduction, "city", TypeText, func(r *Responses) **string { return &r.Introduction.City }),
	textField(SectionIntroduction, "state", TypeChoice, func(r *Responses) **string { return &r.Introduction.State }),
	intField(SectionIntroduction, "household_size", func(r *Responses) **int { return &r.Introduction.HouseholdSize }),
	textField(SectionIntroduction, "housing_type", TypeChoice, func(r *Responses) **string { return &r.Introduction.HousingType }),

	floatField(SectionHomeEnergy, "square_footage", func(r *Responses) **float64 { return &r.HomeEnergy.SquareFootage }),
	floatField(SectionHomeEnergy, "monthly_electricity", func(r *Responses) **float64 { return &r.HomeEnergy.MonthlyElectricity }),
	textField(SectionHomeEnergy, "heating_type", TypeChoice, func(r *Responses) **string { return &r.HomeEnergy.HeatingType }),
	floatField(SectionHomeEnergy, "heating_bill", func(r *Responses) **float64 { return &r.HomeEnergy.HeatingBill }),
	boolField(SectionHomeEnergy, "solar_panels", func(r *Responses) **bool { return &r.HomeEnergy.SolarPanels }),

	intField(SectionTransportation, "vehicle_year", func(r *Responses) **int { return &r.Transportation.VehicleYear }),
	textField(SectionTransportation, "vehicle_make", TypeText, func(r *Responses) **string { return &r.Transportation.VehicleMake }),
	textField(SectionTransportation, "vehicle_model", TypeText, func(r *Responses) **string { return &r.Transportation.VehicleModel }),
	floatField(SectionTransportation, "annual_miles", func(r *Responses) **float64 { return &r.Transportation.AnnualMiles }),
	intField(SectionTransportation, "domestic_flights", func(r *Responses) **int { return &r.Transportation.DomesticFlights }),
	intField(SectionTransportation, "international_flights", func(r *Responses) **int { return &r.Transportation.InternationalFlights }),

	textField(SectionConsumption, "diet_type", TypeChoice, func(r *Responses) **string { return &r.Consumption.DietType }),
	textField(SectionConsumption, "shopping_frequency", TypeChoice, func(r *Responses) **string { return &r.Consumption.ShoppingFrequency }),
}

// CriticalFields are the answers counted towards session progress, in the
// order they are asked.
var CriticalFields = []string{
	"name", "city", "state", "household_size", "housing_type",
	"square_footage", "monthly_electricity", "heating_type", "heating_bill", "solar_panels",
	"vehicle_year", "vehicle_make", "vehicle_model", "annual_miles", "domestic_flights", "international_flights",
	"diet_type", "shopping_frequency",
}

// Records flattens the answered fields into storable rows.
func (r *Responses) Records() []Record {
	var out []Record
	for _, f := range fields {
		if v, ok := f.get(r); ok {
			out = append(out, Record{Section: f.section, QuestionKey: f.key, Value: v, Type: f.typ})
		}
	}
	return out
}

// FromRecords rebuilds Responses from stored rows. Unknown keys are ignored;
// a value that does not decode as its declared type is an error.
func FromRecords(records []Record) (*Responses, error) {
	r := &Responses{}
	for _, rec := range records {
		f, ok := lookup(rec.Section, rec.QuestionKey)
		if !ok {
			continue
		}
		if err := f.set(r, rec.Value); err != nil {
			return nil, fmt.Errorf("survey: %s.%s: %w", rec.Section, rec.QuestionKey, err)
		}
	}
	return r, nil
}

// Merge overwrites fields of r with every answered field in other.
func (r *Responses) Merge(other *Responses) {
	if other == nil {
		return
	}
	for _, f := range fields {
		if v, ok := f.get(other); ok {
			_ = f.set(r, v)
		}
	}
}

// Answered reports which question keys have a value.
func (r *Responses) Answered() map[string]bool {
	out := make(map[string]bool, len(fields))
	for _, f := range fields {
		if _, ok := f.get(r); ok {
			out[f.key] = true
		}
	}
	return out
}

// Progress is the rounded percentage of critical fields answered.
func (r *Responses) Progress() int {
	answered := r.Answered()
	n := 0
	for _, key := range CriticalFields {
		if answered[key] {
			n++
		}
	}
	return int(math.Round(float64(n) * 100 / float64(len(CriticalFields))))
}

// NextMissing returns the first unanswered critical field and its section.
// ok is false once every critical field is answered.
func (r *Responses) NextMissing() (section Section, key string, ok bool) {
	answered := r.Answered()
	for _, k := range CriticalFields {
		if answered[k] {
			continue
		}
		for _, f := range fields {
			if f.key == k {
				return f.section, k, true
			}
		}
	}
	return "", "", false
}

func lookup(section Section, key string) (field, bool) {
	for _, f := range fields {
		if f.section == section && f.key == key {
			return f, true
		}
	}
	return field{}, false
}

func textField(s Section, key string, typ ResponseType, ptr func(*Responses) **string) field {
	return field{
		section: s, key: key, typ: typ,
		get: func(r *Responses) (string, bool) {
			p := *ptr(r)
			if p == nil {
				return "", false
			}
			return *p, true
		},
		set: func(r *Responses, v string) error {
			*ptr(r) = &v
			return nil
		},
	}
}

func intField(s Section, key string, ptr func(*Responses) **int) field {
	return field{
		section: s, key: key, typ: TypeNumber,
		get: func(r *Responses) (string, bool) {
			p := *ptr(r)
			if p == nil {
				return "", false
			}
			return strconv.Itoa(*p), true
		},
		set: func(r *Responses, v string) error {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return err
			}
			n := int(f)
			*ptr(r) = &n
			return nil
		},
	}
}

func floatField(s Section, key string, ptr func(*Responses) **float64) field {
	return field{
		section: s, key: key, typ: TypeNumber,
		get: func(r *Responses) (string, bool) {
			p := *ptr(r)
			if p == nil {
				return "", false
			}
			return strconv.FormatFloat(*p, 'f', -1, 64), true
		},
		set: func(r *Responses, v string) error {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return err
			}
			*ptr(r) = &f
			return nil
		},
	}
}

func boolField(s Section, key string, ptr func(*Responses) **bool) field {
	return field{
		section: s, key: key, typ: TypeBoolean,
		get: func(r *Responses) (string, bool) {
			p := *ptr(r)
			if p == nil {
				return "", false
			}
			return strconv.FormatBool(*p), true
		},
		set: func(r *Responses, v string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return err
			}
			*ptr(r) = &b
			return nil
		},
	}
}
