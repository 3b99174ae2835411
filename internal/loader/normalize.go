package loader

import (
	"math"
	"strconv"
	"strings"

	"github.com/docfinder/docfinder/pkg/core"
)

// ParseRating coerces a raw rating cell. Empty, non-numeric and non-finite
// values become core.DefaultRating.
func ParseRating(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return core.DefaultRating
	}
	return v
}

// SplitLanguages splits a comma-delimited cell into trimmed tokens.
// The result always has at least one token; "" yields [""].
func SplitLanguages(raw string) []string {
	tokens := strings.Split(raw, ",")
	for i, tok := range tokens {
		tokens[i] = strings.TrimSpace(tok)
	}
	return tokens
}

// Normalize converts a reconciled record into a canonical Doctor.
func Normalize(rec RawRecord) core.Doctor {
	return core.Doctor{
		Name:           rec[core.AttrName],
		Specialization: rec[core.AttrSpecialization],
		Hospital:       rec[core.AttrHospital],
		District:       rec[core.AttrDistrict],
		Phone:          rec[core.AttrPhone],
		Experience:     rec[core.AttrExperience],
		Rating:         ParseRating(rec[core.AttrRating]),
		Languages:      SplitLanguages(rec[core.AttrLanguages]),
	}
}

// Aggregate concatenates reconciled tables in order and normalizes every row.
// Duplicates are kept.
func Aggregate(tables []*Table) []core.Doctor {
	n := 0
	for _, t := range tables {
		n += len(t.Records)
	}
	doctors := make([]core.Doctor, 0, n)
	for _, t := range tables {
		for _, rec := range t.Records {
			doctors = append(doctors, Normalize(rec))
		}
	}
	return doctors
}
