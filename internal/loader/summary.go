package loader

import "github.com/docfinder/docfinder/pkg/core"

// Summary describes a loaded doctors relation.
type Summary struct {
	Rows            int      `json:"rows"`
	Specializations []string `json:"specializations"`
	Districts       []string `json:"districts"`
	AverageRating   float64  `json:"average_rating"`
}

// Summarize reports the row count, the distinct specializations and
// districts in first-seen order, and the mean rating (0 for no rows).
func Summarize(doctors []core.Doctor) Summary {
	s := Summary{
		Rows:            len(doctors),
		Specializations: []string{},
		Districts:       []string{},
	}
	seenSpec := make(map[string]bool)
	seenDistrict := make(map[string]bool)
	var total float64
	for _, d := range doctors {
		if !seenSpec[d.Specialization] {
			seenSpec[d.Specialization] = true
			s.Specializations = append(s.Specializations, d.Specialization)
		}
		if !seenDistrict[d.District] {
			seenDistrict[d.District] = true
			s.Districts = append(s.Districts, d.District)
		}
		total += d.Rating
	}
	if len(doctors) > 0 {
		s.AverageRating = total / float64(len(doctors))
	}
	return s
}
