package core

// Attribute names one of the canonical columns of the doctors relation.
type Attribute string

// Canonical attributes, in relation column order.
const (
	AttrName           Attribute = "name"
	AttrSpecialization Attribute = "specialization"
	AttrHospital       Attribute = "hospital"
	AttrDistrict       Attribute = "district"
	AttrPhone          Attribute = "phone"
	AttrExperience     Attribute = "experience"
	AttrRating         Attribute = "rating"
	AttrLanguages      Attribute = "languages"
)

// Attributes lists every canonical attribute in relation column order.
var Attributes = []Attribute{
	AttrName,
	AttrSpecialization,
	AttrHospital,
	AttrDistrict,
	AttrPhone,
	AttrExperience,
	AttrRating,
	AttrLanguages,
}

// Default cell values used when a source has no column for an attribute.
const (
	DefaultName           = "Unknown Doctor"
	DefaultSpecialization = "General Physician"
	DefaultHospital       = "Unknown Hospital"
	DefaultDistrict       = "Unknown District"
	DefaultPhone          = "Not Available"
	DefaultExperience     = "Not Specified"
	DefaultLanguages      = "Bengali,English"
	DefaultRating         = 4.0
)

// DefaultValue returns the raw (pre-normalization) default for an attribute.
// The rating default is returned in its text form so that default-filled and
// source-provided cells go through the same coercion.
func DefaultValue(a Attribute) string {
	switch a {
	case AttrName:
		return DefaultName
	case AttrSpecialization:
		return DefaultSpecialization
	case AttrHospital:
		return DefaultHospital
	case AttrDistrict:
		return DefaultDistrict
	case AttrPhone:
		return DefaultPhone
	case AttrExperience:
		return DefaultExperience
	case AttrRating:
		return "4.0"
	case AttrLanguages:
		return DefaultLanguages
	}
	return ""
}

// Doctor is one canonical provider record.
type Doctor struct {
	Name           string   `json:"name"`
	Specialization string   `json:"specialization"`
	Hospital       string   `json:"hospital"`
	District       string   `json:"district"`
	Phone          string   `json:"phone"`
	Experience     string   `json:"experience"`
	Rating         float64  `json:"rating"`
	Languages      []string `json:"languages"`
}
