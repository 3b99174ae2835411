package symptom

// Rule maps a lowercase symptom phrase to a specialization.
type Rule struct {
	Phrase         string
	Specialization string
}

// Rules is checked in order; the first phrase contained in the symptom text wins.
var Rules = []Rule{
	{"chest pain", "Cardiology"},
	{"heart pain", "Cardiology"},
	{"breathing problem", "Pulmonology"},
	{"headache", "Neurology"},
	{"migraine", "Neurology"},
	{"fever", "General Physician"},
	{"stomach pain", "Gastroenterology"},
	{"diarrhea", "Gastroenterology"},
	{"vomiting", "Gastroenterology"},
	{"skin rash", "Dermatology"},
	{"joint pain", "Orthopedics"},
	{"back pain", "Orthopedics"},
	{"child sickness", "Pediatrics"},
}

// Specializations is the closed list offered to the model fallback.
var Specializations = []string{
	"Cardiology",
	"Neurology",
	"Gastroenterology",
	"General Physician",
	"Dermatology",
	"Orthopedics",
	"Pediatrics",
	"Pulmonology",
	"Endocrinology",
}
