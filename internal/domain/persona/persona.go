// Package persona holds the identity and track record of the simulated
// person. This package is PURE and must NOT import any infrastructure
// packages.
package persona

// Profile describes who the persona is, as opposed to how their life is
// currently going. The engine reads it for country-specific rules and
// admission prerequisites.
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender,omitempty"`
	Country   string `json:"country"`

	// Academic and work track record used by admission checks.
	GPA         float64  `json:"gpa"`
	YearsWorked int      `json:"yearsWorked"`
	PassedExams []string `json:"passedExams"`
}

// NewProfile creates a profile for the given country with an empty
// track record.
func NewProfile(firstName, lastName, country string) *Profile {
	return &Profile{
		FirstName:   firstName,
		LastName:    lastName,
		Country:     country,
		PassedExams: []string{},
	}
}

// FullName returns "First Last".
func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

// HasExam reports whether the persona passed the named entrance exam.
func (p *Profile) HasExam(exam string) bool {
	for _, e := range p.PassedExams {
		if e == exam {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() Profile {
	out := *p
	out.PassedExams = append([]string{}, p.PassedExams...)
	return out
}
