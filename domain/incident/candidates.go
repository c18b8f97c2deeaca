package incident

// Field is one of the canonical attributes the normalizer guarantees.
type Field string

const (
	FieldDate     Field = "date"
	FieldCategory Field = "category"
	FieldArea     Field = "area"
)

// UnknownCategory is assigned when no category column resolves or a cell is blank.
const UnknownCategory = "Unknown"

// CandidateList is a priority-ordered list of header aliases for one field.
// Earlier aliases win when several are present.
type CandidateList []string

// With returns a new list with extra aliases ahead of the existing ones,
// skipping blanks and exact duplicates.
func (c CandidateList) With(extra ...string) CandidateList {
	out := make(CandidateList, 0, len(extra)+len(c))
	seen := make(map[string]bool, len(extra)+len(c))
	for _, alias := range append(append([]string(nil), extra...), c...) {
		if alias == "" || seen[alias] {
			continue
		}
		seen[alias] = true
		out = append(out, alias)
	}
	return out
}

// Candidates bundles the alias lists for every semantic field.
type Candidates struct {
	Date     CandidateList
	Category CandidateList
	Area     CandidateList
}

// DefaultCandidates returns the built-in alias lists used for civic crime exports.
func DefaultCandidates() Candidates {
	return Candidates{
		Date: CandidateList{
			"occurred_at", "incident_datetime", "incident_date", "date", "reported_date",
			"Occurred On Date", "DateOccurred", "OccurredDate", "Created Date",
		},
		Category: CandidateList{
			"category", "offense_category", "offense", "offense_type",
			"primary_type", "incident_type", "complaint_type", "Crime type",
		},
		Area: CandidateList{"borough", "boro", "neighborhood", "precinct", "district"},
	}
}

// WithOverrides prepends user-supplied aliases per field
func (c Candidates) WithOverrides(date, category, area []string) Candidates {
	return Candidates{
		Date:     c.Date.With(date...),
		Category: c.Category.With(category...),
		Area:     c.Area.With(area...),
	}
}
