package incident

// CountEntry is one (key, count) pair of a series.
type CountEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// CountSeries is an ordered mapping from a grouping key to an occurrence count.
type CountSeries struct {
	Name    string       `json:"name"`
	Entries []CountEntry `json:"entries"`
}

// Len returns the number of entries
func (s CountSeries) Len() int {
	return len(s.Entries)
}

// Total sums all counts
func (s CountSeries) Total() int {
	total := 0
	for _, e := range s.Entries {
		total += e.Count
	}
	return total
}

// Keys returns entry keys in series order
func (s CountSeries) Keys() []string {
	keys := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Values returns counts as float64 in series order, the shape plotting and stats libraries expect
func (s CountSeries) Values() []float64 {
	values := make([]float64, len(s.Entries))
	for i, e := range s.Entries {
		values[i] = float64(e.Count)
	}
	return values
}

// Get returns the count for key
func (s CountSeries) Get(key string) (int, bool) {
	for _, e := range s.Entries {
		if e.Key == key {
			return e.Count, true
		}
	}
	return 0, false
}
