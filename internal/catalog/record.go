package catalog

import "fmt"

// Year bounds for a valid record. Four-digit tokens outside this range are
// ordinary model-name tokens, not years.
const (
	MinYear = 1950
	MaxYear = 2030
)

// Record is one parsed entry for an image. Immutable; identity is ImagePath
// (stored relative to the data directory). Two records may share a
// make/model/year triple and differ only in the photo.
type Record struct {
	ImagePath string `json:"path"`
	Make      string `json:"make"`
	Model     string `json:"model"`
	Year      int    `json:"year"`
}

// Label renders the display form shown as an answer choice.
func (r Record) Label() string {
	return fmt.Sprintf("%s %s %d", r.Make, r.Model, r.Year)
}

// SameTriple reports whether two records agree on make, model, and year.
func (r Record) SameTriple(o Record) bool {
	return r.Make == o.Make && r.Model == o.Model && r.Year == o.Year
}

// Index is the ordered set of successfully parsed records plus the count of
// files that failed to parse. Read-only after construction; safe to share
// across sessions.
type Index struct {
	Records []Record `json:"records"`
	Misses  int      `json:"misses"`
}

// Len returns the number of records.
func (ix *Index) Len() int {
	return len(ix.Records)
}

// DistinctTriples counts the unique make/model/year combinations across
// all records. A quiz round needs at least ten of them.
func (ix *Index) DistinctTriples() int {
	type key struct {
		make  string
		model string
		year  int
	}
	seen := make(map[key]struct{}, len(ix.Records))
	for _, r := range ix.Records {
		seen[key{r.Make, r.Model, r.Year}] = struct{}{}
	}
	return len(seen)
}
