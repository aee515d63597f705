// Package filters composes query-string style filter values into a predicate
// over in-memory record slices. It backs the dashboard views that render
// pipeline-derived records which never touch the database; the repositories
// apply the equivalent constraints in SQL for persisted rows.
package filters

import (
	"strconv"
	"strings"
	"time"
)

// Record is the filterable projection of a catalog record. Price is a pointer
// because pipeline-derived rows frequently arrive without one; a record with
// no price fails any active price bound.
type Record struct {
	ID           string
	Name         string
	Manufacturer string
	Category     string
	DocumentType string
	Availability string
	Status       string
	SKU          string
	Description  string
	Price        *float64
	CreatedAt    time.Time
}

// Options holds the named filter values as they arrive from the query string.
// An empty value or the literal "all" disables that filter; bounds are kept
// as strings and parsed lazily so an unparseable bound disables itself
// instead of erroring.
type Options struct {
	SearchTerm   string
	Manufacturer string
	Category     string
	DocumentType string
	Availability string
	Status       string
	StartDate    string
	EndDate      string
	MinPrice     string
	MaxPrice     string
}

// Predicate reports whether a record matches
type Predicate func(Record) bool

const dateLayout = "2006-01-02"

func active(value string) bool {
	return value != "" && value != "all"
}

// Build composes the predicate for the given options. Every active filter
// must hold for a record to match; the free-text search is OR-combined
// across its field set before joining the conjunction.
func Build(opts Options) Predicate {
	var preds []Predicate

	if term := strings.ToLower(strings.TrimSpace(opts.SearchTerm)); term != "" {
		preds = append(preds, func(r Record) bool {
			return strings.Contains(strings.ToLower(r.Name), term) ||
				strings.Contains(strings.ToLower(r.Manufacturer), term) ||
				strings.Contains(strings.ToLower(r.Category), term) ||
				strings.Contains(strings.ToLower(r.Description), term) ||
				strings.Contains(strings.ToLower(r.SKU), term)
		})
	}

	if active(opts.Manufacturer) {
		preds = append(preds, func(r Record) bool { return r.Manufacturer == opts.Manufacturer })
	}
	if active(opts.Category) {
		preds = append(preds, func(r Record) bool { return r.Category == opts.Category })
	}
	if active(opts.DocumentType) {
		preds = append(preds, func(r Record) bool { return r.DocumentType == opts.DocumentType })
	}
	if active(opts.Availability) {
		preds = append(preds, func(r Record) bool { return r.Availability == opts.Availability })
	}
	if active(opts.Status) {
		preds = append(preds, func(r Record) bool { return r.Status == opts.Status })
	}

	// Inclusive date bounds against CreatedAt; an unparseable bound is ignored.
	if start, err := time.Parse(dateLayout, opts.StartDate); opts.StartDate != "" && err == nil {
		preds = append(preds, func(r Record) bool { return !r.CreatedAt.Before(start) })
	}
	if end, err := time.Parse(dateLayout, opts.EndDate); opts.EndDate != "" && err == nil {
		// End of the bound day so a date-only upper bound includes that day.
		endOfDay := end.Add(24*time.Hour - time.Nanosecond)
		preds = append(preds, func(r Record) bool { return !r.CreatedAt.After(endOfDay) })
	}

	if min, err := strconv.ParseFloat(opts.MinPrice, 64); opts.MinPrice != "" && err == nil {
		preds = append(preds, func(r Record) bool { return r.Price != nil && *r.Price >= min })
	}
	if max, err := strconv.ParseFloat(opts.MaxPrice, 64); opts.MaxPrice != "" && err == nil {
		preds = append(preds, func(r Record) bool { return r.Price != nil && *r.Price <= max })
	}

	return func(r Record) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// Apply filters records through the composed predicate. The input slice is
// never mutated and relative order is preserved.
func Apply(records []Record, opts Options) []Record {
	pred := Build(opts)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
