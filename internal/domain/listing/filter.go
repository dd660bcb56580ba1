package listing

import (
	"strings"

	"golang.org/x/text/cases"
)

// FilterAll is the sentinel selection meaning "no restriction"
const FilterAll = "All"

var fold = cases.Fold()

// Filter holds the user-controlled listing predicates. Category, Type,
// and Level default to the FilterAll sentinel; an empty Search matches
// everything.
type Filter struct {
	Search   string
	Category string
	Type     string
	Level    string
}

// NewFilter returns a filter that matches every listing
func NewFilter() Filter {
	return Filter{
		Category: FilterAll,
		Type:     FilterAll,
		Level:    FilterAll,
	}
}

// IsUnrestricted reports whether the filter matches every listing
func (f Filter) IsUnrestricted() bool {
	return strings.TrimSpace(f.Search) == "" &&
		sentinel(f.Category) && sentinel(f.Type) && sentinel(f.Level)
}

// Matches reports whether a job passes all active predicates.
// Predicates combine with AND; each is pure, so application order
// never changes the result.
func (f Filter) Matches(job *Job) bool {
	if !sentinel(f.Category) && job.Category != f.Category {
		return false
	}
	if !sentinel(f.Type) && job.Type != f.Type {
		return false
	}
	if !sentinel(f.Level) && job.Level != f.Level {
		return false
	}

	search := strings.TrimSpace(f.Search)
	if search == "" {
		return true
	}

	needle := fold.String(search)
	return containsFold(job.Title, needle) ||
		containsFold(job.Company, needle) ||
		containsFold(job.Location, needle) ||
		containsFold(job.Description, needle)
}

// ApplyFilters returns the jobs passing the filter, preserving input order
func ApplyFilters(jobs []*Job, filter Filter) []*Job {
	result := make([]*Job, 0, len(jobs))
	for _, job := range jobs {
		if filter.Matches(job) {
			result = append(result, job)
		}
	}
	return result
}

func sentinel(selection string) bool {
	return selection == "" || selection == FilterAll
}

func containsFold(haystack, foldedNeedle string) bool {
	return strings.Contains(fold.String(haystack), foldedNeedle)
}
