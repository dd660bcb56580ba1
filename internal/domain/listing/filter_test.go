package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJob(t *testing.T, title, company, location, category string) *Job {
	t.Helper()
	job, err := NewJob(title, company, location, "", "")
	require.NoError(t, err)
	if category != "" {
		require.NoError(t, job.Classify(category, "", ""))
	}
	return job
}

func TestFilterMatches(t *testing.T) {
	job := newTestJob(t, "Backend Engineer", "Acme Corp", "Colombo", "Development")
	job.Description = "Build APIs in Go"
	job.Type = "Full-time"
	job.Level = "Senior"

	t.Run("unrestricted filter matches everything", func(t *testing.T) {
		assert.True(t, NewFilter().Matches(job))
	})

	t.Run("empty selections behave like the sentinel", func(t *testing.T) {
		assert.True(t, Filter{}.Matches(job))
	})

	t.Run("search is case-insensitive across all four fields", func(t *testing.T) {
		for _, search := range []string{"backend", "ACME", "colombo", "apis in go"} {
			f := NewFilter()
			f.Search = search
			assert.True(t, f.Matches(job), "search %q should match", search)
		}
	})

	t.Run("search misses when no field contains it", func(t *testing.T) {
		f := NewFilter()
		f.Search = "frontend"
		assert.False(t, f.Matches(job))
	})

	t.Run("category must match when not the sentinel", func(t *testing.T) {
		f := NewFilter()
		f.Category = "Design"
		assert.False(t, f.Matches(job))

		f.Category = "Development"
		assert.True(t, f.Matches(job))
	})

	t.Run("predicates combine with AND", func(t *testing.T) {
		f := Filter{Search: "backend", Category: "Development", Type: "Part-time", Level: FilterAll}
		assert.False(t, f.Matches(job))

		f.Type = "Full-time"
		assert.True(t, f.Matches(job))
	})
}

func TestApplyFilters(t *testing.T) {
	jobs := []*Job{
		newTestJob(t, "Backend Engineer", "Acme", "Colombo", "Development"),
		newTestJob(t, "Backend Lead", "Initech", "Kandy", "Development"),
		newTestJob(t, "Product Designer", "Hooli", "Galle", "Design"),
	}

	t.Run("all-sentinel filter preserves input order", func(t *testing.T) {
		result := ApplyFilters(jobs, NewFilter())
		require.Len(t, result, 3)
		for i := range jobs {
			assert.Same(t, jobs[i], result[i])
		}
	})

	t.Run("search retains only matching listings", func(t *testing.T) {
		f := NewFilter()
		f.Search = "lead"
		result := ApplyFilters(jobs, f)
		require.Len(t, result, 1)
		assert.Equal(t, "Backend Lead", result[0].Title)
	})

	t.Run("category with no members yields empty sequence", func(t *testing.T) {
		f := NewFilter()
		f.Category = "Marketing"
		assert.Empty(t, ApplyFilters(jobs, f))
	})

	t.Run("filtering is idempotent", func(t *testing.T) {
		f := NewFilter()
		f.Search = "backend"
		once := ApplyFilters(jobs, f)
		twice := ApplyFilters(once, f)
		assert.Equal(t, once, twice)
	})

	t.Run("does not mutate the input collection", func(t *testing.T) {
		f := NewFilter()
		f.Category = "Design"
		_ = ApplyFilters(jobs, f)
		assert.Len(t, jobs, 3)
	})
}

func TestJobFilterDefaults(t *testing.T) {
	f := NewJobFilter()
	assert.True(t, f.Unrestricted())
	assert.Equal(t, 0, f.Offset())
	assert.Equal(t, 20, f.Limit())

	f = f.WithKeyword("go").WithSelections("Development", "Full-time", "Senior").WithPagination(3, 50)
	assert.False(t, f.Unrestricted())
	assert.Equal(t, 100, f.Offset())
	assert.Equal(t, 50, f.Limit())

	t.Run("page size is capped", func(t *testing.T) {
		f := NewJobFilter().WithPagination(1, 1000)
		assert.Equal(t, 100, f.Limit())
	})
}
