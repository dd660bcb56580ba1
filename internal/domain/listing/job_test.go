package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJob(t *testing.T) {
	t.Run("creates listing with trimmed fields", func(t *testing.T) {
		job, err := NewJob("  Backend Engineer ", " Acme ", " Colombo ", "LKR 150,000", "desc")
		require.NoError(t, err)

		assert.Equal(t, "Backend Engineer", job.Title)
		assert.Equal(t, "Acme", job.Company)
		assert.Equal(t, "Colombo", job.Location)
		assert.False(t, job.PostedAt.IsZero())

		events := job.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeJobPosted, events[0].EventType())
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewJob("", "Acme", "", "", "")
		assert.Error(t, err)
	})

	t.Run("rejects empty company", func(t *testing.T) {
		_, err := NewJob("Backend Engineer", "  ", "", "", "")
		assert.Error(t, err)
	})
}

func TestJobClassify(t *testing.T) {
	job, err := NewJob("Backend Engineer", "Acme", "Colombo", "", "")
	require.NoError(t, err)

	t.Run("accepts known category", func(t *testing.T) {
		require.NoError(t, job.Classify("Development", "Full-time", "Senior"))
		assert.Equal(t, "Development", job.Category)
		assert.Equal(t, "Full-time", job.Type)
		assert.Equal(t, "Senior", job.Level)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		err := job.Classify("Cooking", "", "")
		assert.Error(t, err)
	})

	t.Run("the sentinel is not a real category", func(t *testing.T) {
		err := job.Classify(FilterAll, "", "")
		assert.Error(t, err)
	})
}

func TestJobSetDetails(t *testing.T) {
	job, err := NewJob("Backend Engineer", "Acme", "", "", "")
	require.NoError(t, err)

	job.SetDetails([]string{" Go ", "", "SQL"}, nil, []string{"Insurance"})
	assert.Equal(t, []string{"Go", "SQL"}, job.Requirements)
	assert.Empty(t, job.Responsibilities)
	assert.Equal(t, []string{"Insurance"}, job.Benefits)
}
