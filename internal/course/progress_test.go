package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ctcourse/pkg/models"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := NewCatalog(threeModules())
	require.NoError(t, err)
	return catalog
}

func TestComputeProgressEmptyRecord(t *testing.T) {
	summary := ComputeProgress(testCatalog(t), models.ProgressRecord{})

	require.Len(t, summary.Modules, 3)
	assert.True(t, summary.Modules[0].Unlocked, "entry module is always unlocked")
	assert.False(t, summary.Modules[0].Completed)
	assert.False(t, summary.Modules[1].Unlocked)
	assert.False(t, summary.Modules[2].Unlocked)
	assert.Equal(t, 0, summary.OverallPercent)
	assert.Equal(t, 3, summary.TotalLessons)
	assert.Equal(t, 5, summary.TotalExercises)
}

func TestComputeProgressPercentTruncates(t *testing.T) {
	catalog := DefaultCatalog()

	// 1 of 6 is 16, not 17.
	summary := ComputeProgress(catalog, models.ProgressRecord{"intro_complete": true})
	assert.Equal(t, 16, summary.OverallPercent)

	summary = ComputeProgress(catalog, models.ProgressRecord{
		"intro_complete":               true,
		"decomposition_complete":       true,
		"pattern_recognition_complete": true,
	})
	assert.Equal(t, 50, summary.OverallPercent)
}

func TestComputeProgressDirectDependencyOnly(t *testing.T) {
	// Module b complete while a is not: c unlocks anyway, because the check
	// looks only at the immediate prerequisite. This is the intended soft
	// gating, not transitive verification.
	summary := ComputeProgress(testCatalog(t), models.ProgressRecord{"b_complete": true})

	assert.False(t, summary.Modules[0].Completed)
	assert.True(t, summary.Modules[1].Completed)
	assert.True(t, summary.Modules[2].Unlocked)
}

func TestComputeProgressAggregates(t *testing.T) {
	summary := ComputeProgress(testCatalog(t), models.ProgressRecord{
		"a_complete": true,
		"b_complete": true,
	})

	assert.Equal(t, 2, summary.CompletedModules)
	assert.Equal(t, 2, summary.CompletedLessons)
	assert.Equal(t, 5, summary.CompletedExercises)
	assert.Equal(t, 66, summary.OverallPercent)
}

func TestCertificateEligible(t *testing.T) {
	catalog := testCatalog(t)

	summary := ComputeProgress(catalog, models.ProgressRecord{
		"a_complete": true,
		"b_complete": true,
	})
	assert.False(t, CertificateEligible(summary))

	summary = ComputeProgress(catalog, models.ProgressRecord{
		"a_complete": true,
		"b_complete": true,
		"c_complete": true,
	})
	assert.True(t, CertificateEligible(summary))
	assert.Equal(t, 100, summary.OverallPercent)
}
