package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeModules() []ModuleDefinition {
	return []ModuleDefinition{
		{Slug: "a", Order: 1, Title: "A", CompletionField: "a_complete",
			ProjectFields: []string{"project_alpha"}, Lessons: 1, Exercises: 2},
		{Slug: "b", Order: 2, Title: "B", CompletionField: "b_complete",
			DependencyField: "a_complete", ProjectFields: []string{"project_beta"}, Lessons: 1, Exercises: 3},
		{Slug: "c", Order: 3, Title: "C", CompletionField: "c_complete",
			DependencyField: "b_complete", Lessons: 1},
	}
}

func TestNewCatalogSortsByOrder(t *testing.T) {
	mods := threeModules()
	// Shuffle the declaration order; the catalog must sort it back.
	catalog, err := NewCatalog([]ModuleDefinition{mods[2], mods[0], mods[1]})
	require.NoError(t, err)

	var slugs []string
	for _, mod := range catalog.Modules() {
		slugs = append(slugs, mod.Slug)
	}
	assert.Equal(t, []string{"a", "b", "c"}, slugs)
}

func TestNewCatalogRejectsBrokenChains(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]ModuleDefinition) []ModuleDefinition
	}{
		{"empty catalog", func(m []ModuleDefinition) []ModuleDefinition {
			return nil
		}},
		{"entry module with dependency", func(m []ModuleDefinition) []ModuleDefinition {
			m[0].DependencyField = "c_complete"
			return m
		}},
		{"two entry modules", func(m []ModuleDefinition) []ModuleDefinition {
			m[1].DependencyField = ""
			return m
		}},
		{"dependency skips a module", func(m []ModuleDefinition) []ModuleDefinition {
			m[2].DependencyField = "a_complete"
			return m
		}},
		{"dependency on unknown field", func(m []ModuleDefinition) []ModuleDefinition {
			m[1].DependencyField = "missing_complete"
			return m
		}},
		{"duplicate slug", func(m []ModuleDefinition) []ModuleDefinition {
			m[1].Slug = "a"
			return m
		}},
		{"duplicate completion field", func(m []ModuleDefinition) []ModuleDefinition {
			m[2].CompletionField = "a_complete"
			m[2].DependencyField = "b_complete"
			return m
		}},
		{"duplicate order", func(m []ModuleDefinition) []ModuleDefinition {
			m[1].Order = 1
			return m
		}},
		{"negative lesson count", func(m []ModuleDefinition) []ModuleDefinition {
			m[0].Lessons = -1
			return m
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.mutate(threeModules()))
			assert.Error(t, err)
		})
	}
}

func TestCatalogLookups(t *testing.T) {
	catalog, err := NewCatalog(threeModules())
	require.NoError(t, err)

	mod, ok := catalog.BySlug("b")
	require.True(t, ok)
	assert.Equal(t, "b_complete", mod.CompletionField)

	_, ok = catalog.BySlug("missing")
	assert.False(t, ok)

	next, ok := catalog.Next(1)
	require.True(t, ok)
	assert.Equal(t, "b", next.Slug)

	_, ok = catalog.Next(3)
	assert.False(t, ok, "last module has no successor")

	assert.Equal(t, "c", catalog.Summary().Slug)
	assert.Equal(t, []string{"a_complete", "b_complete", "c_complete"}, catalog.CompletionFields())

	owner, ok := catalog.OwnerOf("project_beta")
	require.True(t, ok)
	assert.Equal(t, "b", owner.Slug)

	_, ok = catalog.OwnerOf("project_gamma")
	assert.False(t, ok)
}

func TestDefaultCatalogIsValid(t *testing.T) {
	catalog := DefaultCatalog()
	assert.Equal(t, 6, catalog.Len())
	assert.Equal(t, "intro", catalog.Modules()[0].Slug)
	assert.Equal(t, "final-project", catalog.Summary().Slug)
	assert.Empty(t, catalog.Summary().ProjectFields, "summary module declares no answer fields")
}
