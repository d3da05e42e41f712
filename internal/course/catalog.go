package course

import (
	"fmt"
	"sort"
)

// ModuleDefinition describes one unit of course content: its place in the
// linear sequence, the completion flag it owns, the flag it depends on, and
// the project answer fields its form may write.
type ModuleDefinition struct {
	Slug            string   `json:"slug"`
	Order           int      `json:"order"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	CompletionField string   `json:"completion_field"`
	DependencyField string   `json:"dependency_field,omitempty"`
	ProjectFields   []string `json:"project_fields,omitempty"`
	Lessons         int      `json:"lessons"`
	Exercises       int      `json:"exercises"`
}

// Catalog is the ordered, immutable module list. It is built once at startup
// and injected into everything that needs it; nothing mutates it at runtime.
type Catalog struct {
	modules []ModuleDefinition
	bySlug  map[string]int
}

// NewCatalog validates the module list and returns a catalog with modules
// sorted by ascending order. The list must form a single linear dependency
// chain: exactly one entry module with no dependency, and every other module
// depending on the completion field of the module immediately before it.
func NewCatalog(modules []ModuleDefinition) (*Catalog, error) {
	if len(modules) == 0 {
		return nil, fmt.Errorf("catalog must contain at least one module")
	}

	sorted := make([]ModuleDefinition, len(modules))
	copy(sorted, modules)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	bySlug := make(map[string]int, len(sorted))
	completionFields := make(map[string]bool, len(sorted))
	for i, mod := range sorted {
		if mod.Slug == "" || mod.CompletionField == "" {
			return nil, fmt.Errorf("module at order %d: slug and completion field are required", mod.Order)
		}
		if mod.Lessons < 0 || mod.Exercises < 0 {
			return nil, fmt.Errorf("module %q: lesson and exercise counts must be non-negative", mod.Slug)
		}
		if _, dup := bySlug[mod.Slug]; dup {
			return nil, fmt.Errorf("duplicate module slug %q", mod.Slug)
		}
		if completionFields[mod.CompletionField] {
			return nil, fmt.Errorf("duplicate completion field %q", mod.CompletionField)
		}
		if i > 0 && sorted[i-1].Order == mod.Order {
			return nil, fmt.Errorf("duplicate module order %d", mod.Order)
		}
		bySlug[mod.Slug] = i
		completionFields[mod.CompletionField] = true
	}

	if sorted[0].DependencyField != "" {
		return nil, fmt.Errorf("entry module %q must not have a dependency", sorted[0].Slug)
	}
	for i := 1; i < len(sorted); i++ {
		want := sorted[i-1].CompletionField
		if sorted[i].DependencyField != want {
			return nil, fmt.Errorf("module %q must depend on %q, got %q",
				sorted[i].Slug, want, sorted[i].DependencyField)
		}
	}

	return &Catalog{modules: sorted, bySlug: bySlug}, nil
}

// Modules returns the modules in ascending order.
func (c *Catalog) Modules() []ModuleDefinition {
	out := make([]ModuleDefinition, len(c.modules))
	copy(out, c.modules)
	return out
}

// Len returns the number of modules.
func (c *Catalog) Len() int {
	return len(c.modules)
}

// BySlug resolves a module by its slug.
func (c *Catalog) BySlug(slug string) (ModuleDefinition, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return ModuleDefinition{}, false
	}
	return c.modules[i], true
}

// Next returns the first module ranked after the given order, if any.
func (c *Catalog) Next(order int) (ModuleDefinition, bool) {
	for _, mod := range c.modules {
		if mod.Order > order {
			return mod, true
		}
	}
	return ModuleDefinition{}, false
}

// Summary returns the final module, which hosts the consolidated project view.
func (c *Catalog) Summary() ModuleDefinition {
	return c.modules[len(c.modules)-1]
}

// CompletionFields returns every module's completion field in catalog order.
func (c *Catalog) CompletionFields() []string {
	fields := make([]string, len(c.modules))
	for i, mod := range c.modules {
		fields[i] = mod.CompletionField
	}
	return fields
}

// OwnerOf returns the module whose form writes the given project field.
func (c *Catalog) OwnerOf(field string) (ModuleDefinition, bool) {
	for _, mod := range c.modules {
		for _, f := range mod.ProjectFields {
			if f == field {
				return mod, true
			}
		}
	}
	return ModuleDefinition{}, false
}

// DefaultCatalog returns the six-module "Computational Thinking for Teachers"
// course. It panics on an invalid definition, which can only happen through a
// programming error in the literal below.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog([]ModuleDefinition{
		{
			Slug:            "intro",
			Order:           1,
			Title:           "Introduction to Computational Thinking",
			Description:     "Understand what computational thinking is, its pillars, and why it matters for the classroom.",
			CompletionField: "intro_complete",
			ProjectFields:   []string{"project_name", "project_objective", "project_audience"},
			Lessons:         1,
			Exercises:       5,
		},
		{
			Slug:            "decomposition",
			Order:           2,
			Title:           "Decomposition",
			Description:     "Learn to break complex problems into smaller, manageable parts.",
			CompletionField: "decomposition_complete",
			DependencyField: "intro_complete",
			ProjectFields:   []string{"project_justification"},
			Lessons:         1,
			Exercises:       5,
		},
		{
			Slug:            "pattern-recognition",
			Order:           3,
			Title:           "Pattern Recognition",
			Description:     "Identify similarities and trends that simplify problem solving.",
			CompletionField: "pattern_recognition_complete",
			DependencyField: "decomposition_complete",
			ProjectFields:   []string{"project_pattern_optimization"},
			Lessons:         1,
			Exercises:       5,
		},
		{
			Slug:            "abstraction",
			Order:           4,
			Title:           "Abstraction",
			Description:     "Focus on the information that matters and set aside irrelevant detail.",
			CompletionField: "abstraction_complete",
			DependencyField: "pattern_recognition_complete",
			ProjectFields:   []string{"project_abstraction"},
			Lessons:         1,
			Exercises:       5,
		},
		{
			Slug:            "algorithms",
			Order:           5,
			Title:           "Algorithms",
			Description:     "Build ordered, logical sequences of steps that solve problems effectively.",
			CompletionField: "algorithms_complete",
			DependencyField: "abstraction_complete",
			ProjectFields:   []string{"project_algorithm"},
			Lessons:         1,
			Exercises:       5,
		},
		{
			Slug:            "final-project",
			Order:           6,
			Title:           "Final Project",
			Description:     "Apply every pillar of computational thinking to a practical classroom challenge.",
			CompletionField: "final_project_complete",
			DependencyField: "algorithms_complete",
			Lessons:         1,
			Exercises:       0,
		},
	})
	if err != nil {
		panic(fmt.Sprintf("default catalog: %v", err))
	}
	return c
}
