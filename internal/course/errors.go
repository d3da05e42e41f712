package course

import "errors"

var (
	// ErrModuleNotFound is returned when a slug resolves to no catalog module.
	ErrModuleNotFound = errors.New("module not found")
	// ErrPrerequisiteNotMet is returned when a module's prerequisite has not
	// been completed. The caller's state is never mutated in that case.
	ErrPrerequisiteNotMet = errors.New("prerequisite module not completed")
)
