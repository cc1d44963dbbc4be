package categorizer

import "fjacquet/stmt-categorizer/internal/models"

// ExampleSource is the read side of the learning store.
// This allows for dependency injection and easier testing.
type ExampleSource interface {
	Snapshot() []models.LearningExample
}
