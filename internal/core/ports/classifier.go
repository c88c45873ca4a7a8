package ports

import "io"

// LogClassifier inspects a synthesis log for constraint violations.
// It exists as its own boundary so the pattern set can evolve without
// touching pipeline control flow.
//
//go:generate mockgen -source=classifier.go -destination=mocks/mock_classifier.go -package=mocks
type LogClassifier interface {
	// Scan reads the log and returns ErrConstraintViolation when the tool
	// reported unmet timing constraints, regardless of its exit status.
	// A clean log returns nil.
	Scan(r io.Reader) error
}
