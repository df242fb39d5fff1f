package detail

import "errors"

var (
	// ErrNilRecord is returned when BuildDetailView is given no record.
	ErrNilRecord = errors.New("detail: nil record")

	// ErrNoSpecies is returned by the evolution step when the species step
	// produced nothing to follow.
	ErrNoSpecies = errors.New("detail: species data unavailable")
)
