package common

import "errors"

var (
	// ErrOutOfRange is returned for coordinates, zone numbers or band letters
	// that fall outside of the grid's domain.
	ErrOutOfRange = errors.New("out of range")

	// ErrInvalidZone is returned for grid zones that do not exist,
	// namely 32X, 34X and 36X which were folded into their Svalbard neighbors.
	ErrInvalidZone = errors.New("invalid grid zone")

	// ErrFormat is returned for malformed MGRS references.
	ErrFormat = errors.New("malformed MGRS reference")

	// ErrGeometryIndeterminate is returned when a line cannot be intersected
	// with an edge, eg. a horizontal line against a horizontal edge.
	ErrGeometryIndeterminate = errors.New("geometry indeterminate")
)
