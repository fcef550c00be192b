package geo

import "errors"

var (
	// ErrEmptyInput is returned when an operation needs at least one point.
	ErrEmptyInput = errors.New("empty input")

	// ErrDegenerateBounds marks a bounding box with zero latitude or longitude span.
	ErrDegenerateBounds = errors.New("degenerate bounds")

	// ErrInvalidArgument is returned for negative thresholds, radii, limits or broken viewports.
	ErrInvalidArgument = errors.New("invalid argument")
)
