package cell

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidParameter indicates a model parameter or timestep outside
	// its valid range.
	ErrInvalidParameter = errors.New("cell: invalid parameter")

	// ErrInvalidInput indicates a malformed run argument such as a
	// negative step count.
	ErrInvalidInput = errors.New("cell: invalid input")

	// ErrDimensionMismatch indicates mismatched state/model dimensions.
	ErrDimensionMismatch = errors.New("cell: dimension mismatch between state and model")
)
