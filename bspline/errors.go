package bspline

import "fmt"

// Axis names one of the two parameter directions of a surface. The column
// axis follows the first grid index (u), the row axis the second (v).
type Axis uint8

const (
	ColumnAxis Axis = iota
	RowAxis
)

func (a Axis) String() string {
	switch a {
	case ColumnAxis:
		return "column"
	case RowAxis:
		return "row"
	}
	return fmt.Sprintf("Axis(%d)", uint8(a))
}

// DegenerateInputError reports a grid line that cannot be parameterized,
// typically because all of its points coincide.
type DegenerateInputError struct {
	Axis   Axis
	Line   int // -1 when the points were not taken from a grid
	Reason string
}

func (e *DegenerateInputError) Error() string {
	if e.Line < 0 {
		return fmt.Sprintf("degenerate input: %s", e.Reason)
	}
	return fmt.Sprintf("degenerate input in %s %d: %s", e.Axis, e.Line, e.Reason)
}

// InvalidDegreeError reports a basis degree that is not in [1, samples-1].
type InvalidDegreeError struct {
	Degree, Samples int
}

func (e *InvalidDegreeError) Error() string {
	return fmt.Sprintf("invalid basis degree %d for %d samples per axis: need 1 <= degree < samples",
		e.Degree, e.Samples)
}

// SingularSystemError reports a collocation matrix that cannot be solved reliably.
type SingularSystemError struct {
	Axis      Axis
	Condition float64
	Reason    string
}

func (e *SingularSystemError) Error() string {
	return fmt.Sprintf("singular %s collocation system (condition number %8.3g): %s",
		e.Axis, e.Condition, e.Reason)
}

// InvalidGridError reports a grid that is empty, ragged, non-square or has
// missing or repeated cells.
type InvalidGridError struct {
	Reason string
}

func (e *InvalidGridError) Error() string {
	return "invalid point grid: " + e.Reason
}

// DomainError reports a surface evaluation outside of [0,1]x[0,1].
type DomainError struct {
	U, V float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("parameter (%g, %g) is outside of the surface domain [0,1]x[0,1]", e.U, e.V)
}
