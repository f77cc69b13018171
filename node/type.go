package node

import "fmt"

// Type identifies which bitfield layout a Descriptor uses.
type Type uint8

const (
	// TypeRegular is a B-spline patch, optionally with a single crease.
	TypeRegular Type = iota

	// TypeRecursive is an interior node whose four children are stored separately.
	TypeRecursive

	// TypeTerminal is a node with a single extraordinary vertex at one corner,
	// whose three other quadrants are regular.
	TypeTerminal

	// TypeEnd is a leaf patch at the maximum isolation level.
	TypeEnd
)

// String returns the lower-case name of the node type.
func (t Type) String() string {
	switch t {
	case TypeRegular:
		return "regular"
	case TypeRecursive:
		return "recursive"
	case TypeTerminal:
		return "terminal"
	case TypeEnd:
		return "end"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// EndCapType selects the basis that fills in an end-cap patch.
//
// It is not stored in the Descriptor: the patch table that owns the nodes
// records it once for all Recursive and Terminal nodes whose HasEndcap
// reports true.
type EndCapType uint8

const (
	// EndCapNone means no end-cap.
	EndCapNone EndCapType = iota

	// EndCapBilinear uses bilinear quads (4 control points).
	EndCapBilinear

	// EndCapBSpline uses B-spline basis patches (16 control points).
	EndCapBSpline

	// EndCapGregory uses Gregory basis patches (20 control points).
	EndCapGregory
)

// String returns the lower-case name of the end-cap type.
func (e EndCapType) String() string {
	switch e {
	case EndCapNone:
		return "none"
	case EndCapBilinear:
		return "bilinear"
	case EndCapBSpline:
		return "bspline"
	case EndCapGregory:
		return "gregory"
	default:
		return fmt.Sprintf("EndCapType(%d)", uint8(e))
	}
}

// ControlPoints returns the number of control points of one end-cap patch,
// or 0 for EndCapNone and unknown values.
func (e EndCapType) ControlPoints() int {
	switch e {
	case EndCapBilinear:
		return 4
	case EndCapBSpline:
		return 16
	case EndCapGregory:
		return 20
	default:
		return 0
	}
}
