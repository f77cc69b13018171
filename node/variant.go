package node

// Node is the typed view of a Descriptor. It is implemented by Regular,
// Recursive, Terminal and End, each carrying only the fields its layout
// defines.
type Node interface {
	// Type returns the node type of the variant.
	Type() Type

	// Encode packs the variant into a Descriptor.
	Encode() Descriptor

	isNode()
}

// Regular holds the fields of a Regular node.
type Regular struct {
	SingleCrease bool
	Depth        int
	Boundary     int
	U, V         int
}

// End holds the fields of an End node.
type End struct {
	Depth    int
	Boundary int
	U, V     int
}

// Recursive holds the fields of a Recursive node.
type Recursive struct {
	Depth     int
	U, V      int
	HasEndcap bool
}

// Terminal holds the fields of a Terminal node.
type Terminal struct {
	Depth     int
	EvIndex   int
	U, V      int
	HasEndcap bool
}

var (
	_ Node = Regular{}
	_ Node = End{}
	_ Node = Recursive{}
	_ Node = Terminal{}
)

// Type returns TypeRegular.
func (Regular) Type() Type { return TypeRegular }

// Type returns TypeEnd.
func (End) Type() Type { return TypeEnd }

// Type returns TypeRecursive.
func (Recursive) Type() Type { return TypeRecursive }

// Type returns TypeTerminal.
func (Terminal) Type() Type { return TypeTerminal }

func (Regular) isNode()   {}
func (End) isNode()       {}
func (Recursive) isNode() {}
func (Terminal) isNode()  {}

// Encode packs n with Descriptor.SetRegular.
func (n Regular) Encode() Descriptor {
	var d Descriptor
	d.SetRegular(n.SingleCrease, n.Depth, n.Boundary, n.U, n.V)
	return d
}

// Encode packs n with Descriptor.SetEnd.
func (n End) Encode() Descriptor {
	var d Descriptor
	d.SetEnd(n.Depth, n.Boundary, n.U, n.V)
	return d
}

// Encode packs n with Descriptor.SetRecursive.
func (n Recursive) Encode() Descriptor {
	var d Descriptor
	d.SetRecursive(n.Depth, n.U, n.V, n.HasEndcap)
	return d
}

// Encode packs n with Descriptor.SetTerminal. Bit 7 of the word stays zero.
func (n Terminal) Encode() Descriptor {
	var d Descriptor
	d.SetTerminal(n.Depth, n.EvIndex, n.U, n.V, n.HasEndcap)
	return d
}

// Decode returns the typed view of d. Only the fields defined for d's type
// are read, so the result never carries meaningless values.
func Decode(d Descriptor) Node {
	switch d.Type() {
	case TypeRegular:
		return Regular{
			SingleCrease: d.HasSharpness(),
			Depth:        d.Depth(),
			Boundary:     d.BoundaryMask(),
			U:            d.U(),
			V:            d.V(),
		}
	case TypeRecursive:
		return Recursive{Depth: d.Depth(), U: d.U(), V: d.V(), HasEndcap: d.HasEndcap()}
	case TypeTerminal:
		return Terminal{
			Depth:     d.Depth(),
			EvIndex:   d.EvIndex(),
			U:         d.U(),
			V:         d.V(),
			HasEndcap: d.HasEndcap(),
		}
	default:
		return End{Depth: d.Depth(), Boundary: d.BoundaryMask(), U: d.U(), V: d.V()}
	}
}
