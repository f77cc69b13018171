package node

import "math"

// ParamFraction returns the edge length of the node in the coarse face's
// normalized parametric space: 1 / 2^depth for a regular (quad) face.
//
// Irregular faces are split into quad sub-faces before quadtree subdivision
// starts, so the same depth covers twice the parametric range and the result
// is 1 / 2^(depth-1). Nodes of irregular faces must have depth >= 1; at depth
// 0 the fraction is 2.
func (d Descriptor) ParamFraction(regularFace bool) float32 {
	depth := d.Depth()
	if !regularFace {
		depth--
	}
	return float32(math.Ldexp(1, -depth))
}

// origin returns the node's first corner and edge length in coarse space.
func (d Descriptor) origin(regularFace bool) (pu, pv, frac float32) {
	frac = d.ParamFraction(regularFace)
	return float32(d.U()) * frac, float32(d.V()) * frac, frac
}

// MapCoarseToRefined maps (u, v) from the coarse face parameterization to
// the node's own unit square.
//
// The result is not clamped: a point outside the node's footprint maps
// outside [0, 1]².
func (d Descriptor) MapCoarseToRefined(u, v float32, regularFace bool) (float32, float32) {
	pu, pv, frac := d.origin(regularFace)
	return (u - pu) / frac, (v - pv) / frac
}

// MapRefinedToCoarse maps (u, v) from the node's unit square to the coarse
// face parameterization. It is the inverse of MapCoarseToRefined.
func (d Descriptor) MapRefinedToCoarse(u, v float32, regularFace bool) (float32, float32) {
	pu, pv, frac := d.origin(regularFace)
	return u*frac + pu, v*frac + pv
}

// Footprint returns the square covered by the node in coarse parametric
// space as its first corner and edge length.
func (d Descriptor) Footprint(regularFace bool) (u0, v0, size float32) {
	return d.origin(regularFace)
}

// Contains reports whether the coarse coordinate (u, v) lies inside the
// node's footprint. Edges are inclusive, so a point on a shared edge belongs
// to both neighbors.
func (d Descriptor) Contains(u, v float32, regularFace bool) bool {
	u0, v0, size := d.origin(regularFace)
	return u >= u0 && u <= u0+size && v >= v0 && v <= v0+size
}
