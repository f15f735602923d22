package sqtile

// Point packs a grid coordinate (x,y) into a single uint32: the low 16
// bits hold x, the high 16 bits hold y. Packing is monotone in (y,x)
// order, so sorting a slice of Points by raw numeric value visits
// cells in row-major order (all x for y=0, then all x for y=1, ...).
type Point uint32

// pack combines x and y into a Point. Both must fit in 16 bits; the
// grid construction path enforces this (see NewGrid), so pack itself
// does not check.
func pack(x, y uint16) Point {
	return Point(x) | Point(y)<<16
}

// X returns the x coordinate encoded in p.
func (p Point) X() uint16 {
	return uint16(p)
}

// Y returns the y coordinate encoded in p.
func (p Point) Y() uint16 {
	return uint16(p >> 16)
}

// XY decodes both coordinates in one call, avoiding a second shift
// when both are needed.
func (p Point) XY() (x, y uint16) {
	return uint16(p), uint16(p >> 16)
}
