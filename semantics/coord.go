package semantics

import "fmt"

// Coordinate is a point in the tonal space. The space is divided into
// enharmonic blocks of 4×3 points; X,Y locate the point within its block
// (0 ≤ X < 4, 0 ≤ Y < 3), BlockX,BlockY locate the block.
type Coordinate struct {
	X, Y           int
	BlockX, BlockY int
}

// NewCoordinate creates a coordinate, wrapping X and Y into the block.
func NewCoordinate(x, y, blockX, blockY int) Coordinate {
	return Coordinate{X: mod(x, 4), Y: mod(y, 3), BlockX: blockX, BlockY: blockY}
}

// FromHarmonicCoord locates a 2D harmonic coordinate, relative to the
// origin block, in the enharmonic space.
func FromHarmonicCoord(x, y int) Coordinate {
	return Coordinate{}.Add(x, y)
}

// HarmonicCoord returns the 2D coordinate relative to the origin block.
func (c Coordinate) HarmonicCoord() (int, int) {
	return 4*c.BlockX + c.X, 3*c.BlockY - c.BlockX + c.Y
}

// Add moves the point by a 2D harmonic vector. The y coordinate wraps at a
// position depending on how far we move along x:
//
//    <(0,1)/(0,0)> + (-1,0) = <(3,0)/(-1,0)>
//    <(1,0)/(0,0)> + (-1,0) = <(0,0)/(0,0)>
//
func (c Coordinate) Add(dx, dy int) Coordinate {
	absx := c.X + dx
	absy := c.Y + dy
	shiftx := floorDiv(absx, 4)
	shifty := floorDiv(absy+shiftx, 3)
	return Coordinate{
		X:      mod(absx, 4),
		Y:      mod(absy+shiftx, 3),
		BlockX: c.BlockX + shiftx,
		BlockY: c.BlockY + shifty,
	}
}

// Sub returns the harmonic vector leading from other to c.
func (c Coordinate) Sub(other Coordinate) (int, int) {
	x1, y1 := c.HarmonicCoord()
	x2, y2 := other.HarmonicCoord()
	return x1 - x2, y1 - y2
}

// IsZeroBlock is true if the point lies within the origin block.
func (c Coordinate) IsZeroBlock() bool {
	return c.BlockX == 0 && c.BlockY == 0
}

func (c Coordinate) String() string {
	if c.IsZeroBlock() {
		return fmt.Sprintf("<%d,%d>", c.X, c.Y)
	}
	return fmt.Sprintf("<(%d,%d)/(%d,%d)>", c.X, c.Y, c.BlockX, c.BlockY)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// RootCoordinate returns the point of the origin block whose equal
// temperament pitch class is root. A step along x is a fifth (7 semitones),
// a step along y a major third (4 semitones):
//
//    8  3  10 5
//    4  11 6  1
//    0  7  2  9
//
func RootCoordinate(root int) Coordinate {
	root = mod(root, 12)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if mod(7*x+4*y, 12) == root {
				return Coordinate{X: x, Y: y}
			}
		}
	}
	panic("unreachable")
}

// Transpose makes coordinates, given relative to the root of a chord,
// absolute by moving them by the chord root's point. Blocks are kept.
func (s *Semantics) Transpose(root int) {
	if s.root == NoNode {
		return
	}
	r := RootCoordinate(root)
	s.walk(s.root, func(id NodeID) {
		if s.nodes[id].kind == CoordinateKind {
			c := s.nodes[id].coord
			s.nodes[id].coord = NewCoordinate(c.X+r.X, c.Y+r.Y, c.BlockX, c.BlockY)
		}
	})
}
