// Package spatial provides a uniform-grid index over board objects so viewport
// queries touch only the cells a rectangle covers instead of scanning every
// object. The index is never the authoritative store: callers must rebuild or
// patch it whenever the board's object set changes geometry.
package spatial

import (
	"github.com/AaronCarney/collabboard-sub001/domain/board"
)

const (
	// linePadding widens a line's near-zero-thickness envelope so it stays
	// queryable.
	linePadding = 5.0

	// connectorExtent is the half-size of the placeholder envelope given to
	// connectors, whose true geometry is only known once both endpoint
	// objects are resolved at render time. The envelope is effectively
	// unbounded so connectors match every query.
	connectorExtent = 1_000_000.0
)

// Bounds is an axis-aligned bounding box in world coordinates
type Bounds struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Overlaps reports strict AABB overlap with another bounds
func (b Bounds) Overlaps(other Bounds) bool {
	return b.MinX < other.MaxX && b.MaxX > other.MinX &&
		b.MinY < other.MaxY && b.MaxY > other.MinY
}

// ObjectBounds computes the index envelope for an object. Lines get their
// (x, y)-(x2, y2) segment envelope normalized and padded; connectors get the
// placeholder extent; every other type uses its literal geometry.
func ObjectBounds(obj *board.Object) Bounds {
	switch obj.Type {
	case board.TypeLine:
		x1, x2 := obj.X, obj.Properties.X2
		if x1 > x2 {
			x1, x2 = x2, x1
		}
		y1, y2 := obj.Y, obj.Properties.Y2
		if y1 > y2 {
			y1, y2 = y2, y1
		}
		return Bounds{
			MinX: x1 - linePadding,
			MinY: y1 - linePadding,
			MaxX: x2 + linePadding,
			MaxY: y2 + linePadding,
		}
	case board.TypeConnector:
		return Bounds{
			MinX: -connectorExtent,
			MinY: -connectorExtent,
			MaxX: connectorExtent,
			MaxY: connectorExtent,
		}
	default:
		return Bounds{
			MinX: obj.X,
			MinY: obj.Y,
			MaxX: obj.X + obj.Width,
			MaxY: obj.Y + obj.Height,
		}
	}
}
