package geometry

import (
	"github.com/AaronCarney/collabboard-sub001/domain/board"
)

// Rect is a drag rectangle; width and height may be negative when the drag
// ran right-to-left or bottom-to-top.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Normalize returns the rect's corners ordered so x1 <= x2 and y1 <= y2
func (r Rect) Normalize() (x1, y1, x2, y2 float64) {
	x1, x2 = r.X, r.X+r.Width
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	y1, y2 = r.Y, r.Y+r.Height
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return x1, y1, x2, y2
}

// ObjectsInRect returns every object whose bounding box strictly overlaps the
// normalized rect. Overlap, not containment: clipping an object's edge is
// enough to select it.
func ObjectsInRect(rect Rect, objects []*board.Object) []*board.Object {
	x1, y1, x2, y2 := rect.Normalize()

	var hits []*board.Object
	for _, obj := range objects {
		if obj.X < x2 && obj.X+obj.Width > x1 &&
			obj.Y < y2 && obj.Y+obj.Height > y1 {
			hits = append(hits, obj)
		}
	}
	return hits
}
