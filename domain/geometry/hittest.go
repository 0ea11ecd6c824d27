package geometry

import (
	"math"

	"github.com/AaronCarney/collabboard-sub001/domain/board"
)

// HitTester is a specialized per-type hit test. When one is registered for an
// object's type its verdict is trusted exactly; there is no AABB fallback.
type HitTester func(wx, wy float64, obj *board.Object) bool

// lineHitTolerance is the half-width of the clickable band around a line
// stroke, in world units.
const lineHitTolerance = 5.0

var hitTesters = map[board.ObjectType]HitTester{
	board.TypeLine: hitTestLine,
}

// RegisterHitTester installs a specialized hit test for an object type,
// replacing any previous one.
func RegisterHitTester(t board.ObjectType, fn HitTester) {
	hitTesters[t] = fn
}

// HitTest returns the topmost object containing the world point, or nil.
// Objects are iterated in reverse so the last-inserted object wins on overlap.
func HitTest(wx, wy float64, objects []*board.Object) *board.Object {
	for i := len(objects) - 1; i >= 0; i-- {
		obj := objects[i]
		if tester, ok := hitTesters[obj.Type]; ok {
			if tester(wx, wy, obj) {
				return obj
			}
			continue
		}
		if obj.Type == board.TypeCircle {
			if hitTestEllipse(wx, wy, obj) {
				return obj
			}
			continue
		}
		if hitTestAABB(wx, wy, obj) {
			return obj
		}
	}
	return nil
}

// hitTestEllipse tests the normalized ellipse inscribed in the bounding box
func hitTestEllipse(wx, wy float64, obj *board.Object) bool {
	rx := obj.Width / 2
	ry := obj.Height / 2
	if rx == 0 || ry == 0 {
		return false
	}
	nx := (wx - obj.CenterX()) / rx
	ny := (wy - obj.CenterY()) / ry
	return nx*nx+ny*ny <= 1
}

// hitTestAABB tests bounding-box containment, inclusive of edges
func hitTestAABB(wx, wy float64, obj *board.Object) bool {
	return wx >= obj.X && wx <= obj.X+obj.Width &&
		wy >= obj.Y && wy <= obj.Y+obj.Height
}

// hitTestLine tests the distance from the point to the line segment held in
// the object's properties against the stroke width plus a tolerance band.
func hitTestLine(wx, wy float64, obj *board.Object) bool {
	tolerance := lineHitTolerance
	if half := obj.Properties.StrokeWidth / 2; half > tolerance {
		tolerance = half
	}
	return distanceToSegment(wx, wy, obj.X, obj.Y, obj.Properties.X2, obj.Properties.Y2) <= tolerance
}

// distanceToSegment returns the Euclidean distance from (px, py) to the
// closest point on the segment (x1, y1)-(x2, y2).
func distanceToSegment(px, py, x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return math.Hypot(px-x1, py-y1)
	}
	t := ((px-x1)*dx + (py-y1)*dy) / lengthSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}
