// Package frames implements containment and grouping for frame objects:
// which frame an object belongs to, what a frame's children are, and how
// moves and deletions propagate between them.
package frames

import (
	"time"

	"github.com/AaronCarney/collabboard-sub001/domain/board"
)

// IsInsideFrame reports whether the child's center point lies within the
// frame's bounding box, inclusive of edges.
func IsInsideFrame(child, frame *board.Object) bool {
	cx, cy := child.CenterX(), child.CenterY()
	return cx >= frame.X && cx <= frame.X+frame.Width &&
		cy >= frame.Y && cy <= frame.Y+frame.Height
}

// ChildrenOf returns every object whose parent_frame_id equals frameID. The
// frame itself is excluded to guard against accidental self-reference.
func ChildrenOf(frameID string, objects []*board.Object) []*board.Object {
	var children []*board.Object
	for _, obj := range objects {
		if obj.ID == frameID {
			continue
		}
		if obj.ParentFrameID != nil && *obj.ParentFrameID == frameID {
			children = append(children, obj)
		}
	}
	return children
}

// FindContainingFrame returns the first frame, in iteration order of the
// objects collection, whose bounds contain the object's center. This is a
// deliberate first-match policy, not innermost or topmost; see DESIGN.md for
// the overlapping-frames tie-break decision.
func FindContainingFrame(obj *board.Object, objects []*board.Object) *board.Object {
	for _, candidate := range objects {
		if candidate.Type != board.TypeFrame || candidate.ID == obj.ID {
			continue
		}
		if IsInsideFrame(obj, candidate) {
			return candidate
		}
	}
	return nil
}

// AdoptInto recomputes the parent frame for an object after a move and
// returns the new parent_frame_id, or nil when no frame contains it.
func AdoptInto(obj *board.Object, objects []*board.Object) *string {
	frame := FindContainingFrame(obj, objects)
	if frame == nil {
		return nil
	}
	id := frame.ID
	return &id
}

// ApplyFrameMove translates every current child of the frame by (dx, dy),
// bumping each child's version and refreshing its updated_at. Only the
// changed children are returned, as clones; the caller merges them back.
func ApplyFrameMove(frameID string, dx, dy float64, objects []*board.Object) []*board.Object {
	now := time.Now().UTC()

	var moved []*board.Object
	for _, child := range ChildrenOf(frameID, objects) {
		cp := child.Clone()
		cp.X += dx
		cp.Y += dy
		cp.Version++
		cp.UpdatedAt = now
		moved = append(moved, cp)
	}
	return moved
}

// NullifyChildren detaches every child of the frame, setting parent_frame_id
// to nil. Detachment is structural, not a content edit, so versions are left
// untouched. Returns the detached children as clones for the caller to merge.
func NullifyChildren(frameID string, objects []*board.Object) []*board.Object {
	var detached []*board.Object
	for _, child := range ChildrenOf(frameID, objects) {
		cp := child.Clone()
		cp.ParentFrameID = nil
		detached = append(detached, cp)
	}
	return detached
}
