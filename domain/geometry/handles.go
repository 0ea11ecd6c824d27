package geometry

import (
	"math"

	"github.com/AaronCarney/collabboard-sub001/domain/board"
)

// HandlePosition labels one of the eight resize handles
type HandlePosition string

const (
	HandleNW HandlePosition = "nw"
	HandleN  HandlePosition = "n"
	HandleNE HandlePosition = "ne"
	HandleE  HandlePosition = "e"
	HandleSE HandlePosition = "se"
	HandleS  HandlePosition = "s"
	HandleSW HandlePosition = "sw"
	HandleW  HandlePosition = "w"
)

// Handle is a resize grip on the unrotated bounding box
type Handle struct {
	Position HandlePosition
	X        float64
	Y        float64
	Cursor   string
}

// ResizeHandles returns the eight handles of the object's unrotated bounding
// box: four corners and four edge midpoints, each with a cursor hint.
func ResizeHandles(obj *board.Object) []Handle {
	x1, y1 := obj.X, obj.Y
	x2, y2 := obj.X+obj.Width, obj.Y+obj.Height
	cx, cy := obj.CenterX(), obj.CenterY()

	return []Handle{
		{Position: HandleNW, X: x1, Y: y1, Cursor: "nwse-resize"},
		{Position: HandleN, X: cx, Y: y1, Cursor: "ns-resize"},
		{Position: HandleNE, X: x2, Y: y1, Cursor: "nesw-resize"},
		{Position: HandleE, X: x2, Y: cy, Cursor: "ew-resize"},
		{Position: HandleSE, X: x2, Y: y2, Cursor: "nwse-resize"},
		{Position: HandleS, X: cx, Y: y2, Cursor: "ns-resize"},
		{Position: HandleSW, X: x1, Y: y2, Cursor: "nesw-resize"},
		{Position: HandleW, X: x1, Y: cy, Cursor: "ew-resize"},
	}
}

// handleTestOrder iterates corners before edges so overlapping handles on
// tiny objects resolve deterministically.
var handleTestOrder = []HandlePosition{
	HandleNW, HandleNE, HandleSE, HandleSW,
	HandleN, HandleE, HandleS, HandleW,
}

// HitTestHandle returns the handle under the world point, or "" when none
// matches. When the object is rotated each handle position is rotated about
// the bounding-box center before the proximity test, so a click at the
// unrotated location does not match a rotated object.
func HitTestHandle(wx, wy float64, obj *board.Object, handleSize float64) HandlePosition {
	handles := ResizeHandles(obj)
	byPosition := make(map[HandlePosition]Handle, len(handles))
	for _, h := range handles {
		byPosition[h.Position] = h
	}

	cx, cy := obj.CenterX(), obj.CenterY()
	sin, cos := math.Sincos(obj.Rotation)

	for _, pos := range handleTestOrder {
		h := byPosition[pos]
		hx, hy := h.X, h.Y
		if obj.Rotation != 0 {
			dx := h.X - cx
			dy := h.Y - cy
			hx = cx + dx*cos - dy*sin
			hy = cy + dx*sin + dy*cos
		}
		if math.Abs(wx-hx) <= handleSize && math.Abs(wy-hy) <= handleSize {
			return pos
		}
	}
	return ""
}
