package geometry

import (
	"math"

	"github.com/AaronCarney/collabboard-sub001/domain/board"
)

// Port names a connector attachment point on an object
type Port string

const (
	PortTop    Port = "top"
	PortRight  Port = "right"
	PortBottom Port = "bottom"
	PortLeft   Port = "left"
	PortCenter Port = "center"
)

// PortPoint returns the world position of a named port on the object
func PortPoint(obj *board.Object, port Port) board.Point {
	switch port {
	case PortTop:
		return board.Point{X: obj.CenterX(), Y: obj.Y}
	case PortRight:
		return board.Point{X: obj.X + obj.Width, Y: obj.CenterY()}
	case PortBottom:
		return board.Point{X: obj.CenterX(), Y: obj.Y + obj.Height}
	case PortLeft:
		return board.Point{X: obj.X, Y: obj.CenterY()}
	default:
		return board.Point{X: obj.CenterX(), Y: obj.CenterY()}
	}
}

// portOrder fixes the tie-break: the first evaluated candidate wins
var portOrder = []Port{PortTop, PortRight, PortBottom, PortLeft, PortCenter}

// NearestPort returns the port whose point is Euclidean-nearest to the given
// world coordinates.
func NearestPort(obj *board.Object, wx, wy float64) Port {
	best := portOrder[0]
	bestDist := math.Inf(1)
	for _, port := range portOrder {
		p := PortPoint(obj, port)
		dist := math.Hypot(wx-p.X, wy-p.Y)
		if dist < bestDist {
			best = port
			bestDist = dist
		}
	}
	return best
}
