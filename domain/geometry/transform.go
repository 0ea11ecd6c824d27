// Package geometry is the pure, stateless kernel behind direct manipulation:
// coordinate transforms, hit-testing, resize-handle geometry, rubber-band
// selection and connector port computation. Nothing in here holds state or
// touches the network; every function is safe to call from anywhere.
package geometry

import (
	"github.com/AaronCarney/collabboard-sub001/domain/board"
)

// ScreenToWorld converts a screen-space point to world coordinates. It is the
// exact inverse of WorldToScreen.
func ScreenToWorld(sx, sy float64, camera board.Camera) board.Point {
	return board.Point{
		X: (sx - camera.X) / camera.Zoom,
		Y: (sy - camera.Y) / camera.Zoom,
	}
}

// WorldToScreen converts a world-space point to screen coordinates
func WorldToScreen(wx, wy float64, camera board.Camera) board.Point {
	return board.Point{
		X: wx*camera.Zoom + camera.X,
		Y: wy*camera.Zoom + camera.Y,
	}
}
