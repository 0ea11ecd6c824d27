package board

// Camera is ephemeral view state: pan offset in screen-space units applied
// after scaling, and a positive zoom factor (screen pixels per world unit).
// It is never persisted.
type Camera struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// DefaultCamera returns the initial view for a freshly opened board
func DefaultCamera() Camera {
	return Camera{X: 0, Y: 0, Zoom: 1}
}

// Point is a position in world coordinates
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
