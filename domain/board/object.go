package board

import (
	"time"

	pkgerrors "github.com/AaronCarney/collabboard-sub001/pkg/errors"
)

// ObjectType discriminates the kinds of objects a board can hold
type ObjectType string

const (
	TypeStickyNote ObjectType = "sticky_note"
	TypeRectangle  ObjectType = "rectangle"
	TypeCircle     ObjectType = "circle"
	TypeText       ObjectType = "text"
	TypeLine       ObjectType = "line"
	TypeConnector  ObjectType = "connector"
	TypeFrame      ObjectType = "frame"
)

// ObjectTypes lists every valid object type
var ObjectTypes = []ObjectType{
	TypeStickyNote, TypeRectangle, TypeCircle, TypeText,
	TypeLine, TypeConnector, TypeFrame,
}

// Properties carries the type-dependent payload of an object. Simple shapes
// leave it empty; lines carry their second endpoint and stroke attributes;
// connectors carry the ids and ports of the two objects they join.
type Properties struct {
	X2           float64 `json:"x2,omitempty"`
	Y2           float64 `json:"y2,omitempty"`
	FromObjectID string  `json:"from_object_id,omitempty"`
	ToObjectID   string  `json:"to_object_id,omitempty"`
	FromPort     string  `json:"from_port,omitempty"`
	ToPort       string  `json:"to_port,omitempty"`
	ArrowStyle   string  `json:"arrow_style,omitempty"`
	StrokeStyle  string  `json:"stroke_style,omitempty"`
	StrokeWidth  float64 `json:"stroke_width,omitempty"`
}

// Object is the universal board entity. Rotation is in radians. Version is a
// monotonically increasing counter starting at 1; every mutation bumps it by
// exactly one and remote updates are merged last-write-wins on it.
type Object struct {
	ID            string     `json:"id" validate:"required"`
	BoardID       string     `json:"board_id" validate:"required"`
	Type          ObjectType `json:"type" validate:"required"`
	X             float64    `json:"x"`
	Y             float64    `json:"y"`
	Width         float64    `json:"width"`
	Height        float64    `json:"height"`
	Rotation      float64    `json:"rotation"`
	Content       string     `json:"content"`
	Color         string     `json:"color"`
	Opacity       float64    `json:"opacity" validate:"gte=0,lte=1"`
	FontSize      float64    `json:"font_size,omitempty"`
	FontFamily    string     `json:"font_family,omitempty"`
	Version       int        `json:"version" validate:"gte=0"`
	CreatedBy     string     `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ParentFrameID *string    `json:"parent_frame_id"`
	Properties    Properties `json:"properties"`
}

// Clone returns a deep copy so merged remote state never aliases caller memory
func (o *Object) Clone() *Object {
	cp := *o
	if o.ParentFrameID != nil {
		id := *o.ParentFrameID
		cp.ParentFrameID = &id
	}
	return &cp
}

// CenterX returns the x coordinate of the bounding-box center
func (o *Object) CenterX() float64 { return o.X + o.Width/2 }

// CenterY returns the y coordinate of the bounding-box center
func (o *Object) CenterY() float64 { return o.Y + o.Height/2 }

// Validate checks the structural invariants that must hold before an object
// is accepted into local state or persisted.
func (o *Object) Validate() error {
	if o.ID == "" {
		return pkgerrors.NewValidation("object id cannot be empty")
	}
	if o.BoardID == "" {
		return pkgerrors.NewValidation("board id cannot be empty")
	}
	if !isValidType(o.Type) {
		return pkgerrors.NewValidation("unknown object type: " + string(o.Type))
	}
	if o.Version < 0 {
		return pkgerrors.NewValidation("version cannot be negative")
	}
	if o.Opacity < 0 || o.Opacity > 1 {
		return pkgerrors.NewValidation("opacity must be within [0, 1]")
	}
	if o.ParentFrameID != nil && *o.ParentFrameID == o.ID {
		return pkgerrors.NewValidation("object cannot be its own parent frame")
	}
	return nil
}

func isValidType(t ObjectType) bool {
	for _, known := range ObjectTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ShouldAcceptUpdate implements the last-write-wins rule: an incoming version
// wins when it is greater than or equal to the one held locally. Ties go to
// the incoming value.
func ShouldAcceptUpdate(incomingVersion, existingVersion int) bool {
	return incomingVersion >= existingVersion
}
