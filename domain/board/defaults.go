package board

import (
	"time"

	"github.com/google/uuid"
)

// typeDefault describes the initial size, color and content a tool gives a
// freshly created object of its type.
type typeDefault struct {
	width   float64
	height  float64
	color   string
	content string
}

var typeDefaults = map[ObjectType]typeDefault{
	TypeStickyNote: {width: 200, height: 200, color: "#FFD966", content: "New note"},
	TypeRectangle:  {width: 160, height: 100, color: "#A4C2F4"},
	TypeCircle:     {width: 120, height: 120, color: "#B6D7A8"},
	TypeText:       {width: 200, height: 40, color: "#1A1A2E", content: "Text"},
	TypeLine:       {width: 0, height: 0, color: "#1A1A2E"},
	TypeConnector:  {width: 0, height: 0, color: "#1A1A2E"},
	TypeFrame:      {width: 400, height: 300, color: "#F3F3F3", content: "Frame"},
}

// NewObject builds an object of the given type at (x, y) with the per-type
// defaults, version 1 and fresh timestamps.
func NewObject(objectType ObjectType, boardID, createdBy string, x, y float64) *Object {
	d := typeDefaults[objectType]
	now := time.Now().UTC()

	obj := &Object{
		ID:        uuid.New().String(),
		BoardID:   boardID,
		Type:      objectType,
		X:         x,
		Y:         y,
		Width:     d.width,
		Height:    d.height,
		Content:   d.content,
		Color:     d.color,
		Opacity:   1,
		FontSize:  14,
		Version:   1,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch objectType {
	case TypeLine:
		// Lines start as a short horizontal stroke; the extent lives in
		// properties, not in width/height.
		obj.Properties = Properties{
			X2:          x + 120,
			Y2:          y,
			ArrowStyle:  "none",
			StrokeStyle: "solid",
			StrokeWidth: 2,
		}
	case TypeConnector:
		obj.Properties = Properties{
			ArrowStyle:  "end",
			StrokeStyle: "solid",
		}
	}

	return obj
}
