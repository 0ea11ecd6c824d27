package fixtures

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AaronCarney/collabboard-sub001/domain/board"
)

// ObjectBuilder helps create test objects with default values
type ObjectBuilder struct {
	id          string
	boardID     string
	objectType  board.ObjectType
	x, y        float64
	width       float64
	height      float64
	rotation    float64
	content     string
	color       string
	opacity     float64
	version     int
	createdBy   string
	parentFrame *string
	properties  board.Properties
}

func NewObjectBuilder() *ObjectBuilder {
	return &ObjectBuilder{
		id:         uuid.New().String(),
		boardID:    "test-board-123",
		objectType: board.TypeStickyNote,
		x:          0,
		y:          0,
		width:      200,
		height:     200,
		content:    "Test note",
		color:      "#FFD966",
		opacity:    1,
		version:    1,
		createdBy:  "test-user-123",
	}
}

func (b *ObjectBuilder) WithID(id string) *ObjectBuilder {
	b.id = id
	return b
}

func (b *ObjectBuilder) WithBoardID(boardID string) *ObjectBuilder {
	b.boardID = boardID
	return b
}

func (b *ObjectBuilder) WithType(objectType board.ObjectType) *ObjectBuilder {
	b.objectType = objectType
	return b
}

func (b *ObjectBuilder) WithPosition(x, y float64) *ObjectBuilder {
	b.x, b.y = x, y
	return b
}

func (b *ObjectBuilder) WithSize(width, height float64) *ObjectBuilder {
	b.width, b.height = width, height
	return b
}

func (b *ObjectBuilder) WithRotation(rotation float64) *ObjectBuilder {
	b.rotation = rotation
	return b
}

func (b *ObjectBuilder) WithContent(content string) *ObjectBuilder {
	b.content = content
	return b
}

func (b *ObjectBuilder) WithColor(color string) *ObjectBuilder {
	b.color = color
	return b
}

func (b *ObjectBuilder) WithVersion(version int) *ObjectBuilder {
	b.version = version
	return b
}

func (b *ObjectBuilder) WithCreatedBy(userID string) *ObjectBuilder {
	b.createdBy = userID
	return b
}

func (b *ObjectBuilder) WithParentFrame(frameID string) *ObjectBuilder {
	b.parentFrame = &frameID
	return b
}

func (b *ObjectBuilder) WithProperties(props board.Properties) *ObjectBuilder {
	b.properties = props
	return b
}

func (b *ObjectBuilder) Build() *board.Object {
	now := time.Now().UTC()
	return &board.Object{
		ID:            b.id,
		BoardID:       b.boardID,
		Type:          b.objectType,
		X:             b.x,
		Y:             b.y,
		Width:         b.width,
		Height:        b.height,
		Rotation:      b.rotation,
		Content:       b.content,
		Color:         b.color,
		Opacity:       b.opacity,
		Version:       b.version,
		CreatedBy:     b.createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
		ParentFrameID: b.parentFrame,
		Properties:    b.properties,
	}
}

// Frame creates a frame object sized to hold other fixtures.
func Frame(boardID string, x, y, width, height float64) *board.Object {
	return NewObjectBuilder().
		WithBoardID(boardID).
		WithType(board.TypeFrame).
		WithPosition(x, y).
		WithSize(width, height).
		WithContent("Frame").
		WithColor("#FFFFFF").
		Build()
}

// Line creates a line object with padded endpoint properties.
func Line(boardID string, x1, y1, x2, y2 float64) *board.Object {
	return NewObjectBuilder().
		WithBoardID(boardID).
		WithType(board.TypeLine).
		WithPosition(x1, y1).
		WithSize(0, 0).
		WithContent("").
		WithProperties(board.Properties{
			X2:          x2,
			Y2:          y2,
			ArrowStyle:  "none",
			StrokeStyle: "solid",
			StrokeWidth: 2,
		}).
		Build()
}

// StickyGrid creates count sticky notes spaced along the x axis.
func StickyGrid(boardID string, count int, spacing float64) []*board.Object {
	objects := make([]*board.Object, count)
	for i := 0; i < count; i++ {
		objects[i] = NewObjectBuilder().
			WithBoardID(boardID).
			WithPosition(float64(i)*spacing, 0).
			WithContent(fmt.Sprintf("Note %d", i+1)).
			Build()
	}
	return objects
}
