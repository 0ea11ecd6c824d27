package spatial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AaronCarney/collabboard-sub001/domain/board"
	"github.com/AaronCarney/collabboard-sub001/domain/spatial"
	"github.com/AaronCarney/collabboard-sub001/tests/fixtures"
)

func TestObjectBounds_ShapeUsesLiteralGeometry(t *testing.T) {
	obj := fixtures.NewObjectBuilder().WithPosition(10, 20).WithSize(100, 60).Build()

	b := spatial.ObjectBounds(obj)

	assert.Equal(t, spatial.Bounds{MinX: 10, MinY: 20, MaxX: 110, MaxY: 80}, b)
}

func TestObjectBounds_LineNormalizedAndPadded(t *testing.T) {
	// Line drawn right-to-left and bottom-to-top
	line := fixtures.Line("board-1", 100, 80, 0, 0)

	b := spatial.ObjectBounds(line)

	assert.Equal(t, spatial.Bounds{MinX: -5, MinY: -5, MaxX: 105, MaxY: 85}, b)
}

func TestObjectBounds_ConnectorMatchesEverything(t *testing.T) {
	connector := fixtures.NewObjectBuilder().WithType(board.TypeConnector).WithSize(0, 0).Build()

	b := spatial.ObjectBounds(connector)

	assert.True(t, b.Overlaps(spatial.Bounds{MinX: -900000, MinY: -900000, MaxX: -899999, MaxY: -899999}))
	assert.True(t, b.Overlaps(spatial.Bounds{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}))
}

func TestIndex_QueryReturnsSpanningObjectOnce(t *testing.T) {
	// Arrange: one object spanning many 200-unit cells
	idx := spatial.NewIndex(spatial.DefaultCellSize)
	big := fixtures.NewObjectBuilder().WithID("big").WithPosition(0, 0).WithSize(900, 900).Build()
	idx.Insert(big)

	// Act: query window also spans several cells
	results := idx.Query(100, 100, 800, 800)

	// Assert
	require.Len(t, results, 1)
	assert.Equal(t, "big", results[0].ID)
}

func TestIndex_QueryDisjointWindow(t *testing.T) {
	idx := spatial.NewIndex(spatial.DefaultCellSize)
	idx.BulkInsert(fixtures.StickyGrid("board-1", 5, 250))

	results := idx.Query(10000, 10000, 11000, 11000)

	assert.Empty(t, results)
}

func TestIndex_SameCellFalsePositiveFiltered(t *testing.T) {
	// Arrange: two objects sharing cell (0, 0) but far apart within it
	idx := spatial.NewIndex(spatial.DefaultCellSize)
	near := fixtures.NewObjectBuilder().WithID("near").WithPosition(0, 0).WithSize(10, 10).Build()
	far := fixtures.NewObjectBuilder().WithID("far").WithPosition(150, 150).WithSize(10, 10).Build()
	idx.Insert(near)
	idx.Insert(far)

	// Act: window overlaps only the near object
	results := idx.Query(0, 0, 20, 20)

	// Assert
	require.Len(t, results, 1)
	assert.Equal(t, "near", results[0].ID)
}

func TestIndex_NegativeCoordinates(t *testing.T) {
	idx := spatial.NewIndex(spatial.DefaultCellSize)
	obj := fixtures.NewObjectBuilder().WithID("west").WithPosition(-450, -450).WithSize(100, 100).Build()
	idx.Insert(obj)

	results := idx.Query(-500, -500, -400, -400)

	require.Len(t, results, 1)
	assert.Equal(t, "west", results[0].ID)
}

func TestIndex_Clear(t *testing.T) {
	idx := spatial.NewIndex(spatial.DefaultCellSize)
	idx.BulkInsert(fixtures.StickyGrid("board-1", 3, 100))

	idx.Clear()

	assert.Empty(t, idx.Query(-1000, -1000, 1000, 1000))
}

func TestNewIndex_InvalidCellSizeFallsBack(t *testing.T) {
	idx := spatial.NewIndex(-1)
	obj := fixtures.NewObjectBuilder().WithID("a").WithPosition(0, 0).WithSize(50, 50).Build()
	idx.Insert(obj)

	assert.Len(t, idx.Query(0, 0, 100, 100), 1)
}
