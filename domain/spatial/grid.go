package spatial

import (
	"math"

	"github.com/AaronCarney/collabboard-sub001/domain/board"
)

// DefaultCellSize is the grid pitch in world units
const DefaultCellSize = 200.0

type cellKey struct {
	col int
	row int
}

// Index is a uniform-grid multi-map from grid cell to object references. An
// object spanning several cells is referenced from each of them, never copied.
type Index struct {
	cellSize float64
	cells    map[cellKey][]*board.Object
}

// NewIndex creates an index with the given cell size; sizes <= 0 fall back to
// the default.
func NewIndex(cellSize float64) *Index {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Index{
		cellSize: cellSize,
		cells:    make(map[cellKey][]*board.Object),
	}
}

// cellRange computes the inclusive range of cells a bounds covers
func (idx *Index) cellRange(b Bounds) (minCol, minRow, maxCol, maxRow int) {
	minCol = int(math.Floor(b.MinX / idx.cellSize))
	minRow = int(math.Floor(b.MinY / idx.cellSize))
	maxCol = int(math.Floor(b.MaxX / idx.cellSize))
	maxRow = int(math.Floor(b.MaxY / idx.cellSize))
	return minCol, minRow, maxCol, maxRow
}

// Insert adds an object reference to every cell its envelope covers
func (idx *Index) Insert(obj *board.Object) {
	minCol, minRow, maxCol, maxRow := idx.cellRange(ObjectBounds(obj))
	for col := minCol; col <= maxCol; col++ {
		for row := minRow; row <= maxRow; row++ {
			key := cellKey{col: col, row: row}
			idx.cells[key] = append(idx.cells[key], obj)
		}
	}
}

// BulkInsert inserts every object in the slice
func (idx *Index) BulkInsert(objects []*board.Object) {
	for _, obj := range objects {
		idx.Insert(obj)
	}
}

// Query returns each object whose envelope overlaps the rectangle, exactly
// once. A per-query seen-set keyed by object id removes cross-cell duplicates
// and the final exact overlap check removes cell-granularity false positives.
func (idx *Index) Query(left, top, right, bottom float64) []*board.Object {
	window := Bounds{MinX: left, MinY: top, MaxX: right, MaxY: bottom}
	minCol, minRow, maxCol, maxRow := idx.cellRange(window)

	seen := make(map[string]bool)
	var results []*board.Object
	for col := minCol; col <= maxCol; col++ {
		for row := minRow; row <= maxRow; row++ {
			for _, obj := range idx.cells[cellKey{col: col, row: row}] {
				if seen[obj.ID] {
					continue
				}
				seen[obj.ID] = true
				if ObjectBounds(obj).Overlaps(window) {
					results = append(results, obj)
				}
			}
		}
	}
	return results
}

// Clear discards every cell
func (idx *Index) Clear() {
	idx.cells = make(map[cellKey][]*board.Object)
}
