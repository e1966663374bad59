package spherebox

import (
	"math"
	"sort"
	"sync"

	"github.com/akmonengine/spherebox/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ============================================================================
// Types
// ============================================================================

// CellKey - integer coordinates of a grid cell
type CellKey struct {
	X, Y, Z int
}

// Cell - indices of the bodies overlapping a cell
type Cell struct {
	bodyIndices []int
}

// Pair - two bodies whose AABBs overlap
type Pair struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

// SpatialGrid - uniform hashed grid used by the broad phase
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int

	// Bodies covering more than MAX_CELLS_PER_AXIS cells on an axis, tested against
	// every other body instead of being spread over the cells
	oversized Cell
}

const (
	// MAX_CELLS_PER_AXIS caps how many cells a body is inserted into along one axis
	MAX_CELLS_PER_AXIS = 16
	// MAX_CELL_COORD saturates cell coordinates so far positions stay in the int range
	MAX_CELL_COORD = 1 << 30
)

// ============================================================================
// Constructor
// ============================================================================

// NewSpatialGrid - numCells is rounded up to a power of two. A cell size that is not
// finite and positive falls back to DEFAULT_CELL_SIZE.
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	if !(cellSize > 0) || math.IsInf(cellSize, 1) {
		cellSize = DEFAULT_CELL_SIZE
	}
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].bodyIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert - adds the body to every cell its cached AABB covers, or to the oversized list
func (sg *SpatialGrid) Insert(bodyIndex int, body *actor.Body) {
	minCell, maxCell, oversized := sg.cellRange(body.AABB())
	if oversized {
		sg.oversized.bodyIndices = append(sg.oversized.bodyIndices, bodyIndex)
		return
	}

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := sg.hashCell(CellKey{x, y, z})

				sg.cells[cellIdx].bodyIndices = append(
					sg.cells[cellIdx].bodyIndices,
					bodyIndex,
				)
			}
		}
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].bodyIndices = sg.cells[i].bodyIndices[:0]
	}
	sg.oversized.bodyIndices = sg.oversized.bodyIndices[:0]
}

func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].bodyIndices) > 1 {
			sort.Ints(sg.cells[i].bodyIndices)
		}
	}
	sort.Ints(sg.oversized.bodyIndices)
}

// FindPairs - sequential version, pairs ordered by the index of BodyA
func (sg *SpatialGrid) FindPairs(bodies []*actor.Body) []Pair {
	pairs := make([]Pair, 0, len(bodies)/2)

	seen := make([]bool, len(bodies))
	for bodyIdx := range bodies {
		clear(seen)
		sg.visitCandidates(bodies, bodyIdx, seen, func(p Pair) {
			pairs = append(pairs, p)
		})
	}

	return pairs
}

// FindPairsParallel - splits the bodies between numWorkers goroutines and streams the
// pairs on the returned channel, closed once every worker is done
func (sg *SpatialGrid) FindPairsParallel(bodies []*actor.Body, numWorkers int) <-chan Pair {
	var wg sync.WaitGroup
	pairsChan := make(chan Pair, numWorkers*10)

	bodiesPerWorker := len(bodies) / numWorkers
	if bodiesPerWorker == 0 {
		bodiesPerWorker = 1
	}

	for w := 0; w < numWorkers; w++ {
		startIdx := w * bodiesPerWorker
		endIdx := startIdx + bodiesPerWorker
		if w == numWorkers-1 {
			endIdx = len(bodies)
		}
		if startIdx >= len(bodies) {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			seen := make([]bool, len(bodies))
			for bodyIdx := start; bodyIdx < end; bodyIdx++ {
				clear(seen)
				sg.visitCandidates(bodies, bodyIdx, seen, func(p Pair) {
					pairsChan <- p
				})
			}
		}(startIdx, endIdx)
	}

	go func() {
		wg.Wait()
		close(pairsChan)
	}()

	return pairsChan
}

// visitCandidates walks the cells covered by bodies[bodyIdx] and reports every
// overlapping body with a higher index exactly once. An oversized body is checked
// against every body.
func (sg *SpatialGrid) visitCandidates(bodies []*actor.Body, bodyIdx int, seen []bool, emit func(Pair)) {
	bodyA := bodies[bodyIdx]

	check := func(otherIdx int) {
		// Avoid duplicates (A,B) and (B,A)
		if otherIdx <= bodyIdx || seen[otherIdx] {
			return
		}
		seen[otherIdx] = true

		bodyB := bodies[otherIdx]
		if bodyA.BodyType == actor.BodyTypeStatic && bodyB.BodyType == actor.BodyTypeStatic {
			return
		}

		if bodyA.AABB().Overlaps(bodyB.AABB()) {
			emit(Pair{BodyA: bodyA, BodyB: bodyB})
		}
	}

	minCell, maxCell, oversized := sg.cellRange(bodyA.AABB())
	if oversized {
		for otherIdx := bodyIdx + 1; otherIdx < len(bodies); otherIdx++ {
			check(otherIdx)
		}
		return
	}

	for _, otherIdx := range sg.oversized.bodyIndices {
		check(otherIdx)
	}

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := sg.hashCell(CellKey{x, y, z})

				for _, otherIdx := range sg.cells[cellIdx].bodyIndices {
					check(otherIdx)
				}
			}
		}
	}
}

// cellRange returns the cells covered by aabb, and whether it spans more than
// MAX_CELLS_PER_AXIS cells on any axis
func (sg *SpatialGrid) cellRange(aabb actor.AABB) (CellKey, CellKey, bool) {
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	oversized := maxCell.X-minCell.X >= MAX_CELLS_PER_AXIS ||
		maxCell.Y-minCell.Y >= MAX_CELLS_PER_AXIS ||
		maxCell.Z-minCell.Z >= MAX_CELLS_PER_AXIS

	return minCell, maxCell, oversized
}

// worldToCell - converts a world position to cell coordinates, saturated to
// [-MAX_CELL_COORD, MAX_CELL_COORD]
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: sg.toCell(pos.X()),
		Y: sg.toCell(pos.Y()),
		Z: sg.toCell(pos.Z()),
	}
}

func (sg *SpatialGrid) toCell(v float64) int {
	return int(mgl64.Clamp(math.Floor(v/sg.cellSize), -MAX_CELL_COORD, MAX_CELL_COORD))
}

// hashCell - hashes a cell to an index in the cell array
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & sg.cellMask
}
