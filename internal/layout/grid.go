package layout

import "gonum.org/v1/gonum/spatial/r2"

type cellKey struct {
	x, y int
}

// grid buckets agent indexes by position so the repulsion pass only
// examines nearby candidates. Cells are sized to the repulsion radius,
// so every interacting pair is found within the 3x3 neighborhood.
// Buckets fill in ascending agent order, which keeps force accumulation
// deterministic.
type grid struct {
	cell  float64
	cells map[cellKey][]int
}

func newGrid(cellSize float64) *grid {
	return &grid{
		cell:  cellSize,
		cells: make(map[cellKey][]int),
	}
}

func (g *grid) keyFor(p r2.Vec) cellKey {
	x := int(p.X / g.cell)
	y := int(p.Y / g.cell)
	if p.X < 0 {
		x--
	}
	if p.Y < 0 {
		y--
	}
	return cellKey{x, y}
}

// rebuild rebuckets every position, reusing bucket capacity from the
// previous iteration.
func (g *grid) rebuild(positions []r2.Vec) {
	for k, bucket := range g.cells {
		g.cells[k] = bucket[:0]
	}
	for i, p := range positions {
		k := g.keyFor(p)
		g.cells[k] = append(g.cells[k], i)
	}
}

// neighbors calls fn for every agent bucketed within one cell of p,
// including agents sharing p's own cell.
func (g *grid) neighbors(p r2.Vec, fn func(j int)) {
	center := g.keyFor(p)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for _, j := range g.cells[cellKey{center.x + dx, center.y + dy}] {
				fn(j)
			}
		}
	}
}
