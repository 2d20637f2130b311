package othello

const (
	Size  = 8
	Cells = Size * Size
)

type direction struct {
	dr, dc int
}

// Direction d and d+4 point opposite ways along the same axis.
var directions = [8]direction{
	{0, 1},   // east
	{1, 0},   // north
	{1, 1},   // north-east
	{1, -1},  // north-west
	{0, -1},  // west
	{-1, 0},  // south
	{-1, -1}, // south-west
	{-1, 1},  // south-east
}

const axes = 4

// positionWeights favours corners and edges and zeroes the cells next to
// corners. It is symmetric top to bottom.
var positionWeights = [Cells]int{
	8, 0, 2, 1, 1, 2, 0, 8,
	0, 0, 2, 0, 0, 2, 0, 0,
	2, 2, 2, 0, 0, 2, 2, 2,
	1, 0, 0, 1, 1, 0, 0, 1,
	1, 0, 0, 1, 1, 0, 0, 1,
	2, 2, 2, 0, 0, 2, 2, 2,
	0, 0, 2, 0, 0, 2, 0, 0,
	8, 0, 2, 1, 1, 2, 0, 8,
}

const (
	cornerOwnedBonus   = 6
	cornerLostPenalty  = -4
	mobilityMultiplier = 2
)

var (
	// rays[i][d] walks outward from cell i in direction d, nearest first.
	rays = buildRays()

	neighbours = buildNeighbours()

	// cornerOf maps the three cells flanking a corner to that corner, -1 elsewhere.
	cornerOf = buildCornerOf()
)

func buildRays() [Cells][8][]int8 {
	var r [Cells][8][]int8
	for i := range Cells {
		c := CoordOf(i)
		for d, dir := range directions {
			var ray []int8
			for n := (Coord{c.Row + dir.dr, c.Col + dir.dc}); n.Valid(); n = (Coord{n.Row + dir.dr, n.Col + dir.dc}) {
				ray = append(ray, int8(n.Index()))
			}
			r[i][d] = ray
		}
	}

	return r
}

func buildNeighbours() [Cells]Set {
	var n [Cells]Set
	for i := range Cells {
		for d := range directions {
			if ray := rays[i][d]; len(ray) > 0 {
				n[i] |= 1 << ray[0]
			}
		}
	}

	return n
}

func buildCornerOf() [Cells]int {
	var m [Cells]int
	for i := range m {
		m[i] = -1
	}

	for _, corner := range []Coord{{0, 0}, {0, Size - 1}, {Size - 1, 0}, {Size - 1, Size - 1}} {
		for d := range directions {
			if ray := rays[corner.Index()][d]; len(ray) > 0 {
				m[ray[0]] = corner.Index()
			}
		}
	}

	return m
}
