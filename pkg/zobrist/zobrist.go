package zobrist

import (
	"math"

	"lukechampine.com/frand"
)

// New returns one key per cell and team.
func New(cells int) [][2]uint64 {
	keys := make([][2]uint64, cells)
	for i := range keys {
		keys[i][0] = frand.Uint64n(math.MaxUint64)
		keys[i][1] = frand.Uint64n(math.MaxUint64)
	}

	return keys
}
