package services

import (
	"rappu-backend/models"
)

// Per-column floor capacity used once the tuned tables run out.
const (
	landscapeColumnCap = 3
	portraitColumnCap  = 5
)

// Hand-tuned column partitions for small floor counts. These are a
// fixed contract: the compiled document and any editor preview must
// agree on them byte for byte, so they are never derived at runtime.
var landscapeLayouts = [][]int{
	1:  {1},
	2:  {2},
	3:  {2, 1},
	4:  {2, 2},
	5:  {2, 2, 1},
	6:  {2, 2, 2},
	7:  {3, 2, 2},
	8:  {3, 3, 2},
	9:  {3, 3, 3},
	10: {3, 3, 2, 2},
	11: {3, 3, 3, 2},
	12: {3, 3, 3, 3},
}

var portraitLayouts = [][]int{
	1:  {1},
	2:  {2},
	3:  {3},
	4:  {4},
	5:  {5},
	6:  {3, 3},
	7:  {4, 3},
	8:  {4, 4},
	9:  {5, 4},
	10: {5, 5},
	11: {4, 4, 3},
	12: {4, 4, 4},
	13: {5, 5, 3},
	14: {5, 5, 4},
	15: {5, 5, 5},
}

// LayoutPlan partitions n floors into display columns for the given
// orientation. Counts inside the tuned tables reproduce the tabulated
// partition exactly; beyond them columns fill at the orientation's
// capacity with the final column absorbing the remainder.
func LayoutPlan(n int, orientation string) []int {
	if n <= 0 {
		return []int{}
	}

	table := landscapeLayouts
	cap := landscapeColumnCap
	if orientation == models.OrientationPortrait {
		table = portraitLayouts
		cap = portraitColumnCap
	}

	if n < len(table) {
		out := make([]int, len(table[n]))
		copy(out, table[n])
		return out
	}

	full := n / cap
	rem := n % cap
	out := make([]int, 0, full+1)
	for i := 0; i < full; i++ {
		out = append(out, cap)
	}
	if rem > 0 {
		out = append(out, rem)
	}
	return out
}

// SplitEven distributes n floors across cols columns as evenly as
// possible, earlier columns taking the remainder. This is the
// multi-column screen mode rule and deliberately not LayoutPlan.
func SplitEven(n, cols int) []int {
	if n <= 0 || cols <= 0 {
		return []int{}
	}
	if cols > n {
		cols = n
	}
	per := n / cols
	extra := n % cols
	out := make([]int, cols)
	for i := range out {
		out[i] = per
		if i < extra {
			out[i]++
		}
	}
	return out
}

// PlanColumns consumes pre-sorted floors into the given column sizes,
// reversing each column so the highest level sits on top.
func PlanColumns(floors []models.Floor, sizes []int) [][]models.Floor {
	cols := make([][]models.Floor, 0, len(sizes))
	pos := 0
	for _, size := range sizes {
		end := pos + size
		if end > len(floors) {
			end = len(floors)
		}
		col := make([]models.Floor, end-pos)
		for i, f := range floors[pos:end] {
			col[len(col)-1-i] = f
		}
		cols = append(cols, col)
		pos = end
	}
	return cols
}
