package services

import (
	"reflect"
	"testing"

	"rappu-backend/models"
)

func TestLayoutPlanTables(t *testing.T) {
	t.Run("landscape reference table", func(t *testing.T) {
		want := map[int][]int{
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
		for n, expected := range want {
			got := LayoutPlan(n, models.OrientationLandscape)
			if !reflect.DeepEqual(got, expected) {
				t.Errorf("LayoutPlan(%d, landscape) = %v, want %v", n, got, expected)
			}
		}
	})

	t.Run("portrait reference table", func(t *testing.T) {
		want := map[int][]int{
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
		for n, expected := range want {
			got := LayoutPlan(n, models.OrientationPortrait)
			if !reflect.DeepEqual(got, expected) {
				t.Errorf("LayoutPlan(%d, portrait) = %v, want %v", n, got, expected)
			}
		}
	})

	t.Run("zero floors", func(t *testing.T) {
		if got := LayoutPlan(0, models.OrientationLandscape); len(got) != 0 {
			t.Errorf("LayoutPlan(0) = %v, want empty", got)
		}
		if got := LayoutPlan(-3, models.OrientationPortrait); len(got) != 0 {
			t.Errorf("LayoutPlan(-3) = %v, want empty", got)
		}
	})

	t.Run("unknown orientation falls back to landscape", func(t *testing.T) {
		if got := LayoutPlan(5, "diagonal"); !reflect.DeepEqual(got, []int{2, 2, 1}) {
			t.Errorf("LayoutPlan(5, diagonal) = %v, want [2 2 1]", got)
		}
	})
}

func TestLayoutPlanOverflow(t *testing.T) {
	caps := map[string]int{
		models.OrientationLandscape: 3,
		models.OrientationPortrait:  5,
	}
	for orientation, capacity := range caps {
		for n := 1; n <= 60; n++ {
			plan := LayoutPlan(n, orientation)
			sum := 0
			for i, size := range plan {
				sum += size
				if i < len(plan)-1 && size > capacity {
					t.Fatalf("LayoutPlan(%d, %s): column %d has %d floors, capacity %d",
						n, orientation, i, size, capacity)
				}
			}
			if sum != n {
				t.Fatalf("LayoutPlan(%d, %s) sums to %d", n, orientation, sum)
			}
		}
	}
}

func TestSplitEven(t *testing.T) {
	cases := []struct {
		n, cols int
		want    []int
	}{
		{6, 3, []int{2, 2, 2}},
		{7, 3, []int{3, 2, 2}},
		{8, 3, []int{3, 3, 2}},
		{5, 2, []int{3, 2}},
		{1, 3, []int{1}},
		{0, 2, []int{}},
		{4, 1, []int{4}},
	}
	for _, tc := range cases {
		got := SplitEven(tc.n, tc.cols)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("SplitEven(%d, %d) = %v, want %v", tc.n, tc.cols, got, tc.want)
		}
	}
}

func TestPlanColumns(t *testing.T) {
	floors := []models.Floor{
		{ID: "a", Level: 1},
		{ID: "b", Level: 2},
		{ID: "c", Level: 3},
		{ID: "d", Level: 4},
		{ID: "e", Level: 5},
	}
	cols := PlanColumns(floors, []int{2, 2, 1})
	if len(cols) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(cols))
	}
	// Within a column the highest level sits on top.
	if cols[0][0].ID != "b" || cols[0][1].ID != "a" {
		t.Errorf("column 0 = %v, want [b a]", []string{cols[0][0].ID, cols[0][1].ID})
	}
	if cols[1][0].ID != "d" || cols[1][1].ID != "c" {
		t.Errorf("column 1 = %v, want [d c]", []string{cols[1][0].ID, cols[1][1].ID})
	}
	if cols[2][0].ID != "e" {
		t.Errorf("column 2 = %v, want [e]", cols[2])
	}
}
