package models

import (
	"testing"
)

func TestCanonicalSerial(t *testing.T) {
	cases := []struct{ in, want string }{
		{"abc123", "ABC123"},
		{"  xyz-1 ", "XYZ-1"},
		{"a b/c?d", "ABCD"},
		{"lg_55.OLED-2", "LG_55.OLED-2"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tc := range cases {
		if got := CanonicalSerial(tc.in); got != tc.want {
			t.Errorf("CanonicalSerial(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeClamps(t *testing.T) {
	h := NewHallway()
	h.Scale = 0.3
	h.MainScale = 3.0
	h.HeaderScale = 1.4
	h.LogosSpeed = 200
	h.CheckIntervalMinutes = 0
	h.ScreenColumns = 7
	h.Orientation = "sideways"
	h.ClockMode = "frozen"
	h.LogosGap = -4
	h.NewsLimit = -1
	h.Normalize()

	if h.Scale != 0.5 {
		t.Errorf("Scale = %v, want 0.5", h.Scale)
	}
	if h.MainScale != 2.0 {
		t.Errorf("MainScale = %v, want 2.0", h.MainScale)
	}
	if h.HeaderScale != 1.4 {
		t.Errorf("HeaderScale = %v, want 1.4 untouched", h.HeaderScale)
	}
	if h.LogosSpeed != 120 {
		t.Errorf("LogosSpeed = %v, want 120", h.LogosSpeed)
	}
	if h.CheckIntervalMinutes != 1 {
		t.Errorf("CheckIntervalMinutes = %v, want 1", h.CheckIntervalMinutes)
	}
	if h.ScreenColumns != 3 {
		t.Errorf("ScreenColumns = %v, want 3", h.ScreenColumns)
	}
	if h.Orientation != OrientationLandscape {
		t.Errorf("Orientation = %q, want landscape", h.Orientation)
	}
	if h.ClockMode != ClockModeAuto {
		t.Errorf("ClockMode = %q, want auto", h.ClockMode)
	}
	if h.LogosGap != 0 || h.NewsLimit != 0 {
		t.Errorf("negative gap/limit not zeroed: gap=%d limit=%d", h.LogosGap, h.NewsLimit)
	}
}

func TestNormalizeZeroScalesDefaultToOne(t *testing.T) {
	h := &Hallway{}
	h.Normalize()
	if h.Scale != 1.0 || h.NewsScale != 1.0 || h.LogosScale != 1.0 {
		t.Errorf("zero scales should default to 1.0, got %v %v %v", h.Scale, h.NewsScale, h.LogosScale)
	}
	if h.ID == "" {
		t.Error("Normalize should assign an id")
	}
	if h.Floors == nil {
		t.Error("Floors should never stay nil")
	}
}

func TestStorageFilename(t *testing.T) {
	h := NewHallway()
	h.Serial = "abc123"
	if got := h.StorageFilename(); got != "ABC123.html" {
		t.Errorf("StorageFilename = %q, want ABC123.html", got)
	}

	h2 := NewHallway()
	h2.ID = "deadbeef"
	h2.Serial = ""
	h2.Orientation = OrientationPortrait
	want := "deadbeef-portrait.html"
	if got := h2.StorageFilename(); got != want {
		t.Errorf("StorageFilename = %q, want %q", got, want)
	}
	// Deterministic: same input, same name.
	if h2.StorageFilename() != want {
		t.Error("StorageFilename is not deterministic")
	}
}

func TestVisibleTenants(t *testing.T) {
	a := Apartment{Tenants: []Tenant{
		{ID: "1", Surname: "KORHONEN"},
		{ID: "2", Surname: "   "},
		{ID: "3", Surname: ""},
		{ID: "4", Surname: "VIRTANEN"},
	}}
	got := a.VisibleTenants()
	if len(got) != 2 || got[0].Surname != "KORHONEN" || got[1].Surname != "VIRTANEN" {
		t.Errorf("VisibleTenants = %v", got)
	}
	// The stored slice keeps the blanks.
	if len(a.Tenants) != 4 {
		t.Errorf("blank tenants must stay in storage, got %d", len(a.Tenants))
	}
}

func TestVisibleLogos(t *testing.T) {
	h := NewHallway()
	h.Logos = []Logo{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	h.LogosLimit = 2
	if got := h.VisibleLogos(); len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Errorf("VisibleLogos with limit 2 = %v", got)
	}

	h.LogosLimit = 0
	if got := h.VisibleLogos(); len(got) != 3 {
		t.Errorf("VisibleLogos with no limit = %v", got)
	}

	h.LogosLimit = 10
	if got := h.VisibleLogos(); len(got) != 3 {
		t.Errorf("VisibleLogos with oversized limit = %v", got)
	}
}

func TestSortedFloors(t *testing.T) {
	h := NewHallway()
	h.Floors = []Floor{
		{ID: "c", Level: 3},
		{ID: "a", Level: 1},
		{ID: "b2", Level: 2},
		{ID: "b1", Level: 2},
	}
	got := h.SortedFloors()
	order := []string{got[0].ID, got[1].ID, got[2].ID, got[3].ID}
	if order[0] != "a" || order[3] != "c" {
		t.Errorf("SortedFloors order = %v", order)
	}
	// Equal levels keep their relative order.
	if order[1] != "b2" || order[2] != "b1" {
		t.Errorf("sort is not stable for equal levels: %v", order)
	}
	// Original slice untouched.
	if h.Floors[0].ID != "c" {
		t.Error("SortedFloors must not mutate the hallway")
	}
}

func TestFloorDisplayLabel(t *testing.T) {
	if got := (Floor{Label: "Pohjakerros", Level: 0}).DisplayLabel(); got != "Pohjakerros" {
		t.Errorf("DisplayLabel = %q", got)
	}
	if got := (Floor{Level: 4}).DisplayLabel(); got != "Floor 4" {
		t.Errorf("DisplayLabel fallback = %q, want Floor 4", got)
	}
}

func TestDefaultNumber(t *testing.T) {
	if got := DefaultNumber(2, 0); got != "201" {
		t.Errorf("DefaultNumber(2, 0) = %q, want 201", got)
	}
	if got := DefaultNumber(3, 4); got != "305" {
		t.Errorf("DefaultNumber(3, 4) = %q, want 305", got)
	}
}
