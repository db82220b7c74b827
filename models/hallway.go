package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Orientation of the target TV panel. Anything else is treated as landscape.
const (
	OrientationLandscape = "landscape"
	OrientationPortrait  = "portrait"
)

const (
	ClockModeAuto   = "auto"
	ClockModeManual = "manual"
)

// Clamp bounds for operator-tunable values.
const (
	MinScale         = 0.5
	MaxScale         = 2.0
	MinLogosSpeed    = 5
	MaxLogosSpeed    = 120
	MinCheckInterval = 1
	MaxCheckInterval = 100
	MinScreenColumns = 1
	MaxScreenColumns = 3
)

// Hallway is the root configuration for one physical screen. It is the
// value that gets embedded into the compiled document; the document is
// its only durable representation, so this type stays free of any
// database mapping.
type Hallway struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Building string `json:"building"`
	Serial   string `json:"serial"`

	Orientation string  `json:"orientation"`
	Floors      []Floor `json:"floors"`

	Scale        float64 `json:"scale"`
	HeaderScale  float64 `json:"headerScale"`
	MainScale    float64 `json:"mainScale"`
	WeatherScale float64 `json:"weatherScale"`
	NewsScale    float64 `json:"newsScale"`
	InfoScale    float64 `json:"infoScale"`
	LogosScale   float64 `json:"logosScale"`

	ScreenColumns        int `json:"screenColumns"`
	CheckIntervalMinutes int `json:"checkIntervalMinutes"`

	WeatherClockEnabled bool    `json:"weatherClockEnabled"`
	WeatherCity         string  `json:"weatherCity"`
	WeatherLat          float64 `json:"weatherLat"`
	WeatherLon          float64 `json:"weatherLon"`
	ClockMode           string  `json:"clockMode"`
	ClockDate           string  `json:"clockDate"`
	ClockTime           string  `json:"clockTime"`

	NewsEnabled bool   `json:"newsEnabled"`
	NewsRssURL  string `json:"newsRssUrl"`
	NewsLimit   int    `json:"newsLimit"`
	NewsTitle   string `json:"newsTitle"`
	NewsTitlePx int    `json:"newsTitlePx"`

	Logos        []Logo `json:"logos"`
	LogosEnabled bool   `json:"logosEnabled"`
	LogosAnimate bool   `json:"logosAnimate"`
	LogosLimit   int    `json:"logosLimit"`
	LogosBgColor string `json:"logosBgColor"`
	LogosSpeed   int    `json:"logosSpeed"`
	LogosGap     int    `json:"logosGap"`

	InfoEnabled    bool   `json:"infoEnabled"`
	InfoHTML       string `json:"infoHtml"`
	InfoPinBottom  bool   `json:"infoPinBottom"`
	InfoAlignRight bool   `json:"infoAlignRight"`
}

type Floor struct {
	ID         string      `json:"id"`
	Label      string      `json:"label"`
	Level      int         `json:"level"`
	Apartments []Apartment `json:"apartments"`
}

type Apartment struct {
	ID      string   `json:"id"`
	Number  string   `json:"number"`
	Tenants []Tenant `json:"tenants"`
}

type Tenant struct {
	ID      string `json:"id"`
	Surname string `json:"surname"`
}

type Logo struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// NewHallway returns an empty hallway with every tunable at its default.
func NewHallway() *Hallway {
	return &Hallway{
		ID:                   uuid.NewString(),
		Orientation:          OrientationLandscape,
		Floors:               []Floor{},
		Scale:                1.0,
		HeaderScale:          1.0,
		MainScale:            1.0,
		WeatherScale:         1.0,
		NewsScale:            1.0,
		InfoScale:            1.0,
		LogosScale:           1.0,
		ScreenColumns:        1,
		CheckIntervalMinutes: 5,
		ClockMode:            ClockModeAuto,
		LogosSpeed:           30,
		LogosGap:             48,
		LogosBgColor:         "#ffffff",
	}
}

// CanonicalSerial uppercases a device serial and drops every character
// outside [A-Z0-9._-].
func CanonicalSerial(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampScale(v float64) float64 {
	if v == 0 {
		return 1.0
	}
	return clampFloat(v, MinScale, MaxScale)
}

// Normalize pulls every tunable back into its valid range and fills the
// enum-ish fields. Out-of-range values are clamped, never rejected.
func (h *Hallway) Normalize() {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	h.Serial = CanonicalSerial(h.Serial)

	if h.Orientation != OrientationPortrait {
		h.Orientation = OrientationLandscape
	}
	if h.ClockMode != ClockModeManual {
		h.ClockMode = ClockModeAuto
	}

	h.Scale = clampScale(h.Scale)
	h.HeaderScale = clampScale(h.HeaderScale)
	h.MainScale = clampScale(h.MainScale)
	h.WeatherScale = clampScale(h.WeatherScale)
	h.NewsScale = clampScale(h.NewsScale)
	h.InfoScale = clampScale(h.InfoScale)
	h.LogosScale = clampScale(h.LogosScale)

	h.ScreenColumns = clampInt(h.ScreenColumns, MinScreenColumns, MaxScreenColumns)
	h.CheckIntervalMinutes = clampInt(h.CheckIntervalMinutes, MinCheckInterval, MaxCheckInterval)
	h.LogosSpeed = clampInt(h.LogosSpeed, MinLogosSpeed, MaxLogosSpeed)
	if h.LogosGap < 0 {
		h.LogosGap = 0
	}
	if h.LogosLimit < 0 {
		h.LogosLimit = 0
	}
	if h.NewsLimit < 0 {
		h.NewsLimit = 0
	}
	if h.Floors == nil {
		h.Floors = []Floor{}
	}
}

// CanvasSize returns the fixed design canvas for the orientation.
func (h *Hallway) CanvasSize() (width, height int) {
	if h.Orientation == OrientationPortrait {
		return 1080, 1920
	}
	return 1920, 1080
}

// StorageFilename derives the blob filename: the canonical serial when
// present, otherwise a deterministic fallback from id and orientation.
func (h *Hallway) StorageFilename() string {
	if s := CanonicalSerial(h.Serial); s != "" {
		return s + ".html"
	}
	return fmt.Sprintf("%s-%s.html", h.ID, h.Orientation)
}

// DisplayLabel is the floor label shown on screen, falling back to the
// numeric level when the operator left it blank.
func (f Floor) DisplayLabel() string {
	if strings.TrimSpace(f.Label) != "" {
		return f.Label
	}
	return fmt.Sprintf("Floor %d", f.Level)
}

// DefaultNumber is the apartment number suggested for position idx on a
// floor at the given level (level*100 + idx + 1).
func DefaultNumber(level, idx int) string {
	return fmt.Sprintf("%d", level*100+idx+1)
}

// VisibleTenants filters blank surnames out of the rendered listing.
// Blank entries stay in the stored value; filtering is display-only.
func (a Apartment) VisibleTenants() []Tenant {
	out := make([]Tenant, 0, len(a.Tenants))
	for _, t := range a.Tenants {
		if strings.TrimSpace(t.Surname) != "" {
			out = append(out, t)
		}
	}
	return out
}

// VisibleLogos applies the configured limit in insertion order.
// A zero limit means no limit.
func (h *Hallway) VisibleLogos() []Logo {
	if h.LogosLimit > 0 && h.LogosLimit < len(h.Logos) {
		return h.Logos[:h.LogosLimit]
	}
	return h.Logos
}

// SortedFloors returns the floors ordered ascending by level without
// mutating the stored order. Equal levels keep their relative order.
func (h *Hallway) SortedFloors() []Floor {
	out := make([]Floor, len(h.Floors))
	copy(out, h.Floors)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].Level > out[j].Level; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
