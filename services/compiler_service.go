package services

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"rappu-backend/models"
)

// Compile renders a hallway into its complete, self-contained static
// document. The build identifier (current time in ms) is the only
// non-deterministic element; everything else is a pure function of the
// input. Out-of-range configuration is clamped, never rejected.
func Compile(h *models.Hallway) []byte {
	return CompileAt(h, fmt.Sprintf("%d", time.Now().UnixMilli()))
}

// CompileAt is Compile with an explicit build identifier.
func CompileAt(h *models.Hallway, buildID string) []byte {
	hh := *h
	hh.Normalize()

	var b strings.Builder
	b.Grow(32 * 1024)

	width, height := hh.CanvasSize()
	title := strings.TrimSpace(hh.Name)
	if title == "" {
		title = "Rappu"
	}

	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html lang=\"fi\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	b.WriteString("<meta name=\"robots\" content=\"noindex, nofollow, noarchive\">\n")
	b.WriteString("<meta http-equiv=\"Cache-Control\" content=\"no-store\">\n")
	fmt.Fprintf(&b, "<meta name=\"%s\" content=\"%s\">\n", BuildMetaName, html.EscapeString(buildID))
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("<style>\n")
	writeStyles(&b, &hh, width, height)
	b.WriteString("</style>\n</head>\n<body>\n")

	fmt.Fprintf(&b, "<div id=\"stage\" class=\"%s\" style=\"%s\">\n", hh.Orientation, scaleVars(&hh))

	writeHeader(&b, &hh)
	writeListing(&b, &hh)
	if hh.NewsEnabled {
		writeNews(&b, &hh)
	}
	if hh.InfoEnabled {
		writeInfo(&b, &hh)
	}
	if hh.LogosEnabled {
		writeLogos(&b, &hh)
	}

	b.WriteString("</div>\n")

	writeEmbeddedData(&b, &hh)
	b.WriteString("<script>\n")
	b.WriteString(RuntimeScript(buildID, hh.CheckIntervalMinutes))
	b.WriteString("</script>\n</body>\n</html>\n")

	return []byte(b.String())
}

func fmtScale(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func scaleVars(h *models.Hallway) string {
	return fmt.Sprintf("--scale:%s;--header-scale:%s;--main-scale:%s;--weather-scale:%s;--news-scale:%s;--info-scale:%s;--logos-scale:%s",
		fmtScale(h.Scale), fmtScale(h.HeaderScale), fmtScale(h.MainScale),
		fmtScale(h.WeatherScale), fmtScale(h.NewsScale), fmtScale(h.InfoScale),
		fmtScale(h.LogosScale))
}

// Base pixel sizes live in the rules and multiply by the scale custom
// properties; the compiler never pre-multiplies server-side.
func writeStyles(b *strings.Builder, h *models.Hallway, width, height int) {
	fmt.Fprintf(b, `html, body { margin: 0; padding: 0; background: #000; overflow: hidden; }
body { font-family: "Helvetica Neue", Arial, sans-serif; color: #1a1a2e; }
#stage {
  position: relative; width: %dpx; height: %dpx; background: #fff;
  transform-origin: top left; display: flex; flex-direction: column;
}
#header { display: flex; justify-content: space-between; align-items: flex-start; padding: calc(32px * var(--scale)); }
#header h1 { margin: 0; font-size: calc(44px * var(--scale) * var(--header-scale)); font-weight: 700; }
#header .building { font-size: calc(24px * var(--scale) * var(--header-scale)); opacity: .7; }
#weather { display: flex; align-items: center; gap: calc(24px * var(--scale)); font-size: calc(16px * var(--scale) * var(--weather-scale)); }
#weather .clock { text-align: center; line-height: 1.25; }
#weather #clock-day, #weather #clock-date { font-size: calc(14px * var(--scale) * var(--weather-scale)); opacity: .7; }
#weather #clock-time { font-size: calc(30px * var(--scale) * var(--weather-scale)); font-weight: 600; font-variant-numeric: tabular-nums; }
#weather-icon { width: calc(36px * var(--scale) * var(--weather-scale)); height: calc(36px * var(--scale) * var(--weather-scale)); }
#weather-icon svg { width: 100%%; height: 100%%; }
#weather .temps { text-align: center; line-height: 1.25; font-variant-numeric: tabular-nums; }
#weather .temps .city { font-size: calc(14px * var(--scale) * var(--weather-scale)); opacity: .7; }
#weather #weather-max { font-size: calc(30px * var(--scale) * var(--weather-scale)); font-weight: 600; }
#weather #weather-min { font-size: calc(14px * var(--scale) * var(--weather-scale)); opacity: .8; }
#listing { flex: 1; display: flex; gap: calc(40px * var(--scale)); padding: 0 calc(32px * var(--scale)); align-items: flex-start; }
.floor-col { flex: 1; display: flex; flex-direction: column; gap: calc(18px * var(--scale)); }
.floor-label { font-size: calc(22px * var(--scale) * var(--main-scale)); font-weight: 700; text-transform: uppercase; border-bottom: 2px solid #1a1a2e; padding-bottom: calc(4px * var(--scale)); }
.apartment { display: flex; gap: calc(12px * var(--scale)); font-size: calc(20px * var(--scale) * var(--main-scale)); padding: calc(3px * var(--scale)) 0; }
.apt-number { min-width: calc(56px * var(--scale)); font-weight: 600; font-variant-numeric: tabular-nums; }
#news { padding: calc(16px * var(--scale)) calc(32px * var(--scale)); }
#news h2 { margin: 0 0 calc(8px * var(--scale)) 0; font-size: calc(%dpx * var(--scale) * var(--news-scale)); }
#news ol { margin: 0; padding-left: calc(28px * var(--scale)); font-size: calc(18px * var(--scale) * var(--news-scale)); }
#news .news-item-cat { margin-left: calc(10px * var(--scale)); opacity: .6; font-size: calc(14px * var(--scale) * var(--news-scale)); }
#info { padding: calc(16px * var(--scale)) calc(32px * var(--scale)); font-size: calc(18px * var(--scale) * var(--info-scale)); }
#info.pin-bottom { margin-top: auto; }
#info.align-right { text-align: right; }
.logo-strip { overflow: hidden; background: %s; padding: calc(12px * var(--scale)) 0; }
.logo-strip.static .logo-track { justify-content: center; animation: none; transform: none; }
.logo-track { display: flex; align-items: center; gap: %dpx; width: max-content; }
.logo-track img { height: calc(56px * var(--scale) * var(--logos-scale)); }
.logo-track.marquee { animation-name: logo-marquee; animation-timing-function: linear; animation-iteration-count: infinite; }
@keyframes logo-marquee { from { transform: translateX(0); } to { transform: translateX(calc(-1 * var(--logo-loop-px, 0px))); } }
`, width, height, newsTitlePx(h), logosBg(h), h.LogosGap)
}

func newsTitlePx(h *models.Hallway) int {
	if h.NewsTitlePx > 0 {
		return h.NewsTitlePx
	}
	return 26
}

func logosBg(h *models.Hallway) string {
	if isCSSColor(h.LogosBgColor) {
		return h.LogosBgColor
	}
	return "#ffffff"
}

var cssColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$|^[a-zA-Z]+$`)

func isCSSColor(s string) bool {
	return cssColorRe.MatchString(s)
}

func writeHeader(b *strings.Builder, h *models.Hallway) {
	b.WriteString("<header id=\"header\">\n<div class=\"header-text\">\n")
	fmt.Fprintf(b, "<h1>%s</h1>\n", html.EscapeString(h.Name))
	if strings.TrimSpace(h.Building) != "" {
		fmt.Fprintf(b, "<div class=\"building\">%s</div>\n", html.EscapeString(h.Building))
	}
	b.WriteString("</div>\n")
	if h.WeatherClockEnabled {
		writeWeatherClock(b, h)
	}
	b.WriteString("</header>\n")
}

func writeWeatherClock(b *strings.Builder, h *models.Hallway) {
	city := strings.TrimSpace(h.WeatherCity)
	if city == "" {
		city = "Helsinki"
	}
	b.WriteString("<div id=\"weather\">\n")
	b.WriteString("<div class=\"clock\"><div id=\"clock-day\">&ndash;</div><div id=\"clock-time\">&ndash;</div><div id=\"clock-date\">&ndash;</div></div>\n")
	b.WriteString("<div id=\"weather-icon\">\n")
	writeWeatherIcons(b)
	b.WriteString("</div>\n")
	fmt.Fprintf(b, "<div class=\"temps\"><div class=\"city\">%s</div><div id=\"weather-max\">&ndash;</div><div id=\"weather-min\">&ndash;</div></div>\n", html.EscapeString(city))
	b.WriteString("</div>\n")
}

// One inline SVG per icon category; the runtime toggles visibility by
// data-icon. Shapes follow the original screen's icon set.
var weatherIconSVGs = []struct {
	name string
	body string
}{
	{"clear", `<circle cx="12" cy="12" r="4" fill="currentColor"/><path d="M12 1v3M12 20v3M4.22 4.22l2.12 2.12M17.66 17.66l2.12 2.12M1 12h3M20 12h3M4.22 19.78l2.12-2.12M17.66 6.34l2.12-2.12"/>`},
	{"cloudy", `<path d="M7 18h10a4 4 0 0 0 0-8 6 6 0 0 0-11.3-1.9A4 4 0 0 0 7 18Z" fill="currentColor"/>`},
	{"fog", `<path d="M7 12h10a4 4 0 0 0 0-8 6 6 0 0 0-11.3-1.9A4 4 0 0 0 7 12Z" fill="currentColor"/><path d="M3 16h18M5 19h14"/>`},
	{"rain", `<path d="M7 14h10a4 4 0 0 0 0-8 6 6 0 0 0-11.3-1.9A4 4 0 0 0 7 14Z" fill="currentColor"/><path d="M8 16l-1 3M12 16l-1 3M16 16l-1 3"/>`},
	{"snow", `<path d="M12 4v16M7 7l10 10M17 7L7 17"/>`},
	{"thunder", `<path d="M7 12h10a4 4 0 0 0 0-8 6 6 0 0 0-11.3-1.9A4 4 0 0 0 7 12Z" fill="currentColor"/><path d="M13 13l-3 6h3l-1 4 4-7h-3l1-3z"/>`},
}

func writeWeatherIcons(b *strings.Builder) {
	for _, ic := range weatherIconSVGs {
		display := ""
		if ic.name != "cloudy" {
			display = ` style="display:none"`
		}
		fmt.Fprintf(b, `<svg class="wicon" data-icon="%s"%s viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">%s</svg>`+"\n",
			ic.name, display, ic.body)
	}
}

func writeListing(b *strings.Builder, h *models.Hallway) {
	floors := h.SortedFloors()

	var sizes []int
	if h.ScreenColumns > 1 {
		sizes = SplitEven(len(floors), h.ScreenColumns)
	} else {
		sizes = LayoutPlan(len(floors), h.Orientation)
	}
	columns := PlanColumns(floors, sizes)

	fmt.Fprintf(b, "<main id=\"listing\" class=\"columns-%d\">\n", len(columns))
	for _, col := range columns {
		b.WriteString("<div class=\"floor-col\">\n")
		for _, f := range col {
			writeFloor(b, f)
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("</main>\n")
}

func writeFloor(b *strings.Builder, f models.Floor) {
	b.WriteString("<div class=\"floor\">\n")
	fmt.Fprintf(b, "<div class=\"floor-label\">%s</div>\n", html.EscapeString(f.DisplayLabel()))
	b.WriteString("<div class=\"apartments\">\n")
	for i, a := range f.Apartments {
		number := strings.TrimSpace(a.Number)
		if number == "" {
			number = models.DefaultNumber(f.Level, i)
		}
		names := make([]string, 0, len(a.Tenants))
		for _, t := range a.VisibleTenants() {
			names = append(names, html.EscapeString(t.Surname))
		}
		tenants := strings.Join(names, " / ")
		if tenants == "" {
			tenants = "&ndash;"
		}
		fmt.Fprintf(b, "<div class=\"apartment\"><span class=\"apt-number\">%s</span><span class=\"apt-tenants\">%s</span></div>\n",
			html.EscapeString(number), tenants)
	}
	b.WriteString("</div>\n</div>\n")
}

func writeNews(b *strings.Builder, h *models.Hallway) {
	b.WriteString("<aside id=\"news\">\n")
	if strings.TrimSpace(h.NewsTitle) != "" {
		fmt.Fprintf(b, "<h2>%s</h2>\n", html.EscapeString(h.NewsTitle))
	}
	b.WriteString("<ol id=\"news-list\"><li>&ndash;</li></ol>\n</aside>\n")
}

func writeInfo(b *strings.Builder, h *models.Hallway) {
	classes := "info"
	if h.InfoPinBottom {
		classes += " pin-bottom"
	}
	if h.InfoAlignRight {
		classes += " align-right"
	}
	fmt.Fprintf(b, "<section id=\"info\" class=\"%s\">\n", classes)
	b.WriteString(SanitizeInfoHTML(h.InfoHTML))
	b.WriteString("\n</section>\n")
}

func writeLogos(b *strings.Builder, h *models.Hallway) {
	class := "logo-strip"
	if !h.LogosAnimate {
		class += " static"
	}
	fmt.Fprintf(b, "<div id=\"logo-strip\" class=\"%s\">\n<div id=\"logo-track\" class=\"logo-track\">\n", class)
	for _, l := range h.VisibleLogos() {
		fmt.Fprintf(b, "<img src=\"%s\" alt=\"%s\">\n", html.EscapeString(l.URL), html.EscapeString(l.Name))
	}
	b.WriteString("</div>\n</div>\n")
}

// writeEmbeddedData persists the hallway inside the document. The json
// encoder escapes < to \u003c by default, which keeps the blob from
// terminating its own script tag.
func writeEmbeddedData(b *strings.Builder, h *models.Hallway) {
	data, err := json.Marshal(h)
	if err != nil {
		// Hallway is a plain value type; Marshal cannot fail on it.
		data = []byte("{}")
	}
	fmt.Fprintf(b, "<script id=\"%s\" type=\"application/json\">", HallwayDataID)
	b.Write(data)
	b.WriteString("</script>\n")
}

// Info-panel sanitizer: a narrow blocklist (script elements, inline
// event handlers, javascript: URLs). Operator-controlled input only;
// this is deliberately not a full HTML sanitizer.
var (
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	scriptTagRe   = regexp.MustCompile(`(?i)</?script\b[^>]*>`)
	onAttrRe      = regexp.MustCompile(`(?i)\s+on[a-z]+\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
	jsURLRe       = regexp.MustCompile(`(?i)(href|src)\s*=\s*(["']?)\s*javascript:[^"'\s>]*`)
)

func SanitizeInfoHTML(s string) string {
	s = scriptBlockRe.ReplaceAllString(s, "")
	s = scriptTagRe.ReplaceAllString(s, "")
	s = onAttrRe.ReplaceAllString(s, "")
	s = jsURLRe.ReplaceAllString(s, `$1=$2`)
	return s
}
