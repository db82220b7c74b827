package services

import (
	"fmt"
	"sort"
	"strings"
)

// HallwayDataID is the id of the script element carrying the embedded
// hallway JSON. It is a fixed contract shared by the compiler, the
// parser and the runtime script.
const HallwayDataID = "__HALLWAY_DATA__"

// BuildMetaName is the meta tag carrying the build identifier the
// runtime polls against.
const BuildMetaName = "x-rappu-build"

// Open-Meteo weather codes grouped into the six icon categories the
// screen can draw. Shared source for WeatherIconFor and the JS table.
var weatherIconCodes = map[string][]int{
	"clear":   {0},
	"cloudy":  {1, 2, 3},
	"fog":     {45, 48},
	"rain":    {51, 53, 55, 56, 57, 61, 63, 65, 66, 67, 80, 81, 82},
	"snow":    {71, 73, 75, 77, 85, 86},
	"thunder": {95, 96, 99},
}

// WeatherIconFor maps an Open-Meteo weather code to an icon category.
// Unknown codes fall back to cloudy.
func WeatherIconFor(code int) string {
	for icon, codes := range weatherIconCodes {
		for _, c := range codes {
			if c == code {
				return icon
			}
		}
	}
	return "cloudy"
}

// MarqueeRepeats is how many extra copies of the logo set guarantee a
// seamless loop: enough content to cover twice the viewport plus one
// spare set. Zero means the content already fits and should be
// centered statically. The runtime script applies the same formula.
func MarqueeRepeats(contentWidth, viewportWidth int) int {
	if contentWidth <= 0 || viewportWidth <= 0 {
		return 0
	}
	if contentWidth <= viewportWidth {
		return 0
	}
	return (2*viewportWidth+contentWidth-1)/contentWidth + 1
}

func weatherCodeMapJS() string {
	icons := make([]string, 0, len(weatherIconCodes))
	for icon := range weatherIconCodes {
		icons = append(icons, icon)
	}
	sort.Strings(icons)

	var pairs []string
	for _, icon := range icons {
		for _, c := range weatherIconCodes[icon] {
			pairs = append(pairs, fmt.Sprintf(`"%d":"%s"`, c, icon))
		}
	}
	return "{" + strings.Join(pairs, ",") + "}"
}

// RuntimeScript renders the TV-side script. Everything configurable is
// read back out of the embedded JSON blob at runtime; only the build
// identifier, the poll interval and the weather-code table are baked in.
func RuntimeScript(buildID string, checkIntervalMinutes int) string {
	r := strings.NewReplacer(
		"__BUILD_ID__", buildID,
		"__CHECK_MS__", fmt.Sprintf("%d", checkIntervalMinutes*60*1000),
		"__DATA_ID__", HallwayDataID,
		"__BUILD_META__", BuildMetaName,
		"__WEATHER_CODES__", weatherCodeMapJS(),
	)
	return r.Replace(runtimeScriptSrc)
}

// The runtime stays ES5: webOS panels in the field run old engines.
const runtimeScriptSrc = `(function () {
  "use strict";
  var BUILD_ID = "__BUILD_ID__";
  var CHECK_MS = __CHECK_MS__;
  var ICON_BY_CODE = __WEATHER_CODES__;

  var cfg = {};
  try {
    var dataEl = document.getElementById("__DATA_ID__");
    cfg = JSON.parse(dataEl.textContent) || {};
  } catch (e) { cfg = {}; }

  function byId(id) { return document.getElementById(id); }
  function setText(id, s) { var el = byId(id); if (el) el.textContent = s; }
  function two(n) { return n < 10 ? "0" + n : "" + n; }

  // Uniform scale so the fixed canvas fits the actual panel.
  function fit() {
    var stage = byId("stage");
    if (!stage) return;
    var s = Math.min(window.innerWidth / stage.offsetWidth, window.innerHeight / stage.offsetHeight);
    stage.style.transform = "scale(" + s + ")";
  }
  window.addEventListener("resize", fit);
  fit();

  // Clock: manual mode renders a fixed moment once, auto ticks.
  var FI_DAYS = ["sunnuntai", "maanantai", "tiistai", "keskiviikko", "torstai", "perjantai", "lauantai"];
  function renderClock(d) {
    setText("clock-day", FI_DAYS[d.getDay()]);
    setText("clock-time", two(d.getHours()) + "." + two(d.getMinutes()));
    setText("clock-date", two(d.getDate()) + "." + two(d.getMonth() + 1) + "." + d.getFullYear());
  }
  if (cfg.weatherClockEnabled) {
    if (cfg.clockMode === "manual" && cfg.clockDate) {
      var m = new Date(cfg.clockDate + "T" + (cfg.clockTime || "00:00"));
      renderClock(isNaN(m.getTime()) ? new Date() : m);
    } else {
      renderClock(new Date());
      setInterval(function () { renderClock(new Date()); }, 1000);
    }
  }

  // Weather via Open-Meteo; Helsinki when nothing else resolves.
  var FALLBACK = { lat: 60.1699, lon: 24.9384 };
  function iconFor(code) { return ICON_BY_CODE[String(code)] || "cloudy"; }
  function fmtTemp(v) {
    return (typeof v === "number" && isFinite(v)) ? Math.round(v) + " °C" : "–";
  }
  function showIcon(name) {
    var icons = document.querySelectorAll("#weather-icon .wicon");
    for (var i = 0; i < icons.length; i++) {
      icons[i].style.display = icons[i].getAttribute("data-icon") === name ? "" : "none";
    }
  }
  function resolveCoords() {
    if (typeof cfg.weatherLat === "number" && typeof cfg.weatherLon === "number" &&
        (cfg.weatherLat !== 0 || cfg.weatherLon !== 0)) {
      return Promise.resolve({ lat: cfg.weatherLat, lon: cfg.weatherLon });
    }
    var city = (cfg.weatherCity || "").replace(/^\s+|\s+$/g, "");
    if (!city) return Promise.resolve(FALLBACK);
    var u = "https://geocoding-api.open-meteo.com/v1/search?count=1&language=fi&format=json&name=" +
      encodeURIComponent(city);
    return fetch(u, { cache: "no-store" })
      .then(function (r) { return r.json(); })
      .then(function (j) {
        var g = j && j.results && j.results[0];
        return g ? { lat: g.latitude, lon: g.longitude } : FALLBACK;
      })
      ["catch"](function () { return FALLBACK; });
  }
  var weatherBusy = false;
  function refreshWeather() {
    if (weatherBusy) return;
    weatherBusy = true;
    resolveCoords().then(function (c) {
      var u = "https://api.open-meteo.com/v1/forecast?daily=temperature_2m_max,temperature_2m_min,weathercode&timezone=auto" +
        "&latitude=" + c.lat + "&longitude=" + c.lon;
      return fetch(u, { cache: "no-store" }).then(function (r) {
        if (!r.ok) throw new Error("weather-http");
        return r.json();
      });
    }).then(function (d) {
      var daily = (d && d.daily) || {};
      setText("weather-max", fmtTemp(daily.temperature_2m_max && daily.temperature_2m_max[0]));
      setText("weather-min", fmtTemp(daily.temperature_2m_min && daily.temperature_2m_min[0]));
      var code = daily.weathercode && daily.weathercode[0];
      showIcon(code == null ? "cloudy" : iconFor(code));
    })["catch"](function () {
      setText("weather-max", "–");
      setText("weather-min", "–");
      showIcon("cloudy");
    }).then(function () { weatherBusy = false; });
  }
  if (cfg.weatherClockEnabled) {
    refreshWeather();
    setInterval(refreshWeather, 60 * 60 * 1000);
  }

  // News list through the same-origin RSS proxy.
  function itemCategory(item) {
    var cats = item.getElementsByTagName("category");
    if (cats.length > 0) {
      var txt = cats[0].textContent && cats[0].textContent.replace(/^\s+|\s+$/g, "");
      if (txt) return txt;
      var term = cats[0].getAttribute("term");
      if (term) return term;
    }
    var subj = item.getElementsByTagName("dc:subject");
    if (subj.length === 0 && item.getElementsByTagNameNS) {
      subj = item.getElementsByTagNameNS("*", "subject");
    }
    if (subj.length > 0 && subj[0].textContent) {
      return subj[0].textContent.replace(/^\s+|\s+$/g, "");
    }
    return "";
  }
  function renderNewsRows(rows) {
    var list = byId("news-list");
    if (!list) return;
    list.innerHTML = "";
    for (var i = 0; i < rows.length; i++) {
      var li = document.createElement("li");
      var title = document.createElement("span");
      title.className = "news-item-title";
      title.textContent = rows[i].title;
      li.appendChild(title);
      if (rows[i].category) {
        var cat = document.createElement("span");
        cat.className = "news-item-cat";
        cat.textContent = rows[i].category;
        li.appendChild(cat);
      }
      list.appendChild(li);
    }
  }
  var newsBusy = false;
  function refreshNews() {
    if (newsBusy) return;
    newsBusy = true;
    fetch("/api/rss?url=" + encodeURIComponent(cfg.newsRssUrl), { cache: "no-store" })
      .then(function (r) {
        if (!r.ok) throw new Error("rss-http");
        return r.text();
      })
      .then(function (xml) {
        var doc = new DOMParser().parseFromString(xml, "text/xml");
        var items = doc.getElementsByTagName("item");
        if (items.length === 0) items = doc.getElementsByTagName("entry");
        var rows = [];
        var limit = cfg.newsLimit > 0 ? cfg.newsLimit : items.length;
        for (var i = 0; i < items.length && rows.length < limit; i++) {
          var titleEl = items[i].getElementsByTagName("title")[0];
          var title = titleEl && titleEl.textContent ? titleEl.textContent.replace(/^\s+|\s+$/g, "") : "";
          if (!title) continue;
          rows.push({ title: title, category: itemCategory(items[i]) });
        }
        if (rows.length === 0) rows = [{ title: "–", category: "" }];
        renderNewsRows(rows);
      })
      ["catch"](function () {
        renderNewsRows([{ title: "–", category: "" }]);
      })
      .then(function () { newsBusy = false; });
  }
  if (cfg.newsEnabled && cfg.newsRssUrl) {
    refreshNews();
    setInterval(refreshNews, 10 * 60 * 1000);
  }

  // Logo strip: duplicate the set until one loop is seamless, or
  // center statically when everything already fits.
  var logoBaseHTML = null;
  function setupLogos() {
    var strip = byId("logo-strip");
    var track = byId("logo-track");
    if (!strip || !track) return;
    if (logoBaseHTML === null) logoBaseHTML = track.innerHTML;
    track.className = "logo-track";
    track.innerHTML = logoBaseHTML;
    if (!cfg.logosAnimate) {
      strip.className = "logo-strip static";
      return;
    }
    var setW = track.scrollWidth;
    var vw = strip.offsetWidth;
    if (setW <= 0 || setW <= vw) {
      strip.className = "logo-strip static";
      return;
    }
    strip.className = "logo-strip";
    var repeats = Math.ceil((2 * vw) / setW) + 1;
    for (var i = 0; i < repeats; i++) {
      track.insertAdjacentHTML("beforeend", logoBaseHTML);
    }
    track.style.setProperty("--logo-loop-px", setW + "px");
    track.style.animationDuration = (cfg.logosSpeed || 30) + "s";
    track.className = "logo-track marquee";
  }
  if (cfg.logosEnabled) {
    setupLogos();
    window.addEventListener("resize", setupLogos);
  }

  // Self-update: refetch the raw document and compare build ids.
  var checking = false;
  function checkForUpdate() {
    if (checking) return;
    checking = true;
    var href = window.location.href;
    var sep = href.indexOf("?") >= 0 ? "&" : "?";
    fetch(href + sep + "raw=1&ts=" + Date.now(), { cache: "no-store" })
      .then(function (r) { return r.text(); })
      .then(function (t) {
        var m = t.match(/name="__BUILD_META__" content="([^"]+)"/);
        if (m && m[1] && m[1] !== BUILD_ID) window.location.reload();
      })
      ["catch"](function () {})
      .then(function () { checking = false; });
  }
  setInterval(checkForUpdate, CHECK_MS);
})();
`
