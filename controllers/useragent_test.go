package controllers

import "testing"

func TestIsTVUserAgent(t *testing.T) {
	tvs := []string{
		"Mozilla/5.0 (Web0S; Linux/SmartTV)",
		"Mozilla/5.0 (SMART-TV; Linux; Tizen 6.0)",
		"Mozilla/5.0 (X11; NetCast; Linux)",
	}
	for _, ua := range tvs {
		if !isTVUserAgent(ua) {
			t.Errorf("should detect TV: %q", ua)
		}
	}
	if isTVUserAgent("Mozilla/5.0 (Windows NT 10.0) Chrome/120.0") {
		t.Error("desktop browser misdetected as TV")
	}
}
