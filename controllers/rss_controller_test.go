package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRSSProxy(t *testing.T) {
	store := newFakeStorage()
	r := testRouter(t, store)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/feed":
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = w.Write([]byte("<rss><channel><item><title>Uutinen</title></item></channel></rss>"))
		default:
			http.NotFound(w, req)
		}
	}))
	defer upstream.Close()

	t.Run("passes feed through with its content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/rss?url="+upstream.URL+"/feed", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/rss+xml") {
			t.Errorf("content type = %q", ct)
		}
		if !strings.Contains(w.Body.String(), "<title>Uutinen</title>") {
			t.Errorf("body = %q", w.Body.String())
		}
	})

	t.Run("relays upstream error status", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/rss?url="+upstream.URL+"/gone", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want upstream's 404", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Upstream error") {
			t.Errorf("body = %q", w.Body.String())
		}
	})

	t.Run("rejects non-http urls", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/rss?url=ftp://example.com/feed", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}
