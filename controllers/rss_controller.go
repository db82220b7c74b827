package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"
)

// RSSController proxies third-party feeds so the TV runtime can fetch
// them same-origin. A wall of screens polling the same feed tends to
// fire at the same moment, so identical in-flight fetches are collapsed.
type RSSController struct {
	client *http.Client
	group  singleflight.Group
}

func NewRSSController() *RSSController {
	return &RSSController{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type feedResult struct {
	body        []byte
	contentType string
}

// upstreamError carries a non-200 upstream status so the proxy can
// relay it instead of hiding it behind a 500.
type upstreamError struct {
	status int
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("upstream status %d", e.status)
}

// Proxy handles GET /api/rss?url=<feedUrl>.
func (rc *RSSController) Proxy(c *gin.Context) {
	feedURL := strings.TrimSpace(c.Query("url"))
	lower := strings.ToLower(feedURL)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		c.String(http.StatusBadRequest, "Invalid url")
		return
	}

	v, err, _ := rc.group.Do(feedURL, func() (interface{}, error) {
		return rc.fetch(feedURL)
	})
	if err != nil {
		var ue *upstreamError
		if errors.As(err, &ue) {
			c.String(ue.status, "Upstream error")
			return
		}
		c.String(http.StatusInternalServerError, "Proxy failed: %s", err.Error())
		return
	}

	res := v.(*feedResult)
	c.Data(http.StatusOK, res.contentType, res.body)
}

func (rc *RSSController) fetch(feedURL string) (*feedResult, error) {
	req, err := http.NewRequest(http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "rappu-rss-proxy")

	resp, err := rc.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &upstreamError{status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/rss+xml; charset=utf-8"
	}
	return &feedResult{body: body, contentType: contentType}, nil
}
