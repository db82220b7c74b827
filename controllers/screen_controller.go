package controllers

import (
	"errors"
	"log"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"rappu-backend/models"
	"rappu-backend/services"
	"rappu-backend/utils"
)

// User-agent fragments identifying smart-TV browsers. Matching is
// case-insensitive.
var tvUserAgents = []string{"web0s", "webos", "smarttv", "smart-tv", "tizen", "netcast", "lge"}

func isTVUserAgent(ua string) bool {
	ua = strings.ToLower(ua)
	for _, frag := range tvUserAgents {
		if strings.Contains(ua, frag) {
			return true
		}
	}
	return false
}

type ScreenController struct {
	store services.Storage
}

func NewScreenController(store services.Storage) *ScreenController {
	return &ScreenController{store: store}
}

type saveScreenPayload struct {
	Hallway  *models.Hallway `json:"hallway"`
	HTML     string          `json:"html"`
	Filename string          `json:"filename"`
	Dir      string          `json:"dir"`
}

// resolve compiles the payload (or takes the pre-compiled html) and
// decides the storage key. serialOverride comes from the path on the
// per-serial route.
func (p *saveScreenPayload) resolve(serialOverride string) (doc []byte, key string, meta *models.DocumentMeta, err error) {
	dir := strings.Trim(p.Dir, "/")
	if dir == "" {
		dir = services.ScreenDir
	}

	if p.Hallway != nil {
		h := p.Hallway
		if serialOverride != "" {
			h.Serial = serialOverride
		}
		h.Normalize()

		filename := strings.TrimSpace(p.Filename)
		if filename == "" {
			if h.Serial == "" {
				return nil, "", nil, errors.New("serial number is required before saving")
			}
			filename = h.StorageFilename()
		}

		doc = services.Compile(h)
		meta = &models.DocumentMeta{
			Serial:      h.Serial,
			Name:        h.Name,
			Building:    h.Building,
			Orientation: h.Orientation,
			FloorCount:  len(h.Floors),
		}
		return doc, dir + "/" + filename, meta, nil
	}

	if strings.TrimSpace(p.HTML) == "" {
		return nil, "", nil, errors.New("missing hallway or html")
	}

	filename := strings.TrimSpace(p.Filename)
	if filename == "" {
		if serialOverride == "" {
			return nil, "", nil, errors.New("filename required")
		}
		filename = serialOverride + ".html"
	}

	doc = []byte(p.HTML)
	if h := services.Parse(doc); h != nil {
		meta = &models.DocumentMeta{
			Serial:      h.Serial,
			Name:        h.Name,
			Building:    h.Building,
			Orientation: h.Orientation,
			FloorCount:  len(h.Floors),
		}
	}
	return doc, dir + "/" + filename, meta, nil
}

func (sc *ScreenController) save(c *gin.Context, serialOverride string) {
	var payload saveScreenPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	doc, key, meta, err := payload.resolve(serialOverride)
	if err != nil {
		// Precondition failures stop here, before any storage call.
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := sc.store.Save(key, doc, services.SaveOptions{
		ContentType: "text/html; charset=utf-8",
		Meta:        meta,
	})
	if err != nil {
		log.Printf("❌ Save failed for %s: %v", key, err)
		// The compiled document goes back to the operator so a failed
		// save never looks like a success and nothing is lost.
		c.JSON(http.StatusBadGateway, gin.H{
			"ok":    false,
			"error": "Storage save failed: " + err.Error(),
			"html":  string(doc),
		})
		return
	}

	log.Printf("✅ Saved %s (%d bytes)", saved.Key, len(doc))
	utils.JSONSuccess(c, http.StatusOK, gin.H{"url": saved.URL, "key": saved.Key})
}

// SaveScreen handles POST /api/ruutu.
func (sc *ScreenController) SaveScreen(c *gin.Context) {
	sc.save(c, "")
}

// SaveScreenBySerial handles POST /api/ruutu/:serial.
func (sc *ScreenController) SaveScreenBySerial(c *gin.Context) {
	serial := models.CanonicalSerial(c.Param("serial"))
	if serial == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing serial")
		return
	}
	sc.save(c, serial)
}

// ListScreens handles GET /api/ruutu.
func (sc *ScreenController) ListScreens(c *gin.Context) {
	entries, err := sc.store.List(services.ScreenDir + "/")
	if err != nil {
		log.Printf("❌ List failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"screens": entries})
}

// ResumeScreen handles GET /api/ruutu/:serial — the admin "resume by
// serial" flow. Fetches the stored document and recovers the hallway
// value from its embedded state.
func (sc *ScreenController) ResumeScreen(c *gin.Context) {
	serial := models.CanonicalSerial(c.Param("serial"))
	if serial == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing serial")
		return
	}

	doc, err := sc.store.Get(services.ScreenDir + "/" + serial + ".html")
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Not found")
			return
		}
		log.Printf("❌ Fetch failed for %s: %v", serial, err)
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	h := services.Parse(doc)
	if h == nil {
		utils.JSONError(c, http.StatusNotFound, "Document has no embedded state")
		return
	}
	h.Normalize()
	utils.JSONSuccess(c, http.StatusOK, gin.H{"hallway": h})
}

// ServeScreen handles GET /api/serve-ruutu. raw=1 returns the stored
// document verbatim (the TV self-update path and the editor both use
// it); otherwise TVs get the document and browsers a redirect into the
// editor pre-filled with the serial.
func (sc *ScreenController) ServeScreen(c *gin.Context) {
	key := strings.TrimSpace(c.Query("key"))
	if key == "" {
		c.String(http.StatusBadRequest, "Missing key")
		return
	}
	sc.serveByKey(c, key)
}

// ServeScreenFile handles GET /ruutu/*file, the pretty-URL rewrite of
// ServeScreen.
func (sc *ScreenController) ServeScreenFile(c *gin.Context) {
	file := strings.TrimPrefix(c.Param("file"), "/")
	if file == "" {
		c.String(http.StatusBadRequest, "Missing file")
		return
	}
	sc.serveByKey(c, services.ScreenDir+"/"+file)
}

func (sc *ScreenController) serveByKey(c *gin.Context, key string) {
	doc, err := sc.store.Get(key)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.String(http.StatusNotFound, "Not found")
			return
		}
		log.Printf("❌ Fetch failed for %s: %v", key, err)
		c.String(http.StatusInternalServerError, "Storage error")
		return
	}

	raw := c.Query("raw") == "1"
	tv := c.Query("tv") == "1" || isTVUserAgent(c.GetHeader("User-Agent"))
	if raw || tv {
		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, "text/html; charset=utf-8", doc)
		return
	}

	serial := strings.TrimSuffix(path.Base(key), ".html")
	c.Redirect(http.StatusFound, "/?serial="+serial)
}
