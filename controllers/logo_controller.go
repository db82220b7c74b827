package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rappu-backend/services"
	"rappu-backend/utils"
)

type LogoController struct {
	store          services.Storage
	maxUploadBytes int64
}

func NewLogoController(store services.Storage, maxUploadBytes int64) *LogoController {
	return &LogoController{store: store, maxUploadBytes: maxUploadBytes}
}

type logoUploadPayload struct {
	DataURL  string `json:"dataUrl"`
	Filename string `json:"filename"`
	Serial   string `json:"serial"`
}

// Upload handles POST /api/logo: a base64 data URL in, a public URL and
// display name out. The compiler only ever stores the returned URL.
func (lc *LogoController) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, lc.maxUploadBytes)

	var payload logoUploadPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if !strings.HasPrefix(payload.DataURL, "data:") || !strings.Contains(payload.DataURL, ";base64,") {
		utils.JSONError(c, http.StatusBadRequest, "Invalid dataUrl")
		return
	}

	url, name, err := services.SaveLogo(lc.store, payload.DataURL, payload.Filename, payload.Serial)
	if err != nil {
		log.Printf("❌ Logo upload failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Logo save failed: "+err.Error())
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"url": url, "name": name})
}
