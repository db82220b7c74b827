package services

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"rappu-backend/models"
)

var (
	dataURLRe  = regexp.MustCompile(`^data:([^;]+);base64,(.+)$`)
	safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	extRe      = regexp.MustCompile(`\.[^.]+$`)
)

// SaveLogo decodes a base64 data URL and stores it under
// logos/{serial}/{name} with a random suffix, returning the public URL
// and a display name derived from the uploaded filename.
func SaveLogo(store Storage, dataURL, filename, serial string) (url, name string, err error) {
	m := dataURLRe.FindStringSubmatch(dataURL)
	if m == nil {
		return "", "", fmt.Errorf("invalid data url")
	}
	contentType := m[1]

	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return "", "", fmt.Errorf("decode base64: %w", err)
	}

	safeName := safeNameRe.ReplaceAllString(filename, "")
	if safeName == "" {
		safeName = "logo-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	}
	safeSerial := models.CanonicalSerial(serial)

	key := "logos/" + safeName
	if safeSerial != "" {
		key = "logos/" + safeSerial + "/" + safeName
	}

	saved, err := store.Save(key, data, SaveOptions{
		ContentType:     contentType,
		AddRandomSuffix: true,
	})
	if err != nil {
		return "", "", fmt.Errorf("store logo: %w", err)
	}

	displayName := extRe.ReplaceAllString(filename, "")
	return saved.URL, displayName, nil
}
