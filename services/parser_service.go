package services

import (
	"encoding/json"
	"strings"

	"rappu-backend/models"
)

// Parse recovers the hallway value embedded in a previously compiled
// document. It returns nil when the document carries no parseable
// state; it never fails. No validation happens here beyond "is a JSON
// object" — callers default missing fields through Normalize.
func Parse(doc []byte) *models.Hallway {
	blob, ok := extractDataBlob(string(doc))
	if !ok {
		return nil
	}

	blob = strings.TrimSpace(blob)
	if !strings.HasPrefix(blob, "{") {
		return nil
	}

	var h models.Hallway
	if err := json.Unmarshal([]byte(blob), &h); err != nil {
		return nil
	}
	return &h
}

// extractDataBlob locates the well-known data script element by its
// fixed id and returns its text content.
func extractDataBlob(doc string) (string, bool) {
	marker := `id="` + HallwayDataID + `"`
	at := strings.Index(doc, marker)
	if at < 0 {
		return "", false
	}

	open := strings.Index(doc[at:], ">")
	if open < 0 {
		return "", false
	}
	start := at + open + 1

	end := strings.Index(doc[start:], "</script>")
	if end < 0 {
		return "", false
	}
	return doc[start : start+end], true
}
