package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StoredDocument backs the database storage driver: one row per blob
// key. Body holds the compiled document (or an uploaded logo) verbatim;
// Meta carries a small searchable summary for listings.
type StoredDocument struct {
	gorm.Model

	Key         string         `json:"key" gorm:"column:doc_key;uniqueIndex;type:varchar(255)"`
	ContentType string         `json:"contentType" gorm:"column:content_type;type:varchar(100)"`
	Body        []byte         `json:"-" gorm:"type:longblob"`
	Size        int64          `json:"size"`
	Meta        datatypes.JSON `json:"meta,omitempty"`
}

// DocumentMeta is the summary stored in StoredDocument.Meta for screen
// documents so listings don't have to re-parse every blob.
type DocumentMeta struct {
	Serial      string `json:"serial,omitempty"`
	Name        string `json:"name,omitempty"`
	Building    string `json:"building,omitempty"`
	Orientation string `json:"orientation,omitempty"`
	FloorCount  int    `json:"floorCount"`
}
