package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"rappu-backend/models"
)

// ScreenDir is the fixed directory prefix under which compiled screen
// documents are stored.
const ScreenDir = "ruutu"

// ErrNotFound is returned by Get for keys with no stored object.
var ErrNotFound = errors.New("storage: object not found")

type SaveOptions struct {
	ContentType     string
	AddRandomSuffix bool
	// Meta is attached to the stored object where the backend supports
	// it (the db driver); drivers without metadata ignore it.
	Meta *models.DocumentMeta
}

type Saved struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type Entry struct {
	Key        string    `json:"key"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`

	Meta *models.DocumentMeta `json:"meta,omitempty"`
}

// Storage is the key→bytes collaborator the handlers talk to. Keys are
// slash-separated paths like "ruutu/ABC123.html"; no particular backend
// is assumed.
type Storage interface {
	Save(key string, data []byte, opts SaveOptions) (Saved, error)
	Get(key string) ([]byte, error)
	List(prefix string) ([]Entry, error)
}

// withRandomSuffix inserts a short random token before the extension,
// mirroring the upload behavior expected for logo files.
func withRandomSuffix(key string) string {
	ext := path.Ext(key)
	base := strings.TrimSuffix(key, ext)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s-%s%s", base, suffix, ext)
}

func publicURL(baseURL, key string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return "/files/" + key
	}
	return base + "/files/" + key
}

// cleanKey rejects anything that could escape the data directory.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" {
		return "", fmt.Errorf("storage: empty key")
	}
	cleaned := path.Clean(key)
	if cleaned != key || strings.HasPrefix(cleaned, "..") || strings.Contains(cleaned, "../") {
		return "", fmt.Errorf("storage: invalid key %q", key)
	}
	return cleaned, nil
}

// ----------------------------------------------------
// Local filesystem driver
// ----------------------------------------------------

type LocalStorage struct {
	DataDir string
	BaseURL string
}

func NewLocalStorage(dataDir, baseURL string) *LocalStorage {
	return &LocalStorage{DataDir: dataDir, BaseURL: baseURL}
}

func (s *LocalStorage) Save(key string, data []byte, opts SaveOptions) (Saved, error) {
	key, err := cleanKey(key)
	if err != nil {
		return Saved{}, err
	}
	if opts.AddRandomSuffix {
		key = withRandomSuffix(key)
	}

	full := filepath.Join(s.DataDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return Saved{}, fmt.Errorf("mkdir data dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return Saved{}, fmt.Errorf("write %s: %w", key, err)
	}
	return Saved{Key: key, URL: publicURL(s.BaseURL, key)}, nil
}

func (s *LocalStorage) Get(key string) ([]byte, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.DataDir, filepath.FromSlash(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (s *LocalStorage) List(prefix string) ([]Entry, error) {
	root := filepath.Join(s.DataDir, filepath.FromSlash(strings.TrimSuffix(prefix, "/")))
	var entries []Entry
	err := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(s.DataDir, p)
		if relErr != nil {
			return nil
		}
		key := filepath.ToSlash(rel)
		entries = append(entries, Entry{
			Key:        key,
			URL:        publicURL(s.BaseURL, key),
			Size:       info.Size(),
			UploadedAt: info.ModTime(),
		})
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// ----------------------------------------------------
// Database driver (StoredDocument table)
// ----------------------------------------------------

type DBStorage struct {
	DB      *gorm.DB
	BaseURL string
}

func NewDBStorage(db *gorm.DB, baseURL string) *DBStorage {
	return &DBStorage{DB: db, BaseURL: baseURL}
}

func (s *DBStorage) Save(key string, data []byte, opts SaveOptions) (Saved, error) {
	key, err := cleanKey(key)
	if err != nil {
		return Saved{}, err
	}
	if opts.AddRandomSuffix {
		key = withRandomSuffix(key)
	}

	doc := models.StoredDocument{
		Key:         key,
		ContentType: opts.ContentType,
		Body:        data,
		Size:        int64(len(data)),
	}
	if opts.Meta != nil {
		meta, merr := json.Marshal(opts.Meta)
		if merr == nil {
			doc.Meta = datatypes.JSON(meta)
		}
	}

	var existing models.StoredDocument
	err = s.DB.Where("doc_key = ?", key).First(&existing).Error
	switch {
	case err == nil:
		existing.ContentType = doc.ContentType
		existing.Body = doc.Body
		existing.Size = doc.Size
		existing.Meta = doc.Meta
		if err := s.DB.Save(&existing).Error; err != nil {
			return Saved{}, fmt.Errorf("update %s: %w", key, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.DB.Create(&doc).Error; err != nil {
			return Saved{}, fmt.Errorf("insert %s: %w", key, err)
		}
	default:
		return Saved{}, fmt.Errorf("lookup %s: %w", key, err)
	}

	return Saved{Key: key, URL: publicURL(s.BaseURL, key)}, nil
}

func (s *DBStorage) Get(key string) ([]byte, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	var doc models.StoredDocument
	if err := s.DB.Where("doc_key = ?", key).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return doc.Body, nil
}

func (s *DBStorage) List(prefix string) ([]Entry, error) {
	var docs []models.StoredDocument
	if err := s.DB.Select("doc_key", "size", "updated_at", "meta").
		Where("doc_key LIKE ?", prefix+"%").
		Order("doc_key asc").
		Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}

	entries := make([]Entry, 0, len(docs))
	for _, d := range docs {
		e := Entry{
			Key:        d.Key,
			URL:        publicURL(s.BaseURL, d.Key),
			Size:       d.Size,
			UploadedAt: d.UpdatedAt,
		}
		if len(d.Meta) > 0 {
			var meta models.DocumentMeta
			if err := json.Unmarshal(d.Meta, &meta); err == nil {
				e.Meta = &meta
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}
