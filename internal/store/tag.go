package store

import (
	"encoding/json"
	"fmt"
)

// Tag marks rows created by a catalog import so a rerun can find and
// replace them without touching rows created by hand. It is stored in
// each row's metadata_json column.
type Tag struct {
	PrecannedKey    string   `json:"precanned_key"`
	Variant         string   `json:"variant,omitempty"`
	UploadFileNames []string `json:"upload_file_names,omitempty"`
	SourcePath      string   `json:"source_path,omitempty"`
}

// NewTag builds a tag for rows belonging to the catalog entry key.
func NewTag(key string) Tag {
	return Tag{PrecannedKey: key, Variant: "import-" + shortID()}
}

// JSON serializes the tag for storage in a metadata column.
func (t Tag) JSON() (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("marshal import tag: %w", err)
	}
	return string(data), nil
}

// KeyMarker returns the LIKE pattern that matches any metadata payload
// tagged with the given catalog key. PrecannedKey is the first field of
// Tag, so encoding/json always emits it at the start of the object and
// the marker stays stable across tag revisions.
func KeyMarker(key string) string {
	return `%"precanned_key":"` + key + `"%`
}
