package content

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jverhoef/cardrail/pkg/errors"
)

// manifest is the on-disk wrapper for both JSON and TOML manifests.
type manifest struct {
	Cards []Record `json:"cards" toml:"cards"`
}

// FileSource reads content records from a JSON or TOML manifest file.
// The format is sniffed from the extension; ".toml" parses as TOML,
// everything else as JSON. A JSON manifest may be either a bare array of
// records or an object with a "cards" field.
type FileSource struct {
	path string
}

// NewFileSource creates a source for a manifest path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// ID returns the absolute manifest path, used as the cache key component.
func (s *FileSource) ID() string {
	if abs, err := filepath.Abs(s.path); err == nil {
		return abs
	}
	return s.path
}

// List reads and parses the manifest, returning records in sandwich order.
func (s *FileSource) List(ctx context.Context) ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", s.path)
		}
		return nil, errors.Wrap(errors.ErrCodeStore, err, "read manifest %s", s.path)
	}

	var records []Record
	if strings.EqualFold(filepath.Ext(s.path), ".toml") {
		var m manifest
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse TOML manifest %s", s.path)
		}
		records = m.Cards
	} else {
		records, err = parseJSONManifest(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse JSON manifest %s", s.path)
		}
	}

	SortSandwich(records)
	return records, nil
}

// parseJSONManifest accepts either a bare array or a {"cards": [...]} object.
func parseJSONManifest(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m.Cards, nil
}

// Static is an in-memory source, useful for tests and embedded content.
type Static struct {
	Name    string
	Records []Record
}

// NewStatic creates an in-memory source with the given identifier.
func NewStatic(name string, records []Record) *Static {
	return &Static{Name: name, Records: records}
}

// ID returns the static source's identifier.
func (s *Static) ID() string { return "static:" + s.Name }

// List returns a copy of the records in sandwich order.
func (s *Static) List(ctx context.Context) ([]Record, error) {
	out := make([]Record, len(s.Records))
	copy(out, s.Records)
	SortSandwich(out)
	return out, nil
}
