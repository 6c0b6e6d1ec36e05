package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	filePrefix = "ride-"
	fileSuffix = ".json"
)

// JSONStore keeps one human readable JSON file per category in a directory
type JSONStore struct {
	dir string
	now func() time.Time
}

type jsonFile struct {
	Category string    `json:"category"`
	SavedAt  time.Time `json:"savedAt"`
	Record
}

// NewJSONStore creates a store writing its files to dir
func NewJSONStore(dir string) (*JSONStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening json store: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening json store: %s is not a directory", dir)
	}

	return &JSONStore{dir: dir, now: time.Now}, nil
}

// Load reads the record of the category
func (s *JSONStore) Load(ctx context.Context, category string) (rec *Record, err error) {
	span, _ := startSpan(ctx, DriverJSON, "load", category)
	defer func() { finishSpan(span, err) }()

	if category == "" {
		return nil, ErrInvalidCategory
	}

	f, err := s.read(s.path(category))
	if err != nil {
		return nil, err
	}

	return &f.Record, nil
}

// Save writes the record of the category through a temporary file so that a
// failed write leaves the previous record in place.
func (s *JSONStore) Save(ctx context.Context, category string, rec Record) (saved bool, err error) {
	span, _ := startSpan(ctx, DriverJSON, "save", category)
	defer func() { finishSpan(span, err) }()

	if category == "" {
		return false, ErrInvalidCategory
	}
	if len(rec.Track) < MinTrackPoints {
		return false, nil
	}

	data, err := json.MarshalIndent(jsonFile{
		Category: category,
		SavedAt:  s.now().UTC(),
		Record:   rec,
	}, "", " ")
	if err != nil {
		return false, fmt.Errorf("encoding ride %q: %w", category, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-"+filePrefix+"*")
	if err != nil {
		return false, fmt.Errorf("creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return false, fmt.Errorf("writing ride %q: %w", category, err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("writing ride %q: %w", category, err)
	}
	if err := os.Rename(tmp.Name(), s.path(category)); err != nil {
		return false, fmt.Errorf("replacing ride %q: %w", category, err)
	}

	return true, nil
}

// Delete removes the record of the category
func (s *JSONStore) Delete(ctx context.Context, category string) (err error) {
	span, _ := startSpan(ctx, DriverJSON, "delete", category)
	defer func() { finishSpan(span, err) }()

	if category == "" {
		return ErrInvalidCategory
	}

	err = os.Remove(s.path(category))
	if os.IsNotExist(err) {
		return ErrRecordNotFound
	}
	return err
}

// List summarizes every readable record found in the directory
func (s *JSONStore) List(ctx context.Context) (summaries []Summary, err error) {
	span, _ := startSpan(ctx, DriverJSON, "list", "")
	defer func() { finishSpan(span, err) }()

	paths, err := filepath.Glob(filepath.Join(s.dir, filePrefix+"*"+fileSuffix))
	if err != nil {
		return nil, err
	}

	// unreadable files are left out of the listing, Load still reports them
	summaries = []Summary{}
	for _, p := range paths {
		f, err := s.read(p)
		if err != nil {
			span.LogKV("event", "skipped", "file", filepath.Base(p), "message", err.Error())
			continue
		}
		summaries = append(summaries, summarize(f.Category, f.Record, f.SavedAt))
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Category < summaries[j].Category
	})

	return summaries, nil
}

// Close does nothing, files are closed after every operation
func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) path(category string) string {
	return filepath.Join(s.dir, filePrefix+url.PathEscape(category)+fileSuffix)
}

func (s *JSONStore) read(path string) (*jsonFile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f jsonFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if f.Category == "" {
		name := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(path), filePrefix), fileSuffix)
		if c, err := url.PathUnescape(name); err == nil {
			f.Category = c
		}
	}

	return &f, nil
}
