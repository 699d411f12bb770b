package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"log/slog"

	"galley/internal/logging"
	"galley/internal/services"
	"galley/internal/textutil"
)

// Service provides memoized access to the catalog manifest.
type Service struct {
	path   string
	logger *slog.Logger

	mu      sync.RWMutex
	entries []Entry
	byKey   map[string]*Entry
	loaded  bool
}

// NewService constructs a catalog service backed by the manifest at path. The
// manifest is read lazily on first use and cached until Reload is called.
func NewService(path string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		path:   strings.TrimSpace(path),
		logger: logger.With(logging.String(logging.FieldComponent, "catalog")),
	}
}

// Entries returns every catalog entry in manifest order.
func (s *Service) Entries() ([]Entry, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries, nil
}

// ByKey returns the entry with the given key, or nil when absent.
func (s *Service) ByKey(key string) (*Entry, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byKey[strings.TrimSpace(key)], nil
}

// ResolveByFilename returns the first entry, in manifest order, with any alias
// matching the submitted filename. A nil entry with nil error means no package
// covers this submission; callers fall back to their non-precanned path.
func (s *Service) ResolveByFilename(name string) (*Entry, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.entries {
		entry := &s.entries[i]
		for _, alias := range entry.aliasCandidates() {
			if textutil.Match(name, alias) {
				s.logger.Debug("resolved package by filename",
					logging.String("filename", name),
					logging.String(logging.FieldPackageKey, entry.Key),
					logging.String("alias", alias))
				return entry, nil
			}
		}
	}
	return nil, nil
}

// Reload discards the memoized manifest and reads it again.
func (s *Service) Reload() error {
	entries, byKey, err := s.load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.entries = entries
	s.byKey = byKey
	s.loaded = true
	s.mu.Unlock()
	return nil
}

func (s *Service) ensureLoaded() error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Reload()
}

func (s *Service) load() ([]Entry, map[string]*Entry, error) {
	if s.path == "" {
		return nil, nil, services.Wrap(services.ErrConfiguration, "catalog", "load", "manifest path is not configured", nil)
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil, services.Wrap(services.ErrConfiguration, "catalog", "load", fmt.Sprintf("read manifest %s", s.path), err)
	}

	var manifest struct {
		Books []Entry `json:"books"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, nil, services.Wrap(services.ErrConfiguration, "catalog", "load", "parse manifest", err)
	}

	byKey := make(map[string]*Entry, len(manifest.Books))
	for i := range manifest.Books {
		entry := &manifest.Books[i]
		key := strings.TrimSpace(entry.Key)
		if key == "" {
			return nil, nil, services.Wrap(services.ErrConfiguration, "catalog", "load", fmt.Sprintf("entry %d has no key", i), nil)
		}
		if _, dup := byKey[key]; dup {
			return nil, nil, services.Wrap(services.ErrConfiguration, "catalog", "load", fmt.Sprintf("duplicate entry key %q", key), nil)
		}
		entry.Key = key
		byKey[key] = entry
	}

	s.logger.Info("catalog manifest loaded",
		logging.String("path", s.path),
		logging.Int("entries", len(manifest.Books)))
	return manifest.Books, byKey, nil
}
