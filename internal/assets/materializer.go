package assets

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"log/slog"

	"galley/internal/config"
	"galley/internal/fileutil"
	"galley/internal/logging"
	"galley/internal/textutil"
)

// Asset describes one materialized file and the URLs under which it is served.
type Asset struct {
	SourcePath      string
	DestinationPath string
	PublicURL       string
	APIURL          string
}

// Materializer copies source assets into the public tree exactly once per
// process and computes their servable URLs.
type Materializer struct {
	publicRoot string
	publicBase string
	apiBase    string
	logger     *slog.Logger

	mu     sync.Mutex
	copied map[string]struct{}
}

// New constructs a materializer writing into the configured public directory.
func New(cfg *config.Config, logger *slog.Logger) *Materializer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Materializer{
		publicRoot: cfg.Paths.PublicDir,
		publicBase: cfg.Serving.PublicBasePath,
		apiBase:    cfg.Serving.APIBasePath,
		logger:     logger.With(logging.String(logging.FieldComponent, "assets")),
		copied:     make(map[string]struct{}),
	}
}

// Materialize copies sourcePath to publicRoot joined with segments, creating
// intermediate directories. The copy is skipped when this process already
// materialized the same destination.
func (m *Materializer) Materialize(sourcePath string, segments ...string) (Asset, error) {
	asset, err := m.plan(sourcePath, segments)
	if err != nil {
		return Asset{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, done := m.copied[asset.DestinationPath]; done {
		return asset, nil
	}
	if err := os.MkdirAll(filepath.Dir(asset.DestinationPath), 0o755); err != nil {
		return Asset{}, err
	}
	if err := fileutil.CopyFileVerified(sourcePath, asset.DestinationPath); err != nil {
		return Asset{}, err
	}
	m.copied[asset.DestinationPath] = struct{}{}
	m.logger.Debug("asset materialized",
		logging.String("source", sourcePath),
		logging.String("destination", asset.DestinationPath))
	return asset, nil
}

// MaterializeBytes writes generated content (for example an inlined report
// document) to publicRoot joined with segments under the same copy-once and
// URL rules as Materialize.
func (m *Materializer) MaterializeBytes(content []byte, segments ...string) (Asset, error) {
	asset, err := m.plan("", segments)
	if err != nil {
		return Asset{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, done := m.copied[asset.DestinationPath]; done {
		return asset, nil
	}
	if err := fileutil.WriteFileEnsured(asset.DestinationPath, content); err != nil {
		return Asset{}, err
	}
	m.copied[asset.DestinationPath] = struct{}{}
	m.logger.Debug("generated asset materialized",
		logging.String("destination", asset.DestinationPath),
		logging.Int("bytes", len(content)))
	return asset, nil
}

func (m *Materializer) plan(sourcePath string, segments []string) (Asset, error) {
	cleaned := make([]string, 0, len(segments))
	for _, segment := range segments {
		// Segments come from manifest data; keep each one a single safe
		// path element.
		segment = textutil.SanitizeFileName(strings.TrimSpace(segment))
		if segment == "" {
			continue
		}
		cleaned = append(cleaned, segment)
	}
	if len(cleaned) == 0 {
		return Asset{}, errors.New("materialize: no destination segments")
	}

	urlPath := path.Join(cleaned...)
	return Asset{
		SourcePath:      sourcePath,
		DestinationPath: filepath.Join(append([]string{m.publicRoot}, cleaned...)...),
		PublicURL:       m.publicBase + "/" + urlPath,
		APIURL:          m.apiBase + "/" + urlPath,
	}, nil
}
