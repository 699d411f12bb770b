package coverart

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"log/slog"

	"galley/internal/logging"
	"galley/internal/textutil"
)

// imageExtensions lists the extensions eligible as standalone cover candidates.
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// Finder locates cover-candidate images in the uploads directory.
type Finder struct {
	dir    string
	logger *slog.Logger

	mu      sync.Mutex
	listing []string
	loaded  bool
}

// NewFinder constructs a finder over the given uploads directory.
func NewFinder(dir string, logger *slog.Logger) *Finder {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Finder{
		dir:    dir,
		logger: logger.With(logging.String(logging.FieldComponent, "coverart")),
	}
}

// Dir returns the uploads directory this finder scans.
func (f *Finder) Dir() string {
	return f.dir
}

// Resolve returns the best-scoring candidate image filename for the submitted
// name along with its score. An empty filename means no candidate scored above
// zero. Ties keep the earliest candidate in the sorted listing.
func (f *Finder) Resolve(name string) (string, int, error) {
	if strings.TrimSpace(name) == "" {
		return "", 0, nil
	}
	listing, err := f.candidates()
	if err != nil {
		return "", 0, err
	}

	best := ""
	bestScore := 0
	for _, candidate := range listing {
		score := textutil.ScoreMatch(name, candidate)
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	if best != "" {
		f.logger.Debug("standalone cover resolved",
			logging.String("filename", name),
			logging.String("cover", best),
			logging.Int("score", bestScore))
	}
	return best, bestScore, nil
}

// Path returns the absolute path of a candidate filename inside the uploads
// directory.
func (f *Finder) Path(candidate string) string {
	return filepath.Join(f.dir, candidate)
}

// Reload discards the memoized directory listing so the next lookup rescans.
func (f *Finder) Reload() {
	f.mu.Lock()
	f.listing = nil
	f.loaded = false
	f.mu.Unlock()
}

func (f *Finder) candidates() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loaded {
		return f.listing, nil
	}

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		if os.IsNotExist(err) {
			// No uploads area is a normal deployment state, not an error.
			f.listing = nil
			f.loaded = true
			return nil, nil
		}
		return nil, err
	}

	listing := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := imageExtensions[ext]; !ok {
			continue
		}
		listing = append(listing, entry.Name())
	}
	sort.Strings(listing)

	f.listing = listing
	f.loaded = true
	f.logger.Debug("uploads listing cached", logging.Int("candidates", len(listing)))
	return listing, nil
}
