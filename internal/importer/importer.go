package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"log/slog"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"galley/internal/assets"
	"galley/internal/catalog"
	"galley/internal/config"
	"galley/internal/coverart"
	"galley/internal/logging"
	"galley/internal/notifications"
	"galley/internal/services"
	"galley/internal/store"
	"galley/internal/textutil"
)

// Categories selects which content categories an import touches.
type Categories struct {
	Reports      bool
	Marketing    bool
	Covers       bool
	LandingPages bool
}

// CategoriesFromConfig maps the configured import toggles onto a category set.
func CategoriesFromConfig(cfg *config.Config) Categories {
	return Categories{
		Reports:      cfg.Imports.Reports,
		Marketing:    cfg.Imports.Marketing,
		Covers:       cfg.Imports.Covers,
		LandingPages: cfg.Imports.LandingPages,
	}
}

// Request describes one import invocation.
type Request struct {
	EntityID       string
	VersionID      string
	SourceFilename string
	PackageKey     string
	Categories     Categories
}

// Result summarizes what an import linked. It is created fresh per call and
// never persisted.
type Result struct {
	PackageKey            string `json:"package_key"`
	Title                 string `json:"title"`
	ReportsLinked         int    `json:"reports_linked"`
	MarketingAssetsLinked int    `json:"marketing_assets_linked"`
	CoversLinked          int    `json:"covers_linked"`
	LandingPageLinked     bool   `json:"landing_page_linked"`
	LandingPageSlug       string `json:"landing_page_slug,omitempty"`
	PrimaryCoverImageURL  string `json:"primary_cover_image_url,omitempty"`
}

// Importer provisions catalog packages onto entities.
type Importer struct {
	cfg      *config.Config
	catalog  *catalog.Service
	covers   *coverart.Finder
	assets   *assets.Materializer
	store    *store.Store
	notifier notifications.Service
	logger   *slog.Logger
}

// New constructs an importer from its collaborators. A nil notifier disables
// notifications; a nil logger discards log output.
func New(cfg *config.Config, catalogSvc *catalog.Service, finder *coverart.Finder, materializer *assets.Materializer, st *store.Store, notifier notifications.Service, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = logging.NewNop()
	}
	if notifier == nil {
		notifier = notifications.NewService(&config.Config{}, nil)
	}
	return &Importer{
		cfg:      cfg,
		catalog:  catalogSvc,
		covers:   finder,
		assets:   materializer,
		store:    st,
		notifier: notifier,
		logger:   logger.With(logging.String(logging.FieldComponent, "importer")),
	}
}

// Import resolves a catalog package for the request and provisions the
// enabled categories. A nil result with nil error means no package covers
// the submission; callers fall back to their non-precanned path.
func (i *Importer) Import(ctx context.Context, req Request) (*Result, error) {
	ctx = ensureContext(ctx)
	start := time.Now()
	entityID := strings.TrimSpace(req.EntityID)
	if entityID == "" {
		return nil, services.Wrap(services.ErrValidation, "importer", "import", "entity id required", nil)
	}
	req.EntityID = entityID
	ctx = services.WithEntityID(ctx, entityID)
	ctx = services.WithRequestID(ctx, uuid.NewString())

	unlock, err := i.lockEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	entry, err := i.resolveEntry(ctx, req)
	if err != nil {
		i.notifyError(ctx, err)
		return nil, err
	}
	if entry == nil {
		logging.WithContext(ctx, i.logger).Info("no package matched submission",
			logging.String("filename", req.SourceFilename))
		if notifyErr := i.notifier.NotifyPackageUnmatched(ctx, req.SourceFilename); notifyErr != nil {
			i.logger.Warn("unmatched notification failed", logging.Error(notifyErr))
		}
		return nil, nil
	}

	logger := logging.WithContext(ctx, i.logger).With(
		logging.String(logging.FieldPackageKey, entry.Key))
	logger.Info("import started", logging.String("filename", req.SourceFilename))

	if err := i.store.EnsureEntity(ctx, entityID); err != nil {
		i.notifyError(ctx, err)
		return nil, err
	}

	tag := store.NewTag(entry.Key)
	tag.SourcePath = req.SourceFilename

	result := &Result{PackageKey: entry.Key, Title: entry.Title}
	refs := make(map[string]string)

	if req.Categories.Reports {
		linked, err := i.importReports(services.WithCategory(ctx, "reports"), entry, req, tag)
		if err != nil {
			i.notifyError(ctx, err)
			return nil, err
		}
		result.ReportsLinked = linked
	}
	if req.Categories.Marketing {
		linked, err := i.importMarketing(services.WithCategory(ctx, "marketing"), entry, req, tag, refs)
		if err != nil {
			i.notifyError(ctx, err)
			return nil, err
		}
		result.MarketingAssetsLinked = linked
	}
	if req.Categories.Covers {
		linked, primaryURL, err := i.importCovers(services.WithCategory(ctx, "covers"), entry, req, tag, refs)
		if err != nil {
			i.notifyError(ctx, err)
			return nil, err
		}
		result.CoversLinked = linked
		result.PrimaryCoverImageURL = primaryURL
	}
	if req.Categories.LandingPages {
		slug, err := i.importLandingPage(services.WithCategory(ctx, "landing_page"), entry, req, tag, refs)
		if err != nil {
			i.notifyError(ctx, err)
			return nil, err
		}
		result.LandingPageLinked = slug != ""
		result.LandingPageSlug = slug
	}

	attrs := []logging.Attr{
		logging.Int("reports", result.ReportsLinked),
		logging.Int("marketing_assets", result.MarketingAssetsLinked),
		logging.Int("covers", result.CoversLinked),
		logging.Bool("landing_page", result.LandingPageLinked),
		logging.Duration("elapsed", time.Since(start)),
	}
	if result.LandingPageSlug != "" {
		attrs = append(attrs, logging.String("slug", result.LandingPageSlug))
	}
	logger.Info("import completed", logging.Args(attrs...)...)
	if notifyErr := i.notifier.NotifyImportCompleted(ctx, entry.Title,
		result.ReportsLinked, result.MarketingAssetsLinked, result.CoversLinked,
		result.LandingPageLinked); notifyErr != nil {
		logger.Warn("completion notification failed", logging.Error(notifyErr))
	}
	return result, nil
}

// resolveEntry looks up the catalog entry for the request: explicit key
// first, filename matching second.
func (i *Importer) resolveEntry(ctx context.Context, req Request) (*catalog.Entry, error) {
	if key := strings.TrimSpace(req.PackageKey); key != "" {
		entry, err := i.catalog.ByKey(key)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			return entry, nil
		}
		logging.WithContext(ctx, i.logger).Warn("explicit package key not in catalog",
			logging.String(logging.FieldPackageKey, key))
	}
	return i.catalog.ResolveByFilename(req.SourceFilename)
}

// lockEntity serializes imports per entity across invocations with a file
// lock under the data directory.
func (i *Importer) lockEntity(ctx context.Context, entityID string) (func(), error) {
	lockDir := filepath.Join(i.cfg.Paths.DataDir, "locks")
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	lockPath := filepath.Join(lockDir, textutil.Slugify(entityID, 64)+".lock")
	lock := flock.New(lockPath)
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("acquire entity lock %s: %w", lockPath, err)
	}
	if err := ctx.Err(); err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			logging.WithContext(ctx, i.logger).Warn("release entity lock failed",
				logging.String("path", lockPath), logging.Error(err))
		}
	}, nil
}

func (i *Importer) notifyError(ctx context.Context, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	if notifyErr := i.notifier.NotifyError(ctx, err, "import"); notifyErr != nil {
		i.logger.Warn("error notification failed", logging.Error(notifyErr))
	}
}

// assetPath resolves a manifest asset ref against the source asset tree.
func (i *Importer) assetPath(ref string) string {
	return filepath.Join(i.cfg.Paths.AssetsDir, filepath.FromSlash(strings.TrimSpace(ref)))
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}
