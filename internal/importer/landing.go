package importer

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"galley/internal/catalog"
	"galley/internal/htmlutil"
	"galley/internal/logging"
	"galley/internal/services"
	"galley/internal/store"
	"galley/internal/textutil"
)

const slugMaxLength = 64

var titleCaser = cases.Title(language.English)

// importLandingPage provisions the landing page row. The returned slug is
// empty when the entry declares no landing page or its source document is
// unreadable; in both cases previously tagged rows are cleared.
func (i *Importer) importLandingPage(ctx context.Context, entry *catalog.Entry, req Request, tag store.Tag, refs map[string]string) (string, error) {
	logger := logging.WithContext(ctx, i.logger).With(
		logging.String(logging.FieldPackageKey, entry.Key))
	lp := entry.LandingPage
	if lp == nil || strings.TrimSpace(lp.File) == "" {
		logger.Info("landing page not declared, skipping category")
		return "", i.store.ReplaceLandingPage(ctx, req.EntityID, entry.Key, nil)
	}

	htmlPath := i.assetPath(lp.File)
	data, err := os.ReadFile(htmlPath)
	if err != nil {
		logger.Warn("landing page source unreadable, skipping category",
			logging.String("file", lp.File), logging.Error(err))
		return "", i.store.ReplaceLandingPage(ctx, req.EntityID, entry.Key, nil)
	}
	html := htmlutil.Rewrite(string(data), refs)

	slug, err := i.chooseSlug(ctx, entry, lp, req.EntityID)
	if err != nil {
		return "", err
	}

	title := strings.TrimSpace(lp.Title)
	if title == "" {
		title = strings.TrimSpace(entry.Title)
	}
	if title == "" {
		title = titleCaser.String(strings.ReplaceAll(entry.Key, "-", " "))
	}
	headline := strings.TrimSpace(lp.Headline)
	if headline == "" {
		headline = title
	}

	tagJSON, err := tag.JSON()
	if err != nil {
		return "", err
	}
	page := &store.LandingPage{
		Slug:        slug,
		Title:       title,
		Headline:    headline,
		Subheadline: lp.Subheadline,
		Description: lp.Description,
		HTML:        html,
		Metadata:    tagJSON,
	}
	if err := i.store.ReplaceLandingPage(ctx, req.EntityID, entry.Key, page); err != nil {
		return "", err
	}
	logger.Info("landing page linked", logging.String("slug", slug))
	return slug, nil
}

// chooseSlug derives the landing page slug from the declared slug, title, or
// catalog key, then probes the store for collisions with rows owned by other
// packages. Collisions get an entity-derived suffix; attempts are bounded so
// a pathological catalog cannot retry forever.
func (i *Importer) chooseSlug(ctx context.Context, entry *catalog.Entry, lp *catalog.LandingPage, entityID string) (string, error) {
	base := textutil.Slugify(lp.Slug, slugMaxLength)
	if base == "" {
		base = textutil.Slugify(lp.Title, slugMaxLength)
	}
	if base == "" {
		base = textutil.Slugify(entry.Title, slugMaxLength)
	}
	if base == "" {
		base = entry.Key
	}

	maxAttempts := i.cfg.Imports.MaxSlugAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	entitySuffix := textutil.Slugify(entityID, 8)

	slug := base
	for attempt := 1; ; attempt++ {
		taken, err := i.store.LandingSlugExists(ctx, slug, entry.Key)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		if attempt >= maxAttempts {
			return "", services.Wrap(services.ErrValidation, "importer", "landing page",
				fmt.Sprintf("no free slug for %q after %d attempts", base, attempt), nil)
		}
		slug = fmt.Sprintf("%s-%s-%d", base, entitySuffix, attempt)
	}
}
