package importer

import (
	"context"
	"os"

	"log/slog"

	"galley/internal/catalog"
	"galley/internal/fileutil"
	"galley/internal/htmlutil"
	"galley/internal/logging"
	"galley/internal/store"
	"galley/internal/textutil"
)

// importCovers provisions cover images: a standalone cover resolved from the
// uploads directory when the submission names one, then the manifest-declared
// covers, then the optional covers HTML gallery. At most one row is flagged
// primary; an uploads-derived cover always wins that flag.
func (i *Importer) importCovers(ctx context.Context, entry *catalog.Entry, req Request, tag store.Tag, refs map[string]string) (int, string, error) {
	logger := logging.WithContext(ctx, i.logger).With(
		logging.String(logging.FieldPackageKey, entry.Key))

	var rows []store.Cover
	primaryURL := ""

	uploadName, err := i.resolveUploadCover(entry, req, logger)
	if err != nil {
		return 0, "", err
	}
	if uploadName != "" {
		coverTag := tag
		coverTag.UploadFileNames = []string{uploadName}
		coverTagJSON, err := coverTag.JSON()
		if err != nil {
			return 0, "", err
		}
		asset, err := i.assets.Materialize(i.covers.Path(uploadName),
			entry.Key, "covers", textutil.SlugifyFileName(uploadName))
		if err != nil {
			return 0, "", err
		}
		primaryURL = asset.PublicURL
		refs[uploadName] = asset.PublicURL
		rows = append(rows, store.Cover{
			Title:     entry.Title,
			CoverType: store.CoverTypeImage,
			IsPrimary: true,
			ImageURL:  asset.PublicURL,
			Metadata:  coverTagJSON,
		})
	}

	tagJSON, err := tag.JSON()
	if err != nil {
		return 0, "", err
	}

	for _, cover := range entry.Covers {
		source := i.assetPath(cover.File)
		if !fileutil.Exists(source) {
			logger.Warn("manifest cover missing, skipping", logging.String("file", cover.File))
			continue
		}
		asset, err := i.assets.Materialize(source,
			entry.Key, "covers", textutil.SlugifyFileName(cover.File))
		if err != nil {
			return 0, "", err
		}
		refs[cover.File] = asset.PublicURL

		isPrimary := cover.IsPrimary && primaryURL == ""
		if isPrimary {
			primaryURL = asset.PublicURL
		}
		title := cover.Title
		if title == "" {
			title = entry.Title
		}
		coverType := cover.CoverType
		if coverType == "" {
			coverType = store.CoverTypeImage
		}
		rows = append(rows, store.Cover{
			Title:     title,
			CoverType: coverType,
			IsPrimary: isPrimary,
			ImageURL:  asset.PublicURL,
			Metadata:  tagJSON,
		})
	}

	if entry.CoversHTMLRef != "" {
		htmlPath := i.assetPath(entry.CoversHTMLRef)
		data, readErr := os.ReadFile(htmlPath)
		if readErr != nil {
			logger.Warn("covers html missing, skipping",
				logging.String("file", entry.CoversHTMLRef), logging.Error(readErr))
		} else {
			rows = append(rows, store.Cover{
				Title:     entry.Title,
				CoverType: store.CoverTypeGallery,
				HTML:      htmlutil.Rewrite(string(data), refs),
				Metadata:  tagJSON,
			})
		}
	}

	if err := i.store.ReplaceCovers(ctx, req.EntityID, entry.Key, rows); err != nil {
		return 0, "", err
	}
	logger.Info("covers linked",
		logging.Int("rows", len(rows)),
		logging.Bool("uploads_primary", uploadName != ""))
	return len(rows), primaryURL, nil
}

// resolveUploadCover picks the standalone cover image for the submission: the
// entry's declared override when the submission matches its aliases, else the
// scored search over the uploads listing. An empty name means no standalone
// cover applies.
func (i *Importer) resolveUploadCover(entry *catalog.Entry, req Request, logger *slog.Logger) (string, error) {
	if req.SourceFilename == "" {
		return "", nil
	}

	if override := entry.CoverImageFilenameOverride; override != "" && entry.MatchesFilename(req.SourceFilename) {
		if !fileutil.Exists(i.covers.Path(override)) {
			logger.Warn("cover override missing, falling back to scored search",
				logging.String("file", override))
		} else {
			logger.Debug("cover override applied", logging.String("file", override))
			return override, nil
		}
	}

	candidate, score, err := i.covers.Resolve(req.SourceFilename)
	if err != nil {
		return "", err
	}
	if candidate == "" {
		return "", nil
	}
	logger.Debug("standalone cover selected",
		logging.String("file", candidate), logging.Int("score", score))
	return candidate, nil
}
