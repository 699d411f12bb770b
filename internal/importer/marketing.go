package importer

import (
	"context"
	"os"

	"galley/internal/catalog"
	"galley/internal/fileutil"
	"galley/internal/htmlutil"
	"galley/internal/logging"
	"galley/internal/store"
	"galley/internal/textutil"
)

// importMarketing provisions the marketing clips and, when declared, the
// marketing HTML block with its asset references rewritten to materialized
// URLs. Every materialized ref is recorded in refs for later categories.
func (i *Importer) importMarketing(ctx context.Context, entry *catalog.Entry, req Request, tag store.Tag, refs map[string]string) (int, error) {
	logger := logging.WithContext(ctx, i.logger).With(
		logging.String(logging.FieldPackageKey, entry.Key))

	tagJSON, err := tag.JSON()
	if err != nil {
		return 0, err
	}

	var rows []store.MarketingAsset
	for _, video := range entry.Videos {
		source := i.assetPath(video.File)
		if !fileutil.Exists(source) {
			logger.Warn("marketing clip missing, skipping", logging.String("file", video.File))
			continue
		}
		asset, err := i.assets.Materialize(source,
			entry.Key, "marketing", textutil.SlugifyFileName(video.File))
		if err != nil {
			return 0, err
		}
		refs[video.File] = asset.PublicURL

		posterURL := ""
		if video.Poster != "" {
			posterSource := i.assetPath(video.Poster)
			if !fileutil.Exists(posterSource) {
				logger.Warn("clip poster missing, linking without it",
					logging.String("file", video.Poster))
			} else {
				posterAsset, err := i.assets.Materialize(posterSource,
					entry.Key, "marketing", textutil.SlugifyFileName(video.Poster))
				if err != nil {
					return 0, err
				}
				posterURL = posterAsset.PublicURL
				refs[video.Poster] = posterAsset.PublicURL
			}
		}

		title := video.Title
		if title == "" {
			title = entry.Title
		}
		rows = append(rows, store.MarketingAsset{
			Kind:        store.MarketingKindVideo,
			Title:       title,
			Description: video.Description,
			AssetURL:    asset.PublicURL,
			PosterURL:   posterURL,
			Metadata:    tagJSON,
		})
	}

	if entry.MarketingHTMLRef != "" {
		htmlPath := i.assetPath(entry.MarketingHTMLRef)
		data, readErr := os.ReadFile(htmlPath)
		if readErr != nil {
			logger.Warn("marketing html missing, skipping",
				logging.String("file", entry.MarketingHTMLRef), logging.Error(readErr))
		} else {
			rows = append(rows, store.MarketingAsset{
				Kind:     store.MarketingKindHTML,
				Title:    entry.Title,
				HTML:     htmlutil.Rewrite(string(data), refs),
				Metadata: tagJSON,
			})
		}
	}

	if err := i.store.ReplaceMarketingAssets(ctx, req.EntityID, entry.Key, rows); err != nil {
		return 0, err
	}
	logger.Info("marketing assets linked", logging.Int("rows", len(rows)))
	return len(rows), nil
}
