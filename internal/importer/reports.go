package importer

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"galley/internal/catalog"
	"galley/internal/htmlutil"
	"galley/internal/logging"
	"galley/internal/store"
	"galley/internal/textutil"
)

// importReports provisions the report and preview documents. Both refs must
// be declared and readable; otherwise the category links nothing and any rows
// a previous import left behind are cleared.
func (i *Importer) importReports(ctx context.Context, entry *catalog.Entry, req Request, tag store.Tag) (int, error) {
	logger := logging.WithContext(ctx, i.logger).With(
		logging.String(logging.FieldPackageKey, entry.Key))
	if !entry.HasReports() {
		logger.Info("report pair not declared, skipping category")
		return 0, i.store.ReplaceReports(ctx, req.EntityID, entry.Key, nil)
	}

	reportPath := i.assetPath(entry.ReportRef)
	previewPath := i.assetPath(entry.PreviewRef)

	// The report pair is the one latency-sensitive read of the run; fetch
	// both documents together.
	var (
		group       errgroup.Group
		reportHTML  string
		previewHTML string
	)
	group.Go(func() error {
		data, err := os.ReadFile(reportPath)
		if err != nil {
			return err
		}
		reportHTML = string(data)
		return nil
	})
	group.Go(func() error {
		data, err := os.ReadFile(previewPath)
		if err != nil {
			return err
		}
		previewHTML = string(data)
		return nil
	})
	if err := group.Wait(); err != nil {
		logger.Warn("report source unreadable, skipping category", logging.Error(err))
		return 0, i.store.ReplaceReports(ctx, req.EntityID, entry.Key, nil)
	}

	reportHTML = htmlutil.Inline(reportPath, reportHTML, logger)
	previewHTML = htmlutil.Inline(previewPath, previewHTML, logger)

	reportAsset, err := i.assets.MaterializeBytes([]byte(reportHTML),
		entry.Key, "reports", textutil.SlugifyFileName(entry.ReportRef))
	if err != nil {
		return 0, err
	}
	previewAsset, err := i.assets.MaterializeBytes([]byte(previewHTML),
		entry.Key, "reports", textutil.SlugifyFileName(entry.PreviewRef))
	if err != nil {
		return 0, err
	}

	tagJSON, err := tag.JSON()
	if err != nil {
		return 0, err
	}

	rows := []store.Report{
		{
			VersionID:   req.VersionID,
			Status:      store.ReportStatusPreview,
			Title:       entry.Title + " Preview",
			DocumentURL: previewAsset.PublicURL,
			APIURL:      previewAsset.APIURL,
			Metadata:    tagJSON,
		},
		{
			VersionID:   req.VersionID,
			Status:      store.ReportStatusCompleted,
			Title:       entry.Title,
			DocumentURL: reportAsset.PublicURL,
			APIURL:      reportAsset.APIURL,
			Metadata:    tagJSON,
		},
	}
	if err := i.store.ReplaceReports(ctx, req.EntityID, entry.Key, rows); err != nil {
		return 0, err
	}
	if err := i.store.SetPipelineStatus(ctx, req.EntityID, store.PipelineStatusReady); err != nil {
		return 0, err
	}
	logger.Info("reports linked", logging.Int("rows", len(rows)))
	return len(rows), nil
}
