package store

import "github.com/google/uuid"

// Report statuses stored on report rows. An import writes one row per
// status so downstream surfaces can pick the variant they need.
const (
	ReportStatusPreview   = "preview"
	ReportStatusCompleted = "completed"
)

// PipelineStatusReady marks an entity whose companion content has been
// provisioned end to end.
const PipelineStatusReady = "ready"

// Marketing asset kinds.
const (
	MarketingKindVideo = "video"
	MarketingKindHTML  = "html"
)

// Cover types.
const (
	CoverTypeImage   = "image"
	CoverTypeGallery = "gallery"
)

// Report is a provisioned report row.
type Report struct {
	ID          string
	EntityID    string
	VersionID   string
	Status      string
	Title       string
	DocumentURL string
	APIURL      string
	Metadata    string
	CreatedAt   string
}

// MarketingAsset is a provisioned marketing row, either a materialized
// video with an optional poster or a rewritten HTML block.
type MarketingAsset struct {
	ID          string
	EntityID    string
	Kind        string
	Title       string
	Description string
	AssetURL    string
	PosterURL   string
	HTML        string
	Metadata    string
	CreatedAt   string
}

// Cover is a provisioned cover row. At most one cover per entity is
// primary.
type Cover struct {
	ID        string
	EntityID  string
	Title     string
	CoverType string
	IsPrimary bool
	ImageURL  string
	HTML      string
	Metadata  string
	CreatedAt string
}

// LandingPage is a provisioned landing page row. Slugs are unique
// across all entities.
type LandingPage struct {
	ID          string
	EntityID    string
	Slug        string
	Title       string
	Headline    string
	Subheadline string
	Description string
	HTML        string
	Metadata    string
	CreatedAt   string
}

func newRowID() string {
	return uuid.NewString()
}

func shortID() string {
	return uuid.NewString()[:8]
}
