package catalog

import (
	"path/filepath"
	"strings"

	"galley/internal/textutil"
)

// Entry describes one precanned content package for a known work. Fields are
// read-only after load; asset refs are paths relative to the asset tree root.
type Entry struct {
	Key                       string       `json:"key"`
	Title                     string       `json:"title"`
	AliasFilenames            []string     `json:"alias_filenames"`
	CoverImageFilenameOverride string      `json:"cover_image_filename_override,omitempty"`
	ReportRef                 string       `json:"report_ref,omitempty"`
	PreviewRef                string       `json:"preview_ref,omitempty"`
	LandingPage               *LandingPage `json:"landing_page,omitempty"`
	Videos                    []Video      `json:"videos,omitempty"`
	Covers                    []Cover      `json:"covers,omitempty"`
	MarketingHTMLRef          string       `json:"marketing_html_ref,omitempty"`
	CoversHTMLRef             string       `json:"covers_html_ref,omitempty"`
}

// LandingPage declares the landing-page source document and its copy.
type LandingPage struct {
	File        string `json:"file"`
	Slug        string `json:"slug,omitempty"`
	Title       string `json:"title,omitempty"`
	Headline    string `json:"headline,omitempty"`
	Subheadline string `json:"subheadline,omitempty"`
	Description string `json:"description,omitempty"`
}

// Video declares one marketing clip.
type Video struct {
	File        string `json:"file"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Poster      string `json:"poster,omitempty"`
}

// Cover declares one cover image variant.
type Cover struct {
	File      string `json:"file"`
	Title     string `json:"title,omitempty"`
	CoverType string `json:"cover_type,omitempty"`
	IsPrimary bool   `json:"is_primary,omitempty"`
}

// HasReports reports whether both report documents are declared. The reports
// category requires the pair; a lone report or preview is never imported.
func (e *Entry) HasReports() bool {
	return strings.TrimSpace(e.ReportRef) != "" && strings.TrimSpace(e.PreviewRef) != ""
}

// MatchesFilename reports whether the submitted filename matches any of this
// entry's alias candidates.
func (e *Entry) MatchesFilename(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	for _, alias := range e.aliasCandidates() {
		if textutil.Match(name, alias) {
			return true
		}
	}
	return false
}

// aliasCandidates returns every filename this entry answers to: the declared
// aliases plus the basenames of the report and preview refs.
func (e *Entry) aliasCandidates() []string {
	candidates := make([]string, 0, len(e.AliasFilenames)+2)
	candidates = append(candidates, e.AliasFilenames...)
	if e.ReportRef != "" {
		candidates = append(candidates, filepath.Base(e.ReportRef))
	}
	if e.PreviewRef != "" {
		candidates = append(candidates, filepath.Base(e.PreviewRef))
	}
	return candidates
}
