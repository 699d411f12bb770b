package store_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"galley/internal/services"
	"galley/internal/store"
	"galley/internal/testsupport"
)

func mustTagJSON(t *testing.T, key string) string {
	t.Helper()
	payload, err := store.NewTag(key).JSON()
	if err != nil {
		t.Fatalf("tag JSON: %v", err)
	}
	return payload
}

func TestOpenCreatesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if err := st.EnsureEntity(ctx, "entity-1"); err != nil {
		t.Fatalf("EnsureEntity failed: %v", err)
	}
	status, err := st.PipelineStatus(ctx, "entity-1")
	if err != nil {
		t.Fatalf("PipelineStatus failed: %v", err)
	}
	if status != "" {
		t.Fatalf("expected empty initial status, got %q", status)
	}
}

func TestEnsureEntityIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if err := st.EnsureEntity(ctx, "entity-1"); err != nil {
		t.Fatalf("first EnsureEntity failed: %v", err)
	}
	if err := st.SetPipelineStatus(ctx, "entity-1", store.PipelineStatusReady); err != nil {
		t.Fatalf("SetPipelineStatus failed: %v", err)
	}
	if err := st.EnsureEntity(ctx, "entity-1"); err != nil {
		t.Fatalf("second EnsureEntity failed: %v", err)
	}
	status, err := st.PipelineStatus(ctx, "entity-1")
	if err != nil {
		t.Fatalf("PipelineStatus failed: %v", err)
	}
	if status != store.PipelineStatusReady {
		t.Fatalf("expected status preserved across EnsureEntity, got %q", status)
	}
}

func TestSetPipelineStatusMissingEntity(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	err := st.SetPipelineStatus(context.Background(), "missing", store.PipelineStatusReady)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReplaceReportsSwapsTaggedRows(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if err := st.EnsureEntity(ctx, "entity-1"); err != nil {
		t.Fatalf("EnsureEntity failed: %v", err)
	}

	tagged := mustTagJSON(t, "wool")
	first := []store.Report{
		{Status: store.ReportStatusPreview, Title: "Wool Preview", DocumentURL: "/assets/reports/wool/preview.html", Metadata: tagged},
		{Status: store.ReportStatusCompleted, Title: "Wool", DocumentURL: "/assets/reports/wool/report.html", Metadata: tagged},
	}
	if err := st.ReplaceReports(ctx, "entity-1", "wool", first); err != nil {
		t.Fatalf("first ReplaceReports failed: %v", err)
	}

	// Manual row with metadata not carrying the tag must survive reruns.
	manual := []store.Report{{Status: store.ReportStatusCompleted, Title: "Hand-made", DocumentURL: "/assets/manual.html"}}
	if err := st.ReplaceReports(ctx, "entity-1", "other-key", manual); err != nil {
		t.Fatalf("manual insert failed: %v", err)
	}

	rerun := []store.Report{
		{Status: store.ReportStatusCompleted, Title: "Wool v2", DocumentURL: "/assets/reports/wool/report.html", Metadata: mustTagJSON(t, "wool")},
	}
	if err := st.ReplaceReports(ctx, "entity-1", "wool", rerun); err != nil {
		t.Fatalf("rerun ReplaceReports failed: %v", err)
	}

	reports, err := st.ReportsForEntity(ctx, "entity-1")
	if err != nil {
		t.Fatalf("ReportsForEntity failed: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected manual row plus one rerun row, got %d rows", len(reports))
	}
	var sawManual, sawRerun bool
	for _, r := range reports {
		switch r.Title {
		case "Hand-made":
			sawManual = true
		case "Wool v2":
			sawRerun = true
		case "Wool", "Wool Preview":
			t.Fatalf("stale tagged row survived rerun: %#v", r)
		}
	}
	if !sawManual || !sawRerun {
		t.Fatalf("missing expected rows: manual=%v rerun=%v", sawManual, sawRerun)
	}
}

func TestReplaceCoversPersistsPrimaryFlag(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if err := st.EnsureEntity(ctx, "entity-1"); err != nil {
		t.Fatalf("EnsureEntity failed: %v", err)
	}

	tagged := mustTagJSON(t, "wool")
	covers := []store.Cover{
		{Title: "Wool", CoverType: store.CoverTypeImage, IsPrimary: true, ImageURL: "/assets/covers/wool.jpg", Metadata: tagged},
		{Title: "Wool alt", CoverType: store.CoverTypeImage, ImageURL: "/assets/covers/wool-alt.jpg", Metadata: tagged},
	}
	if err := st.ReplaceCovers(ctx, "entity-1", "wool", covers); err != nil {
		t.Fatalf("ReplaceCovers failed: %v", err)
	}

	got, err := st.CoversForEntity(ctx, "entity-1")
	if err != nil {
		t.Fatalf("CoversForEntity failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 covers, got %d", len(got))
	}
	primaries := 0
	for _, c := range got {
		if c.IsPrimary {
			primaries++
			if c.ImageURL != "/assets/covers/wool.jpg" {
				t.Fatalf("wrong primary cover: %#v", c)
			}
		}
	}
	if primaries != 1 {
		t.Fatalf("expected exactly one primary cover, got %d", primaries)
	}
}

func TestLandingSlugExistsIgnoresOwnTag(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if err := st.EnsureEntity(ctx, "entity-1"); err != nil {
		t.Fatalf("EnsureEntity failed: %v", err)
	}
	if err := st.EnsureEntity(ctx, "entity-2"); err != nil {
		t.Fatalf("EnsureEntity failed: %v", err)
	}

	page := &store.LandingPage{Slug: "wool", Title: "Wool", Metadata: mustTagJSON(t, "wool")}
	if err := st.ReplaceLandingPage(ctx, "entity-1", "wool", page); err != nil {
		t.Fatalf("ReplaceLandingPage failed: %v", err)
	}

	// The slug counts as free for a rerun of the same catalog key.
	exists, err := st.LandingSlugExists(ctx, "wool", "wool")
	if err != nil {
		t.Fatalf("LandingSlugExists failed: %v", err)
	}
	if exists {
		t.Fatal("slug owned by same tag should not count as taken")
	}

	// A different catalog key sees the slug as taken.
	exists, err = st.LandingSlugExists(ctx, "wool", "shift")
	if err != nil {
		t.Fatalf("LandingSlugExists failed: %v", err)
	}
	if !exists {
		t.Fatal("slug owned by another tag should count as taken")
	}
}

func TestReplaceLandingPageNilDeletes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if err := st.EnsureEntity(ctx, "entity-1"); err != nil {
		t.Fatalf("EnsureEntity failed: %v", err)
	}

	page := &store.LandingPage{Slug: "wool", Title: "Wool", Metadata: mustTagJSON(t, "wool")}
	if err := st.ReplaceLandingPage(ctx, "entity-1", "wool", page); err != nil {
		t.Fatalf("ReplaceLandingPage failed: %v", err)
	}
	if err := st.ReplaceLandingPage(ctx, "entity-1", "wool", nil); err != nil {
		t.Fatalf("nil ReplaceLandingPage failed: %v", err)
	}

	pages, err := st.LandingPagesForEntity(ctx, "entity-1")
	if err != nil {
		t.Fatalf("LandingPagesForEntity failed: %v", err)
	}
	if len(pages) != 0 {
		t.Fatalf("expected tagged landing page removed, got %d rows", len(pages))
	}
}

func TestKeyMarkerMatchesTagJSON(t *testing.T) {
	payload := mustTagJSON(t, "beach-read")
	marker := store.KeyMarker("beach-read")
	needle := strings.Trim(marker, "%")
	if !strings.Contains(payload, needle) {
		t.Fatalf("tag payload %q does not contain marker needle %q", payload, needle)
	}
}
