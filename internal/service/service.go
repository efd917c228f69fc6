package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"videofeed/ingest/internal/catalog"
	"videofeed/ingest/internal/config"
	"videofeed/ingest/internal/domain"
	"videofeed/ingest/internal/state"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// VideoStore persists ingested records.
type VideoStore interface {
	Insert(ctx context.Context, video *domain.Video) error
}

// Sink is a named VideoStore, the name only shows up in logs and errors.
type Sink struct {
	Name  string
	Store VideoStore
}

type Service struct {
	builder          *catalog.Builder
	stateManager     state.StateManager
	sinks            []Sink
	rootURL          string
	categoryItemsURL string
	now              func() time.Time
}

// NewService returns a Service. stateManager may be nil.
func NewService(
	builder *catalog.Builder,
	stateManager state.StateManager,
	feed config.FeedConfig,
	sinks ...Sink,
) *Service {
	return &Service{
		builder:          builder,
		stateManager:     stateManager,
		sinks:            sinks,
		rootURL:          feed.RootURL,
		categoryItemsURL: feed.CategoryItemsURL,
		now:              time.Now,
	}
}

// Ingest runs one full ingestion: build the catalog, hand every record to
// every sink in build order, then record the run. Nothing is written when
// the build fails.
func (s *Service) Ingest(ctx context.Context) (*domain.RunSummary, error) {
	summary := &domain.RunSummary{StartedAt: s.now()}

	s.logPreviousRun(ctx)
	log.Infof("🔄 Ingesting catalog from %s", s.rootURL)

	videos, stats, err := s.builder.BuildWithStats(ctx, s.rootURL, s.categoryItemsURL)
	summary.Categories = stats.Categories
	summary.Items = stats.Items
	summary.Skipped = stats.Skipped
	if err != nil {
		err = fmt.Errorf("failed to build catalog: %w", err)
		s.finish(ctx, summary, err)
		return summary, err
	}

	summary.Records = len(videos)

	if err := s.store(ctx, videos); err != nil {
		s.finish(ctx, summary, err)
		return summary, err
	}

	s.finish(ctx, summary, nil)
	log.Infof("✅ Ingested %d videos from %d categories (%d items skipped)",
		summary.Records, summary.Categories, summary.Skipped)

	return summary, nil
}

// PreviousRun returns the summary recorded by the last ingestion, or
// state.ErrNoRun when there is none or no state manager is configured.
func (s *Service) PreviousRun(ctx context.Context) (*domain.RunSummary, error) {
	if s.stateManager == nil {
		return nil, state.ErrNoRun
	}
	return s.stateManager.GetLastRun(ctx)
}

func (s *Service) logPreviousRun(ctx context.Context) {
	last, err := s.PreviousRun(ctx)
	switch {
	case errors.Is(err, state.ErrNoRun):
		log.Info("No previous ingestion recorded")
	case err != nil:
		log.Warnf("⚠️ Failed to read previous run: %v", err)
	case last.Succeeded():
		log.Infof("Previous run finished %s with %d videos", last.FinishedAt.Format(time.RFC3339), last.Records)
	default:
		log.Warnf("⚠️ Previous run finished %s with error: %s", last.FinishedAt.Format(time.RFC3339), last.Error)
	}
}

func (s *Service) store(ctx context.Context, videos []*domain.Video) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, sink := range s.sinks {
		g.Go(func() error {
			for _, video := range videos {
				if err := sink.Store.Insert(ctx, video); err != nil {
					return fmt.Errorf("sink %s: %w", sink.Name, err)
				}
			}
			log.Infof("✅ Stored %d videos in %s", len(videos), sink.Name)
			return nil
		})
	}

	return g.Wait()
}

func (s *Service) finish(ctx context.Context, summary *domain.RunSummary, runErr error) {
	summary.FinishedAt = s.now()
	if runErr != nil {
		summary.Error = runErr.Error()
		log.Errorf("❌ Ingestion failed: %v", runErr)
	}

	if s.stateManager == nil {
		return
	}

	// Failing to record the run does not fail the run.
	if err := s.stateManager.SetLastRun(context.WithoutCancel(ctx), summary); err != nil {
		log.Warnf("⚠️ Failed to record run summary: %v", err)
	}
}
