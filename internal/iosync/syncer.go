// Package iosync implements the ingestion pipeline: category members
// in, enriched person records out. One run walks its categories
// sequentially and each candidate's external calls are awaited one at
// a time; all three services ban clients that hammer them, so the
// pipeline is a throttle, not a worker pool.
package iosync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/wikipeople/wpdb/pkg/client"
	"github.com/wikipeople/wpdb/pkg/config"
	"github.com/wikipeople/wpdb/pkg/db"
	"github.com/wikipeople/wpdb/pkg/lifecycle"
	"github.com/wikipeople/wpdb/pkg/vocab"
)

// syncer implements the Syncer interface. One instance holds at most
// one active run; the mutex guards the run slot, never the pipeline.
type syncer struct {
	operator db.Operator
	enc      client.Encyclopedia
	kg       client.KnowledgeGraph
	geo      client.Geocoder
	vocab    vocab.Vocab
	disc     lifecycle.Discoverer

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
	runErr  error
}

// New creates a new Syncer.
func New(
	op db.Operator,
	enc client.Encyclopedia,
	kg client.KnowledgeGraph,
	geo client.Geocoder,
	voc vocab.Vocab,
	disc lifecycle.Discoverer,
) lifecycle.Syncer {
	return &syncer{
		operator: op,
		enc:      enc,
		kg:       kg,
		geo:      geo,
		vocab:    voc,
		disc:     disc,
	}
}

// Start claims the single run slot and launches the run in the
// background.
func (s *syncer) Start(ctx context.Context, cfg *config.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ActiveError()
	}
	if s.operator.Pool() == nil {
		return NotConnectedError()
	}

	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.runErr = nil

	go s.run(ctx, cfg)
	return nil
}

func (s *syncer) run(ctx context.Context, cfg *config.Config) {
	err := s.execute(ctx, cfg)

	s.mu.Lock()
	s.runErr = err
	s.running = false
	close(s.done)
	s.mu.Unlock()
}

// Stop requests a graceful stop, honored at the next category
// boundary.
func (s *syncer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
}

// Active reports whether a run is in progress.
func (s *syncer) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Wait blocks until the active run finishes and returns its error.
func (s *syncer) Wait() error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done == nil {
		return nil
	}
	<-done

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runErr
}

func (s *syncer) stopRequested() bool {
	s.mu.Lock()
	stop := s.stop
	s.mu.Unlock()

	select {
	case <-stop:
		return true
	default:
		return false
	}
}

// execute is the body of one run: resolve categories, process each,
// write audit entries, summarize.
func (s *syncer) execute(ctx context.Context, cfg *config.Config) error {
	startTime := time.Now()
	slog.Info("Starting sync run",
		"categories", len(cfg.Sync.Categories),
		"force", cfg.Sync.Force,
		"limit", cfg.Sync.Limit)

	voc, err := s.vocab.Load()
	if err != nil {
		return err
	}

	categories := cfg.Sync.Categories
	if len(categories) == 0 {
		categories, err = s.disc.Discover(ctx, cfg)
		if err != nil {
			return err
		}
	}

	run, err := s.newRunContext(ctx)
	if err != nil {
		return err
	}

	successCount := 0
	errorCount := 0
	attempted := 0

	for i, category := range categories {
		select {
		case <-ctx.Done():
			return CancelledError(ctx.Err())
		default:
		}
		if s.stopRequested() {
			slog.Info("Sync stopped by request",
				"processed", attempted,
				"remaining", len(categories)-attempted)
			gn.Info("Sync stopped; <em>%d</em> categories left unprocessed",
				len(categories)-attempted)
			break
		}

		categoryStart := time.Now()
		attempted++

		fmt.Println()
		fmt.Println(strings.Repeat("─", 60))
		gn.Info("Category [%d/%d]: %s", i+1, len(categories), category)
		fmt.Println(strings.Repeat("─", 60))

		stats, err := s.processCategory(ctx, cfg, run, voc, category)
		run.totals.add(stats)
		if err != nil {
			errorCount++
			slog.Error("Failed to process category",
				"category", category, "error", err)
			s.logImport(ctx, category, false, errMessage(err), 0)
			continue
		}

		successCount++
		s.logImport(ctx, category, true,
			fmt.Sprintf("created %d, updated %d, skipped %d",
				stats.created, stats.updated, stats.skipped),
			stats.processed())

		duration := time.Since(categoryStart)
		slog.Info("Category processed",
			"category", category,
			"created", stats.created,
			"updated", stats.updated,
			"skipped", stats.skipped,
			"dropped", stats.dropped,
			"failed", stats.failed,
			"duration", gnfmt.TimeString(duration.Seconds()))
		gn.Info("Completed in %s", gnfmt.TimeString(duration.Seconds()))
	}

	totalDuration := time.Since(startTime)
	slog.Info("Sync complete",
		"success", successCount,
		"errors", errorCount,
		"created", run.totals.created,
		"updated", run.totals.updated,
		"duration", gnfmt.TimeString(totalDuration.Seconds()))
	gn.Info(`Sync complete
Categories succeeded: %d, failed %d, total %d.
Records created: %s, updated: %s, skipped: %s.
        Elapsed time: <em>%s</em>
`,
		successCount,
		errorCount,
		attempted,
		humanize.Comma(int64(run.totals.created)),
		humanize.Comma(int64(run.totals.updated)),
		humanize.Comma(int64(run.totals.skipped)),
		gnfmt.TimeString(totalDuration.Seconds()),
	)

	if errorCount > 0 && successCount == 0 {
		return AllCategoriesFailedError(errorCount)
	}
	if errorCount > 0 {
		slog.Warn("Some categories failed to process",
			"failed", errorCount, "succeeded", successCount)
	}
	return nil
}

// logImport writes the audit entry and only logs when the write
// itself fails; a broken audit trail must not fail the run.
func (s *syncer) logImport(
	ctx context.Context,
	category string, success bool, message string, processed int,
) {
	if err := s.writeImportLog(
		ctx, category, success, message, processed,
	); err != nil {
		slog.Error("Cannot write import log",
			"category", category, "error", err)
	}
}

// errMessage extracts the compact wrapped error for audit messages,
// leaving the user-facing markup out of the database.
func errMessage(err error) string {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) && gnErr.Err != nil {
		return gnErr.Err.Error()
	}
	return err.Error()
}
