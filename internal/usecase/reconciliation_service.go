package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/fixture"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/logging"
)

// SweepReport summarizes one reconciliation pass.
type SweepReport struct {
	Scanned int `json:"scanned"`
	Resumed int `json:"resumed"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// ReconciliationService re-enters finalization pipelines that died midway,
// so no fixture stays parked in FINALIZING or FINALIZATION_FAILED forever.
// Safe to run concurrently with live traffic: every resume goes through the
// same optimistic saves and fold ledgers as a first-time finalization.
type ReconciliationService struct {
	fixtureRepo fixture.Repository
	finalizer   *FinalizationService
	pool        *ants.Pool
	logger      *logging.Logger
	// staleAfter is how long a fixture may sit in FINALIZING after its
	// commit point before the sweep assumes the worker died.
	staleAfter time.Duration
	now        func() time.Time
}

func NewReconciliationService(
	fixtureRepo fixture.Repository,
	finalizer *FinalizationService,
	workers int,
	staleAfter time.Duration,
	logger *logging.Logger,
) (*ReconciliationService, error) {
	if workers <= 0 {
		workers = 4
	}
	if staleAfter <= 0 {
		staleAfter = 2 * time.Minute
	}
	if logger == nil {
		logger = logging.Default()
	}

	pool, err := ants.NewPool(workers, ants.WithNonblocking(false))
	if err != nil {
		return nil, fmt.Errorf("create reconciliation pool: %w", err)
	}

	return &ReconciliationService{
		fixtureRepo: fixtureRepo,
		finalizer:   finalizer,
		pool:        pool,
		logger:      logger,
		staleAfter:  staleAfter,
		now:         time.Now,
	}, nil
}

// Sweep scans for unfinalized fixtures and resumes each eligible one on the
// worker pool. A fixture that is still FINALIZING but inside the staleness
// window is assumed to have a live worker and is skipped.
func (s *ReconciliationService) Sweep(ctx context.Context) (SweepReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconciliationService.Sweep")
	defer span.End()

	candidates, err := s.fixtureRepo.ListUnfinalized(ctx)
	if err != nil {
		return SweepReport{}, fmt.Errorf("list unfinalized fixtures: %w", err)
	}

	report := SweepReport{Scanned: len(candidates)}
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, fx := range candidates {
		if !s.eligible(fx) {
			report.Skipped++
			continue
		}

		fixtureID := fx.ID
		wg.Add(1)
		if err := s.pool.Submit(func() {
			defer wg.Done()
			_, resumeErr := s.finalizer.Resume(ctx, fixtureID)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case resumeErr == nil:
				report.Resumed++
			case errors.Is(resumeErr, ErrConflict):
				// Another worker got there first; not a failure.
				report.Skipped++
			default:
				report.Failed++
				s.logger.ErrorContext(ctx, "reconciliation resume failed",
					"fixture_id", fixtureID, "error", resumeErr)
			}
		}); err != nil {
			wg.Done()
			report.Failed++
			s.logger.ErrorContext(ctx, "submit reconciliation job", "fixture_id", fixtureID, "error", err)
		}
	}

	wg.Wait()

	s.logger.InfoContext(ctx, "reconciliation sweep finished",
		"scanned", report.Scanned,
		"resumed", report.Resumed,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)

	return report, nil
}

func (s *ReconciliationService) eligible(fx fixture.Fixture) bool {
	switch fx.Finalization {
	case fixture.FinalizationFailed:
		return true
	case fixture.FinalizationRunning:
		// Past the commit point we know when the pipeline started; give a
		// live worker the staleness window before stealing the fixture. A
		// FINALIZING fixture with no commit timestamp died before step 1,
		// so there is nothing to wait for.
		if fx.FinalizedAt == nil {
			return true
		}
		return s.now().Sub(*fx.FinalizedAt) > s.staleAfter
	default:
		return false
	}
}

// Close releases the worker pool.
func (s *ReconciliationService) Close() {
	s.pool.Release()
}
