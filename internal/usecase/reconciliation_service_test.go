package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/fixture"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/logging"
)

func newReconciliationService(t *testing.T, env *finalizeEnv, staleAfter time.Duration) *ReconciliationService {
	t.Helper()
	svc, err := NewReconciliationService(env.fixtures, env.svc, 2, staleAfter, logging.NewNop())
	if err != nil {
		t.Fatalf("new reconciliation service: %v", err)
	}
	t.Cleanup(svc.Close)
	return svc
}

func TestReconciliationService_Sweep_ResumesFailedFinalization(t *testing.T) {
	t.Parallel()

	env := newFinalizeEnv(t)
	ctx := context.Background()

	env.teams.setUpdateErr(errors.New("storage down"))
	if _, err := env.svc.Finalize(ctx, "fix-1"); !errors.Is(err, ErrPartialFinalization) {
		t.Fatalf("expected partial finalization, got %v", err)
	}
	env.teams.setUpdateErr(nil)

	sweeper := newReconciliationService(t, env, time.Minute)
	report, err := sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if report.Scanned != 1 || report.Resumed != 1 || report.Failed != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}

	fx := env.fixtures.get("fix-1")
	if fx.Finalization != fixture.FinalizationDone {
		t.Fatalf("expected FINALIZED after sweep, got %q", fx.Finalization)
	}
	if teamA := env.teams.get("team-a"); teamA.Stats.MatchesPlayed != 1 {
		t.Fatalf("unexpected team stats after sweep: %+v", teamA.Stats)
	}
}

func TestReconciliationService_Sweep_SkipsFreshFinalizing(t *testing.T) {
	t.Parallel()

	env := newFinalizeEnv(t)
	ctx := context.Background()

	fx := env.fixtures.get("fix-1")
	fx.Status = fixture.StatusCompleted
	fx.Finalization = fixture.FinalizationRunning
	justNow := time.Now().UTC()
	fx.FinalizedAt = &justNow
	if err := env.fixtures.Update(ctx, fx); err != nil {
		t.Fatalf("prepare fixture: %v", err)
	}

	sweeper := newReconciliationService(t, env, time.Hour)
	report, err := sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if report.Scanned != 1 || report.Skipped != 1 || report.Resumed != 0 {
		t.Fatalf("fresh FINALIZING fixture should be skipped: %+v", report)
	}
}

func TestReconciliationService_Sweep_StealsStaleFinalizing(t *testing.T) {
	t.Parallel()

	env := newFinalizeEnv(t)
	ctx := context.Background()

	// Simulate a worker that died after the commit point: finalize fully,
	// then wind the fixture back into a stale FINALIZING state.
	if _, err := env.svc.Finalize(ctx, "fix-1"); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	fx := env.fixtures.get("fix-1")
	fx.Finalization = fixture.FinalizationRunning
	stale := time.Now().UTC().Add(-time.Hour)
	fx.FinalizedAt = &stale
	if err := env.fixtures.Update(ctx, fx); err != nil {
		t.Fatalf("prepare fixture: %v", err)
	}

	sweeper := newReconciliationService(t, env, time.Minute)
	report, err := sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if report.Resumed != 1 {
		t.Fatalf("stale FINALIZING fixture should be resumed: %+v", report)
	}

	got := env.fixtures.get("fix-1")
	if got.Finalization != fixture.FinalizationDone {
		t.Fatalf("expected FINALIZED, got %q", got.Finalization)
	}
	// Folds already ran on the first pass; the steal must not double-count.
	if teamA := env.teams.get("team-a"); teamA.Stats.MatchesPlayed != 1 {
		t.Fatalf("steal double-counted team stats: %+v", teamA.Stats)
	}
}

func TestReconciliationService_Sweep_NothingToDo(t *testing.T) {
	t.Parallel()

	env := newFinalizeEnv(t)

	sweeper := newReconciliationService(t, env, time.Minute)
	report, err := sweeper.Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if report.Scanned != 0 {
		t.Fatalf("expected empty sweep, got %+v", report)
	}
}
