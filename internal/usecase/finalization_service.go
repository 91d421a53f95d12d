package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/audit"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/competition"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/fixture"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/livefixture"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/notification"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/player"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/team"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/cache"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/logging"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/resilience"
)

const topScorerLimit = 10

// FinalizationService drives the ordered pipeline that turns a live match
// into permanent history:
//
//  1. materialize the permanent fixture from the live twin (commit point)
//  2. fold the result into competition standings (league and/or group)
//  3. fold player career and competition stats
//  4. fold both teams' aggregate stats
//  5. recompute competition-wide aggregates from all completed fixtures
//  6. mark the fixture finalized and archive the live twin
//
// Step 1 is the commit point: once the fixture is COMPLETED, steps 2-4 are
// idempotent through per-document folded-fixture ledgers and step 5 is a
// full recompute, so a failed pipeline can be re-entered safely. Standings
// writes for one competition are serialized through a keyed mutex because
// two fixtures of the same competition finalizing together would race on
// the standings array.
type FinalizationService struct {
	fixtureRepo     fixture.Repository
	liveRepo        livefixture.Repository
	competitionRepo competition.Repository
	playerRepo      player.Repository
	teamRepo        team.Repository
	auditRecorder   audit.Recorder
	notifier        notification.Notifier
	standingsCache  *cache.Store
	locks           *resilience.KeyedMutex
	logger          *logging.Logger
	now             func() time.Time
}

func NewFinalizationService(
	fixtureRepo fixture.Repository,
	liveRepo livefixture.Repository,
	competitionRepo competition.Repository,
	playerRepo player.Repository,
	teamRepo team.Repository,
	auditRecorder audit.Recorder,
	notifier notification.Notifier,
	standingsCache *cache.Store,
	logger *logging.Logger,
) *FinalizationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FinalizationService{
		fixtureRepo:     fixtureRepo,
		liveRepo:        liveRepo,
		competitionRepo: competitionRepo,
		playerRepo:      playerRepo,
		teamRepo:        teamRepo,
		auditRecorder:   auditRecorder,
		notifier:        notifier,
		standingsCache:  standingsCache,
		locks:           resilience.NewKeyedMutex(),
		logger:          logger,
		now:             time.Now,
	}
}

// Finalize ends a live fixture. Re-invoking it on an already finalized
// fixture is a no-op; invoking it while another attempt holds the
// finalizing guard is rejected with a conflict.
func (s *FinalizationService) Finalize(ctx context.Context, fixtureID string) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FinalizationService.Finalize")
	defer span.End()

	fx, err := s.getFixture(ctx, fixtureID)
	if err != nil {
		return fixture.Fixture{}, err
	}

	switch fx.Finalization {
	case fixture.FinalizationDone:
		return fx, nil
	case fixture.FinalizationRunning:
		return fixture.Fixture{}, fmt.Errorf("%w: finalization already in progress for fixture %s", ErrConflict, fixtureID)
	case fixture.FinalizationFailed:
		return s.resume(ctx, fx)
	}

	if fx.Status != fixture.StatusLive {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture %s is %s, only a live fixture can be finalized", ErrConflict, fixtureID, fx.Status)
	}

	// The live twin must exist before any mutation happens.
	live, exists, err := s.liveRepo.GetByFixtureID(ctx, fixtureID)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("get live fixture: %w", err)
	}
	if !exists {
		return fixture.Fixture{}, fmt.Errorf("%w: live fixture=%s", ErrNotFound, fixtureID)
	}

	// Guarded LIVE -> FINALIZING transition: the optimistic save rejects a
	// second concurrent attempt that read the same version.
	fx.Finalization = fixture.FinalizationRunning
	if err := s.fixtureRepo.Update(ctx, fx); err != nil {
		if isVersionConflict(err) {
			return fixture.Fixture{}, fmt.Errorf("%w: fixture %s is being finalized by another request", ErrConflict, fixtureID)
		}
		return fixture.Fixture{}, fmt.Errorf("enter finalizing state: %w", err)
	}
	fx.Version++

	fx, err = s.materialize(ctx, fx, live)
	if err != nil {
		// Nothing permanent was written; release the guard so the fixture
		// can be retried.
		fx.Finalization = fixture.FinalizationNone
		if revertErr := s.fixtureRepo.Update(ctx, fx); revertErr != nil {
			s.logger.ErrorContext(ctx, "release finalizing guard failed", "fixture_id", fixtureID, "error", revertErr)
		}
		return fixture.Fixture{}, err
	}

	return s.propagate(ctx, fx)
}

// Resume re-enters a finalization that failed or stalled after the commit
// point. Used by the reconciliation sweep.
func (s *FinalizationService) Resume(ctx context.Context, fixtureID string) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FinalizationService.Resume")
	defer span.End()

	fx, err := s.getFixture(ctx, fixtureID)
	if err != nil {
		return fixture.Fixture{}, err
	}

	switch fx.Finalization {
	case fixture.FinalizationDone:
		return fx, nil
	case fixture.FinalizationRunning, fixture.FinalizationFailed:
		return s.resume(ctx, fx)
	default:
		return fixture.Fixture{}, fmt.Errorf("%w: fixture %s has no finalization to resume", ErrConflict, fixtureID)
	}
}

func (s *FinalizationService) resume(ctx context.Context, fx fixture.Fixture) (fixture.Fixture, error) {
	if fx.Status != fixture.StatusCompleted {
		// The pipeline died before the commit point; the live twin is still
		// the source of truth.
		live, exists, err := s.liveRepo.GetByFixtureID(ctx, fx.ID)
		if err != nil {
			return fixture.Fixture{}, fmt.Errorf("get live fixture: %w", err)
		}
		if !exists {
			return fixture.Fixture{}, fmt.Errorf("%w: live fixture=%s", ErrNotFound, fx.ID)
		}

		fx.Finalization = fixture.FinalizationRunning
		if err := s.fixtureRepo.Update(ctx, fx); err != nil {
			if isVersionConflict(err) {
				return fixture.Fixture{}, fmt.Errorf("%w: fixture %s is being finalized by another request", ErrConflict, fx.ID)
			}
			return fixture.Fixture{}, fmt.Errorf("re-enter finalizing state: %w", err)
		}
		fx.Version++

		var materializeErr error
		fx, materializeErr = s.materialize(ctx, fx, live)
		if materializeErr != nil {
			return fixture.Fixture{}, materializeErr
		}
	}

	return s.propagate(ctx, fx)
}

// materialize is step 1, the commit point: the authoritative "this match
// happened" write copying the live twin into the permanent fixture.
func (s *FinalizationService) materialize(ctx context.Context, fx fixture.Fixture, live livefixture.LiveFixture) (fixture.Fixture, error) {
	result := live.Result
	result.WinnerTeamID = winnerOf(fx, result)

	stats := live.Statistics

	fx.Result = &result
	fx.Statistics = &stats
	fx.Lineups = live.Lineups
	fx.Timeline = append([]fixture.TimelineEvent(nil), live.Timeline...)
	fx.Substitutions = append([]fixture.Substitution(nil), live.Substitutions...)
	fx.PlayerRatings = append([]fixture.PlayerRating(nil), live.PlayerRatings...)
	fx.PlayerOfTheMatchID = live.PlayerOfTheMatchID
	if fx.PlayerOfTheMatchID == "" {
		fx.PlayerOfTheMatchID = topFanVote(live.FanVotes)
	}
	fx.Status = fixture.StatusCompleted
	finalizedAt := s.now().UTC()
	fx.FinalizedAt = &finalizedAt

	if err := s.fixtureRepo.Update(ctx, fx); err != nil {
		if isVersionConflict(err) {
			return fixture.Fixture{}, fmt.Errorf("%w: materialize fixture %s: %v", ErrConflict, fx.ID, err)
		}
		return fixture.Fixture{}, fmt.Errorf("materialize fixture: %w", err)
	}
	fx.Version++

	return fx, nil
}

// propagate runs steps 2-5 and the FINALIZED mark. Any failure moves the
// fixture to FINALIZATION_FAILED so the reconciliation sweep can re-enter
// the pipeline; counters cannot double because every fold is keyed by
// fixture id.
func (s *FinalizationService) propagate(ctx context.Context, fx fixture.Fixture) (fixture.Fixture, error) {
	if err := s.updateCompetition(ctx, fx); err != nil {
		return fixture.Fixture{}, s.markFailed(ctx, fx, "standings", err)
	}

	facts := BuildMatchFacts(fx)

	if err := s.updatePlayers(ctx, facts); err != nil {
		return fixture.Fixture{}, s.markFailed(ctx, fx, "player stats", err)
	}

	if err := s.updateTeams(ctx, facts); err != nil {
		return fixture.Fixture{}, s.markFailed(ctx, fx, "team stats", err)
	}

	fx.Finalization = fixture.FinalizationDone
	if err := s.fixtureRepo.Update(ctx, fx); err != nil {
		return fixture.Fixture{}, s.markFailed(ctx, fx, "mark finalized", err)
	}
	fx.Version++

	if err := s.liveRepo.Delete(ctx, fx.ID); err != nil {
		// The twin is only a leftover now; the sweep can clean it up.
		s.logger.WarnContext(ctx, "archive live fixture failed", "fixture_id", fx.ID, "error", err)
	}

	s.recordAudit(ctx, fx)
	s.notifyResult(ctx, fx)

	s.logger.InfoContext(ctx, "fixture finalized",
		"fixture_id", fx.ID,
		"competition_id", fx.CompetitionID,
		"home_team", fx.HomeTeamID,
		"away_team", fx.AwayTeamID,
	)

	return fx, nil
}

// updateCompetition folds the result into the league table and/or the
// group containing the fixture, then recomputes competition aggregates
// from every completed fixture. Serialized per competition.
func (s *FinalizationService) updateCompetition(ctx context.Context, fx fixture.Fixture) error {
	if fx.CompetitionID == "" || fx.Result == nil {
		return nil
	}

	unlock := s.locks.Lock(fx.CompetitionID)
	defer unlock()

	comp, exists, err := s.competitionRepo.GetByID(ctx, fx.CompetitionID)
	if err != nil {
		return fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: competition=%s referenced by fixture %s", ErrNotFound, fx.CompetitionID, fx.ID)
	}

	if !comp.HasFolded(fx.ID) {
		ps := comp.EffectivePointsSystem()
		result := StandingsResult{
			HomeTeamID: fx.HomeTeamID,
			AwayTeamID: fx.AwayTeamID,
			HomeGoals:  fx.Result.HomeScore,
			AwayGoals:  fx.Result.AwayScore,
		}

		groupIdx, inGroup := comp.GroupIndexForFixture(fx.ID)
		switch {
		case inGroup:
			groups := append([]competition.Group(nil), comp.Groups...)
			groups[groupIdx].Standings = UpdateStandings(groups[groupIdx].Standings, ps, result)
			comp.Groups = groups
		case comp.InKnockoutRounds(fx.ID):
			// Bracket results decide progression, never table points.
		case comp.Type == competition.TypeLeague,
			comp.HasLeagueStanding(fx.HomeTeamID) && comp.HasLeagueStanding(fx.AwayTeamID):
			comp.Standings = UpdateStandings(comp.Standings, ps, result)
		default:
			// Not an error for this step, but it is a data integrity
			// problem: a finalized fixture should belong somewhere.
			s.logger.WarnContext(ctx, "fixture is linked to neither league table, group nor bracket",
				"fixture_id", fx.ID, "competition_id", comp.ID)
		}

		comp.FoldedFixtureIDs = append(append([]string(nil), comp.FoldedFixtureIDs...), fx.ID)
	}

	aggregates, err := s.recomputeAggregates(ctx, comp.ID)
	if err != nil {
		return err
	}
	comp.Aggregates = aggregates

	if err := s.competitionRepo.Update(ctx, comp); err != nil {
		if isVersionConflict(err) {
			return fmt.Errorf("%w: competition %s standings: %v", ErrConflict, comp.ID, err)
		}
		return fmt.Errorf("save competition: %w", err)
	}

	if s.standingsCache != nil {
		s.standingsCache.DeletePrefix(ctx, "standings:"+comp.ID)
	}

	return nil
}

// recomputeAggregates re-derives competition-wide stats from all completed
// fixtures. Idempotent by construction: it is a full recompute, never an
// increment.
func (s *FinalizationService) recomputeAggregates(ctx context.Context, competitionID string) (competition.AggregateStats, error) {
	fixtures, err := s.fixtureRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return competition.AggregateStats{}, fmt.Errorf("list fixtures for aggregates: %w", err)
	}

	agg := competition.AggregateStats{}
	goalsByPlayer := make(map[string]int)
	teamByPlayer := make(map[string]string)

	for _, item := range fixtures {
		if item.Status != fixture.StatusCompleted || item.Result == nil {
			continue
		}
		agg.CompletedFixtures++
		agg.TotalGoals += item.Result.HomeScore + item.Result.AwayScore

		facts := BuildMatchFacts(item)
		for playerID, goals := range facts.Goals {
			goalsByPlayer[playerID] += goals
			if teamID, ok := facts.Participants[playerID]; ok {
				teamByPlayer[playerID] = teamID
			}
		}
	}

	if agg.CompletedFixtures > 0 {
		agg.AvgGoalsPerMatch = float64(agg.TotalGoals) / float64(agg.CompletedFixtures)
	}

	scorers := make([]competition.TopScorer, 0, len(goalsByPlayer))
	for playerID, goals := range goalsByPlayer {
		scorers = append(scorers, competition.TopScorer{
			PlayerID: playerID,
			TeamID:   teamByPlayer[playerID],
			Goals:    goals,
		})
	}
	sort.Slice(scorers, func(i, j int) bool {
		if scorers[i].Goals != scorers[j].Goals {
			return scorers[i].Goals > scorers[j].Goals
		}
		return scorers[i].PlayerID < scorers[j].PlayerID
	})
	if len(scorers) > topScorerLimit {
		scorers = scorers[:topScorerLimit]
	}
	agg.TopScorers = scorers

	return agg, nil
}

func (s *FinalizationService) updatePlayers(ctx context.Context, facts MatchFacts) error {
	ids := make([]string, 0, len(facts.Participants))
	for id := range facts.Participants {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// Sequential on purpose: fanning out would complicate failure
	// reasoning for no measurable gain at squad sizes.
	for _, playerID := range ids {
		p, exists, err := s.playerRepo.GetByID(ctx, playerID)
		if err != nil {
			return fmt.Errorf("get player %s: %w", playerID, err)
		}
		if !exists {
			s.logger.WarnContext(ctx, "lineup references unknown player",
				"fixture_id", facts.FixtureID, "player_id", playerID)
			continue
		}

		folded := FoldPlayerStats(p, facts)
		if folded.Career == p.Career && len(folded.FoldedFixtureIDs) == len(p.FoldedFixtureIDs) {
			continue
		}
		if err := s.playerRepo.Update(ctx, folded); err != nil {
			if isVersionConflict(err) {
				return fmt.Errorf("%w: player %s stats: %v", ErrConflict, playerID, err)
			}
			return fmt.Errorf("save player %s: %w", playerID, err)
		}
	}

	return nil
}

func (s *FinalizationService) updateTeams(ctx context.Context, facts MatchFacts) error {
	for _, teamID := range []string{facts.HomeTeamID, facts.AwayTeamID} {
		t, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return fmt.Errorf("get team %s: %w", teamID, err)
		}
		if !exists {
			s.logger.WarnContext(ctx, "fixture references unknown team",
				"fixture_id", facts.FixtureID, "team_id", teamID)
			continue
		}

		folded := FoldTeamStats(t, facts)
		if folded.Stats == t.Stats && len(folded.FoldedFixtureIDs) == len(t.FoldedFixtureIDs) {
			continue
		}
		if err := s.teamRepo.Update(ctx, folded); err != nil {
			if isVersionConflict(err) {
				return fmt.Errorf("%w: team %s stats: %v", ErrConflict, teamID, err)
			}
			return fmt.Errorf("save team %s: %w", teamID, err)
		}
	}

	return nil
}

// markFailed parks the fixture in FINALIZATION_FAILED so it cannot sit in
// the finalizing guard state forever. If even that save fails the fixture
// stays FINALIZING and the sweep picks it up as stale.
func (s *FinalizationService) markFailed(ctx context.Context, fx fixture.Fixture, step string, cause error) error {
	s.logger.ErrorContext(ctx, "finalization step failed",
		"fixture_id", fx.ID, "step", step, "error", cause)

	fx.Finalization = fixture.FinalizationFailed
	if err := s.fixtureRepo.Update(ctx, fx); err != nil {
		s.logger.ErrorContext(ctx, "mark finalization failed state",
			"fixture_id", fx.ID, "error", err)
	}

	return fmt.Errorf("%w: %s for fixture %s: %v", ErrPartialFinalization, step, fx.ID, cause)
}

func (s *FinalizationService) recordAudit(ctx context.Context, fx fixture.Fixture) {
	if s.auditRecorder == nil {
		return
	}

	entry := audit.Entry{
		Action:   "FINALIZE_FIXTURE",
		Entity:   "fixture",
		EntityID: fx.ID,
		Message:  fmt.Sprintf("fixture %s finalized %d-%d", fx.ID, fx.Result.HomeScore, fx.Result.AwayScore),
		NewValues: map[string]any{
			"status":       fx.Status,
			"finalization": fx.Finalization,
			"home_score":   fx.Result.HomeScore,
			"away_score":   fx.Result.AwayScore,
		},
		CreatedAt: s.now().UTC(),
	}
	if err := s.auditRecorder.Record(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "audit record failed", "fixture_id", fx.ID, "error", err)
	}
}

func (s *FinalizationService) notifyResult(ctx context.Context, fx fixture.Fixture) {
	if s.notifier == nil {
		return
	}

	item := notification.Notification{
		Recipient: "followers:" + fx.HomeTeamID + "," + fx.AwayTeamID,
		Title:     "Full time",
		Message:   fmt.Sprintf("%s %d - %d %s", fx.HomeTeamID, fx.Result.HomeScore, fx.Result.AwayScore, fx.AwayTeamID),
		Channel:   notification.ChannelInApp,
		CreatedAt: s.now().UTC(),
	}
	if err := s.notifier.Notify(ctx, item); err != nil {
		s.logger.WarnContext(ctx, "result notification failed", "fixture_id", fx.ID, "error", err)
	}
}

func (s *FinalizationService) getFixture(ctx context.Context, fixtureID string) (fixture.Fixture, error) {
	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	fx, exists, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("get fixture: %w", err)
	}
	if !exists {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, fixtureID)
	}

	return fx, nil
}

func winnerOf(fx fixture.Fixture, result fixture.Result) string {
	homeScore, awayScore := result.HomeScore, result.AwayScore
	if homeScore == awayScore && result.HomePenalties != nil && result.AwayPenalties != nil {
		homeScore, awayScore = *result.HomePenalties, *result.AwayPenalties
	}
	switch {
	case homeScore > awayScore:
		return fx.HomeTeamID
	case awayScore > homeScore:
		return fx.AwayTeamID
	default:
		return ""
	}
}

func topFanVote(votes []livefixture.FanVote) string {
	best := ""
	bestVotes := 0
	for _, v := range votes {
		if v.Votes > bestVotes {
			best = v.PlayerID
			bestVotes = v.Votes
		}
	}
	return best
}
