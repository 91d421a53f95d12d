package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/fixture"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/livefixture"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/logging"
)

const (
	minSquadSize = 7
	maxSquadSize = 11
	maxBenchSize = 12
)

var formationPattern = regexp.MustCompile(`^[1-9](-[1-9]){2,3}$`)

// LiveFixtureService owns the mutable record of an in-progress match. Every
// operation here is scoped to the live twin; nothing crosses into
// standings or stats until finalization.
type LiveFixtureService struct {
	fixtureRepo fixture.Repository
	liveRepo    livefixture.Repository
	logger      *logging.Logger
	now         func() time.Time
}

func NewLiveFixtureService(
	fixtureRepo fixture.Repository,
	liveRepo livefixture.Repository,
	logger *logging.Logger,
) *LiveFixtureService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LiveFixtureService{
		fixtureRepo: fixtureRepo,
		liveRepo:    liveRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// Start flips a scheduled fixture to LIVE and creates its live twin seeded
// from the fixture's lineups.
func (s *LiveFixtureService) Start(ctx context.Context, fixtureID string) (livefixture.LiveFixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveFixtureService.Start")
	defer span.End()

	fx, err := s.getFixture(ctx, fixtureID)
	if err != nil {
		return livefixture.LiveFixture{}, err
	}
	if fx.Status != fixture.StatusScheduled {
		return livefixture.LiveFixture{}, fmt.Errorf("%w: fixture %s is %s, only a scheduled fixture can go live", ErrConflict, fixtureID, fx.Status)
	}

	live := livefixture.FromFixture(fx, s.now().UTC())
	if err := s.liveRepo.Create(ctx, live); err != nil {
		return livefixture.LiveFixture{}, fmt.Errorf("create live fixture: %w", err)
	}

	fx.Status = fixture.StatusLive
	if err := s.fixtureRepo.Update(ctx, fx); err != nil {
		return livefixture.LiveFixture{}, s.mapSaveError("mark fixture live", err)
	}

	s.logger.InfoContext(ctx, "fixture is live", "fixture_id", fixtureID)
	return live, nil
}

func (s *LiveFixtureService) GetByFixtureID(ctx context.Context, fixtureID string) (livefixture.LiveFixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveFixtureService.GetByFixtureID")
	defer span.End()

	return s.getLive(ctx, fixtureID)
}

type TimelineEventInput struct {
	Type            string
	Minute          int
	InjuryMinute    int
	TeamID          string
	PlayerID        string
	RelatedPlayerID string
	Commentary      string
}

// AppendTimelineEvent appends a typed event to the match's event log.
// Events are append-only; corrections go through EditTimelineEvent and
// DeleteTimelineEvent, never replace-in-place.
func (s *LiveFixtureService) AppendTimelineEvent(ctx context.Context, fixtureID string, input TimelineEventInput) (fixture.TimelineEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveFixtureService.AppendTimelineEvent")
	defer span.End()

	live, err := s.getLive(ctx, fixtureID)
	if err != nil {
		return fixture.TimelineEvent{}, err
	}

	ev, err := s.buildEvent(live, input)
	if err != nil {
		return fixture.TimelineEvent{}, err
	}

	updated, ev := live.WithEvent(ev)
	if points := fixture.EventScoreValue(ev.Type); points > 0 {
		updated, err = updated.WithAddedScore(ev.TeamID, points)
		if err != nil {
			return fixture.TimelineEvent{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if err := s.liveRepo.Update(ctx, updated); err != nil {
		return fixture.TimelineEvent{}, s.mapSaveError("append timeline event", err)
	}

	return ev, nil
}

func (s *LiveFixtureService) EditTimelineEvent(ctx context.Context, fixtureID string, eventID int64, input TimelineEventInput) (fixture.TimelineEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveFixtureService.EditTimelineEvent")
	defer span.End()

	live, err := s.getLive(ctx, fixtureID)
	if err != nil {
		return fixture.TimelineEvent{}, err
	}

	ev, err := s.buildEvent(live, input)
	if err != nil {
		return fixture.TimelineEvent{}, err
	}

	updated, found := live.WithEditedEvent(eventID, ev)
	if !found {
		return fixture.TimelineEvent{}, fmt.Errorf("%w: event=%d fixture=%s", ErrNotFound, eventID, fixtureID)
	}

	if err := s.liveRepo.Update(ctx, updated); err != nil {
		return fixture.TimelineEvent{}, s.mapSaveError("edit timeline event", err)
	}

	ev.ID = eventID
	return ev, nil
}

func (s *LiveFixtureService) DeleteTimelineEvent(ctx context.Context, fixtureID string, eventID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveFixtureService.DeleteTimelineEvent")
	defer span.End()

	live, err := s.getLive(ctx, fixtureID)
	if err != nil {
		return err
	}

	updated, found := live.WithoutEvent(eventID)
	if !found {
		return fmt.Errorf("%w: event=%d fixture=%s", ErrNotFound, eventID, fixtureID)
	}

	if err := s.liveRepo.Update(ctx, updated); err != nil {
		return s.mapSaveError("delete timeline event", err)
	}

	return nil
}

type GoalInput struct {
	TeamID       string
	ScorerID     string
	AssistID     string
	Minute       int
	InjuryMinute int
	Type         string
}

// RecordGoal increments the running score for the scoring side and appends
// a goal event, optionally linking the assisting player. The event type
// defaults to the sport's base scoring event.
func (s *LiveFixtureService) RecordGoal(ctx context.Context, fixtureID string, input GoalInput) (livefixture.LiveFixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveFixtureService.RecordGoal")
	defer span.End()

	live, err := s.getLive(ctx, fixtureID)
	if err != nil {
		return livefixture.LiveFixture{}, err
	}

	eventType := strings.ToUpper(strings.TrimSpace(input.Type))
	if eventType == "" {
		eventType = fixture.EventGoal
		if strings.EqualFold(live.Sport, fixture.SportBasketball) {
			eventType = fixture.EventTwoPointer
		}
	}
	if fixture.EventScoreValue(eventType) == 0 {
		return livefixture.LiveFixture{}, fmt.Errorf("%w: %s is not a scoring event type", ErrInvalidInput, eventType)
	}

	ev, err := s.buildEvent(live, TimelineEventInput{
		Type:            eventType,
		Minute:          input.Minute,
		InjuryMinute:    input.InjuryMinute,
		TeamID:          input.TeamID,
		PlayerID:        input.ScorerID,
		RelatedPlayerID: input.AssistID,
	})
	if err != nil {
		return livefixture.LiveFixture{}, err
	}

	updated, _ := live.WithEvent(ev)
	updated, err = updated.WithAddedScore(input.TeamID, fixture.EventScoreValue(eventType))
	if err != nil {
		return livefixture.LiveFixture{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.liveRepo.Update(ctx, updated); err != nil {
		return livefixture.LiveFixture{}, s.mapSaveError("record goal", err)
	}

	return updated, nil
}

// UpdateScore overrides the running score directly, for corrections. It
// records no timeline event.
func (s *LiveFixtureService) UpdateScore(ctx context.Context, fixtureID string, home, away int) (livefixture.LiveFixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveFixtureService.UpdateScore")
	defer span.End()

	if home < 0 || away < 0 {
		return livefixture.LiveFixture{}, fmt.Errorf("%w: score cannot be negative", ErrInvalidInput)
	}

	live, err := s.getLive(ctx, fixtureID)
	if err != nil {
		return livefixture.LiveFixture{}, err
	}

	updated := live.WithScore(home, away)
	if err := s.liveRepo.Update(ctx, updated); err != nil {
		return livefixture.LiveFixture{}, s.mapSaveError("update score", err)
	}

	return updated, nil
}

type SubstitutionInput struct {
	TeamID      string
	PlayerOutID string
	PlayerInID  string
	Minute      int
}

func (s *LiveFixtureService) RecordSubstitution(ctx context.Context, fixtureID string, input SubstitutionInput) (livefixture.LiveFixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveFixtureService.RecordSubstitution")
	defer span.End()

	if input.TeamID == "" || input.PlayerOutID == "" || input.PlayerInID == "" {
		return livefixture.LiveFixture{}, fmt.Errorf("%w: team, player out and player in are required", ErrInvalidInput)
	}

	live, err := s.getLive(ctx, fixtureID)
	if err != nil {
		return livefixture.LiveFixture{}, err
	}

	updated, err := live.WithSubstitution(input.TeamID, input.PlayerOutID, input.PlayerInID, input.Minute)
	if err != nil {
		return livefixture.LiveFixture{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, _ = updated.WithEvent(fixture.TimelineEvent{
		Type:            fixture.EventSubstitution,
		Minute:          input.Minute,
		TeamID:          input.TeamID,
		PlayerID:        input.PlayerInID,
		RelatedPlayerID: input.PlayerOutID,
	})

	if err := s.liveRepo.Update(ctx, updated); err != nil {
		return livefixture.LiveFixture{}, s.mapSaveError("record substitution", err)
	}

	return updated, nil
}

type LineupInput struct {
	TeamID      string
	Formation   string
	StartingXI  []string
	Substitutes []string
}

func (s *LiveFixtureService) SetLineup(ctx context.Context, fixtureID string, input LineupInput) (livefixture.LiveFixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveFixtureService.SetLineup")
	defer span.End()

	if len(input.StartingXI) < minSquadSize || len(input.StartingXI) > maxSquadSize {
		return livefixture.LiveFixture{}, fmt.Errorf("%w: starting lineup must name between %d and %d players", ErrInvalidInput, minSquadSize, maxSquadSize)
	}
	if len(input.Substitutes) > maxBenchSize {
		return livefixture.LiveFixture{}, fmt.Errorf("%w: bench cannot exceed %d players", ErrInvalidInput, maxBenchSize)
	}
	if input.Formation != "" && !formationPattern.MatchString(input.Formation) {
		return livefixture.LiveFixture{}, fmt.Errorf("%w: invalid formation %q", ErrInvalidInput, input.Formation)
	}
	if dup := firstDuplicate(append(append([]string{}, input.StartingXI...), input.Substitutes...)); dup != "" {
		return livefixture.LiveFixture{}, fmt.Errorf("%w: player %s appears twice in the lineup", ErrInvalidInput, dup)
	}

	live, err := s.getLive(ctx, fixtureID)
	if err != nil {
		return livefixture.LiveFixture{}, err
	}

	lineup := fixture.Lineup{
		TeamID:      input.TeamID,
		Formation:   input.Formation,
		StartingXI:  append([]string(nil), input.StartingXI...),
		Substitutes: append([]string(nil), input.Substitutes...),
	}

	updated := live
	switch input.TeamID {
	case live.HomeTeamID:
		updated.Lineups.Home = lineup
	case live.AwayTeamID:
		updated.Lineups.Away = lineup
	default:
		return livefixture.LiveFixture{}, fmt.Errorf("%w: team %s is not part of fixture %s", ErrInvalidInput, input.TeamID, fixtureID)
	}

	if err := s.liveRepo.Update(ctx, updated); err != nil {
		return livefixture.LiveFixture{}, s.mapSaveError("set lineup", err)
	}

	return updated, nil
}

func (s *LiveFixtureService) UpdateMinute(ctx context.Context, fixtureID string, minute, injuryTime int) (livefixture.LiveFixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveFixtureService.UpdateMinute")
	defer span.End()

	if minute < 0 || injuryTime < 0 {
		return livefixture.LiveFixture{}, fmt.Errorf("%w: minute and injury time cannot be negative", ErrInvalidInput)
	}

	live, err := s.getLive(ctx, fixtureID)
	if err != nil {
		return livefixture.LiveFixture{}, err
	}

	live.CurrentMinute = minute
	live.InjuryTime = injuryTime
	if err := s.liveRepo.Update(ctx, live); err != nil {
		return livefixture.LiveFixture{}, s.mapSaveError("update minute", err)
	}

	return live, nil
}

// RecordCheer bumps the cheer meter for one side.
func (s *LiveFixtureService) RecordCheer(ctx context.Context, fixtureID, teamID string) (livefixture.CheerMeter, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveFixtureService.RecordCheer")
	defer span.End()

	live, err := s.getLive(ctx, fixtureID)
	if err != nil {
		return livefixture.CheerMeter{}, err
	}

	switch teamID {
	case live.HomeTeamID:
		live.CheerMeter.Home++
	case live.AwayTeamID:
		live.CheerMeter.Away++
	default:
		return livefixture.CheerMeter{}, fmt.Errorf("%w: team %s is not part of fixture %s", ErrInvalidInput, teamID, fixtureID)
	}

	if err := s.liveRepo.Update(ctx, live); err != nil {
		return livefixture.CheerMeter{}, s.mapSaveError("record cheer", err)
	}

	return live.CheerMeter, nil
}

// RecordFanVote tallies a player-of-the-match vote.
func (s *LiveFixtureService) RecordFanVote(ctx context.Context, fixtureID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveFixtureService.RecordFanVote")
	defer span.End()

	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	live, err := s.getLive(ctx, fixtureID)
	if err != nil {
		return err
	}

	votes := append([]livefixture.FanVote(nil), live.FanVotes...)
	found := false
	for i := range votes {
		if votes[i].PlayerID == playerID {
			votes[i].Votes++
			found = true
			break
		}
	}
	if !found {
		votes = append(votes, livefixture.FanVote{PlayerID: playerID, Votes: 1})
	}
	live.FanVotes = votes

	if err := s.liveRepo.Update(ctx, live); err != nil {
		return s.mapSaveError("record fan vote", err)
	}

	return nil
}

func (s *LiveFixtureService) RatePlayer(ctx context.Context, fixtureID, playerID string, rating float64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveFixtureService.RatePlayer")
	defer span.End()

	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if rating < 0 || rating > 10 {
		return fmt.Errorf("%w: rating must be between 0 and 10", ErrInvalidInput)
	}

	live, err := s.getLive(ctx, fixtureID)
	if err != nil {
		return err
	}

	ratings := append([]fixture.PlayerRating(nil), live.PlayerRatings...)
	found := false
	for i := range ratings {
		if ratings[i].PlayerID == playerID {
			ratings[i].Rating = rating
			found = true
			break
		}
	}
	if !found {
		ratings = append(ratings, fixture.PlayerRating{PlayerID: playerID, Rating: rating})
	}
	live.PlayerRatings = ratings

	if err := s.liveRepo.Update(ctx, live); err != nil {
		return s.mapSaveError("rate player", err)
	}

	return nil
}

func (s *LiveFixtureService) SetPlayerOfTheMatch(ctx context.Context, fixtureID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveFixtureService.SetPlayerOfTheMatch")
	defer span.End()

	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	live, err := s.getLive(ctx, fixtureID)
	if err != nil {
		return err
	}

	live.PlayerOfTheMatchID = playerID
	if err := s.liveRepo.Update(ctx, live); err != nil {
		return s.mapSaveError("set player of the match", err)
	}

	return nil
}

func (s *LiveFixtureService) buildEvent(live livefixture.LiveFixture, input TimelineEventInput) (fixture.TimelineEvent, error) {
	eventType := strings.ToUpper(strings.TrimSpace(input.Type))
	if eventType == "" {
		return fixture.TimelineEvent{}, fmt.Errorf("%w: event type is required", ErrInvalidInput)
	}
	if !fixture.EventTypeAllowed(live.Sport, eventType) {
		return fixture.TimelineEvent{}, fmt.Errorf("%w: event type %s is not valid for %s", ErrInvalidInput, eventType, live.Sport)
	}
	if fixture.EventRequiresTeam(eventType) && strings.TrimSpace(input.TeamID) == "" {
		return fixture.TimelineEvent{}, fmt.Errorf("%w: %s events require a team", ErrInvalidInput, eventType)
	}
	if input.TeamID != "" && input.TeamID != live.HomeTeamID && input.TeamID != live.AwayTeamID {
		return fixture.TimelineEvent{}, fmt.Errorf("%w: team %s is not part of this fixture", ErrInvalidInput, input.TeamID)
	}
	if input.Minute < 0 {
		return fixture.TimelineEvent{}, fmt.Errorf("%w: minute cannot be negative", ErrInvalidInput)
	}

	return fixture.TimelineEvent{
		Type:            eventType,
		Minute:          input.Minute,
		InjuryMinute:    input.InjuryMinute,
		TeamID:          strings.TrimSpace(input.TeamID),
		PlayerID:        strings.TrimSpace(input.PlayerID),
		RelatedPlayerID: strings.TrimSpace(input.RelatedPlayerID),
		Commentary:      strings.TrimSpace(input.Commentary),
	}, nil
}

func (s *LiveFixtureService) getFixture(ctx context.Context, fixtureID string) (fixture.Fixture, error) {
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

func (s *LiveFixtureService) getLive(ctx context.Context, fixtureID string) (livefixture.LiveFixture, error) {
	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return livefixture.LiveFixture{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	live, exists, err := s.liveRepo.GetByFixtureID(ctx, fixtureID)
	if err != nil {
		return livefixture.LiveFixture{}, fmt.Errorf("get live fixture: %w", err)
	}
	if !exists {
		return livefixture.LiveFixture{}, fmt.Errorf("%w: live fixture=%s", ErrNotFound, fixtureID)
	}

	return live, nil
}

func (s *LiveFixtureService) mapSaveError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case isVersionConflict(err):
		return fmt.Errorf("%w: %s: %v", ErrConflict, op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func firstDuplicate(ids []string) string {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return id
		}
		seen[id] = struct{}{}
	}
	return ""
}
