package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/infrastructure/notify"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/infrastructure/repository/memory"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/cache"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/id"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/logging"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/usecase"
)

const testJobToken = "job-token-for-tests"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	fixtureRepo := memory.NewFixtureRepository(memory.SeedFixtures())
	liveRepo := memory.NewLiveFixtureRepository()
	competitionRepo := memory.NewCompetitionRepository(memory.SeedCompetitions())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	notificationRepo := memory.NewNotificationRepository()
	auditRecorder := memory.NewAuditRecorder()
	idGen := id.NewRandomGenerator()
	store := cache.NewStore(time.Minute)
	notifier := notify.NewNotifier(notificationRepo, nil, idGen, logger)

	finalizationService := usecase.NewFinalizationService(
		fixtureRepo, liveRepo, competitionRepo, playerRepo, teamRepo,
		auditRecorder, notifier, store, logger,
	)
	reconciliationService, err := usecase.NewReconciliationService(fixtureRepo, finalizationService, 2, time.Minute, logger)
	require.NoError(t, err)
	t.Cleanup(reconciliationService.Close)

	handler := NewHandler(
		usecase.NewLiveFixtureService(fixtureRepo, liveRepo, logger),
		finalizationService,
		reconciliationService,
		usecase.NewCompetitionService(competitionRepo, store, logger),
		usecase.NewFixtureService(fixtureRepo, idGen, logger),
		usecase.NewPlayerService(playerRepo, idGen, logger),
		usecase.NewTeamService(teamRepo, idGen, logger),
		usecase.NewNotificationService(notificationRepo, logger),
		logger,
	)

	return NewRouter(handler, logger, []string{"*"}, testJobToken)
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRouter_FullMatchLifecycle(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/fixtures/league-fix-001/start", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodPost, "/v1/live-fixtures/league-fix-001/goals",
		`{"teamId":"fupre-mech","scorerId":"mech-fwd-01","assistId":"mech-mid-01","minute":23}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodPost, "/v1/live-fixtures/league-fix-001/goals",
		`{"teamId":"fupre-mech","scorerId":"mech-fwd-02","minute":61}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodPost, "/v1/live-fixtures/league-fix-001/end", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeEnvelope(t, rec)
	require.Equal(t, "00", body["code"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "COMPLETED", data["status"])
	require.Equal(t, "FINALIZED", data["finalization"])
	result, ok := data["result"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(2), result["homeScore"])
	require.Equal(t, "fupre-mech", result["winnerTeamId"])

	// Second end call is a no-op, not a conflict.
	rec = doRequest(t, router, http.MethodPost, "/v1/live-fixtures/league-fix-001/end", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Live twin is archived once finalization completes.
	rec = doRequest(t, router, http.MethodGet, "/v1/live-fixtures/league-fix-001", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/v1/competitions/"+memory.CompetitionIDCampusLeague+"/standings", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body = decodeEnvelope(t, rec)
	rows, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 2)
	top, ok := rows[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "fupre-mech", top["teamId"])
	require.Equal(t, float64(3), top["points"])

	rec = doRequest(t, router, http.MethodGet, "/v1/players/mech-fwd-01/stats", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body = decodeEnvelope(t, rec)
	statsData, ok := body["data"].(map[string]any)
	require.True(t, ok)
	career, ok := statsData["career"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(1), career["goals"])
	require.Equal(t, float64(1), career["appearances"])

	rec = doRequest(t, router, http.MethodGet, "/v1/teams/fupre-mech/stats", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body = decodeEnvelope(t, rec)
	teamData, ok := body["data"].(map[string]any)
	require.True(t, ok)
	overall, ok := teamData["overall"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(1), overall["wins"])
}

func TestRouter_EndRequiresLiveFixture(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/live-fixtures/cup-fix-001/end", "")
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	require.Equal(t, "99", decodeEnvelope(t, rec)["code"])
}

func TestRouter_RejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/live-fixtures/league-fix-001/goals", `{"teamId":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/fixtures",
		`{"sport":"FOOTBALL","homeTeamId":"a","awayTeamId":"b","kickoffAt":"2026-03-01T16:00:00Z","bogus":true}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_GetUnknownFixture(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/fixtures/does-not-exist", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_GroupStandings(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet,
		"/v1/competitions/"+memory.CompetitionIDUnityCup+"/groups/Group%20A/standings", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodGet,
		"/v1/competitions/"+memory.CompetitionIDUnityCup+"/groups/Group%20Z/standings", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_InternalReconcileRequiresToken(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/reconcile", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/reconcile", nil)
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	body := decodeEnvelope(t, recorder)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(0), data["scanned"])
}

func TestRouter_ScheduleAndStatusTransitions(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/fixtures",
		`{"competitionId":"`+memory.CompetitionIDCampusLeague+`","season":"2025/2026","sport":"FOOTBALL","homeTeamId":"fupre-petro","awayTeamId":"fupre-chem","kickoffAt":"2026-03-01T16:00:00Z","venue":"FUPRE Main Bowl"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	fixtureID, _ := data["id"].(string)
	require.NotEmpty(t, fixtureID)
	require.Equal(t, "SCHEDULED", data["status"])

	rec = doRequest(t, router, http.MethodPatch, "/v1/fixtures/"+fixtureID+"/status", `{"status":"POSTPONED"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// LIVE is owned by the live flow and cannot be set directly.
	rec = doRequest(t, router, http.MethodPatch, "/v1/fixtures/"+fixtureID+"/status", `{"status":"LIVE"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/v1/teams", nil)
	req.Header.Set("Origin", "https://fupre.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
