package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/logging"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/usecase"
)

type Handler struct {
	liveFixtureService    *usecase.LiveFixtureService
	finalizationService   *usecase.FinalizationService
	reconciliationService *usecase.ReconciliationService
	competitionService    *usecase.CompetitionService
	fixtureService        *usecase.FixtureService
	playerService         *usecase.PlayerService
	teamService           *usecase.TeamService
	notificationService   *usecase.NotificationService
	logger                *logging.Logger
	validator             *validator.Validate
}

func NewHandler(
	liveFixtureService *usecase.LiveFixtureService,
	finalizationService *usecase.FinalizationService,
	reconciliationService *usecase.ReconciliationService,
	competitionService *usecase.CompetitionService,
	fixtureService *usecase.FixtureService,
	playerService *usecase.PlayerService,
	teamService *usecase.TeamService,
	notificationService *usecase.NotificationService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		liveFixtureService:    liveFixtureService,
		finalizationService:   finalizationService,
		reconciliationService: reconciliationService,
		competitionService:    competitionService,
		fixtureService:        fixtureService,
		playerService:         playerService,
		teamService:           teamService,
		notificationService:   notificationService,
		logger:                logger,
		validator:             validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, "ok", map[string]string{"status": "ok"})
}

// decodeRequest parses the JSON body into dst and runs struct validation.
// Unknown fields are rejected so typos fail loudly instead of silently
// dropping data.
func (h *Handler) decodeRequest(ctx context.Context, body io.Reader, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
