package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/fbsn11/team-management-app/internal/domain/formation"
	"github.com/fbsn11/team-management-app/internal/platform/logging"
	"github.com/fbsn11/team-management-app/internal/usecase"
)

type Handler struct {
	teamService   *usecase.TeamService
	playerService *usecase.PlayerService
	matchService  *usecase.MatchService
	lineupService *usecase.LineupService
	statsService  *usecase.StatsService
	catalog       *formation.Catalog
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	teamService *usecase.TeamService,
	playerService *usecase.PlayerService,
	matchService *usecase.MatchService,
	lineupService *usecase.LineupService,
	statsService *usecase.StatsService,
	catalog *formation.Catalog,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		teamService:   teamService,
		playerService: playerService,
		matchService:  matchService,
		lineupService: lineupService,
		statsService:  statsService,
		catalog:       catalog,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListFormations lists the catalog. With ?players=N only that size is returned.
func (h *Handler) ListFormations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListFormations")
	defer span.End()

	sizes := h.catalog.Sizes()
	if raw := strings.TrimSpace(r.URL.Query().Get("players")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: players must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		sizes = []int{size}
	}

	items := make([]formationGroupDTO, 0, len(sizes))
	for _, size := range sizes {
		items = append(items, formationGroupToDTO(size, h.catalog.SystemsFor(size)))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) decodeJSON(ctx context.Context, r *http.Request, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		body = []byte("{}")
	}

	decoder := sonic.ConfigStd.NewDecoder(strings.NewReader(string(body)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, out)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
