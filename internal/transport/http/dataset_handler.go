package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/kSibalic/nba/internal/dataprocessing"
	apierrors "github.com/kSibalic/nba/internal/errors"
	mw "github.com/kSibalic/nba/internal/middleware"
	"github.com/kSibalic/nba/pkg/contracts/domain"
)

type ctxKey string

const (
	kindCtxKey   ctxKey = "dataset_kind"
	playerCtxKey ctxKey = "player_name"
)

// DatasetHandler serves the read-only season API with RFC 7807 errors
type DatasetHandler struct {
	service      StatsServiceInterface
	validator    *mw.ValidationMiddleware
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(service StatsServiceInterface, validator *mw.ValidationMiddleware, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DatasetHandler {
	return &DatasetHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "dataset_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dataset routes, meant to be mounted at /api/datasets.
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Route("/{kind}", func(r chi.Router) {
		r.Use(h.KindCtx)

		r.Get("/table", h.GetTable)
		r.Get("/summary", h.GetSummary)
		r.Get("/top", h.GetTop)
		r.Get("/histogram", h.GetHistogram)
		r.Get("/impact", h.GetImpact)
		r.Get("/radar", h.GetRadar)
		r.Get("/shooting", h.GetShooting)
		r.Get("/league", h.GetLeague)

		r.Route("/teams", func(r chi.Router) {
			r.Get("/averages", h.GetTeamAverages)
			r.Get("/efficiency", h.GetTeamEfficiency)
		})

		r.Get("/players", h.GetPlayers)
		r.Route("/players/{name}", func(r chi.Router) {
			r.Use(h.PlayerCtx)
			r.Get("/", h.GetPlayer)
			r.Get("/shots", h.GetShots)
		})
	})

	return r
}

// KindCtx middleware puts the dataset kind from the path into the context
func (h *DatasetHandler) KindCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kind := strings.TrimSpace(chi.URLParam(r, "kind"))
		if kind == "" {
			h.errorHandler.HandleError(w, r, apierrors.NewNotFoundError("dataset"))
			return
		}
		ctx := context.WithValue(r.Context(), kindCtxKey, kind)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PlayerCtx middleware unescapes the player name from the path
func (h *DatasetHandler) PlayerCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, err := url.PathUnescape(chi.URLParam(r, "name"))
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.InvalidParameter("name", err))
			return
		}
		name = strings.TrimSpace(name)
		if name == "" {
			h.errorHandler.HandleError(w, r, apierrors.NewNotFoundError("player"))
			return
		}
		ctx := context.WithValue(r.Context(), playerCtxKey, name)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func kindFrom(r *http.Request) string {
	kind, _ := r.Context().Value(kindCtxKey).(string)
	return kind
}

func playerFrom(r *http.Request) string {
	name, _ := r.Context().Value(playerCtxKey).(string)
	return name
}

// respond writes the success envelope shared by every dataset route.
func (h *DatasetHandler) respond(w http.ResponseWriter, r *http.Request, data interface{}, count int) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   data,
		"count":  count,
	})
}

func (h *DatasetHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.DebugContext(r.Context(), op+" failed",
		slog.String("error", err.Error()),
		slog.String("kind", kindFrom(r)),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	h.errorHandler.HandleError(w, r, err)
}

// GetTable handles GET /api/datasets/{kind}/table
func (h *DatasetHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	var q mw.LimitQuery
	if err := h.validator.DecodeQuery(r, &q); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	rows, err := h.service.Table(r.Context(), kindFrom(r), q.N)
	if err != nil {
		h.fail(w, r, "table", err)
		return
	}
	h.respond(w, r, rows, len(rows))
}

// GetSummary handles GET /api/datasets/{kind}/summary
func (h *DatasetHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), kindFrom(r))
	if err != nil {
		h.fail(w, r, "summary", err)
		return
	}
	h.respond(w, r, summary, summary.Players)
}

// GetTop handles GET /api/datasets/{kind}/top?stat=PTS&n=10&order=desc&dedup=true
func (h *DatasetHandler) GetTop(w http.ResponseWriter, r *http.Request) {
	q := mw.TopQuery{Stat: domain.FieldPoints}
	if err := h.validator.DecodeQuery(r, &q); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	dir, err := dataprocessing.ParseDirection(q.Order)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.DebugContext(r.Context(), "ranking players",
		slog.String("kind", kindFrom(r)),
		slog.String("stat", q.Stat),
		slog.Int("n", q.N),
		slog.String("order", dir.String()),
		slog.Bool("dedup", q.Dedup),
	)

	top, err := h.service.TopPlayers(r.Context(), kindFrom(r), q.Stat, q.N, dir, q.Dedup)
	if err != nil {
		h.fail(w, r, "top players", err)
		return
	}
	h.respond(w, r, top, len(top))
}

// GetTeamAverages handles GET /api/datasets/{kind}/teams/averages?stat=PTS
func (h *DatasetHandler) GetTeamAverages(w http.ResponseWriter, r *http.Request) {
	q := mw.StatQuery{Stat: domain.FieldPoints}
	if err := h.validator.DecodeQuery(r, &q); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	teams, err := h.service.TeamAverages(r.Context(), kindFrom(r), q.Stat)
	if err != nil {
		h.fail(w, r, "team averages", err)
		return
	}
	h.respond(w, r, teams, len(teams))
}

// GetTeamEfficiency handles GET /api/datasets/{kind}/teams/efficiency
func (h *DatasetHandler) GetTeamEfficiency(w http.ResponseWriter, r *http.Request) {
	teams, err := h.service.TeamEfficiency(r.Context(), kindFrom(r))
	if err != nil {
		h.fail(w, r, "team efficiency", err)
		return
	}
	h.respond(w, r, teams, len(teams))
}

// GetHistogram handles GET /api/datasets/{kind}/histogram?stat=PTS&bins=20
func (h *DatasetHandler) GetHistogram(w http.ResponseWriter, r *http.Request) {
	q := mw.HistogramQuery{Stat: domain.FieldPoints}
	if err := h.validator.DecodeQuery(r, &q); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	buckets, err := h.service.Histogram(r.Context(), kindFrom(r), q.Stat, q.Bins)
	if err != nil {
		h.fail(w, r, "histogram", err)
		return
	}
	h.respond(w, r, buckets, len(buckets))
}

// GetImpact handles GET /api/datasets/{kind}/impact?n=15
func (h *DatasetHandler) GetImpact(w http.ResponseWriter, r *http.Request) {
	var q mw.LimitQuery
	if err := h.validator.DecodeQuery(r, &q); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	impact, err := h.service.Impact(r.Context(), kindFrom(r), q.N)
	if err != nil {
		h.fail(w, r, "impact", err)
		return
	}
	h.respond(w, r, impact, len(impact))
}

// GetRadar handles GET /api/datasets/{kind}/radar?n=5
func (h *DatasetHandler) GetRadar(w http.ResponseWriter, r *http.Request) {
	var q mw.LimitQuery
	if err := h.validator.DecodeQuery(r, &q); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	profiles, err := h.service.Radar(r.Context(), kindFrom(r), q.N)
	if err != nil {
		h.fail(w, r, "radar", err)
		return
	}
	h.respond(w, r, profiles, len(profiles))
}

// GetShooting handles GET /api/datasets/{kind}/shooting?n=20
func (h *DatasetHandler) GetShooting(w http.ResponseWriter, r *http.Request) {
	var q mw.LimitQuery
	if err := h.validator.DecodeQuery(r, &q); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	leaders, err := h.service.ShootingLeaders(r.Context(), kindFrom(r), q.N)
	if err != nil {
		h.fail(w, r, "shooting leaders", err)
		return
	}
	h.respond(w, r, leaders, len(leaders))
}

// GetLeague handles GET /api/datasets/{kind}/league
func (h *DatasetHandler) GetLeague(w http.ResponseWriter, r *http.Request) {
	averages, err := h.service.LeagueAverages(r.Context(), kindFrom(r))
	if err != nil {
		h.fail(w, r, "league averages", err)
		return
	}
	h.respond(w, r, averages, len(averages))
}

// GetPlayers handles GET /api/datasets/{kind}/players
func (h *DatasetHandler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.Players(r.Context(), kindFrom(r))
	if err != nil {
		h.fail(w, r, "players", err)
		return
	}
	h.respond(w, r, names, len(names))
}

// GetPlayer handles GET /api/datasets/{kind}/players/{name}
func (h *DatasetHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.Player(r.Context(), kindFrom(r), playerFrom(r))
	if err != nil {
		h.fail(w, r, "player", err)
		return
	}
	h.respond(w, r, detail, 1)
}

// GetShots handles GET /api/datasets/{kind}/players/{name}/shots?n=50.
// The chart is fabricated from the player's percentages, never observed.
func (h *DatasetHandler) GetShots(w http.ResponseWriter, r *http.Request) {
	var q mw.ShotsQuery
	if err := h.validator.DecodeQuery(r, &q); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	chart, err := h.service.Shots(r.Context(), kindFrom(r), playerFrom(r), q.N)
	if err != nil {
		h.fail(w, r, "shots", err)
		return
	}
	h.respond(w, r, chart, len(chart.Shots))
}
