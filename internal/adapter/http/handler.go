package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"decisionlab/internal/app/create"
	"decisionlab/internal/app/ports"
	"decisionlab/internal/app/replay"
	"decisionlab/internal/app/scenarios"
	"decisionlab/internal/app/status"
	"decisionlab/internal/app/transition"
	"decisionlab/internal/app/turn"
	"decisionlab/internal/domain/scenario"
	"decisionlab/internal/domain/session"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	ScenariosUC  scenarios.UseCase
	CreateUC     create.UseCase
	StatusUC     status.UseCase
	TransitionUC transition.UseCase
	TurnUC       turn.UseCase
	ReplayUC     replay.UseCase
	KPI          kpiSnapshotProvider
	CORSOrigin   string
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.CORSOrigin))

	api := s.Group("/api")
	api.GET("/scenarios", h.listScenarios)
	api.POST("/sessions", h.createSession)

	api.GET("/sessions/:id", h.status)
	api.POST("/sessions/:id/start", h.command(transition.CommandStart))
	api.POST("/sessions/:id/decision", h.decision)
	api.POST("/sessions/:id/submit", h.submit)
	api.POST("/sessions/:id/next", h.command(transition.CommandNext))
	api.POST("/sessions/:id/reset", h.command(transition.CommandReset))
	api.GET("/sessions/:id/replay", h.replay)

	s.GET("/ops/kpi", h.kpi)
}

type decisionRequest struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	OptionIndex *int   `json:"option_index,omitempty"`
}

type submitRequest struct {
	Decisions map[string]string `json:"decisions,omitempty"`
}

func (h Handler) listScenarios(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ScenariosUC.Execute(c, scenarios.Request{
		Family: scenario.Family(strings.TrimSpace(ctx.Query("family"))),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) createSession(c context.Context, ctx *app.RequestContext) {
	var body create.Request
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.CreateUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{SessionID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

// command handles the body-less transitions.
func (h Handler) command(cmd transition.Command) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		resp, err := h.TransitionUC.Execute(c, transition.Request{
			SessionID: ctx.Param("id"),
			Command:   cmd,
		})
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	}
}

func (h Handler) decision(c context.Context, ctx *app.RequestContext) {
	var body decisionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.TransitionUC.Execute(c, transition.Request{
		SessionID:   ctx.Param("id"),
		Command:     transition.CommandDecide,
		Key:         body.Key,
		Value:       body.Value,
		OptionIndex: body.OptionIndex,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) submit(c context.Context, ctx *app.RequestContext) {
	var body submitRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.TurnUC.Execute(c, turn.Request{
		SessionID: ctx.Param("id"),
		Decisions: body.Decisions,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_limit", "limit must be an integer")
		return
	}
	run, err := queryInt(ctx, "run")
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_run", "run must be an integer")
		return
	}
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		SessionID: ctx.Param("id"),
		Limit:     limit,
		Run:       run,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func queryInt(ctx *app.RequestContext, key string) (int, error) {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidPhase):
		writeErrorBody(ctx, consts.StatusConflict, "invalid_phase", err.Error())
	case errors.Is(err, session.ErrOptionOutOfRange):
		writeErrorBody(ctx, consts.StatusBadRequest, "option_out_of_range", err.Error())
	case errors.Is(err, session.ErrEmptyDecisionKey):
		writeErrorBody(ctx, consts.StatusBadRequest, "empty_decision_key", err.Error())
	case errors.Is(err, transition.ErrUnknownCommand):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_command", err.Error())
	case errors.Is(err, create.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, transition.ErrInvalidRequest),
		errors.Is(err, turn.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	case errors.Is(err, scenario.ErrUnknownFamily),
		errors.Is(err, session.ErrRulesetMismatched):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "unsupported_scenario", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
