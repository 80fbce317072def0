package handler

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"mandate-engine/internal/catalog"
	"mandate-engine/internal/engine"
	"mandate-engine/internal/model"
	"mandate-engine/internal/selection"
	"mandate-engine/internal/store"
)

// SessionStore persists session states. A nil store disables sessions.
type SessionStore interface {
	Create(ctx context.Context) (string, error)
	Save(ctx context.Context, id string, st *model.SelectionState) error
	Load(ctx context.Context, id string) (*model.SelectionState, error)
	Delete(ctx context.Context, id string) error
}

type Handler struct {
	catalog *catalog.Catalog
	store   SessionStore
	logger  *log.Logger
	timeout time.Duration
}

func New(cat *catalog.Catalog, st SessionStore, logger *log.Logger) *Handler {
	return &Handler{catalog: cat, store: st, logger: logger, timeout: 3 * time.Second}
}

// Serve is the fasthttp entry point.
func (h *Handler) Serve(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	path := string(ctx.Path())
	method := string(ctx.Method())

	switch {
	case path == "/calculate":
		if method != fasthttp.MethodPost {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			break
		}
		h.handleCalculation(ctx)
	case path == "/catalog":
		if method != fasthttp.MethodGet {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			break
		}
		writeJSON(ctx, fasthttp.StatusOK, h.catalog)
	case path == "/sessions":
		if method != fasthttp.MethodPost {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			break
		}
		h.handleCreateSession(ctx)
	case strings.HasPrefix(path, "/sessions/"):
		id := strings.TrimPrefix(path, "/sessions/")
		switch method {
		case fasthttp.MethodGet:
			h.handleGetSession(ctx, id)
		case fasthttp.MethodDelete:
			h.handleDeleteSession(ctx, id)
		default:
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		}
	case path == "/healthz":
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}

	if h.logger != nil {
		h.logger.Printf("%s %s %d %s", method, path, ctx.Response.StatusCode(), time.Since(start))
	}
}

func (h *Handler) handleCalculation(ctx *fasthttp.RequestCtx) {
	var req model.CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var initial *model.SelectionState
	raw := bytes.TrimSpace(req.State)
	hasState := len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
	if req.SessionID != "" {
		if hasState {
			writeError(ctx, fasthttp.StatusBadRequest, "Provide either state or session_id, not both")
			return
		}
		st, ok := h.loadSession(ctx, req.SessionID)
		if !ok {
			return
		}
		initial = st
	} else if hasState {
		st, err := store.DecodeJSON(raw)
		if err == nil {
			err = selection.Normalize(h.catalog, st)
		}
		if err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "Invalid state: "+err.Error())
			return
		}
		initial = st
	}

	resp := engine.Process(h.catalog, initial, &req)

	if req.SessionID != "" && resp.CalculationMetadata.CalculationOutcome == model.OutcomeSuccess {
		c, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()
		if err := h.store.Save(c, req.SessionID, &resp.CalculationResult.EndState.State); err != nil {
			h.logf("save session %s: %v", req.SessionID, err)
			writeError(ctx, fasthttp.StatusInternalServerError, "Could not save session")
			return
		}
	}

	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) handleCreateSession(ctx *fasthttp.RequestCtx) {
	if h.store == nil {
		writeError(ctx, fasthttp.StatusNotImplemented, "Sessions are disabled")
		return
	}
	c, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	id, err := h.store.Create(c)
	if err != nil {
		h.logf("create session: %v", err)
		writeError(ctx, fasthttp.StatusInternalServerError, "Could not create session")
		return
	}
	st := model.NewSelectionState()
	writeJSON(ctx, fasthttp.StatusCreated, model.SessionResponse{
		SessionID: id,
		State:     *st,
		Report:    engine.Evaluate(h.catalog, st),
	})
}

func (h *Handler) handleGetSession(ctx *fasthttp.RequestCtx, id string) {
	st, ok := h.loadSession(ctx, id)
	if !ok {
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, model.SessionResponse{
		SessionID: id,
		State:     *st,
		Report:    engine.Evaluate(h.catalog, st),
	})
}

func (h *Handler) handleDeleteSession(ctx *fasthttp.RequestCtx, id string) {
	if h.store == nil {
		writeError(ctx, fasthttp.StatusNotImplemented, "Sessions are disabled")
		return
	}
	c, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	err := h.store.Delete(c, id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(ctx, fasthttp.StatusNotFound, "Unknown session: "+id)
		return
	}
	if err != nil {
		h.logf("delete session %s: %v", id, err)
		writeError(ctx, fasthttp.StatusInternalServerError, "Could not delete session")
		return
	}
	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

// loadSession writes the error response itself and reports false on failure.
func (h *Handler) loadSession(ctx *fasthttp.RequestCtx, id string) (*model.SelectionState, bool) {
	if h.store == nil {
		writeError(ctx, fasthttp.StatusNotImplemented, "Sessions are disabled")
		return nil, false
	}
	c, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	st, err := h.store.Load(c, id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(ctx, fasthttp.StatusNotFound, "Unknown session: "+id)
		return nil, false
	}
	if err != nil {
		h.logf("load session %s: %v", id, err)
		writeError(ctx, fasthttp.StatusInternalServerError, "Could not load session")
		return nil, false
	}
	// Stored states may predate a catalog change.
	if err := selection.Normalize(h.catalog, st); err != nil {
		writeError(ctx, fasthttp.StatusConflict, "Stored session no longer fits the catalog: "+err.Error())
		return nil, false
	}
	return st, true
}

func (h *Handler) logf(format string, args ...interface{}) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Could not encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	b, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}
