package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskpad/taskpad/api/transport"
	"github.com/taskpad/taskpad/domain"
	"github.com/taskpad/taskpad/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondMessage(ctx *fasthttp.RequestCtx, status int, format string, args ...interface{}) {
	h.respondJSON(ctx, status, transport.NewMessage(format, args...))
}

// respondError maps domain error codes onto statuses. Unclassified failures
// take fallback: 400 on the write paths, 500 on list, matching the published
// API contract.
func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error, fallback int) {
	status := fallback
	switch {
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		status = http.StatusNotFound
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		status = http.StatusBadRequest
	case domain.IsDomainError(err, domain.ErrCodeUnavailable):
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	h.respondJSON(ctx, status, transport.Message{Message: err.Error()})
}

// taskID parses the {id} path segment. A non-numeric segment cannot match any
// document, so it reports not-found rather than a validation error.
func (h baseHandler) taskID(ctx *fasthttp.RequestCtx) (int64, bool) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.respondError(ctx, domain.ErrTaskNotFound, http.StatusNotFound)
		return 0, false
	}
	return id, true
}
