// Package httpcontext bridges fasthttp's request context to the stdlib
// context the repositories expect, carrying a per-request id and deadline.
package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/taskpad/taskpad/pkg/logger"
)

// Adapter converts fasthttp.RequestCtx into a stdlib context with a timeout.
type Adapter struct {
	timeout time.Duration
}

// NewAdapter constructs a new Adapter using the provided request timeout.
func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{timeout: timeout}
}

// Attach creates a deadline-carrying context for one request and echoes the
// request id back to the caller.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	reqID := requestID(ctx)
	stdCtx = appLogger.ContextWithRequestID(stdCtx, reqID)
	ctx.Response.Header.Set("X-Request-ID", reqID)

	return stdCtx, cancel
}

func requestID(ctx *fasthttp.RequestCtx) string {
	if ctx != nil {
		if header := strings.TrimSpace(string(ctx.Request.Header.Peek("X-Request-ID"))); header != "" {
			return header
		}
	}
	return uuid.NewString()
}
