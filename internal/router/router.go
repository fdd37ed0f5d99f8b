package router

import (
	"encoding/json"
	"net/http"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskpad/taskpad/api/handler"
	"github.com/taskpad/taskpad/api/transport"
	"github.com/taskpad/taskpad/internal/middleware"
)

type Handlers struct {
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

// New builds the route table. The task routes live under /api; everything
// unmatched gets the historical "Route <path> not found" body.
func New(handlers Handlers, logger *zap.Logger) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := router.New()

	r.GET("/", handlers.Task.Index)
	r.GET("/health", handlers.Health.Check)

	r.GET("/api/tasks", handlers.Task.GetTasks)
	r.POST("/api/tasks", handlers.Task.CreateTask)
	r.PUT("/api/tasks/{id}", handlers.Task.UpdateTask)
	r.PATCH("/api/tasks/{id}/toggle", handlers.Task.ToggleTask)
	r.DELETE("/api/tasks/{id}", handlers.Task.DeleteTask)

	r.NotFound = notFound
	r.PanicHandler = panicHandler(logger)

	return middleware.CORS(r.Handler)
}

func notFound(ctx *fasthttp.RequestCtx) {
	respond(ctx, http.StatusNotFound, transport.NewMessage("Route %s not found", string(ctx.Path())))
}

// panicHandler maps a recovered value to a response. A panic value carrying a
// status code keeps it; everything else is a 500.
func panicHandler(logger *zap.Logger) func(*fasthttp.RequestCtx, interface{}) {
	return func(ctx *fasthttp.RequestCtx, recovered interface{}) {
		status := http.StatusInternalServerError
		message := "Something went wrong"

		switch v := recovered.(type) {
		case interface{ StatusCode() int }:
			status = v.StatusCode()
			if err, ok := v.(error); ok {
				message = err.Error()
			}
		case error:
			message = v.Error()
		case string:
			message = v
		}

		logger.Error("handler panic",
			zap.String("path", string(ctx.Path())),
			zap.Any("recovered", recovered),
		)
		respond(ctx, status, transport.NewMessage("%s", message))
	}
}

func respond(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}
