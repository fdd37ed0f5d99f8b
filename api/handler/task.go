package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskpad/taskpad/api/transport"
	"github.com/taskpad/taskpad/domain"
	"github.com/taskpad/taskpad/pkg/httpcontext"
	taskUC "github.com/taskpad/taskpad/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// Index serves the root route with a short endpoint listing.
func (h *TaskHandler) Index(ctx *fasthttp.RequestCtx) {
	h.respondJSON(ctx, http.StatusOK, transport.NewIndex())
}

// GetTasks returns every task, newest first.
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx)
	if err != nil {
		h.respondError(ctx, err, http.StatusInternalServerError)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	h.respondJSON(ctx, http.StatusOK, tasks)
}

// CreateTask persists a new task with a server-assigned id.
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	var req transport.CreateTaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondMessage(ctx, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	task := &domain.Task{Title: req.Title}
	if req.IsCompleted != nil {
		task.IsCompleted = *req.IsCompleted
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTask(stdCtx, task)
	if err != nil {
		h.respondError(ctx, err, http.StatusBadRequest)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, created)
}

// UpdateTask applies a partial update to the task with the given id.
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	var req transport.UpdateTaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondMessage(ctx, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateTask(stdCtx, id, req.Patch())
	if err != nil {
		h.respondError(ctx, err, http.StatusBadRequest)
		return
	}
	h.respondJSON(ctx, http.StatusOK, updated)
}

// ToggleTask flips the completion flag of the task with the given id.
func (h *TaskHandler) ToggleTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	toggled, err := h.uc.ToggleTask(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err, http.StatusBadRequest)
		return
	}
	h.respondJSON(ctx, http.StatusOK, toggled)
}

// DeleteTask removes the task with the given id.
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTask(stdCtx, id); err != nil {
		h.respondError(ctx, err, http.StatusBadRequest)
		return
	}
	h.respondMessage(ctx, http.StatusOK, "Task deleted successfully")
}
