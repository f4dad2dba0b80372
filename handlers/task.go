package handlers

import (
	"net/http"
	"time"

	"github.com/takdanai-ph/taskboard/domain"
	"github.com/takdanai-ph/taskboard/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/trace"
)

type TaskHandler struct {
	tasks  *services.TaskService
	tracer trace.Tracer
}

func NewTaskHandler(tasks *services.TaskService, tracer trace.Tracer) TaskHandler {
	return TaskHandler{tasks: tasks, tracer: tracer}
}

// parseDueDate accepts both RFC 3339 timestamps and bare dates as sent by
// date inputs.
func parseDueDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func parseObjectIDRef(s string) (*primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (h TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TaskHandler.Create")
	defer span.End()

	req := &struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		DueDate     string   `json:"dueDate"`
		Tags        []string `json:"tags"`
		AssigneeId  string   `json:"assignee_id"`
		TeamId      string   `json:"team_id"`
	}{}
	if err := readReq(req, r, w); err != nil {
		return
	}

	params := services.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	}
	if req.DueDate != "" {
		dueDate, err := parseDueDate(req.DueDate)
		if err != nil {
			writeErrorResp(domain.ErrValidation("invalid dueDate"), w)
			return
		}
		params.DueDate = dueDate
	}
	if req.AssigneeId != "" {
		assigneeId, err := parseObjectIDRef(req.AssigneeId)
		if err != nil {
			writeErrorResp(domain.ErrValidation("invalid assignee id"), w)
			return
		}
		params.AssigneeId = assigneeId
	}
	if req.TeamId != "" {
		teamId, err := parseObjectIDRef(req.TeamId)
		if err != nil {
			writeErrorResp(domain.ErrValidation("invalid team id"), w)
			return
		}
		params.TeamId = teamId
	}

	task, err := h.tasks.Create(ctx, actorFromContext(r), params)
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(task, http.StatusCreated, w)
}

func (h TaskHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TaskHandler.GetAll")
	defer span.End()

	tasks, err := h.tasks.GetAll(ctx)
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(tasks, http.StatusOK, w)
}

func (h TaskHandler) GetById(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TaskHandler.GetById")
	defer span.End()

	task, err := h.tasks.GetById(ctx, mux.Vars(r)["id"])
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(task, http.StatusOK, w)
}

func (h TaskHandler) MyWork(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TaskHandler.MyWork")
	defer span.End()

	tasks, err := h.tasks.MyWork(ctx, actorFromContext(r))
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(tasks, http.StatusOK, w)
}

func (h TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TaskHandler.Update")
	defer span.End()

	req := &struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		DueDate     *string   `json:"dueDate"`
		Status      *string   `json:"status"`
		Tags        *[]string `json:"tags"`
		AssigneeId  *string   `json:"assignee_id"`
		TeamId      *string   `json:"team_id"`
	}{}
	if err := readReq(req, r, w); err != nil {
		return
	}

	params := services.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			writeErrorResp(domain.ErrValidation("invalid dueDate"), w)
			return
		}
		params.DueDate = &dueDate
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		params.Status = &status
	}
	// An empty string clears the reference; a missing key leaves it alone.
	if req.AssigneeId != nil {
		if *req.AssigneeId == "" {
			params.ClearAssignee = true
		} else {
			assigneeId, err := parseObjectIDRef(*req.AssigneeId)
			if err != nil {
				writeErrorResp(domain.ErrValidation("invalid assignee id"), w)
				return
			}
			params.AssigneeId = assigneeId
		}
	}
	if req.TeamId != nil {
		if *req.TeamId == "" {
			params.ClearTeam = true
		} else {
			teamId, err := parseObjectIDRef(*req.TeamId)
			if err != nil {
				writeErrorResp(domain.ErrValidation("invalid team id"), w)
				return
			}
			params.TeamId = teamId
		}
	}

	task, err := h.tasks.Update(ctx, actorFromContext(r), mux.Vars(r)["id"], params)
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(task, http.StatusOK, w)
}

func (h TaskHandler) Approve(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TaskHandler.Approve")
	defer span.End()

	task, err := h.tasks.Approve(ctx, actorFromContext(r), mux.Vars(r)["id"])
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(task, http.StatusOK, w)
}

func (h TaskHandler) Reject(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TaskHandler.Reject")
	defer span.End()

	task, err := h.tasks.Reject(ctx, actorFromContext(r), mux.Vars(r)["id"])
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(task, http.StatusOK, w)
}

func (h TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TaskHandler.Delete")
	defer span.End()

	if err := h.tasks.Delete(ctx, actorFromContext(r), mux.Vars(r)["id"]); err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(nil, http.StatusNoContent, w)
}

func (h TaskHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TaskHandler.Summary")
	defer span.End()

	summary, err := h.tasks.Summary(ctx)
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(summary, http.StatusOK, w)
}

func (h TaskHandler) Durations(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TaskHandler.Durations")
	defer span.End()

	durations, err := h.tasks.Durations(ctx, r.URL.Query().Get("timeRange"))
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(durations, http.StatusOK, w)
}
