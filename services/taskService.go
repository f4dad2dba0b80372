package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/takdanai-ph/taskboard/domain"
	"github.com/takdanai-ph/taskboard/policy"
	"github.com/takdanai-ph/taskboard/workflow"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type TaskService struct {
	tasks         domain.TaskRepository
	notifications *NotificationService
	logger        *log.Logger
	tracer        trace.Tracer
}

func NewTaskService(tasks domain.TaskRepository, notifications *NotificationService, logger *log.Logger, tracer trace.Tracer) *TaskService {
	return &TaskService{tasks: tasks, notifications: notifications, logger: logger, tracer: tracer}
}

type CreateTaskParams struct {
	Title       string
	Description string
	DueDate     time.Time
	Tags        []string
	AssigneeId  *primitive.ObjectID
	TeamId      *primitive.ObjectID
}

func (s *TaskService) Create(ctx context.Context, actor workflow.Actor, params CreateTaskParams) (domain.Task, error) {
	_, span := s.tracer.Start(ctx, "TaskService.Create")
	defer span.End()

	if !policy.CanCreateTask(actor.Role) {
		return domain.Task{}, domain.ErrForbidden()
	}
	if params.Title == "" {
		return domain.Task{}, domain.ErrValidation("title is required")
	}
	if params.Description == "" {
		return domain.Task{}, domain.ErrValidation("description is required")
	}
	if params.DueDate.IsZero() {
		return domain.Task{}, domain.ErrValidation("dueDate is required")
	}

	initial := workflow.Initial()
	now := time.Now()
	task, err := s.tasks.Insert(domain.Task{
		Title:                   params.Title,
		Description:             params.Description,
		DueDate:                 params.DueDate,
		Status:                  initial.Status,
		NeedsCompletionApproval: initial.AwaitingApproval,
		Tags:                    params.Tags,
		AssigneeId:              params.AssigneeId,
		TeamId:                  params.TeamId,
		CreatedAt:               now,
		UpdatedAt:               now,
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return domain.Task{}, err
	}

	if task.AssigneeId != nil {
		s.notifyAssignee(task, fmt.Sprintf("You have been assigned the task %q.", task.Title))
	}
	return task, nil
}

func (s *TaskService) GetAll(ctx context.Context) (domain.Tasks, error) {
	_, span := s.tracer.Start(ctx, "TaskService.GetAll")
	defer span.End()

	return s.tasks.GetAll()
}

func (s *TaskService) GetById(ctx context.Context, id string) (*domain.Task, error) {
	_, span := s.tracer.Start(ctx, "TaskService.GetById")
	defer span.End()

	return s.tasks.GetById(id)
}

// MyWork lists the tasks assigned to the acting user.
func (s *TaskService) MyWork(ctx context.Context, actor workflow.Actor) (domain.Tasks, error) {
	_, span := s.tracer.Start(ctx, "TaskService.MyWork")
	defer span.End()

	return s.tasks.GetByAssignee(actor.UserId)
}

type UpdateTaskParams struct {
	Title         *string
	Description   *string
	DueDate       *time.Time
	Status        *domain.Status
	Tags          *[]string
	AssigneeId    *primitive.ObjectID
	ClearAssignee bool
	TeamId        *primitive.ObjectID
	ClearTeam     bool
}

// nonStatusFields reports whether the patch touches anything besides status.
func (p UpdateTaskParams) nonStatusFields() bool {
	return p.Title != nil || p.Description != nil || p.DueDate != nil ||
		p.Tags != nil || p.AssigneeId != nil || p.ClearAssignee ||
		p.TeamId != nil || p.ClearTeam
}

func (p UpdateTaskParams) empty() bool {
	return p.Status == nil && !p.nonStatusFields()
}

// Update applies a partial task update. A User-role actor may only submit a
// status change, and the requested status is run through the state machine;
// managers and admins edit freely, with any status change still validated
// by the state machine.
func (s *TaskService) Update(ctx context.Context, actor workflow.Actor, id string, params UpdateTaskParams) (*domain.Task, error) {
	_, span := s.tracer.Start(ctx, "TaskService.Update")
	defer span.End()

	fields, err := policy.MutableTaskFields(actor.Role, true)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if len(fields) == 1 && params.nonStatusFields() {
		return nil, domain.ErrForbidden()
	}

	task, err := s.tasks.GetById(id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// An empty patch changes nothing; in particular it must not bump
	// UpdatedAt, which feeds the duration reports.
	if params.empty() {
		return task, nil
	}

	assignee := ""
	if task.AssigneeId != nil {
		assignee = task.AssigneeId.Hex()
	}

	state := workflow.State{Status: task.Status, AwaitingApproval: task.NeedsCompletionApproval}
	if params.Status != nil {
		requested, err := domain.StatusFromString(params.Status.String())
		if err != nil {
			return nil, domain.ErrValidation("invalid status")
		}
		state, err = workflow.NextForStatus(state, requested, actor, assignee)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	} else if params.nonStatusFields() {
		state, err = workflow.Next(state, workflow.Edit, actor, assignee)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	previousAssignee := assignee
	if params.Title != nil {
		task.Title = *params.Title
	}
	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.DueDate != nil {
		task.DueDate = *params.DueDate
	}
	if params.Tags != nil {
		task.Tags = *params.Tags
	}
	if params.ClearAssignee {
		task.AssigneeId = nil
	} else if params.AssigneeId != nil {
		task.AssigneeId = params.AssigneeId
	}
	if params.ClearTeam {
		task.TeamId = nil
	} else if params.TeamId != nil {
		task.TeamId = params.TeamId
	}

	task.Status = state.Status
	task.NeedsCompletionApproval = state.AwaitingApproval
	task.UpdatedAt = time.Now()

	if err := s.tasks.Update(*task); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if task.AssigneeId != nil && task.AssigneeId.Hex() != previousAssignee {
		s.notifyAssignee(*task, fmt.Sprintf("You have been assigned the task %q.", task.Title))
	}
	return task, nil
}

// Approve confirms a completion that is awaiting review.
func (s *TaskService) Approve(ctx context.Context, actor workflow.Actor, id string) (*domain.Task, error) {
	ctx, span := s.tracer.Start(ctx, "TaskService.Approve")
	defer span.End()

	return s.review(ctx, actor, id, workflow.Approve, "Your completion of %q was approved.")
}

// Reject sends an awaiting-approval task back to Pending.
func (s *TaskService) Reject(ctx context.Context, actor workflow.Actor, id string) (*domain.Task, error) {
	ctx, span := s.tracer.Start(ctx, "TaskService.Reject")
	defer span.End()

	return s.review(ctx, actor, id, workflow.Reject, "Your completion of %q was rejected; the task is pending again.")
}

func (s *TaskService) review(ctx context.Context, actor workflow.Actor, id string, action workflow.Action, message string) (*domain.Task, error) {
	_, span := s.tracer.Start(ctx, "TaskService.review")
	defer span.End()

	task, err := s.tasks.GetById(id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	assignee := ""
	if task.AssigneeId != nil {
		assignee = task.AssigneeId.Hex()
	}

	state := workflow.State{Status: task.Status, AwaitingApproval: task.NeedsCompletionApproval}
	state, err = workflow.Next(state, action, actor, assignee)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	task.Status = state.Status
	task.NeedsCompletionApproval = state.AwaitingApproval
	task.UpdatedAt = time.Now()
	if err := s.tasks.Update(*task); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if assignee != "" {
		s.notifyAssignee(*task, fmt.Sprintf(message, task.Title))
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, actor workflow.Actor, id string) error {
	_, span := s.tracer.Start(ctx, "TaskService.Delete")
	defer span.End()

	if !policy.CanDeleteTask(actor.Role) {
		return domain.ErrForbidden()
	}
	if _, err := s.tasks.GetById(id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return s.tasks.Delete(id)
}

type TaskSummary struct {
	Pending          int `json:"pending"`
	InProgress       int `json:"inProgress"`
	Completed        int `json:"completed"`
	AwaitingApproval int `json:"awaitingApproval"`
}

func (s *TaskService) Summary(ctx context.Context) (TaskSummary, error) {
	_, span := s.tracer.Start(ctx, "TaskService.Summary")
	defer span.End()

	tasks, err := s.tasks.GetAll()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return TaskSummary{}, err
	}

	var summary TaskSummary
	for _, task := range tasks {
		switch task.Status {
		case domain.PENDING:
			summary.Pending++
		case domain.IN_PROGRESS:
			summary.InProgress++
		case domain.COMPLETED:
			summary.Completed++
		}
		if task.NeedsCompletionApproval {
			summary.AwaitingApproval++
		}
	}
	return summary, nil
}

type TaskDuration struct {
	Id    string  `json:"id"`
	Title string  `json:"title"`
	Days  float64 `json:"days"`
}

// Durations reports, for tasks closed within the requested window
// (W = 7 days, M = 30, Y = 365), how long each took from creation to its
// last update.
func (s *TaskService) Durations(ctx context.Context, timeRange string) ([]TaskDuration, error) {
	_, span := s.tracer.Start(ctx, "TaskService.Durations")
	defer span.End()

	var window time.Duration
	switch timeRange {
	case "W":
		window = 7 * 24 * time.Hour
	case "M":
		window = 30 * 24 * time.Hour
	case "Y":
		window = 365 * 24 * time.Hour
	default:
		return nil, domain.ErrValidation("timeRange must be W, M or Y")
	}

	tasks, err := s.tasks.GetAll()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	cutoff := time.Now().Add(-window)
	durations := make([]TaskDuration, 0)
	for _, task := range tasks {
		if task.Status != domain.COMPLETED || task.NeedsCompletionApproval {
			continue
		}
		if task.UpdatedAt.Before(cutoff) {
			continue
		}
		durations = append(durations, TaskDuration{
			Id:    task.Id.Hex(),
			Title: task.Title,
			Days:  task.UpdatedAt.Sub(task.CreatedAt).Hours() / 24,
		})
	}
	return durations, nil
}

func (s *TaskService) notifyAssignee(task domain.Task, message string) {
	if s.notifications == nil || task.AssigneeId == nil {
		return
	}
	if err := s.notifications.Notify(task.AssigneeId.Hex(), message); err != nil {
		s.logger.Println("Failed to create notification:", err)
	}
}
