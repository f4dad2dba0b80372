package domain

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Task struct {
	Id          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	DueDate     time.Time          `bson:"dueDate" json:"dueDate"`
	Status      Status             `bson:"status" json:"status"`
	// NeedsCompletionApproval is only ever true while Status is Completed.
	NeedsCompletionApproval bool                `bson:"needsCompletionApproval" json:"needsCompletionApproval"`
	Tags                    []string            `bson:"tags,omitempty" json:"tags"`
	AssigneeId              *primitive.ObjectID `bson:"assigneeId,omitempty" json:"assigneeId,omitempty"`
	TeamId                  *primitive.ObjectID `bson:"teamId,omitempty" json:"teamId,omitempty"`
	CreatedAt               time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt               time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type Tasks []*Task

func (t *Tasks) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(t)
}

func (t *Task) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(t)
}

func (t *Task) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(t)
}

type TaskRepository interface {
	GetAll() (Tasks, error)
	GetById(id string) (*Task, error)
	GetByAssignee(userId string) (Tasks, error)
	Insert(task Task) (Task, error)
	Update(task Task) error
	Delete(id string) error
}

type Status string

const (
	PENDING     Status = "Pending"
	IN_PROGRESS Status = "In Progress"
	COMPLETED   Status = "Completed"
)

func (s Status) String() string {
	return string(s)
}

func StatusFromString(s string) (Status, error) {
	switch s {
	case "Pending":
		return PENDING, nil
	case "In Progress":
		return IN_PROGRESS, nil
	case "Completed":
		return COMPLETED, nil
	default:
		return "", errors.New("invalid status")
	}
}
