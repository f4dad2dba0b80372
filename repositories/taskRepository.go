package repositories

import (
	"context"
	"log"
	"time"

	"github.com/takdanai-ph/taskboard/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TaskRepo struct {
	cli        *mongo.Client
	collection *mongo.Collection
	logger     *log.Logger
}

// NewTaskRepo reuses an already connected client; the server opens a single
// Mongo connection and hands it to every repo.
func NewTaskRepo(client *mongo.Client, database string, logger *log.Logger) *TaskRepo {
	return &TaskRepo{
		cli:        client,
		collection: client.Database(database).Collection("tasks"),
		logger:     logger,
	}
}

func (tr *TaskRepo) GetAll() (domain.Tasks, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var tasks domain.Tasks
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := tr.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		tr.logger.Println("Error fetching tasks:", err)
		return nil, err
	}
	if err = cursor.All(ctx, &tasks); err != nil {
		tr.logger.Println("Error decoding tasks:", err)
		return nil, err
	}
	return tasks, nil
}

func (tr *TaskRepo) GetById(id string) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound()
	}

	var task domain.Task
	err = tr.collection.FindOne(ctx, bson.M{"_id": objId}).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrTaskNotFound()
	}
	if err != nil {
		tr.logger.Println("Error fetching task:", err)
		return nil, err
	}
	return &task, nil
}

func (tr *TaskRepo) GetByAssignee(userId string) (domain.Tasks, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	objId, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return nil, domain.ErrUserNotFound()
	}

	var tasks domain.Tasks
	cursor, err := tr.collection.Find(ctx, bson.M{"assigneeId": objId})
	if err != nil {
		tr.logger.Println("Error fetching tasks by assignee:", err)
		return nil, err
	}
	if err = cursor.All(ctx, &tasks); err != nil {
		tr.logger.Println("Error decoding tasks:", err)
		return nil, err
	}
	return tasks, nil
}

func (tr *TaskRepo) Insert(task domain.Task) (domain.Task, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if task.Id.IsZero() {
		task.Id = primitive.NewObjectID()
	}
	if _, err := tr.collection.InsertOne(ctx, task); err != nil {
		tr.logger.Println("Error inserting task:", err)
		return domain.Task{}, err
	}
	return task, nil
}

func (tr *TaskRepo) Update(task domain.Task) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := tr.collection.ReplaceOne(ctx, bson.M{"_id": task.Id}, task)
	if err != nil {
		tr.logger.Println("Error updating task:", err)
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound()
	}
	return nil
}

func (tr *TaskRepo) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTaskNotFound()
	}
	res, err := tr.collection.DeleteOne(ctx, bson.M{"_id": objId})
	if err != nil {
		tr.logger.Println("Error deleting task:", err)
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound()
	}
	return nil
}
