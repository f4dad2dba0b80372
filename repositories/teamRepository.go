package repositories

import (
	"context"
	"log"
	"time"

	"github.com/takdanai-ph/taskboard/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TeamRepo struct {
	cli        *mongo.Client
	collection *mongo.Collection
	logger     *log.Logger
}

func NewTeamRepo(client *mongo.Client, database string, logger *log.Logger) *TeamRepo {
	return &TeamRepo{
		cli:        client,
		collection: client.Database(database).Collection("teams"),
		logger:     logger,
	}
}

func (tr *TeamRepo) GetAll() (domain.Teams, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var teams domain.Teams
	cursor, err := tr.collection.Find(ctx, bson.M{})
	if err != nil {
		tr.logger.Println("Error fetching teams:", err)
		return nil, err
	}
	if err = cursor.All(ctx, &teams); err != nil {
		tr.logger.Println("Error decoding teams:", err)
		return nil, err
	}
	return teams, nil
}

func (tr *TeamRepo) GetById(id string) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTeamNotFound()
	}

	var team domain.Team
	err = tr.collection.FindOne(ctx, bson.M{"_id": objId}).Decode(&team)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrTeamNotFound()
	}
	if err != nil {
		tr.logger.Println("Error fetching team:", err)
		return nil, err
	}
	return &team, nil
}

func (tr *TeamRepo) FindByName(name string) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var team domain.Team
	err := tr.collection.FindOne(ctx, bson.M{"name": name}).Decode(&team)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		tr.logger.Println("Error finding team by name:", err)
		return nil, err
	}
	return &team, nil
}

func (tr *TeamRepo) Insert(team domain.Team) (domain.Team, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if team.Id.IsZero() {
		team.Id = primitive.NewObjectID()
	}
	if _, err := tr.collection.InsertOne(ctx, team); err != nil {
		tr.logger.Println("Error inserting team:", err)
		return domain.Team{}, err
	}
	return team, nil
}

func (tr *TeamRepo) Update(team domain.Team) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := tr.collection.ReplaceOne(ctx, bson.M{"_id": team.Id}, team)
	if err != nil {
		tr.logger.Println("Error updating team:", err)
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTeamNotFound()
	}
	return nil
}

func (tr *TeamRepo) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTeamNotFound()
	}
	res, err := tr.collection.DeleteOne(ctx, bson.M{"_id": objId})
	if err != nil {
		tr.logger.Println("Error deleting team:", err)
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTeamNotFound()
	}
	return nil
}
