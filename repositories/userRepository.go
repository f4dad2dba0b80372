package repositories

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/takdanai-ph/taskboard/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type UserRepo struct {
	cli        *mongo.Client
	collection *mongo.Collection
	logger     *log.Logger
}

// NewMongoClient connects and pings; the resulting client is shared by the
// user, task and team repos.
func NewMongoClient(ctx context.Context, uri string, logger *log.Logger) (*mongo.Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("MONGO_DB_URI is not set")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("unable to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("unable to reach MongoDB: %w", err)
	}

	logger.Println("Connected to MongoDB")
	return client, nil
}

func NewUserRepo(client *mongo.Client, database string, logger *log.Logger) *UserRepo {
	return &UserRepo{
		cli:        client,
		collection: client.Database(database).Collection("users"),
		logger:     logger,
	}
}

func (ur *UserRepo) Disconnect(ctx context.Context) error {
	return ur.cli.Disconnect(ctx)
}

func (ur *UserRepo) GetAll() (domain.Users, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var users domain.Users
	cursor, err := ur.collection.Find(ctx, bson.M{})
	if err != nil {
		ur.logger.Println("Error fetching users:", err)
		return nil, err
	}
	if err = cursor.All(ctx, &users); err != nil {
		ur.logger.Println("Error decoding users:", err)
		return nil, err
	}
	return users, nil
}

func (ur *UserRepo) GetById(id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound()
	}

	var user domain.User
	err = ur.collection.FindOne(ctx, bson.M{"_id": objId}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrUserNotFound()
	}
	if err != nil {
		ur.logger.Println("Error fetching user:", err)
		return nil, err
	}
	return &user, nil
}

func (ur *UserRepo) GetByUsername(username string) (*domain.User, error) {
	return ur.findOne(bson.M{"username": username})
}

func (ur *UserRepo) GetByEmail(email string) (*domain.User, error) {
	return ur.findOne(bson.M{"email": email})
}

func (ur *UserRepo) GetByResetToken(token string) (*domain.User, error) {
	return ur.findOne(bson.M{"resetToken": token})
}

func (ur *UserRepo) findOne(filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user domain.User
	err := ur.collection.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrUserNotFound()
	}
	if err != nil {
		ur.logger.Println("Error fetching user:", err)
		return nil, err
	}
	return &user, nil
}

func (ur *UserRepo) Insert(user domain.User) (domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	if _, err := ur.collection.InsertOne(ctx, user); err != nil {
		ur.logger.Println("Error inserting user:", err)
		return domain.User{}, err
	}
	return user, nil
}

func (ur *UserRepo) Update(user domain.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := ur.collection.ReplaceOne(ctx, bson.M{"_id": user.Id}, user)
	if err != nil {
		ur.logger.Println("Error updating user:", err)
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}

func (ur *UserRepo) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound()
	}
	res, err := ur.collection.DeleteOne(ctx, bson.M{"_id": objId})
	if err != nil {
		ur.logger.Println("Error deleting user:", err)
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}
