// Package mongo implements the storage.Store interface on a MongoDB
// database reachable over the network. A unique index on users.email
// enforces the duplicate-email rule at the storage layer.
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskboard/taskboard-be/internal/common"
	"github.com/taskboard/taskboard-be/internal/models"
)

// Store is a storage.Store backed by MongoDB.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB and prepares the collections and indexes.
func New(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(database)

	_, err = db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}
	_, err = db.Collection("tasks").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return nil, err
	}

	return &Store{client: client, db: db}, nil
}

// Close disconnects from the server.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) users() *mongo.Collection    { return s.db.Collection("users") }
func (s *Store) tasks() *mongo.Collection    { return s.db.Collection("tasks") }
func (s *Store) sessions() *mongo.Collection { return s.db.Collection("sessions") }
func (s *Store) events() *mongo.Collection   { return s.db.Collection("events") }

// FindUserByEmail looks up a user by exact email match.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.users().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, common.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// FindUserByID retrieves a single user by their ID.
func (s *Store) FindUserByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := s.users().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, common.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// InsertUser stores a new user. The unique email index reports duplicates.
func (s *Store) InsertUser(ctx context.Context, user models.User) error {
	_, err := s.users().InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return common.ErrDuplicateEmail
	}
	return err
}

// ListTasksByOwner returns the owner's tasks, most recently created first.
func (s *Store) ListTasksByOwner(ctx context.Context, ownerID string) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.tasks().Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTaskByID retrieves one task, scoped to its owner.
func (s *Store) GetTaskByID(ctx context.Context, ownerID, id string) (models.Task, error) {
	var task models.Task
	err := s.tasks().FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Task{}, common.ErrNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

// InsertTask stores a new task.
func (s *Store) InsertTask(ctx context.Context, task models.Task) error {
	_, err := s.tasks().InsertOne(ctx, task)
	return err
}

// UpdateTask writes the mutable fields back, scoped to the task's owner.
func (s *Store) UpdateTask(ctx context.Context, task models.Task) error {
	update := bson.M{"$set": bson.M{
		"title":       task.Title,
		"description": task.Description,
		"status":      task.Status,
		"updated_at":  task.UpdatedAt,
	}}
	res, err := s.tasks().UpdateOne(ctx, bson.M{"_id": task.ID, "owner_id": task.OwnerID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteTask removes a task, scoped to its owner.
func (s *Store) DeleteTask(ctx context.Context, ownerID, id string) error {
	res, err := s.tasks().DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// InsertSession records an issued token.
func (s *Store) InsertSession(ctx context.Context, session models.Session) error {
	_, err := s.sessions().InsertOne(ctx, session)
	return err
}

// FindSessionByTokenID looks up an issued session by its token ID.
func (s *Store) FindSessionByTokenID(ctx context.Context, tokenID string) (models.Session, error) {
	var session models.Session
	err := s.sessions().FindOne(ctx, bson.M{"_id": tokenID}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Session{}, common.ErrNotFound
		}
		return models.Session{}, err
	}
	return session, nil
}

// DeleteSessionByTokenID revokes a session.
func (s *Store) DeleteSessionByTokenID(ctx context.Context, tokenID string) error {
	res, err := s.sessions().DeleteOne(ctx, bson.M{"_id": tokenID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteExpiredSessions purges sessions whose expiry is in the past.
func (s *Store) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.sessions().DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": now}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// InsertEvent appends an event to the activity log.
func (s *Store) InsertEvent(ctx context.Context, event models.Event) error {
	_, err := s.events().InsertOne(ctx, event)
	return err
}

// ListRecentEventsByOwner retrieves the owner's most recent events.
func (s *Store) ListRecentEventsByOwner(ctx context.Context, ownerID string, limit int) ([]models.Event, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := s.events().Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// DeleteEventsBefore purges events older than the cutoff.
func (s *Store) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.events().DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
