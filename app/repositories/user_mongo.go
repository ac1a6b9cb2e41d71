package repositories

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pawvilla/pawvilla/app/models"
	"github.com/pawvilla/pawvilla/pkg/database"
	"github.com/pawvilla/pawvilla/pkg/metrics"
)

type mongoUserRepository struct {
	col *mongo.Collection
}

// NewUserRepository returns the MongoDB-backed UserRepository.
func NewUserRepository() UserRepository {
	return &mongoUserRepository{col: database.Collection("users")}
}

func (r *mongoUserRepository) Create(ctx context.Context, u *models.User) error {
	defer metrics.ObserveDBOp("users.insert", time.Now())

	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = id
	}
	return nil
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	defer metrics.ObserveDBOp("users.findOne", time.Now())

	var u models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	defer metrics.ObserveDBOp("users.findOne", time.Now())

	var u models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoUserRepository) Update(ctx context.Context, u *models.User) error {
	defer metrics.ObserveDBOp("users.replace", time.Now())

	u.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveDBOp("users.delete", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoUserRepository) FindByRole(ctx context.Context, role string) ([]models.User, error) {
	defer metrics.ObserveDBOp("users.find", time.Now())

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"role": role}, opts)
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *mongoUserRepository) Search(ctx context.Context, query string, limit int64) ([]models.User, error) {
	defer metrics.ObserveDBOp("users.find", time.Now())

	pattern := regexp.QuoteMeta(query)
	filter := bson.M{"$or": bson.A{
		bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}},
		bson.M{"email": bson.M{"$regex": pattern, "$options": "i"}},
	}}
	cur, err := r.col.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *mongoUserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	defer metrics.ObserveDBOp("users.count", time.Now())
	return r.col.CountDocuments(ctx, bson.M{"role": role})
}

func (r *mongoUserRepository) Recent(ctx context.Context, role string, limit int64) ([]models.User, error) {
	defer metrics.ObserveDBOp("users.find", time.Now())

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cur, err := r.col.Find(ctx, bson.M{"role": role}, opts)
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
