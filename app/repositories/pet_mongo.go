package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pawvilla/pawvilla/app/models"
	"github.com/pawvilla/pawvilla/pkg/database"
	"github.com/pawvilla/pawvilla/pkg/metrics"
)

type mongoPetRepository struct {
	col *mongo.Collection
}

// NewPetRepository returns the MongoDB-backed PetRepository.
func NewPetRepository() PetRepository {
	return &mongoPetRepository{col: database.Collection("pets")}
}

func (r *mongoPetRepository) Create(ctx context.Context, p *models.Pet) error {
	defer metrics.ObserveDBOp("pets.insert", time.Now())

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}
	return nil
}

func (r *mongoPetRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Pet, error) {
	defer metrics.ObserveDBOp("pets.findOne", time.Now())

	var p models.Pet
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoPetRepository) Update(ctx context.Context, p *models.Pet) error {
	defer metrics.ObserveDBOp("pets.replace", time.Now())

	p.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoPetRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveDBOp("pets.delete", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoPetRepository) All(ctx context.Context) ([]models.Pet, error) {
	defer metrics.ObserveDBOp("pets.find", time.Now())
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *mongoPetRepository) Search(ctx context.Context, query string, limit int64) ([]models.Pet, error) {
	defer metrics.ObserveDBOp("pets.find", time.Now())

	filter := bson.M{"$or": bson.A{
		bson.M{"name": bson.M{"$regex": query, "$options": "i"}},
		bson.M{"type": bson.M{"$regex": query, "$options": "i"}},
		bson.M{"ownerName": bson.M{"$regex": query, "$options": "i"}},
	}}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return r.find(ctx, filter, opts)
}

func (r *mongoPetRepository) ByOwner(ctx context.Context, ownerName string) ([]models.Pet, error) {
	defer metrics.ObserveDBOp("pets.find", time.Now())

	filter := bson.M{"ownerName": bson.M{"$regex": ownerName, "$options": "i"}}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *mongoPetRepository) ByType(ctx context.Context, petType string) ([]models.Pet, error) {
	defer metrics.ObserveDBOp("pets.find", time.Now())

	return r.find(ctx, bson.M{"type": petType},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *mongoPetRepository) find(ctx context.Context, filter any, opts ...*options.FindOptions) ([]models.Pet, error) {
	cur, err := r.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	pets := []models.Pet{}
	if err := cur.All(ctx, &pets); err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *mongoPetRepository) Stats(ctx context.Context) (*models.PetStats, error) {
	defer metrics.ObserveDBOp("pets.aggregate", time.Now())

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":       "$type",
			"count":     bson.M{"$sum": 1},
			"avgWeight": bson.M{"$avg": "$weight"},
		}}},
	})
	if err != nil {
		return nil, err
	}
	var groups []struct {
		ID        string  `bson:"_id"`
		Count     int64   `bson:"count"`
		AvgWeight float64 `bson:"avgWeight"`
	}
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}

	byType := map[string]int64{}
	var weighted float64
	for _, g := range groups {
		byType[g.ID] = g.Count
		weighted += g.AvgWeight * float64(g.Count)
	}
	var avg float64
	if total > 0 {
		avg = weighted / float64(total)
	}

	recent, err := r.find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(5))
	if err != nil {
		return nil, err
	}
	summaries := make([]models.PetSummary, 0, len(recent))
	for _, p := range recent {
		summaries = append(summaries, models.PetSummary{
			Name:      p.Name,
			Type:      p.Type,
			OwnerName: p.OwnerName,
			CreatedAt: p.CreatedAt,
		})
	}

	return &models.PetStats{
		TotalPets:     total,
		PetsByType:    byType,
		AverageWeight: avg,
		RecentPets:    summaries,
	}, nil
}
