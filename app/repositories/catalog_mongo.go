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

type mongoDoctorRepository struct {
	col *mongo.Collection
}

// NewDoctorRepository returns the MongoDB-backed DoctorRepository.
func NewDoctorRepository() DoctorRepository {
	return &mongoDoctorRepository{col: database.Collection("doctors")}
}

func (r *mongoDoctorRepository) Create(ctx context.Context, d *models.Doctor) error {
	defer metrics.ObserveDBOp("doctors.insert", time.Now())

	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, d)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		d.ID = id
	}
	return nil
}

func (r *mongoDoctorRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	defer metrics.ObserveDBOp("doctors.findOne", time.Now())

	var d models.Doctor
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *mongoDoctorRepository) Update(ctx context.Context, d *models.Doctor) error {
	defer metrics.ObserveDBOp("doctors.replace", time.Now())

	d.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoDoctorRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveDBOp("doctors.delete", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoDoctorRepository) ListActive(ctx context.Context) ([]models.Doctor, error) {
	defer metrics.ObserveDBOp("doctors.find", time.Now())

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, err
	}
	doctors := []models.Doctor{}
	if err := cur.All(ctx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *mongoDoctorRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveDBOp("doctors.count", time.Now())
	return r.col.CountDocuments(ctx, bson.M{})
}

type mongoProductRepository struct {
	col *mongo.Collection
}

// NewProductRepository returns the MongoDB-backed ProductRepository.
func NewProductRepository() ProductRepository {
	return &mongoProductRepository{col: database.Collection("products")}
}

func (r *mongoProductRepository) Create(ctx context.Context, p *models.Product) error {
	defer metrics.ObserveDBOp("products.insert", time.Now())

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

func (r *mongoProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	defer metrics.ObserveDBOp("products.findOne", time.Now())

	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoProductRepository) Update(ctx context.Context, p *models.Product) error {
	defer metrics.ObserveDBOp("products.replace", time.Now())

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

func (r *mongoProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveDBOp("products.delete", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoProductRepository) List(ctx context.Context, category, nameQuery string) ([]models.Product, error) {
	defer metrics.ObserveDBOp("products.find", time.Now())

	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	if nameQuery != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(nameQuery), "$options": "i"}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *mongoProductRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveDBOp("products.count", time.Now())
	return r.col.CountDocuments(ctx, bson.M{})
}
