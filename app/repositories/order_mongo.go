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

type mongoOrderRepository struct {
	col *mongo.Collection
}

// NewOrderRepository returns the MongoDB-backed OrderRepository.
func NewOrderRepository() OrderRepository {
	return &mongoOrderRepository{col: database.Collection("orders")}
}

func (r *mongoOrderRepository) Create(ctx context.Context, o *models.Order) error {
	defer metrics.ObserveDBOp("orders.insert", time.Now())

	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, o)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.ID = id
	}
	return nil
}

func (r *mongoOrderRepository) ByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	defer metrics.ObserveDBOp("orders.find", time.Now())

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

type mongoAppointmentRepository struct {
	col *mongo.Collection
}

// NewAppointmentRepository returns the MongoDB-backed AppointmentRepository.
func NewAppointmentRepository() AppointmentRepository {
	return &mongoAppointmentRepository{col: database.Collection("appointments")}
}

func (r *mongoAppointmentRepository) Create(ctx context.Context, a *models.Appointment) error {
	defer metrics.ObserveDBOp("appointments.insert", time.Now())

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, a)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = id
	}
	return nil
}

func (r *mongoAppointmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	defer metrics.ObserveDBOp("appointments.findOne", time.Now())

	var a models.Appointment
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *mongoAppointmentRepository) ByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Appointment, error) {
	defer metrics.ObserveDBOp("appointments.find", time.Now())

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"petOwner": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	appts := []models.Appointment{}
	if err := cur.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *mongoAppointmentRepository) AllWithOwner(ctx context.Context) ([]models.AppointmentWithOwner, error) {
	defer metrics.ObserveDBOp("appointments.aggregate", time.Now())

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "petOwner",
			"foreignField": "_id",
			"as":           "owner",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$owner",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$addFields", Value: bson.M{
			"ownerName":  "$owner.name",
			"ownerEmail": "$owner.email",
		}}},
		{{Key: "$project", Value: bson.M{"owner": 0}}},
	})
	if err != nil {
		return nil, err
	}
	appts := []models.AppointmentWithOwner{}
	if err := cur.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *mongoAppointmentRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Appointment, error) {
	defer metrics.ObserveDBOp("appointments.update", time.Now())

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}

	var a models.Appointment
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
