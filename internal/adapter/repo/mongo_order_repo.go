package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domain "github.com/ROCKERZ109/lillasure-website/internal/entity"
	"github.com/ROCKERZ109/lillasure-website/internal/usecase"
)

var ErrNotFound = errors.New("not found")

// MongoOrderRepo stores orders as documents, one per checkout. The id
// and createdAt are assigned here, never by the caller.
type MongoOrderRepo struct {
	col *mongo.Collection
}

func NewMongoOrderRepo(db *mongo.Database, collection string) *MongoOrderRepo {
	return &MongoOrderRepo{col: db.Collection(collection)}
}

func (r *MongoOrderRepo) Create(ctx context.Context, o *domain.Order) (string, error) {
	doc := *o
	doc.ID = uuid.NewString()
	doc.CreatedAt = time.Now().UTC()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}
	return doc.ID, nil
}

func (r *MongoOrderRepo) GetByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	return r.find(ctx,
		bson.M{"customer.email": email},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *MongoOrderRepo) GetAll(ctx context.Context) ([]domain.Order, error) {
	return r.find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

// GetByDateRange filters on the pickup date strings; YYYY-MM-DD compares
// correctly as text.
func (r *MongoOrderRepo) GetByDateRange(ctx context.Context, from, to string) ([]domain.Order, error) {
	return r.find(ctx,
		bson.M{"pickupDate": bson.M{"$gte": from, "$lte": to}},
		options.Find().SetSort(bson.D{{Key: "pickupDate", Value: 1}}))
}

func (r *MongoOrderRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Order, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cur.Close(ctx)

	var orders []domain.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (r *MongoOrderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if !status.Valid() {
		return domain.ErrInvalidStatus
	}
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

var _ usecase.OrderStore = (*MongoOrderRepo)(nil)
