package repo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domain "github.com/ROCKERZ109/lillasure-website/internal/entity"
	"github.com/ROCKERZ109/lillasure-website/internal/usecase"
)

// MongoProductRepo is fetch-all only; the catalog is small and all
// filtering happens in the service.
type MongoProductRepo struct {
	col *mongo.Collection
}

func NewMongoProductRepo(db *mongo.Database, collection string) *MongoProductRepo {
	return &MongoProductRepo{col: db.Collection(collection)}
}

func (r *MongoProductRepo) GetProducts(ctx context.Context) ([]domain.Product, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cur.Close(ctx)

	var products []domain.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// Seed upserts the catalog by product id; used by the -seed startup flag.
func (r *MongoProductRepo) Seed(ctx context.Context, products []domain.Product) error {
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("product %s: %w", p.ID, err)
		}
		_, err := r.col.ReplaceOne(ctx,
			bson.M{"_id": p.ID}, p,
			options.Replace().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}
	return nil
}

var _ usecase.ProductStore = (*MongoProductRepo)(nil)
