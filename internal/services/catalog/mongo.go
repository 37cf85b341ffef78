package catalog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"comanda/internal/apperr"
	"comanda/internal/database"
	"comanda/internal/models"
)

// Repository persists products in the products collection.
type Repository struct {
	col *mongo.Collection
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{col: db.Collection("products")}
}

func (r *Repository) Insert(ctx context.Context, product *models.Product) error {
	res, err := r.col.InsertOne(ctx, product)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to store product", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}
	return nil
}

func (r *Repository) ByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "product not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to load product", err)
	}
	return &product, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list products", err)
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to decode products", err)
	}
	return products, nil
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to delete product", err)
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "product not found")
	}
	return nil
}
