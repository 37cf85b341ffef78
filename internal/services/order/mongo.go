package order

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

// Repository persists orders in the orders collection.
type Repository struct {
	col *mongo.Collection
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{col: db.Collection("orders")}
}

func (r *Repository) Insert(ctx context.Context, order *models.Order) error {
	res, err := r.col.InsertOne(ctx, order)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to store order", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

func (r *Repository) ByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "order not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to load order", err)
	}
	return &order, nil
}

func (r *Repository) Find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list orders", err)
	}
	defer cur.Close(ctx)

	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to decode orders", err)
	}
	return orders, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Order, error) {
	return r.Find(ctx, bson.M{})
}

func (r *Repository) ListByTable(ctx context.Context, tableID primitive.ObjectID) ([]models.Order, error) {
	return r.Find(ctx, bson.M{"table_id": tableID})
}

func (r *Repository) ListByAccount(ctx context.Context, accountID primitive.ObjectID) ([]models.Order, error) {
	return r.Find(ctx, bson.M{"account_id": accountID})
}

func (r *Repository) ListByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	return r.Find(ctx, bson.M{"status": status})
}

func (r *Repository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update order status", err)
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "order not found")
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to delete order", err)
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "order not found")
	}
	return nil
}
