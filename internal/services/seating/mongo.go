package seating

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

// Repository persists tables in the tables collection.
type Repository struct {
	col *mongo.Collection
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{col: db.Collection("tables")}
}

func (r *Repository) Insert(ctx context.Context, table *models.Table) error {
	res, err := r.col.InsertOne(ctx, table)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.New(apperr.Conflict, "table number already in use")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to store table", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		table.ID = id
	}
	return nil
}

func (r *Repository) ByID(ctx context.Context, id primitive.ObjectID) (*models.Table, error) {
	var table models.Table
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&table)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "table not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to load table", err)
	}
	return &table, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Table, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "number", Value: 1}}))
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list tables", err)
	}
	defer cur.Close(ctx)

	tables := []models.Table{}
	if err := cur.All(ctx, &tables); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to decode tables", err)
	}
	return tables, nil
}

func (r *Repository) UpdateNumber(ctx context.Context, id primitive.ObjectID, number int) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"number": number}})
	if mongo.IsDuplicateKeyError(err) {
		return apperr.New(apperr.Conflict, "table number already in use")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update table", err)
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "table not found")
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to delete table", err)
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "table not found")
	}
	return nil
}
