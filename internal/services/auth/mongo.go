package auth

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

// Repository persists accounts in the accounts collection.
type Repository struct {
	col *mongo.Collection
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{col: db.Collection("accounts")}
}

func (r *Repository) Insert(ctx context.Context, acc *models.Account) error {
	res, err := r.col.InsertOne(ctx, acc)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.New(apperr.Conflict, "email already registered")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to store account", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		acc.ID = id
	}
	return nil
}

func (r *Repository) ByEmail(ctx context.Context, email string) (*models.Account, error) {
	var acc models.Account
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&acc)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "account not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to load account", err)
	}
	return &acc, nil
}

func (r *Repository) ByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	var acc models.Account
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&acc)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "account not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to load account", err)
	}
	return &acc, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Account, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list accounts", err)
	}
	defer cur.Close(ctx)

	accounts := []models.Account{}
	if err := cur.All(ctx, &accounts); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to decode accounts", err)
	}
	return accounts, nil
}

func (r *Repository) UpdateRole(ctx context.Context, id primitive.ObjectID, role models.Role) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update role", err)
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "account not found")
	}
	return nil
}
