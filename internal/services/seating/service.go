package seating

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"comanda/internal/apperr"
	"comanda/internal/logger"
	"comanda/internal/models"
)

// TableStore is the persistence surface the seating component needs.
type TableStore interface {
	Insert(ctx context.Context, table *models.Table) error
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Table, error)
	List(ctx context.Context) ([]models.Table, error)
	UpdateNumber(ctx context.Context, id primitive.ObjectID, number int) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Service implements table CRUD.
type Service struct {
	tables TableStore
	logger *logger.Logger
}

func NewService(tables TableStore, log *logger.Logger) *Service {
	return &Service{tables: tables, logger: log}
}

func (s *Service) Create(ctx context.Context, number int) (*models.Table, error) {
	if number <= 0 {
		return nil, apperr.New(apperr.Validation, "number must be a positive integer")
	}

	table := &models.Table{Number: number, CreatedAt: time.Now().UTC()}
	if err := s.tables.Insert(ctx, table); err != nil {
		return nil, err
	}

	s.logger.Info("table_created", "", "Table created", map[string]any{"number": number})
	return table, nil
}

func (s *Service) List(ctx context.Context) ([]models.Table, error) {
	return s.tables.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Table, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "invalid table id")
	}
	return s.tables.ByID(ctx, oid)
}

func (s *Service) Update(ctx context.Context, id string, number int) (*models.Table, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "invalid table id")
	}
	if number <= 0 {
		return nil, apperr.New(apperr.Validation, "number must be a positive integer")
	}

	if err := s.tables.UpdateNumber(ctx, oid, number); err != nil {
		return nil, err
	}
	return s.tables.ByID(ctx, oid)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid table id")
	}
	if err := s.tables.Delete(ctx, oid); err != nil {
		return err
	}

	s.logger.Info("table_deleted", "", "Table deleted", map[string]any{"table_id": id})
	return nil
}
