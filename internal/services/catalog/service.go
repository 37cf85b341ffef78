package catalog

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"comanda/internal/apperr"
	"comanda/internal/imagestore"
	"comanda/internal/logger"
	"comanda/internal/messaging"
	"comanda/internal/models"
)

// ProductStore is the persistence surface the catalog component needs.
type ProductStore interface {
	Insert(ctx context.Context, product *models.Product) error
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

// Service implements the product catalog.
type Service struct {
	products  ProductStore
	images    imagestore.Store
	broadcast messaging.Broadcaster
	logger    *logger.Logger
}

func NewService(products ProductStore, images imagestore.Store, broadcast messaging.Broadcaster, log *logger.Logger) *Service {
	return &Service{
		products:  products,
		images:    images,
		broadcast: broadcast,
		logger:    log,
	}
}

// List returns all products ordered by creation time ascending.
func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}

// Create stores the image, persists the product and broadcasts the change.
func (s *Service) Create(ctx context.Context, name string, price float64, imageName string, image io.Reader) (*models.Product, error) {
	if name == "" {
		return nil, apperr.New(apperr.Validation, "name is required")
	}
	if price <= 0 {
		return nil, apperr.New(apperr.Validation, "price must be a positive number")
	}
	if !allowedImageExts[strings.ToLower(filepath.Ext(imageName))] {
		return nil, apperr.New(apperr.Validation, "image must be jpeg, jpg, png or gif")
	}

	url, err := s.images.Save(ctx, imageName, image)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to store image", err)
	}

	product := &models.Product{
		Name:      name,
		Price:     price,
		ImageURL:  url,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.products.Insert(ctx, product); err != nil {
		return nil, err
	}

	s.broadcast.Publish(ctx, models.EventProductCreated, product)
	s.logger.Info("product_created", "", "Product created", map[string]any{
		"product_id": product.ID.Hex(),
		"name":       name,
	})
	return product, nil
}

// Delete removes the stored image, then the record, then broadcasts.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid product id")
	}

	product, err := s.products.ByID(ctx, oid)
	if err != nil {
		return err
	}

	if err := s.images.Remove(ctx, product.ImageURL); err != nil {
		s.logger.Error("image_remove_failed", "", "Failed to remove product image", err, map[string]any{
			"product_id": id,
		})
	}

	if err := s.products.Delete(ctx, oid); err != nil {
		return err
	}

	s.broadcast.Publish(ctx, models.EventProductDeleted, product)
	s.logger.Info("product_deleted", "", "Product deleted", map[string]any{"product_id": id})
	return nil
}
