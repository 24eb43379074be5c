package product

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cataloghub/product-service/internal/domain"
	"github.com/cataloghub/product-service/internal/pkg/clock"
	"github.com/cataloghub/product-service/internal/report"
)

// AddRequest carries the validated fields for a new product. Image is the
// base64 string produced by the image codec, empty when no upload.
type AddRequest struct {
	Name        string
	Code        string
	Description string
	Image       string
	Cost        decimal.Decimal
}

// UpdateRequest carries the validated fields for an update. ID identifies the
// product; it is never written. Status is not updatable here at all.
type UpdateRequest struct {
	ID          int64
	Name        string
	Code        string
	Description string
	Image       string
	Cost        decimal.Decimal
}

// Service implements the product lifecycle rules: uniqueness scoped to ACTIVE
// rows, immutable IDs, one-directional soft delete.
type Service struct {
	store   Store
	reports *report.Generator
	clock   clock.Clock
}

func NewService(store Store, reports *report.Generator, clk clock.Clock) *Service {
	return &Service{store: store, reports: reports, clock: clk}
}

// Add creates an ACTIVE product after checking code uniqueness, then name
// uniqueness, both against ACTIVE rows only. The checks and the insert run in
// one transaction.
func (s *Service) Add(ctx context.Context, req AddRequest) (*domain.Product, error) {
	zap.S().Infof("adding new product with code: %s", req.Code)

	var created *domain.Product
	err := s.store.Transaction(ctx, func(tx Store) error {
		exists, err := tx.ExistsByCodeAndStatus(ctx, req.Code, domain.ProductActive)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateCode
		}

		exists, err = tx.ExistsByNameAndStatus(ctx, req.Name, domain.ProductActive)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateName
		}

		now := s.clock.Now()
		p := &domain.Product{
			Name:        req.Name,
			Code:        req.Code,
			Description: req.Description,
			Image:       req.Image,
			Cost:        req.Cost,
			Status:      domain.ProductActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Save(ctx, p); err != nil {
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.S().Infof("product added successfully with ID: %d", created.ID)
	return created, nil
}

// Update overwrites name, code, description, image and cost with the request
// values. ID and Status are taken from the stored row, never from the request.
// Uniqueness is re-checked only for fields that actually change, so a product
// may re-save its own code or name.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*domain.Product, error) {
	zap.S().Infof("updating product with ID: %d", req.ID)

	var updated *domain.Product
	err := s.store.Transaction(ctx, func(tx Store) error {
		p, err := tx.FindByID(ctx, req.ID)
		if err != nil {
			return err
		}
		originalID := p.ID

		if p.Code != req.Code {
			exists, err := tx.ExistsByCodeAndStatus(ctx, req.Code, domain.ProductActive)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrDuplicateCode
			}
		}
		if p.Name != req.Name {
			exists, err := tx.ExistsByNameAndStatus(ctx, req.Name, domain.ProductActive)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrDuplicateName
			}
		}

		p.Name = req.Name
		p.Code = req.Code
		p.Description = req.Description
		p.Image = req.Image
		p.Cost = req.Cost
		p.UpdatedAt = s.clock.Now()

		if err := tx.Save(ctx, p); err != nil {
			return err
		}
		if p.ID != originalID {
			zap.S().Errorf("critical: product ID changed from %d to %d", originalID, p.ID)
			return domain.ErrProductIDChanged
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.S().Infof("product updated successfully with ID: %d", updated.ID)
	return updated, nil
}

// SoftDelete flips an ACTIVE product to INACTIVE. The transition is terminal;
// a second call fails.
func (s *Service) SoftDelete(ctx context.Context, id int64) (*domain.Product, error) {
	zap.S().Infof("soft deleting product with ID: %d", id)

	var deleted *domain.Product
	err := s.store.Transaction(ctx, func(tx Store) error {
		p, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if p.Status == domain.ProductInactive {
			return domain.ErrProductAlreadyInactive
		}

		p.Status = domain.ProductInactive
		p.UpdatedAt = s.clock.Now()
		if err := tx.Save(ctx, p); err != nil {
			return err
		}
		deleted = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.S().Infof("product soft deleted successfully with ID: %d", deleted.ID)
	return deleted, nil
}

// Search delegates to the store. The HTTP layer rejects requests where both
// terms are blank before this is reached.
func (s *Service) Search(ctx context.Context, name, code string) ([]domain.Product, error) {
	return s.store.Search(ctx, name, code)
}

// GenerateReport renders the ACTIVE products created within the range into a
// PDF document.
func (s *Service) GenerateReport(ctx context.Context, start, end *time.Time) ([]byte, error) {
	products, err := s.store.FindActiveByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	zap.S().Infof("generating report for %d products", len(products))
	return s.reports.RenderPDF(products, start, end, s.clock.Now())
}

// ExportExcel renders the same row set as GenerateReport into an XLSX workbook.
func (s *Service) ExportExcel(ctx context.Context, start, end *time.Time) ([]byte, error) {
	products, err := s.store.FindActiveByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return s.reports.RenderExcel(products)
}
