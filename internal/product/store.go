package product

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/cataloghub/product-service/internal/domain"
)

// Store abstracts product row persistence. All methods are pure relative to
// their arguments; timestamps are supplied by the caller.
type Store interface {
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindByCode(ctx context.Context, code string) (*domain.Product, error)
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	ExistsByCodeAndStatus(ctx context.Context, code string, status domain.ProductStatus) (bool, error)
	ExistsByNameAndStatus(ctx context.Context, name string, status domain.ProductStatus) (bool, error)
	Search(ctx context.Context, name, code string) ([]domain.Product, error)
	FindActiveByDateRange(ctx context.Context, start, end *time.Time) ([]domain.Product, error)
	Save(ctx context.Context, p *domain.Product) error
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// GormStore is the relational Store backed by GORM (PostgreSQL or SQLite).
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "query product by id")
	}
	return &p, nil
}

func (s *GormStore) FindByCode(ctx context.Context, code string) (*domain.Product, error) {
	var p domain.Product
	if err := s.db.WithContext(ctx).Where("code = ?", code).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "query product by code")
	}
	return &p, nil
}

func (s *GormStore) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	var p domain.Product
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "query product by name")
	}
	return &p, nil
}

func (s *GormStore) ExistsByCodeAndStatus(ctx context.Context, code string, status domain.ProductStatus) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.Product{}).
		Where("code = ? AND status = ?", code, status).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count products by code and status")
	}
	return count > 0, nil
}

func (s *GormStore) ExistsByNameAndStatus(ctx context.Context, name string, status domain.ProductStatus) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.Product{}).
		Where("name = ? AND status = ?", name, status).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count products by name and status")
	}
	return count > 0, nil
}

// Search matches ACTIVE products by case-insensitive substring on whichever
// of name/code is non-empty. Results come back in insertion order.
func (s *GormStore) Search(ctx context.Context, name, code string) ([]domain.Product, error) {
	db := s.db.WithContext(ctx).Model(&domain.Product{}).
		Where("status = ?", domain.ProductActive)
	if name != "" {
		db = db.Where(s.likeClause("name"), s.likePattern(name))
	}
	if code != "" {
		db = db.Where(s.likeClause("code"), s.likePattern(code))
	}

	var rows []domain.Product
	if err := db.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "search products")
	}
	return rows, nil
}

// FindActiveByDateRange returns ACTIVE products created within the inclusive
// bounds, newest first. The report generator relies on this ordering.
func (s *GormStore) FindActiveByDateRange(ctx context.Context, start, end *time.Time) ([]domain.Product, error) {
	db := s.db.WithContext(ctx).Model(&domain.Product{}).
		Where("status = ?", domain.ProductActive)
	if start != nil {
		db = db.Where("created_at >= ?", *start)
	}
	if end != nil {
		db = db.Where("created_at <= ?", *end)
	}

	var rows []domain.Product
	if err := db.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "query products by date range")
	}
	return rows, nil
}

// Save inserts when ID is unset, otherwise updates the row in place by ID.
func (s *GormStore) Save(ctx context.Context, p *domain.Product) error {
	if p.ID == 0 {
		if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
			return errors.Wrap(err, "insert product")
		}
		return nil
	}
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return errors.Wrap(err, "update product")
	}
	return nil
}

// Transaction runs fn against a transactional copy of the store so uniqueness
// checks and the save commit atomically.
func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) likeClause(column string) string {
	if strings.EqualFold(s.db.Name(), "postgres") {
		return column + " ILIKE ?"
	}
	return "LOWER(" + column + ") LIKE ?"
}

func (s *GormStore) likePattern(term string) string {
	if strings.EqualFold(s.db.Name(), "postgres") {
		return "%" + term + "%"
	}
	return "%" + strings.ToLower(term) + "%"
}
