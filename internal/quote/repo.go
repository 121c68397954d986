package quote

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cartforge/quote-service/pkg/db/models"
)

// Repository persists quotes and their items.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a quote repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Find loads a quote with its items.
func (r *Repository) Find(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var record models.Quote
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Save persists the quote row. Items travel through AddItem/SaveItem, never
// through the aggregate save.
func (r *Repository) Save(ctx context.Context, record *models.Quote) (*models.Quote, error) {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(record).Error
	if err != nil {
		return nil, err
	}
	return record, nil
}

// AddItem inserts a new quote item; the store assigns its identifier.
func (r *Repository) AddItem(ctx context.Context, item *models.QuoteItem) (*models.QuoteItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// SaveItem persists an existing quote item.
func (r *Repository) SaveItem(ctx context.Context, item *models.QuoteItem) (*models.QuoteItem, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns items belonging to a quote, oldest first.
func (r *Repository) ListItems(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteItem, error) {
	var rows []models.QuoteItem
	if err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
