package quote

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cartforge/quote-service/pkg/db/models"
)

// MaskRepository resolves guest-facing cart tokens against the mask table.
type MaskRepository struct {
	db *gorm.DB
}

// NewMaskRepository constructs the mask lookup bound to the provided DB.
func NewMaskRepository(db *gorm.DB) *MaskRepository {
	return &MaskRepository{db: db}
}

// Resolve maps a masked guest token onto the internal quote id.
func (r *MaskRepository) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	var mask models.QuoteIDMask
	err := r.db.WithContext(ctx).
		Where("masked_id = ?", token).
		First(&mask).Error
	if err != nil {
		return uuid.Nil, err
	}
	return mask.QuoteID, nil
}
