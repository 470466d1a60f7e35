package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/HikkiElf/cart-manager/internal/models"
)

const byLine = "user_id = ? AND product_id = ?"

// AddLine inserts a new line. An existing line for the same pair is reported
// by the engine as gorm.ErrDuplicatedKey.
func (r *GormRepo) AddLine(ctx context.Context, line *models.CartLine) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(line).Error
	})
	return translateError(err)
}

// UpdateLine sets the quantity of an existing line. Zero affected rows means
// the line does not exist and is reported as gorm.ErrRecordNotFound.
func (r *GormRepo) UpdateLine(ctx context.Context, line *models.CartLine) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartLine{}).
			Where(byLine, line.UserID, line.ProductID).
			Update("quantity", line.Quantity)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translateError(err)
}

func (r *GormRepo) RemoveLine(ctx context.Context, userID, productID int64) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where(byLine, userID, productID).Delete(&models.CartLine{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translateError(err)
}

func (r *GormRepo) GetLine(ctx context.Context, userID, productID int64) (*models.CartLine, error) {
	var line models.CartLine
	if err := r.DB.WithContext(ctx).Where(byLine, userID, productID).First(&line).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *GormRepo) GetCart(ctx context.Context, userID int64) ([]models.CartLine, error) {
	items := []models.CartLine{}
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("product_id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
