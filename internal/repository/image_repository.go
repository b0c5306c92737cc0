package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"artifai/internal/model"
)

// ImageRepository scopes every per-image query by both image id and owner id,
// so a caller can never reach another user's rows.
type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Create(ctx context.Context, image *model.Image) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(image).Error
	})
	if err != nil {
		return fmt.Errorf("create image failed: %w", err)
	}
	return nil
}

// ListByUserID returns one page of the user's images, newest first, and the
// total number of images the user owns.
func (r *ImageRepository) ListByUserID(ctx context.Context, userID uint, page, perPage int) ([]model.Image, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Image{}).Where("user_id = ?", userID).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count images failed: %w", err)
	}

	var images []model.Image
	err := q.Order("created_at DESC").
		Order("id DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&images).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list images failed: %w", err)
	}
	return images, total, nil
}

func (r *ImageRepository) GetByIDAndUserID(ctx context.Context, id, userID uint) (*model.Image, error) {
	var image model.Image
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get image failed: %w", err)
	}
	return &image, nil
}

// ToggleFavorite flips the favorite flag and returns the updated row, or nil
// when the user owns no such image.
func (r *ImageRepository) ToggleFavorite(ctx context.Context, id, userID uint) (*model.Image, error) {
	var image model.Image
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&image).Error; err != nil {
			return err
		}
		image.IsFavorite = !image.IsFavorite
		return tx.Model(&image).
			Where("user_id = ?", userID).
			Update("is_favorite", image.IsFavorite).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("toggle favorite failed: %w", err)
	}
	return &image, nil
}

// DeleteByIDAndUserID reports whether a row owned by userID was removed.
func (r *ImageRepository) DeleteByIDAndUserID(ctx context.Context, id, userID uint) (bool, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Image{})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return false, fmt.Errorf("delete image failed: %w", err)
	}
	return affected > 0, nil
}

func (r *ImageRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Image{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count user images failed: %w", err)
	}
	return count, nil
}

func (r *ImageRepository) CountFavoritesByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Image{}).
		Where("user_id = ? AND is_favorite = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count favorite images failed: %w", err)
	}
	return count, nil
}

func (r *ImageRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Image{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count images failed: %w", err)
	}
	return count, nil
}
