package model

import "time"

const (
	DefaultStyle       = "default"
	DefaultAspectRatio = "1:1"
)

// Image is the metadata of a generated image. Only the provider URL is kept,
// never the pixels.
type Image struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:idx_images_user_created,priority:1" json:"-"`
	User        *User     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Prompt      string    `gorm:"type:text;not null" json:"prompt"`
	ImageURL    string    `gorm:"column:image_url;size:500;not null" json:"url"`
	Style       string    `gorm:"size:50;default:default" json:"style"`
	AspectRatio string    `gorm:"size:20;default:1:1" json:"aspect_ratio"`
	CreatedAt   time.Time `gorm:"index:idx_images_user_created,priority:2" json:"created_at"`
	IsFavorite  bool      `gorm:"not null;default:false" json:"is_favorite"`
}
