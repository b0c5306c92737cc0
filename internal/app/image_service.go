package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"artifai/internal/logging"
	"artifai/internal/model"
	"artifai/internal/repository"
)

const (
	defaultPerPage = 12
	maxPerPage     = 100
)

var (
	ErrPromptRequired   = errors.New("Prompt is required")
	ErrImageNotFound    = errors.New("Image not found")
	ErrGenerationFailed = errors.New("image generation failed")
)

// GenerationError carries the provider's message back to the caller.
type GenerationError struct {
	Message string
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

const (
	ImageCreated = "image.created"
	ImageDeleted = "image.deleted"
)

type ImageEvent struct {
	Event       string    `json:"event"`
	ImageID     uint      `json:"image_id"`
	UserID      uint      `json:"user_id"`
	Style       string    `json:"style,omitempty"`
	AspectRatio string    `json:"aspect_ratio,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// ImageEventPublisher is optional; a nil publisher disables events.
type ImageEventPublisher interface {
	Publish(ctx context.Context, event ImageEvent) error
}

type ImageService struct {
	imageRepo *repository.ImageRepository
	generator *ImageGenerator
	events    ImageEventPublisher
}

type GenerateInput struct {
	UserID      uint
	Prompt      string
	Style       string
	AspectRatio string
	Size        string
}

type ImagePage struct {
	Images []model.Image `json:"images"`
	Total  int64         `json:"total"`
	Pages  int           `json:"pages"`
	Page   int           `json:"page"`
}

type ImageStats struct {
	ImageCount    int64
	FavoriteCount int64
}

func NewImageService(imageRepo *repository.ImageRepository, generator *ImageGenerator, events ImageEventPublisher) *ImageService {
	return &ImageService{
		imageRepo: imageRepo,
		generator: generator,
		events:    events,
	}
}

// Generate calls the provider and stores the result with the prompt as
// submitted. Nothing is stored when the prompt is blank or the provider fails.
func (s *ImageService) Generate(ctx context.Context, input GenerateInput) (*model.Image, error) {
	prompt := input.Prompt
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrPromptRequired
	}
	style := input.Style
	if style == "" {
		style = model.DefaultStyle
	}
	aspectRatio := input.AspectRatio
	if aspectRatio == "" {
		aspectRatio = model.DefaultAspectRatio
	}

	result := s.generator.Generate(ctx, prompt, style, input.Size)
	if !result.Success {
		return nil, &GenerationError{Message: result.Error}
	}

	image := &model.Image{
		UserID:      input.UserID,
		Prompt:      prompt,
		ImageURL:    result.URL,
		Style:       style,
		AspectRatio: aspectRatio,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		return nil, err
	}

	s.publish(ctx, ImageEvent{
		Event:       ImageCreated,
		ImageID:     image.ID,
		UserID:      image.UserID,
		Style:       image.Style,
		AspectRatio: image.AspectRatio,
		OccurredAt:  image.CreatedAt,
	})
	return image, nil
}

func (s *ImageService) List(ctx context.Context, userID uint, page, perPage int) (*ImagePage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	images, total, err := s.imageRepo.ListByUserID(ctx, userID, page, perPage)
	if err != nil {
		return nil, err
	}
	if images == nil {
		images = []model.Image{}
	}
	return &ImagePage{
		Images: images,
		Total:  total,
		Pages:  int((total + int64(perPage) - 1) / int64(perPage)),
		Page:   page,
	}, nil
}

func (s *ImageService) ToggleFavorite(ctx context.Context, userID, imageID uint) (*model.Image, error) {
	image, err := s.imageRepo.ToggleFavorite(ctx, imageID, userID)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrImageNotFound
	}
	return image, nil
}

func (s *ImageService) Delete(ctx context.Context, userID, imageID uint) error {
	image, err := s.imageRepo.GetByIDAndUserID(ctx, imageID, userID)
	if err != nil {
		return err
	}
	if image == nil {
		return ErrImageNotFound
	}

	deleted, err := s.imageRepo.DeleteByIDAndUserID(ctx, imageID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrImageNotFound
	}

	s.publish(ctx, ImageEvent{
		Event:       ImageDeleted,
		ImageID:     image.ID,
		UserID:      image.UserID,
		Style:       image.Style,
		AspectRatio: image.AspectRatio,
		OccurredAt:  time.Now().UTC(),
	})
	return nil
}

func (s *ImageService) Stats(ctx context.Context, userID uint) (*ImageStats, error) {
	total, err := s.imageRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	favorites, err := s.imageRepo.CountFavoritesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ImageStats{ImageCount: total, FavoriteCount: favorites}, nil
}

func (s *ImageService) publish(ctx context.Context, event ImageEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		logging.FromContext(ctx).Warn().Err(err).
			Str("event", event.Event).
			Uint("image_id", event.ImageID).
			Msg("publish image event failed")
	}
}
