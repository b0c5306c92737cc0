package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artifai/internal/ai"
	"artifai/internal/app"
	"artifai/internal/model"
	"artifai/internal/repository"
)

type imageFixture struct {
	svc       *app.ImageService
	images    *repository.ImageRepository
	fake      *ai.FakeImageClient
	publisher *recordingPublisher
	alice     *model.User
	bob       *model.User
}

func newImageFixture(t *testing.T) *imageFixture {
	t.Helper()
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	images := repository.NewImageRepository(db)

	alice := &model.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h"}
	bob := &model.User{Username: "bob", Email: "bob@example.com", PasswordHash: "h"}
	require.NoError(t, users.Create(context.Background(), alice))
	require.NoError(t, users.Create(context.Background(), bob))

	fake := ai.NewFakeImageClient()
	publisher := &recordingPublisher{}
	return &imageFixture{
		svc:       app.NewImageService(images, app.NewImageGenerator(fake), publisher),
		images:    images,
		fake:      fake,
		publisher: publisher,
		alice:     alice,
		bob:       bob,
	}
}

func TestApplyStyle(t *testing.T) {
	assert.Equal(t, "Create an anime-style illustration with vibrant colors: a cat", app.ApplyStyle("a cat", "anime"))
	assert.Equal(t, "Create a 3D rendered image with strong lighting and textures: a cat", app.ApplyStyle("a cat", "3d"))
	assert.Equal(t, "a cat", app.ApplyStyle("a cat", "default"))
	assert.Equal(t, "a cat", app.ApplyStyle("a cat", "vaporwave"))
	assert.Equal(t, "a cat", app.ApplyStyle("a cat", ""))
}

func TestImageGenerator_FailureBecomesResult(t *testing.T) {
	fake := ai.NewFakeImageClient()
	fake.FailWith(errors.New("billing hard limit reached"))

	result := app.NewImageGenerator(fake).Generate(context.Background(), "a cat", "anime", ai.SizeSquare)
	assert.False(t, result.Success)
	assert.Equal(t, "billing hard limit reached", result.Error)
	assert.Len(t, fake.Requests(), 1)
}

func TestImageService_GenerateStoresRecord(t *testing.T) {
	f := newImageFixture(t)
	ctx := context.Background()

	image, err := f.svc.Generate(ctx, app.GenerateInput{
		UserID:      f.alice.ID,
		Prompt:      "a cat",
		Style:       "realistic",
		AspectRatio: "16:9",
		Size:        ai.SizeWide,
	})
	require.NoError(t, err)
	assert.Equal(t, "a cat", image.Prompt)
	assert.Equal(t, "realistic", image.Style)
	assert.Equal(t, "16:9", image.AspectRatio)
	assert.NotZero(t, image.ID)

	reqs := f.fake.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, ai.SizeWide, reqs[0].Size)
	assert.Equal(t, "Create a photorealistic image with intricate details: a cat", reqs[0].Prompt)

	events := f.publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, app.ImageCreated, events[0].Event)
	assert.Equal(t, image.ID, events[0].ImageID)
}

func TestImageService_GenerateDefaults(t *testing.T) {
	f := newImageFixture(t)

	image, err := f.svc.Generate(context.Background(), app.GenerateInput{UserID: f.alice.ID, Prompt: "a dog", Size: ai.SizeSquare})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultStyle, image.Style)
	assert.Equal(t, model.DefaultAspectRatio, image.AspectRatio)
}

func TestImageService_GenerateEmptyPrompt(t *testing.T) {
	f := newImageFixture(t)
	ctx := context.Background()

	_, err := f.svc.Generate(ctx, app.GenerateInput{UserID: f.alice.ID, Prompt: "   ", Size: ai.SizeSquare})
	assert.ErrorIs(t, err, app.ErrPromptRequired)
	assert.Empty(t, f.fake.Requests())

	count, err := f.images.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestImageService_GenerateProviderFailure(t *testing.T) {
	f := newImageFixture(t)
	ctx := context.Background()
	f.fake.FailWith(errors.New("rate limit exceeded"))

	_, err := f.svc.Generate(ctx, app.GenerateInput{UserID: f.alice.ID, Prompt: "a cat", Size: ai.SizeSquare})
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrGenerationFailed)
	assert.Equal(t, "rate limit exceeded", err.Error())

	count, err := f.images.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, f.publisher.Events())
}

func TestImageService_PublishFailureDoesNotFailGenerate(t *testing.T) {
	f := newImageFixture(t)
	f.publisher.err = errors.New("broker down")

	_, err := f.svc.Generate(context.Background(), app.GenerateInput{UserID: f.alice.ID, Prompt: "a cat", Size: ai.SizeSquare})
	assert.NoError(t, err)
}

func TestImageService_ListPagination(t *testing.T) {
	f := newImageFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := f.svc.Generate(ctx, app.GenerateInput{UserID: f.alice.ID, Prompt: "p", Size: ai.SizeSquare})
		require.NoError(t, err)
	}
	_, err := f.svc.Generate(ctx, app.GenerateInput{UserID: f.bob.ID, Prompt: "bob's", Size: ai.SizeSquare})
	require.NoError(t, err)

	page, err := f.svc.List(ctx, f.alice.ID, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Total)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Images, 2)

	last, err := f.svc.List(ctx, f.alice.ID, 3, 2)
	require.NoError(t, err)
	assert.Len(t, last.Images, 1)

	beyond, err := f.svc.List(ctx, f.alice.ID, 9, 2)
	require.NoError(t, err)
	assert.NotNil(t, beyond.Images)
	assert.Empty(t, beyond.Images)

	clamped, err := f.svc.List(ctx, f.alice.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, clamped.Page)
	assert.Len(t, clamped.Images, 5)
	assert.Equal(t, 1, clamped.Pages)
}

func TestImageService_FavoriteAndDeleteOwnership(t *testing.T) {
	f := newImageFixture(t)
	ctx := context.Background()

	image, err := f.svc.Generate(ctx, app.GenerateInput{UserID: f.alice.ID, Prompt: "p", Size: ai.SizeSquare})
	require.NoError(t, err)

	_, err = f.svc.ToggleFavorite(ctx, f.bob.ID, image.ID)
	assert.ErrorIs(t, err, app.ErrImageNotFound)

	toggled, err := f.svc.ToggleFavorite(ctx, f.alice.ID, image.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsFavorite)

	stats, err := f.svc.Stats(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.ImageCount)
	assert.EqualValues(t, 1, stats.FavoriteCount)

	assert.ErrorIs(t, f.svc.Delete(ctx, f.bob.ID, image.ID), app.ErrImageNotFound)
	require.NoError(t, f.svc.Delete(ctx, f.alice.ID, image.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, f.alice.ID, image.ID), app.ErrImageNotFound)

	events := f.publisher.Events()
	require.Len(t, events, 2)
	assert.Equal(t, app.ImageDeleted, events[1].Event)
	assert.Equal(t, image.ID, events[1].ImageID)
	assert.Equal(t, f.alice.ID, events[1].UserID)
	assert.Equal(t, model.DefaultStyle, events[1].Style)
	assert.Equal(t, model.DefaultAspectRatio, events[1].AspectRatio)
}

func TestImageService_KeepsPromptAsSubmitted(t *testing.T) {
	f := newImageFixture(t)

	image, err := f.svc.Generate(context.Background(), app.GenerateInput{UserID: f.alice.ID, Prompt: "  a cat\n", Size: ai.SizeSquare})
	require.NoError(t, err)
	assert.Equal(t, "  a cat\n", image.Prompt)
	assert.Equal(t, "  a cat\n", f.fake.Requests()[0].Prompt)
}
