package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"artifai/internal/ai"
	"artifai/internal/app"
	"artifai/internal/logging"
	"artifai/internal/transport/http/middleware"
	"artifai/internal/transport/http/response"
)

var aspectRatioSizes = map[string]string{
	"1:1":  ai.SizeSquare,
	"16:9": ai.SizeWide,
	"9:16": ai.SizeTall,
}

// ImageSizeFor maps an aspect ratio to a provider size. Unknown ratios get
// the square size.
func ImageSizeFor(aspectRatio string) string {
	if size, ok := aspectRatioSizes[aspectRatio]; ok {
		return size
	}
	return ai.SizeSquare
}

type ImageHandler struct {
	imageService *app.ImageService
}

type GenerateImageRequest struct {
	Prompt      string `json:"prompt"`
	Style       string `json:"style"`
	AspectRatio string `json:"aspectRatio"`
}

func NewImageHandler(imageService *app.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

func (h *ImageHandler) Generate(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, app.ErrPromptRequired.Error())
		return
	}

	image, err := h.imageService.Generate(c.Request.Context(), app.GenerateInput{
		UserID:      userID,
		Prompt:      req.Prompt,
		Style:       req.Style,
		AspectRatio: req.AspectRatio,
		Size:        ImageSizeFor(req.AspectRatio),
	})
	if err != nil {
		var genErr *app.GenerationError
		switch {
		case errors.Is(err, app.ErrPromptRequired):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.As(err, &genErr):
			response.Error(c, http.StatusInternalServerError, genErr.Message)
		default:
			logging.FromContext(c.Request.Context()).Error().Err(err).Msg("save generated image failed")
			response.Error(c, http.StatusInternalServerError, "failed to save image")
		}
		return
	}

	response.OK(c, gin.H{"image": image})
}

func (h *ImageHandler) List(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "12"))

	result, err := h.imageService.List(c.Request.Context(), userID, page, perPage)
	if err != nil {
		logging.FromContext(c.Request.Context()).Error().Err(err).Msg("list images failed")
		response.Error(c, http.StatusInternalServerError, "failed to load images")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ImageHandler) ToggleFavorite(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	imageID, ok := imageIDParam(c)
	if !ok {
		response.Error(c, http.StatusNotFound, app.ErrImageNotFound.Error())
		return
	}

	image, err := h.imageService.ToggleFavorite(c.Request.Context(), userID, imageID)
	if err != nil {
		h.writeLookupError(c, err, "toggle favorite failed")
		return
	}
	response.OK(c, gin.H{"is_favorite": image.IsFavorite})
}

func (h *ImageHandler) Delete(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	imageID, ok := imageIDParam(c)
	if !ok {
		response.Error(c, http.StatusNotFound, app.ErrImageNotFound.Error())
		return
	}

	if err := h.imageService.Delete(c.Request.Context(), userID, imageID); err != nil {
		h.writeLookupError(c, err, "delete image failed")
		return
	}
	response.OK(c, nil)
}

func (h *ImageHandler) writeLookupError(c *gin.Context, err error, msg string) {
	if errors.Is(err, app.ErrImageNotFound) {
		response.Error(c, http.StatusNotFound, err.Error())
		return
	}
	logging.FromContext(c.Request.Context()).Error().Err(err).Msg(msg)
	response.Error(c, http.StatusInternalServerError, "internal error")
}

func imageIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
