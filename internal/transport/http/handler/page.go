package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"artifai/internal/app"
	"artifai/internal/logging"
	"artifai/internal/transport/http/middleware"
)

const homeSampleCount = 6

type PageHandler struct {
	imageService *app.ImageService
	authService  *app.AuthService
}

func NewPageHandler(imageService *app.ImageService, authService *app.AuthService) *PageHandler {
	return &PageHandler{imageService: imageService, authService: authService}
}

func (h *PageHandler) Home(c *gin.Context) {
	render(c, http.StatusOK, "index.tmpl", gin.H{
		"Samples": app.SampleImages(homeSampleCount),
	})
}

func (h *PageHandler) Generator(c *gin.Context) {
	render(c, http.StatusOK, "generator.tmpl", gin.H{
		"Styles":       []string{"default", "abstract", "realistic", "anime", "painterly", "3d", "minimalist"},
		"AspectRatios": []string{"1:1", "16:9", "9:16"},
	})
}

func (h *PageHandler) Gallery(c *gin.Context) {
	render(c, http.StatusOK, "gallery.tmpl", nil)
}

func (h *PageHandler) Profile(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	user, err := h.authService.CurrentUser(c.Request.Context(), userID)
	if errors.Is(err, app.ErrUnauthenticated) {
		c.Redirect(http.StatusFound, "/logout")
		return
	}
	if err != nil {
		logging.FromContext(c.Request.Context()).Error().Err(err).Msg("load profile user failed")
		h.InternalError(c)
		return
	}

	stats, err := h.imageService.Stats(c.Request.Context(), userID)
	if err != nil {
		logging.FromContext(c.Request.Context()).Error().Err(err).Msg("load profile stats failed")
		h.InternalError(c)
		return
	}
	render(c, http.StatusOK, "profile.tmpl", gin.H{
		"Email":         user.Email,
		"MemberSince":   user.CreatedAt.Format("January 2, 2006"),
		"ImageCount":    stats.ImageCount,
		"FavoriteCount": stats.FavoriteCount,
	})
}

func (h *PageHandler) NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "index.tmpl", gin.H{
		"Samples": app.SampleImages(homeSampleCount),
	})
}

func (h *PageHandler) InternalError(c *gin.Context) {
	render(c, http.StatusInternalServerError, "index.tmpl", gin.H{
		"Samples": app.SampleImages(homeSampleCount),
	})
}

// render adds the signed-in username to every page.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if username, ok := c.Get(middleware.ContextUsernameKey); ok {
		data["Username"] = username
	}
	c.HTML(status, name, data)
}
