package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"artifai/internal/app"
	"artifai/internal/logging"
	"artifai/internal/transport/http/middleware"
)

const landingPath = "/generator"

type AuthHandler struct {
	authService *app.AuthService
	cookie      SessionCookie
}

type SessionCookie struct {
	Name   string
	Secure bool
}

type RegisterForm struct {
	Username string `form:"username" binding:"required,max=64"`
	Email    string `form:"email" binding:"required,email,max=120"`
	Password string `form:"password" binding:"required,max=128"`
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func NewAuthHandler(authService *app.AuthService, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	if h.redirectSignedIn(c) {
		return
	}
	data := gin.H{"Next": c.Query("next")}
	if c.Query("registered") != "" {
		data["Success"] = "Congratulations, you are now a registered user!"
	}
	render(c, http.StatusOK, "login.tmpl", data)
}

func (h *AuthHandler) Login(c *gin.Context) {
	if h.redirectSignedIn(c) {
		return
	}

	next := c.Query("next")
	if next == "" {
		next = c.PostForm("next")
	}

	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login.tmpl", gin.H{
			"Next":  next,
			"Error": "Please enter your username and password",
		})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), app.LoginInput{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		status := http.StatusUnauthorized
		message := app.ErrInvalidCredential.Error()
		if !errors.Is(err, app.ErrInvalidCredential) {
			logging.FromContext(c.Request.Context()).Error().Err(err).Msg("login failed")
			status = http.StatusInternalServerError
			message = "Login failed, please try again"
		}
		render(c, status, "login.tmpl", gin.H{
			"Next":  next,
			"Error": message,
		})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, result.Token, int(h.authService.SessionTTL().Seconds()), "/", "", h.cookie.Secure, true)
	c.Redirect(http.StatusFound, app.SafeNextPath(next, landingPath))
}

func (h *AuthHandler) RegisterPage(c *gin.Context) {
	if h.redirectSignedIn(c) {
		return
	}
	render(c, http.StatusOK, "register.tmpl", nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	if h.redirectSignedIn(c) {
		return
	}

	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "register.tmpl", gin.H{
			"Error": "Please provide a username, a valid email and a password",
			"Form":  form,
		})
		return
	}

	_, err := h.authService.Register(c.Request.Context(), app.RegisterInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		status := http.StatusBadRequest
		message := err.Error()
		switch {
		case errors.Is(err, app.ErrUsernameExists), errors.Is(err, app.ErrEmailExists):
			status = http.StatusConflict
		case errors.Is(err, app.ErrInvalidInput), errors.Is(err, app.ErrPasswordTooShort):
		default:
			logging.FromContext(c.Request.Context()).Error().Err(err).Msg("register failed")
			status = http.StatusInternalServerError
			message = "Registration failed, please try again"
		}
		render(c, status, "register.tmpl", gin.H{
			"Error": message,
			"Form":  form,
		})
		return
	}

	c.Redirect(http.StatusFound, "/login?registered=1")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if session, ok := middleware.Session(c); ok {
		if err := h.authService.Logout(c.Request.Context(), session); err != nil {
			logging.FromContext(c.Request.Context()).Warn().Err(err).Msg("revoke session failed")
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) redirectSignedIn(c *gin.Context) bool {
	if _, ok := middleware.UserID(c); ok {
		c.Redirect(http.StatusFound, landingPath)
		return true
	}
	return false
}
