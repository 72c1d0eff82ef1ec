package controllers

import (
	"time"

	"github.com/shashiranjanraj/staybook/app/services"
	"github.com/shashiranjanraj/staybook/pkg/auth"
	"github.com/shashiranjanraj/staybook/pkg/ctx"
)

type AuthController struct {
	auth         *services.AuthService
	secureCookie bool
}

func NewAuthController(svc *services.AuthService, secureCookie bool) *AuthController {
	return &AuthController{auth: svc, secureCookie: secureCookie}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login issues a session token and sets it as the session cookie.
func (ac *AuthController) Login(c *ctx.Context) {
	var req loginRequest
	if !c.BindJSON(&req) {
		return
	}

	sess, err := ac.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.SetCookie(auth.CookieName, sess.Token, time.Until(sess.ExpiresAt), ac.secureCookie)
	c.Success(sess)
}

// Logout clears the session cookie.
func (ac *AuthController) Logout(c *ctx.Context) {
	c.SetCookie(auth.CookieName, "", 0, ac.secureCookie)
	c.NoContent()
}
