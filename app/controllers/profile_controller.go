package controllers

import (
	"github.com/shashiranjanraj/staybook/app/services"
	"github.com/shashiranjanraj/staybook/pkg/ctx"
)

type ProfileController struct {
	profiles *services.ProfileService
}

func NewProfileController(profiles *services.ProfileService) *ProfileController {
	return &ProfileController{profiles: profiles}
}

func (pc *ProfileController) Show(c *ctx.Context) {
	user, _ := c.User()
	view, err := pc.profiles.Show(c.Context(), user)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(view)
}
