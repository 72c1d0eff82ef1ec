package controllers

import (
	"github.com/spf13/cast"

	"github.com/shashiranjanraj/staybook/app/models"
	"github.com/shashiranjanraj/staybook/app/repositories"
	"github.com/shashiranjanraj/staybook/app/services"
	"github.com/shashiranjanraj/staybook/pkg/ctx"
)

type RoomController struct {
	rooms    *services.RoomService
	bookings *services.BookingService
}

func NewRoomController(rooms *services.RoomService, bookings *services.BookingService) *RoomController {
	return &RoomController{rooms: rooms, bookings: bookings}
}

// Index lists rooms, optionally filtered by category, featured and
// min_capacity.
func (rc *RoomController) Index(c *ctx.Context) {
	var f repositories.RoomFilter

	if raw := c.Query("category"); raw != "" {
		cat, err := models.ParseCategory(raw)
		if err != nil {
			c.ValidationError(map[string]string{"category": "The category must be one of: Standard, Suite, Luxury."})
			return
		}
		f.Category = cat
	}
	if raw := c.Query("featured"); raw != "" {
		featured, err := cast.ToBoolE(raw)
		if err != nil {
			c.ValidationError(map[string]string{"featured": "The featured field must be true or false."})
			return
		}
		f.Featured = &featured
	}
	if raw := c.Query("min_capacity"); raw != "" {
		n, err := cast.ToIntE(raw)
		if err != nil || n < 0 {
			c.ValidationError(map[string]string{"min_capacity": "The min_capacity must be a non-negative integer."})
			return
		}
		f.MinCapacity = n
	}

	rooms, err := rc.rooms.List(c.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(rooms)
}

func (rc *RoomController) Featured(c *ctx.Context) {
	rooms, err := rc.rooms.Featured(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(rooms)
}

func (rc *RoomController) Show(c *ctx.Context) {
	room, err := rc.rooms.Get(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(room)
}

// Quote prices a stay without booking it.
func (rc *RoomController) Quote(c *ctx.Context) {
	q, err := rc.bookings.Quote(c.Context(), c.Param("id"), c.Query("check_in"), c.Query("check_out"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(q)
}
