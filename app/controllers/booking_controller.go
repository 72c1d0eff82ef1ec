package controllers

import (
	"github.com/shashiranjanraj/staybook/app/services"
	"github.com/shashiranjanraj/staybook/pkg/ctx"
)

type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

func (bc *BookingController) Index(c *ctx.Context) {
	user, _ := c.User()
	views, err := bc.bookings.ListMine(c.Context(), user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(views)
}

// Store books a room. Any total sent by the client is ignored.
func (bc *BookingController) Store(c *ctx.Context) {
	var in services.BookingInput
	if !c.BindJSON(&in) {
		return
	}

	user, _ := c.User()
	b, err := bc.bookings.Create(c.Context(), user.ID, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(b)
}

func (bc *BookingController) Destroy(c *ctx.Context) {
	user, _ := c.User()
	if err := bc.bookings.Cancel(c.Context(), user.ID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.NoContent()
}
