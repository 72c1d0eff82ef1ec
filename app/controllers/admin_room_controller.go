package controllers

import (
	"errors"
	"net/http"

	"github.com/spf13/cast"

	"github.com/shashiranjanraj/staybook/app/models"
	"github.com/shashiranjanraj/staybook/app/repositories"
	"github.com/shashiranjanraj/staybook/app/services"
	"github.com/shashiranjanraj/staybook/pkg/bind"
	"github.com/shashiranjanraj/staybook/pkg/ctx"
)

// URLBuilder resolves named routes.
type URLBuilder interface {
	URL(name string, params map[string]string) (string, error)
}

type AdminRoomController struct {
	rooms *services.RoomService
	urls  URLBuilder
}

func NewAdminRoomController(rooms *services.RoomService, urls URLBuilder) *AdminRoomController {
	return &AdminRoomController{rooms: rooms, urls: urls}
}

func (ac *AdminRoomController) Index(c *ctx.Context) {
	rooms, err := ac.rooms.List(c.Context(), repositories.RoomFilter{})
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(rooms)
}

type roomForm struct {
	Name          string `form:"name"            validate:"required,max=255"`
	Description   string `form:"description"     validate:"max=5000"`
	PricePerNight string `form:"price_per_night" validate:"required"`
	Category      string `form:"category"        validate:"required,oneof=Standard Suite Luxury"`
	Capacity      int    `form:"capacity"        validate:"min=1,max=20"`
}

// Store creates a room from a multipart form with a required image.
func (ac *AdminRoomController) Store(c *ctx.Context) {
	if !c.BindMultipart() {
		return
	}

	form := roomForm{
		Name:          c.R.FormValue("name"),
		Description:   c.R.FormValue("description"),
		PricePerNight: c.R.FormValue("price_per_night"),
		Category:      c.R.FormValue("category"),
		Capacity:      cast.ToInt(c.R.FormValue("capacity")),
	}
	if !c.Validate(form) {
		return
	}

	price, err := models.ParseMoney(form.PricePerNight)
	if err != nil || price <= 0 {
		c.ValidationError(map[string]string{"price_per_night": "The price_per_night must be a positive amount."})
		return
	}

	file, header, err := c.R.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		c.ValidationError(map[string]string{"image": "The image field is required."})
		return
	}
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return
	}
	defer file.Close()

	room, err := ac.rooms.Add(c.Context(), services.NewRoom{
		Name:          form.Name,
		Description:   form.Description,
		PricePerNight: price,
		Category:      models.Category(form.Category),
		Capacity:      form.Capacity,
		IsFeatured:    bind.FormBool(c.R, "is_featured"),
	}, services.Upload{Filename: header.Filename, Size: header.Size, Body: file})
	if err != nil {
		fail(c, err)
		return
	}

	location, err := ac.urls.URL("rooms.show", map[string]string{"id": room.ID})
	if err != nil {
		c.Created(room)
		return
	}
	c.CreatedAt(location, room)
}

func (ac *AdminRoomController) Destroy(c *ctx.Context) {
	if err := ac.rooms.Delete(c.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.NoContent()
}
