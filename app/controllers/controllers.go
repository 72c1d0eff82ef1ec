// Package controllers adapts HTTP requests to the services layer and maps
// service errors onto the JSON envelope.
package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/staybook/app/services"
	"github.com/shashiranjanraj/staybook/pkg/ctx"
)

// fail writes the response for a service error.
func fail(c *ctx.Context, err error) {
	var de *services.DateError
	switch {
	case errors.As(err, &de):
		c.ValidationError(map[string]string{de.Field: "The " + de.Field + " must be a valid date."})
	case errors.Is(err, services.ErrInvalidDateRange):
		c.ValidationError(map[string]string{"check_out": "The check_out must be after check_in."})
	case errors.Is(err, services.ErrStayTooLong):
		c.ValidationError(map[string]string{"check_out": fmt.Sprintf("The stay may not exceed %d nights.", services.MaxNights)})
	case errors.Is(err, services.ErrInvalidRate):
		c.ValidationError(map[string]string{"price_per_night": "The price_per_night must be greater than 0."})
	case errors.Is(err, services.ErrInvalidImage):
		c.ValidationError(map[string]string{"image": services.ErrInvalidImage.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.NotFound()
	case errors.Is(err, services.ErrForbidden):
		c.Forbidden()
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Error(http.StatusUnauthorized, err.Error())
	default:
		c.ServerError(err)
	}
}
