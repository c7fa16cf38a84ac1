package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"dodo-storefront-demo/internal/service"
)

type UserHandler struct {
	storefrontService service.StorefrontService
}

func NewUserHandler(storefrontService service.StorefrontService) *UserHandler {
	return &UserHandler{
		storefrontService: storefrontService,
	}
}

// GetUserAccess returns the entitlement view as JSON. Unknown emails get an
// empty view, not a 404.
func (h *UserHandler) GetUserAccess(c echo.Context) error {
	ctx := c.Request().Context()

	email := c.Param("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing email")
	}
	// echo leaves path params percent-encoded
	if decoded, err := url.PathUnescape(email); err == nil {
		email = decoded
	}

	view, err := h.storefrontService.GetEntitlement(ctx, email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view)
}
