package controller

import (
	"site-gallery-be/internal/pkg/serverutils"
	"site-gallery-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISiteController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type siteController struct {
	service service.ISiteService
}

func NewSiteController(service service.ISiteService) ISiteController {
	return &siteController{service: service}
}

func (c *siteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sites/v1")
	h.Get("", c.GetAll)
	h.Get(":site", c.Show)
}

func (c *siteController) GetAll(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get all sites", c.service.List()))
}

func (c *siteController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Get(ctx.Params("site"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show site", res))
}
