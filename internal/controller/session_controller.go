package controller

import (
	"site-gallery-be/internal/pkg/serverutils"
	"site-gallery-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

type sessionController struct {
	service   service.ISessionService
	jwtSecret string
}

func NewSessionController(service service.ISessionService, jwtSecret string) ISessionController {
	return &sessionController{service: service, jwtSecret: jwtSecret}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Use(serverutils.OptionalJwtMiddleware(c.jwtSecret))
	h.Get("", c.Show)
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	res := c.service.Describe(ctx.UserContext(), serverutils.UserId(ctx))
	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}
