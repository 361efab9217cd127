package controller

import (
	"site-gallery-be/internal/catalog"
	"site-gallery-be/internal/dto"
	"site-gallery-be/internal/entity"
	"site-gallery-be/internal/pkg/serverutils"
	"site-gallery-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFormController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type formController struct {
	service service.IFormService
}

func NewFormController(service service.IFormService) IFormController {
	return &formController{service: service}
}

func (c *formController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/forms/v1")
	h.Get("submissions/:id", c.Status)
	h.Post(":site/:kind", c.Submit)
}

func newFormRequest(kind string) (interface{}, bool) {
	switch kind {
	case catalog.FormNewsletter:
		return &dto.NewsletterRequest{}, true
	case catalog.FormReservation:
		return &dto.ReservationRequest{}, true
	case catalog.FormContact:
		return &dto.ContactRequest{}, true
	case catalog.FormBooking:
		return &dto.BookingRequest{}, true
	default:
		return nil, false
	}
}

func (c *formController) Submit(ctx *fiber.Ctx) error {
	kind := ctx.Params("kind")
	req, ok := newFormRequest(kind)
	if !ok {
		return entity.ErrFormNotAccepted
	}

	if err := ctx.BodyParser(req); err != nil {
		return entity.ErrMalformedBody
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Submit(ctx.UserContext(), ctx.Params("site"), kind, req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Submission received", res))
}

func (c *formController) Status(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid submission id")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get submission", c.service.Status(ctx.UserContext(), id)))
}
