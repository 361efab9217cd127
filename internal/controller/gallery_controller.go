package controller

import (
	"site-gallery-be/internal/dto"
	"site-gallery-be/internal/entity"
	"site-gallery-be/internal/pkg/logger"
	"site-gallery-be/internal/pkg/serverutils"
	"site-gallery-be/internal/service"
	internalWS "site-gallery-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IGalleryController interface {
	RegisterRoutes(r fiber.Router)
	Load(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	CopyPrompt(ctx *fiber.Ctx) error
	ServeWs(ctx *fiber.Ctx) error
}

type galleryController struct {
	gallery   service.IGalleryService
	sessions  service.ISessionService
	sites     service.ISiteService
	hub       *internalWS.Hub
	logger    logger.ILogger
	jwtSecret string
}

func NewGalleryController(
	gallery service.IGalleryService,
	sessions service.ISessionService,
	sites service.ISiteService,
	hub *internalWS.Hub,
	log logger.ILogger,
	jwtSecret string,
) IGalleryController {
	return &galleryController{
		gallery:   gallery,
		sessions:  sessions,
		sites:     sites,
		hub:       hub,
		logger:    log,
		jwtSecret: jwtSecret,
	}
}

func (c *galleryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/gallery/v1")
	h.Use(serverutils.OptionalJwtMiddleware(c.jwtSecret))
	h.Get(":site/ws", c.ServeWs)
	h.Get(":site", c.Load)
	h.Post(":site/:slot", c.Upload)
	h.Get(":site/:slot/prompt", c.CopyPrompt)
}

func (c *galleryController) Load(ctx *fiber.Ctx) error {
	res, err := c.gallery.Load(ctx.UserContext(), ctx.Params("site"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success load gallery", res))
}

func (c *galleryController) Upload(ctx *fiber.Ctx) error {
	session := c.sessions.Resolve(ctx.UserContext(), serverutils.UserId(ctx))
	if !session.IsAdmin() {
		return entity.ErrForbidden
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		return entity.ErrEmptyFile
	}
	file, err := header.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	res, err := c.gallery.Upload(ctx.UserContext(), session, ctx.Params("site"), ctx.Params("slot"), &dto.UploadFile{
		Filename: header.Filename,
		Size:     header.Size,
		Body:     file,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success upload image", res))
}

func (c *galleryController) CopyPrompt(ctx *fiber.Ctx) error {
	res, err := c.gallery.CopyPrompt(ctx.Params("site"), ctx.Params("slot"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get prompt", res))
}

// ServeWs streams slot replacements for one site. Anonymous visitors may
// watch; the token, if any, is only used for logging.
func (c *galleryController) ServeWs(ctx *fiber.Ctx) error {
	site, err := c.sites.Get(ctx.Params("site"))
	if err != nil {
		return err
	}
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	userId := serverutils.UserId(ctx)
	return websocket.New(func(conn *websocket.Conn) {
		c.logger.Info("GalleryController", "Starting WebSocket session", map[string]interface{}{"site": site.Slug, "user_id": userId})
		internalWS.ServeWs(c.hub, conn, site.Slug, userId)
		c.logger.Info("GalleryController", "WebSocket session ended", map[string]interface{}{"site": site.Slug, "user_id": userId})
	})(ctx)
}
