package controller

import (
	"ai-tagging-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	tagService service.ITagService
}

func NewHealthController(tagService service.ITagService) IHealthController {
	return &healthController{tagService: tagService}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

// Health answers 200 in both states; the classifier state is in the body.
func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(c.tagService.Health())
}
