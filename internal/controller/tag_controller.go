package controller

import (
	"errors"

	"ai-tagging-be/internal/dto"
	"ai-tagging-be/internal/pkg/serverutils"
	"ai-tagging-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITagController interface {
	RegisterRoutes(r fiber.Router)
	SuggestTags(ctx *fiber.Ctx) error
	GetTopics(ctx *fiber.Ctx) error
}

type tagController struct {
	tagService service.ITagService
}

func NewTagController(tagService service.ITagService) ITagController {
	return &tagController{tagService: tagService}
}

func (c *tagController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/v1")
	h.Post("/suggest-tags", c.SuggestTags)
	h.Get("/topics", c.GetTopics)
}

func (c *tagController) SuggestTags(ctx *fiber.Ctx) error {
	var req dto.SuggestTagsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("Invalid JSON payload")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.tagService.SuggestTags(ctx.UserContext(), &req)
	if err != nil {
		if errors.Is(err, service.ErrClassifierUnavailable) {
			return serverutils.NewServiceUnavailableError("Classifier service is unavailable")
		}
		return err
	}

	return ctx.JSON(res)
}

func (c *tagController) GetTopics(ctx *fiber.Ctx) error {
	return ctx.JSON(c.tagService.Topics())
}
