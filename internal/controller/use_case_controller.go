package controller

import (
	"errors"
	"math"
	"strconv"

	"usecase-catalog-be/internal/dto"
	"usecase-catalog-be/internal/pkg/apperror"
	"usecase-catalog-be/internal/pkg/serverutils"
	"usecase-catalog-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUseCaseController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Filters(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
}

type useCaseController struct {
	service     service.IUseCaseService
	writeGuards []fiber.Handler
}

// NewUseCaseController wires the catalog routes. writeGuards run before
// every mutating handler.
func NewUseCaseController(service service.IUseCaseService, writeGuards ...fiber.Handler) IUseCaseController {
	return &useCaseController{service: service, writeGuards: writeGuards}
}

func (c *useCaseController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/use-cases")
	h.Get("", c.List)
	h.Get("/filters", c.Filters)
	h.Get("/:id", c.Show)

	create := append(append([]fiber.Handler{}, c.writeGuards...), c.Create)
	h.Post("", create...)
}

func (c *useCaseController) List(ctx *fiber.Ctx) error {
	details := map[string]string{}

	page := parseIntQuery(ctx, "page", service.DefaultPage, details)
	limit := parseIntQuery(ctx, "limit", service.DefaultLimit, details)
	if len(details) > 0 {
		return apperror.Validation("Invalid query parameters", details)
	}

	req := dto.ListUseCasesRequest{
		Page:           page,
		Limit:          limit,
		Industry:       ctx.Query("industry"),
		ValueChainStep: ctx.Query("valueChainStep"),
		Department:     ctx.Query("department"),
		Search:         ctx.Query("search"),
	}

	res, err := c.service.List(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessPaginatedResponse("Success list use cases", res.UseCases, res.Pagination, res.Filters))
}

func (c *useCaseController) Filters(ctx *fiber.Ctx) error {
	res, err := c.service.Filters(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get use case filters", res))
}

func (c *useCaseController) Show(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if errors.Is(err, strconv.ErrRange) || id > math.MaxInt64 {
		// Well-formed but beyond the bigint key space.
		return apperror.NotFound("Use case not found")
	}
	if err != nil || id == 0 {
		return apperror.Validation("Invalid use case id", map[string]string{"id": "must be a positive integer"})
	}

	res, err := c.service.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show use case", res))
}

func (c *useCaseController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateUseCaseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body", map[string]string{"body": "must be a valid JSON object"})
	}

	res, err := c.service.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create use case", res))
}

// parseIntQuery reads an integer query parameter, recording a detail when it
// is present but not an integer.
func parseIntQuery(ctx *fiber.Ctx, key string, fallback int, details map[string]string) int {
	raw := ctx.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		details[key] = "must be an integer"
		return fallback
	}
	return value
}
