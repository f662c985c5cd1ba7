package handler

import (
	"go-bom-catalog/internal/model"
	"go-bom-catalog/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type FeedstockHandler struct {
	service service.FeedstockService
}

func NewFeedstockHandler(s service.FeedstockService) *FeedstockHandler {
	return &FeedstockHandler{service: s}
}

type FeedstockRequest struct {
	Code          string          `json:"code" validate:"required,max=30"`
	Name          string          `json:"name" validate:"required,max=100"`
	Stock         decimal.Decimal `json:"stock" validate:"dgte0"`
	UnitOfMeasure string          `json:"unitOfMeasure" validate:"required,max=4"`
}

// FeedstockProductItem embeds the consuming product's fields alongside the
// association's quantity.
type FeedstockProductItem struct {
	ID        int64           `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type FeedstockResponse struct {
	ID            int64                  `json:"id"`
	Code          string                 `json:"code"`
	Name          string                 `json:"name"`
	Stock         decimal.Decimal        `json:"stock"`
	UnitOfMeasure string                 `json:"unitOfMeasure"`
	Products      []FeedstockProductItem `json:"products"`
}

func toFeedstockResponse(f *model.Feedstock, usage []model.ProductFeedstock) FeedstockResponse {
	items := make([]FeedstockProductItem, 0, len(usage))
	for _, row := range usage {
		if row.Product == nil {
			continue
		}
		items = append(items, FeedstockProductItem{
			ID:        row.Product.ID,
			Code:      row.Product.Code,
			Name:      row.Product.Name,
			UnitPrice: row.Product.UnitPrice,
			Quantity:  row.Quantity,
		})
	}
	return FeedstockResponse{
		ID:            f.ID,
		Code:          f.Code,
		Name:          f.Name,
		Stock:         f.Stock,
		UnitOfMeasure: f.UnitOfMeasure,
		Products:      items,
	}
}

func (h *FeedstockHandler) List(c *fiber.Ctx) error {
	page, err := h.service.List(c.Context(), c.Query("q"), c.QueryInt("page", 0), c.QueryInt("size", 0))
	if err != nil {
		return respondError(c, err)
	}

	ids := make([]int64, 0, len(page.Items))
	for _, f := range page.Items {
		ids = append(ids, f.ID)
	}
	usage, err := h.service.Usage(c.Context(), ids)
	if err != nil {
		return respondError(c, err)
	}

	items := make([]FeedstockResponse, 0, len(page.Items))
	for i := range page.Items {
		f := &page.Items[i]
		items = append(items, toFeedstockResponse(f, usage[f.ID]))
	}

	return c.JSON(PagedResponse[FeedstockResponse]{
		Items: items,
		Total: page.Total,
		Page:  page.Page,
		Size:  page.Size,
	})
}

func (h *FeedstockHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid feedstock ID"})
	}

	f, err := h.service.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if f == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Feedstock not found"})
	}

	usage, err := h.service.Usage(c.Context(), []int64{id})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toFeedstockResponse(f, usage[id]))
}

func (h *FeedstockHandler) Create(c *fiber.Ctx) error {
	var req FeedstockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if validateBody(c, &req) {
		return nil
	}

	f, err := h.service.Create(c.Context(), service.FeedstockInput{
		Code:          req.Code,
		Name:          req.Name,
		Stock:         req.Stock,
		UnitOfMeasure: req.UnitOfMeasure,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(toFeedstockResponse(f, nil))
}

func (h *FeedstockHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid feedstock ID"})
	}

	var req FeedstockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if validateBody(c, &req) {
		return nil
	}

	f, err := h.service.Update(c.Context(), id, service.FeedstockInput{
		Code:          req.Code,
		Name:          req.Name,
		Stock:         req.Stock,
		UnitOfMeasure: req.UnitOfMeasure,
	})
	if err != nil {
		return respondError(c, err)
	}
	if f == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Feedstock not found"})
	}

	usage, err := h.service.Usage(c.Context(), []int64{id})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toFeedstockResponse(f, usage[id]))
}

func (h *FeedstockHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid feedstock ID"})
	}

	deleted, err := h.service.Delete(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if !deleted {
		return c.Status(404).JSON(fiber.Map{"error": "Feedstock not found"})
	}
	return c.SendStatus(204)
}
