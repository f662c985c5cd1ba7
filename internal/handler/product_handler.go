package handler

import (
	"go-bom-catalog/internal/model"
	"go-bom-catalog/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

type FeedstockQuantityRequest struct {
	FeedstockID int64           `json:"feedstockId" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"dgt0"`
}

type CreateProductRequest struct {
	Code       string                     `json:"code" validate:"required,max=30"`
	Name       string                     `json:"name" validate:"required,max=100"`
	UnitPrice  decimal.Decimal            `json:"unitPrice" validate:"dgte0"`
	Feedstocks []FeedstockQuantityRequest `json:"feedstocks" validate:"required,min=1,dive"`
}

// UpdateProductRequest carries scalar fields only; the association set is not
// replaceable through update.
type UpdateProductRequest struct {
	Code      string          `json:"code" validate:"required,max=30"`
	Name      string          `json:"name" validate:"required,max=100"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"dgte0"`
}

// ProductFeedstockItem embeds the consumed feedstock's fields alongside the
// association's quantity.
type ProductFeedstockItem struct {
	ID       int64           `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Stock    decimal.Decimal `json:"stock"`
	Quantity decimal.Decimal `json:"quantity"`
}

type ProductResponse struct {
	ID         int64                  `json:"id"`
	Code       string                 `json:"code"`
	Name       string                 `json:"name"`
	UnitPrice  decimal.Decimal        `json:"unitPrice"`
	Feedstocks []ProductFeedstockItem `json:"feedstocks"`
}

func toProductResponse(p *model.Product) ProductResponse {
	items := make([]ProductFeedstockItem, 0, len(p.Feedstocks))
	for _, row := range p.Feedstocks {
		if row.Feedstock == nil {
			continue
		}
		items = append(items, ProductFeedstockItem{
			ID:       row.Feedstock.ID,
			Code:     row.Feedstock.Code,
			Name:     row.Feedstock.Name,
			Stock:    row.Feedstock.Stock,
			Quantity: row.Quantity,
		})
	}
	return ProductResponse{
		ID:         p.ID,
		Code:       p.Code,
		Name:       p.Name,
		UnitPrice:  p.UnitPrice,
		Feedstocks: items,
	}
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	page, err := h.service.List(c.Context(), c.Query("q"), c.QueryInt("page", 0), c.QueryInt("size", 0))
	if err != nil {
		return respondError(c, err)
	}

	items := make([]ProductResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toProductResponse(&page.Items[i]))
	}

	return c.JSON(PagedResponse[ProductResponse]{
		Items: items,
		Total: page.Total,
		Page:  page.Page,
		Size:  page.Size,
	})
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	p, err := h.service.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if p == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}
	return c.JSON(toProductResponse(p))
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if validateBody(c, &req) {
		return nil
	}

	feedstocks := make([]service.FeedstockQuantity, 0, len(req.Feedstocks))
	for _, item := range req.Feedstocks {
		feedstocks = append(feedstocks, service.FeedstockQuantity{
			FeedstockID: item.FeedstockID,
			Quantity:    item.Quantity,
		})
	}

	p, err := h.service.Create(c.Context(), service.ProductInput{
		Code:      req.Code,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
	}, feedstocks)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(toProductResponse(p))
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if validateBody(c, &req) {
		return nil
	}

	p, err := h.service.Update(c.Context(), id, service.ProductInput{
		Code:      req.Code,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		return respondError(c, err)
	}
	if p == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}
	return c.JSON(toProductResponse(p))
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	deleted, err := h.service.Delete(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if !deleted {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}
	return c.SendStatus(204)
}
