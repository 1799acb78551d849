package controllers

import (
	"net/http"

	"github.com/aurigalabs/storefront/app/models"
	"github.com/aurigalabs/storefront/app/services"
	"github.com/aurigalabs/storefront/pkg/bind"
	"github.com/aurigalabs/storefront/pkg/middleware"
	"github.com/aurigalabs/storefront/pkg/response"
	"github.com/go-chi/chi/v5"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

type orderItemInput struct {
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name"      validate:"required"`
	Price     float64 `json:"price"     validate:"required,gte=0"`
	Quantity  int     `json:"quantity"  validate:"required,gte=1"`
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body struct {
		Items           []orderItemInput    `json:"items" validate:"required"`
		ShippingAddress models.OrderAddress `json:"shippingAddress"`
		BillingAddress  models.OrderAddress `json:"billingAddress"`
		Tax             float64             `json:"tax"      validate:"nullable,gte=0"`
		Shipping        float64             `json:"shipping" validate:"nullable,gte=0"`
		Discount        float64             `json:"discount" validate:"nullable,gte=0"`
		Currency        string              `json:"currency" validate:"nullable,between=3,3"`
		Notes           string              `json:"notes"    validate:"nullable,max=1000"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	items := make([]models.OrderItem, 0, len(body.Items))
	for _, in := range body.Items {
		productID, err := parseHex(in.ProductID)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid product ID in items")
			return
		}
		items = append(items, models.OrderItem{
			ProductID: productID,
			Name:      in.Name,
			Price:     in.Price,
			Quantity:  in.Quantity,
		})
	}

	order := models.Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: body.ShippingAddress,
		BillingAddress:  body.BillingAddress,
		Tax:             body.Tax,
		Shipping:        body.Shipping,
		Discount:        body.Discount,
		Currency:        body.Currency,
		Notes:           body.Notes,
	}

	if err := c.service.Place(r.Context(), &order); err != nil {
		fail(w, err)
		return
	}
	response.Created(w, order)
}

func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, err := objectID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := c.service.Get(r.Context(), id)
	if err != nil {
		fail(w, err)
		return
	}

	role, _ := middleware.RoleFromCtx(r)
	if order.UserID != userID && role != "admin" {
		response.Forbidden(w)
		return
	}
	response.Success(w, order)
}

func (c *OrderController) ShowByNumber(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	order, err := c.service.GetByNumber(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		fail(w, err)
		return
	}

	role, _ := middleware.RoleFromCtx(r)
	if order.UserID != userID && role != "admin" {
		response.Forbidden(w)
		return
	}
	response.Success(w, order)
}

func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	page, limit := pageParams(r)
	orders, pagination, err := c.service.ListForUser(r.Context(), userID, page, limit)
	if err != nil {
		fail(w, err)
		return
	}
	response.Paginated(w, orders, pagination)
}

// UpdateStatus is admin-only; the route guards it with rbac.HasRole("admin").
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var body struct {
		Status string `json:"status" validate:"required,in=pending,confirmed,shipped,delivered,cancelled,refunded"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.service.UpdateStatus(r.Context(), id, body.Status); err != nil {
		fail(w, err)
		return
	}
	response.Success(w, map[string]string{"status": body.Status})
}
