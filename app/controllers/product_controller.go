package controllers

import (
	"net/http"

	"github.com/aurigalabs/storefront/app/models"
	"github.com/aurigalabs/storefront/app/services"
	"github.com/aurigalabs/storefront/pkg/bind"
	"github.com/aurigalabs/storefront/pkg/response"
	"github.com/go-chi/chi/v5"
)

type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

// productInput is the writable subset of a product. Slug and rating are
// derived fields and have no input counterpart.
type productInput struct {
	Name             string             `json:"name"             validate:"required,min=2,max=200"`
	Description      string             `json:"description"      validate:"required"`
	ShortDescription string             `json:"shortDescription" validate:"nullable,max=500"`
	SKU              string             `json:"sku"              validate:"required,alpha_dash"`
	CurrentPrice     float64            `json:"currentPrice"     validate:"required,gte=0"`
	OriginalPrice    float64            `json:"originalPrice"    validate:"nullable,gte=0"`
	Brand            string             `json:"brand"            validate:"nullable,max=100"`
	Images           []models.Image     `json:"images"`
	Inventory        models.Inventory   `json:"inventory"`
	Attributes       []models.Attribute `json:"attributes"`
	Tags             []string           `json:"tags"`
	IsActive         bool               `json:"isActive"`
	IsFeatured       bool               `json:"isFeatured"`
}

func (in *productInput) apply(p *models.Product) {
	p.Name = in.Name
	p.Description = in.Description
	p.ShortDescription = in.ShortDescription
	p.SKU = in.SKU
	p.CurrentPrice = in.CurrentPrice
	p.OriginalPrice = in.OriginalPrice
	p.Brand = in.Brand
	p.Images = in.Images
	p.Inventory = in.Inventory
	p.Attributes = in.Attributes
	p.Tags = in.Tags
	p.IsActive = in.IsActive
	p.IsFeatured = in.IsFeatured
}

func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var body productInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	var product models.Product
	body.apply(&product)

	if err := c.service.Create(r.Context(), &product); err != nil {
		fail(w, err)
		return
	}
	response.Created(w, product)
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var body productInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product := models.Product{ID: id}
	body.apply(&product)

	if err := c.service.Update(r.Context(), &product); err != nil {
		fail(w, err)
		return
	}
	response.Success(w, product)
}

func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := c.service.Get(r.Context(), id)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, product)
}

func (c *ProductController) ShowBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := c.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, product)
}

func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	products, pagination, err := c.service.List(r.Context(), page, limit)
	if err != nil {
		fail(w, err)
		return
	}
	response.Paginated(w, products, pagination)
}

func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := c.service.Delete(r.Context(), id); err != nil {
		fail(w, err)
		return
	}
	response.Success(w, map[string]string{"deleted": id.Hex()})
}
