package controllers

import (
	"net/http"

	"github.com/aurigalabs/storefront/app/models"
	"github.com/aurigalabs/storefront/app/services"
	"github.com/aurigalabs/storefront/pkg/bind"
	"github.com/aurigalabs/storefront/pkg/middleware"
	"github.com/aurigalabs/storefront/pkg/response"
)

type ReviewController struct {
	service *services.ReviewService
}

func NewReviewController(service *services.ReviewService) *ReviewController {
	return &ReviewController{service: service}
}

func (c *ReviewController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body struct {
		ProductID string `json:"productId" validate:"required"`
		Rating    int    `json:"rating"    validate:"required,gte=1,lte=5"`
		Title     string `json:"title"     validate:"required,max=200"`
		Comment   string `json:"comment"   validate:"required,max=2000"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	productID, err := parseHex(body.ProductID)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	review := models.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    body.Rating,
		Title:     body.Title,
		Comment:   body.Comment,
		// Reviews go live immediately; a moderation pass can unset this
		// and call RefreshRating.
		IsApproved: true,
	}

	if err := c.service.Create(r.Context(), &review); err != nil {
		fail(w, err)
		return
	}
	response.Created(w, review)
}

func (c *ReviewController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, err := objectID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid review ID")
		return
	}

	review, err := c.service.Get(r.Context(), id)
	if err != nil {
		fail(w, err)
		return
	}

	role, _ := middleware.RoleFromCtx(r)
	if review.UserID != userID && role != "admin" {
		response.Forbidden(w)
		return
	}

	if err := c.service.Delete(r.Context(), id); err != nil {
		fail(w, err)
		return
	}
	response.Success(w, map[string]string{"deleted": id.Hex()})
}

func (c *ReviewController) IndexForProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := objectID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	page, limit := pageParams(r)
	reviews, pagination, err := c.service.ListForProduct(r.Context(), productID, page, limit)
	if err != nil {
		fail(w, err)
		return
	}
	response.Paginated(w, reviews, pagination)
}
