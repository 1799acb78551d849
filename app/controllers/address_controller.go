package controllers

import (
	"net/http"

	"github.com/aurigalabs/storefront/app/models"
	"github.com/aurigalabs/storefront/app/services"
	"github.com/aurigalabs/storefront/pkg/bind"
	"github.com/aurigalabs/storefront/pkg/middleware"
	"github.com/aurigalabs/storefront/pkg/response"
)

type AddressController struct {
	service *services.AddressService
}

func NewAddressController(service *services.AddressService) *AddressController {
	return &AddressController{service: service}
}

type addressInput struct {
	FirstName  string `json:"firstName"  validate:"required,max=100"`
	LastName   string `json:"lastName"   validate:"required,max=100"`
	Company    string `json:"company"    validate:"nullable,max=200"`
	Address1   string `json:"address1"   validate:"required,max=200"`
	Address2   string `json:"address2"   validate:"nullable,max=200"`
	City       string `json:"city"       validate:"required,max=100"`
	State      string `json:"state"      validate:"required,max=100"`
	PostalCode string `json:"postalCode" validate:"required,max=20"`
	Country    string `json:"country"    validate:"required,max=100"`
	Phone      string `json:"phone"      validate:"nullable,max=30"`
	Type       string `json:"type"       validate:"required,in=shipping,billing,both"`
	IsDefault  bool   `json:"isDefault"`
}

func (in *addressInput) apply(a *models.Address) {
	a.FirstName = in.FirstName
	a.LastName = in.LastName
	a.Company = in.Company
	a.Address1 = in.Address1
	a.Address2 = in.Address2
	a.City = in.City
	a.State = in.State
	a.PostalCode = in.PostalCode
	a.Country = in.Country
	a.Phone = in.Phone
	a.Type = in.Type
	a.IsDefault = in.IsDefault
	a.IsActive = true
}

func (c *AddressController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body addressInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	address := models.Address{UserID: userID}
	body.apply(&address)

	if err := c.service.Save(r.Context(), &address); err != nil {
		fail(w, err)
		return
	}
	response.Created(w, address)
}

func (c *AddressController) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, err := objectID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid address ID")
		return
	}

	existing, err := c.service.Get(r.Context(), id)
	if err != nil {
		fail(w, err)
		return
	}
	if existing.UserID != userID {
		response.Forbidden(w)
		return
	}

	var body addressInput
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	body.apply(&existing)

	if err := c.service.Save(r.Context(), &existing); err != nil {
		fail(w, err)
		return
	}
	response.Success(w, existing)
}

func (c *AddressController) SetDefault(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, err := objectID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid address ID")
		return
	}

	address, err := c.service.SetDefault(r.Context(), id, userID)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, address)
}

func (c *AddressController) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	addresses, err := c.service.ListForUser(r.Context(), userID)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, addresses)
}

func (c *AddressController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, err := objectID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid address ID")
		return
	}

	if err := c.service.Delete(r.Context(), id, userID); err != nil {
		fail(w, err)
		return
	}
	response.Success(w, map[string]string{"deleted": id.Hex()})
}
