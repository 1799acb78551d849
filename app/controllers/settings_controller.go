package controllers

import (
	"net/http"

	"github.com/aurigalabs/storefront/app/models"
	"github.com/aurigalabs/storefront/app/services"
	"github.com/aurigalabs/storefront/pkg/bind"
	"github.com/aurigalabs/storefront/pkg/response"
	"github.com/go-chi/chi/v5"
)

type SettingsController struct {
	service *services.SettingsService
}

func NewSettingsController(service *services.SettingsService) *SettingsController {
	return &SettingsController{service: service}
}

// Public lists settings flagged isPublic; no auth required.
func (c *SettingsController) Public(w http.ResponseWriter, r *http.Request) {
	settings, err := c.service.Public(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, settings)
}

func (c *SettingsController) Show(w http.ResponseWriter, r *http.Request) {
	setting, err := c.service.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, setting)
}

// Update is admin-only; the route guards it with rbac.HasRole("admin").
func (c *SettingsController) Update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value       interface{} `json:"value"`
		Type        string      `json:"type"        validate:"required"`
		Category    string      `json:"category"    validate:"required,max=100"`
		Description string      `json:"description" validate:"nullable,max=500"`
		IsPublic    bool        `json:"isPublic"`
		IsEditable  bool        `json:"isEditable"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	// "boolean" is a validate rule keyword, so this enum is checked here
	// rather than with an in= tag.
	switch body.Type {
	case "string", "number", "boolean", "object", "array":
	default:
		response.ValidationError(w, map[string]string{"type": "The selected type is invalid."})
		return
	}

	setting := models.Setting{
		Key:         chi.URLParam(r, "key"),
		Value:       body.Value,
		Type:        body.Type,
		Category:    body.Category,
		Description: body.Description,
		IsPublic:    body.IsPublic,
		IsEditable:  body.IsEditable,
	}

	if err := c.service.Update(r.Context(), &setting); err != nil {
		fail(w, err)
		return
	}
	response.Success(w, setting)
}
