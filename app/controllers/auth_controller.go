package controllers

import (
	"errors"
	"net/http"

	"github.com/aurigalabs/storefront/app/repositories"
	"github.com/aurigalabs/storefront/app/services"
	"github.com/aurigalabs/storefront/pkg/bind"
	"github.com/aurigalabs/storefront/pkg/middleware"
	"github.com/aurigalabs/storefront/pkg/response"
)

type AuthController struct {
	service *services.AuthService
	users   services.UserStore
}

func NewAuthController(service *services.AuthService, users services.UserStore) *AuthController {
	return &AuthController{service: service, users: users}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"     validate:"required,min=2,max=100"`
		Email    string `json:"email"    validate:"required,email"`
		Password string `json:"password" validate:"required,min=8,max=72"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.Register(r.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			response.Error(w, http.StatusConflict, "Email already registered")
			return
		}
		fail(w, err)
		return
	}

	response.Created(w, user)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"    validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.service.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	response.Success(w, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (c *AuthController) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	user, err := c.users.FindByID(r.Context(), userID)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, user)
}
