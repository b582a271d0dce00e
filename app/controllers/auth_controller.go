package controllers

import (
	"net/http"

	"github.com/vendora/vendora/app/services"
	"github.com/vendora/vendora/pkg/bind"
	"github.com/vendora/vendora/pkg/logger"
	"github.com/vendora/vendora/pkg/response"
	"github.com/vendora/vendora/pkg/tenant"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Register handles POST /api/auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput

	errs, err := bind.JSON(r, &input)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.Register(input, tenant.FromCtx(r.Context()))
	if err != nil {
		response.Err(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info("user registered",
		"user_id", user.ID,
		"role", user.Role,
	)
	response.Created(w, user)
}

// Login handles POST /api/auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	errs, err := bind.JSON(r, &input)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, pair, err := c.service.Login(input.Username, input.Password)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"access":  pair.Access,
		"refresh": pair.Refresh,
		"user":    user,
	})
}

// Refresh handles POST /api/auth/refresh.
func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Refresh string `json:"refresh" validate:"required"`
	}

	errs, err := bind.JSON(r, &input)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	pair, err := c.service.Refresh(input.Refresh)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Success(w, pair)
}
