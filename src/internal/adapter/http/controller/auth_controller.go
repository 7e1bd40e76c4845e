package controller

import (
	"net/http"
	"time"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/http/models"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/usecase/service_interfaces"
)

type AuthController struct {
	service service_interfaces.CredentialService
}

func NewAuthController(service service_interfaces.CredentialService) *AuthController {
	return &AuthController{service: service}
}

// RegisterRoutes leaves /auth/login public; creating operators needs an
// authenticated caller.
func (c *AuthController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("POST /auth/login", http.HandlerFunc(c.login))
	mux.Handle("POST /operators", protect(http.HandlerFunc(c.createOperator), authMiddleware))
}

func (c *AuthController) login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.LoginRequest
	if !decodeBody(w, r, &req, start) {
		return
	}

	response, err := c.service.Login(r.Context(), req)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AuthController) createOperator(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateOperatorRequest
	if !decodeBody(w, r, &req, start) {
		return
	}

	response, err := c.service.CreateCredential(r.Context(), req)
	respond(w, r, start, http.StatusCreated, response, err)
}
