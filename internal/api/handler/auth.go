package handler

import (
	"net/http"

	mw "github.com/edvin/shopadmin/internal/api/middleware"
	"github.com/edvin/shopadmin/internal/api/request"
	"github.com/edvin/shopadmin/internal/api/response"
	"github.com/edvin/shopadmin/internal/core"
	"github.com/edvin/shopadmin/internal/model"
)

type Auth struct {
	svc *core.AuthService
}

func NewAuth(svc *core.AuthService) *Auth {
	return &Auth{svc: svc}
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string           `json:"token"`
	Admin *model.AdminUser `json:"admin"`
}

// Login godoc
//
//	@Summary		Sign in
//	@Description	Exchanges an email and password for an HS256 bearer token.
//	@Tags			Auth
//	@Param			body	body		request.Login	true	"Credentials"
//	@Success		200		{object}	LoginResponse
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		401		{object}	response.ErrorResponse
//	@Router			/auth/login [post]
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req request.Login
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	token, admin, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, LoginResponse{Token: token, Admin: admin})
}

// Me godoc
//
//	@Summary		Current admin
//	@Tags			Auth
//	@Security		BearerAuth
//	@Success		200	{object}	model.AdminUser
//	@Failure		401	{object}	response.ErrorResponse
//	@Router			/me [get]
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	claims := mw.GetClaims(r.Context())
	if claims == nil {
		response.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	admin, err := h.svc.GetAdmin(r.Context(), claims.Subject)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, admin)
}
