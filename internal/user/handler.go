package user

import (
	"net/http"

	"blog-service/internal/shared/httpx"
	"blog-service/internal/shared/jwt"
	"blog-service/internal/shared/validate"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) error {
	body, err := httpx.Decode[RegisterRequest](r)
	if err != nil {
		return err
	}
	if err = validate.Struct(body); err != nil {
		return err
	}
	u, err := h.svc.Register(body.Email, body.Password, body.Name)
	if err != nil {
		return err
	}
	token, _ := jwt.Make(u.ID, u.Name)
	httpx.WriteJSON(w, map[string]any{
		"id": u.ID, "name": u.Name, "email": u.Email, "access_token": token,
	}, http.StatusCreated)
	return nil
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) error {
	body, err := httpx.Decode[LoginRequest](r)
	if err != nil {
		return err
	}
	if err = validate.Struct(body); err != nil {
		return err
	}
	u, err := h.svc.Login(body.Email, body.Password)
	if err != nil {
		httpx.WriteJSON(w, map[string]any{"error": err.Error()}, http.StatusUnauthorized)
		return nil
	}
	token, _ := jwt.Make(u.ID, u.Name)
	httpx.WriteJSON(w, map[string]any{
		"id": u.ID, "name": u.Name, "email": u.Email, "access_token": token,
	}, http.StatusOK)
	return nil
}
