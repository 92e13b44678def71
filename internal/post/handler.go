package post

import (
	"net/http"
	"strconv"

	"blog-service/internal/shared/apperr"
	"blog-service/internal/shared/httpx"
	"blog-service/internal/shared/validate"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	res, err := h.svc.ListPublished(httpx.QueryInt(r, "page", 1), "")
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, res, http.StatusOK)
	return nil
}

func (h *Handler) ListByTag(w http.ResponseWriter, r *http.Request) error {
	res, err := h.svc.ListPublished(httpx.QueryInt(r, "page", 1), r.PathValue("tag_slug"))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, res, http.StatusOK)
	return nil
}

func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) error {
	year, err1 := strconv.Atoi(r.PathValue("year"))
	month, err2 := strconv.Atoi(r.PathValue("month"))
	day, err3 := strconv.Atoi(r.PathValue("day"))
	if err1 != nil || err2 != nil || err3 != nil {
		// a non-numeric locator cannot name a post
		return apperr.ErrNotFound
	}
	res, err := h.svc.Detail(year, month, day, r.PathValue("slug"))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, res, http.StatusOK)
	return nil
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) error {
	res, err := h.svc.Search(r.URL.Query().Get("query"), httpx.QueryInt(r, "page", 1))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, res, http.StatusOK)
	return nil
}

func (h *Handler) Manage(w http.ResponseWriter, r *http.Request) error {
	if _, _, err := httpx.UserFromCtx(r); err != nil {
		return err
	}
	res, err := h.svc.Manage(httpx.QueryInt(r, "page", 1))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, res, http.StatusOK)
	return nil
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	uid, name, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[CreateRequest](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	p, err := h.svc.Create(uid, name, in)
	if err != nil {
		return err
	}
	w.Header().Set("Location", p.Locator())
	httpx.WriteJSON(w, p, http.StatusCreated)
	return nil
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	uid, _, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	in, err := httpx.Decode[UpdateRequest](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	p, err := h.svc.Update(uid, r.PathValue("slug"), in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"message": "post updated", "post": p}, http.StatusOK)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	uid, _, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(r.Context(), uid, r.PathValue("slug")); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"message": "post deleted", "redirect": "/manage"}, http.StatusOK)
	return nil
}
