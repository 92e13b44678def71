package media

import (
	"net/http"
	"time"

	"blog-service/internal/shared/httpx"
)

type Handler struct{ store *Store }

func NewHandler(s *Store) *Handler { return &Handler{store: s} }

// Upload accepts a multipart image and answers with the object key the
// post payloads reference.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseMultipartForm(20 << 20); err != nil { // 20MB
		return err
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		return err
	}
	defer file.Close()

	key, err := h.store.Save(r.Context(), hdr.Filename, hdr.Header.Get("Content-Type"), file, hdr.Size)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"key": key}, http.StatusCreated)
	return nil
}

func (h *Handler) RedirectToSignedGet(w http.ResponseWriter, r *http.Request) error {
	key := r.PathValue("key")
	u, err := h.store.PresignGet(r.Context(), key, 15*time.Minute)
	if err != nil {
		return err
	}
	http.Redirect(w, r, u.String(), http.StatusFound)
	return nil
}
