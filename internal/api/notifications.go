package api

import (
	"net/http"
	"strconv"

	"bukutamu/internal/apperr"
	"bukutamu/internal/auth"
)

// listNotifications hanya mengembalikan notifikasi milik pengguna yang
// sedang login.
func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apperr.Unauthorized("token tidak ditemukan"))
		return
	}

	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	var read *bool
	if v := q.Get("is_read"); v != "" {
		b := v == "true" || v == "1"
		read = &b
	}

	resp, err := s.notifications.ListForUser(claims.UserID, read, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apperr.Unauthorized("token tidak ditemukan"))
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.notifications.MarkAsRead(id, claims.UserID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "notifikasi ditandai terbaca"})
}

func (s *Server) deleteNotification(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apperr.Unauthorized("token tidak ditemukan"))
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.notifications.Delete(id, claims.UserID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
