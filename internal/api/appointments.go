package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"

	"bukutamu/internal/apperr"
	"bukutamu/pkg/models"
)

type createAppointmentRequest struct {
	IDTamu    int    `json:"id_tamu"`
	IDGuru    int    `json:"id_guru"`
	Tanggal   string `json:"tanggal"`
	Waktu     string `json:"waktu"`
	Keperluan string `json:"keperluan"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type rescheduleRequest struct {
	Tanggal string `json:"tanggal"`
	Waktu   string `json:"waktu"`
}

func (s *Server) listAppointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	responses, total, err := s.appointments.List(q.Get("date"), q.Get("status"), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	writeJSON(w, http.StatusOK, models.PagedResponse{
		Total: total,
		Page:  page,
		Limit: limit,
		Data:  responses,
	})
}

func (s *Server) createAppointment(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.appointments.Create(req.IDTamu, req.Tanggal, req.Waktu, req.Keperluan, req.IDGuru)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) listAppointmentsByGuru(w http.ResponseWriter, r *http.Request) {
	guruID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	responses, err := s.appointments.ListByGuru(guruID, q.Get("date"), q.Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, responses)
}

func (s *Server) updateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.appointments.UpdateStatus(id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) rescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req rescheduleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.appointments.Reschedule(id, req.Tanggal, req.Waktu)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// checkQrCode menampilkan detail janji temu dari kode QR, tanpa syarat
// tanggal atau status. Dipakai layar informasi.
func (s *Server) checkQrCode(w http.ResponseWriter, r *http.Request) {
	resp, err := s.appointments.CheckByQrCode(mux.Vars(r)["kode"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// verifyQrCode adalah jalur check-in resepsionis: kode harus untuk hari ini
// dan masih Menunggu.
func (s *Server) verifyQrCode(w http.ResponseWriter, r *http.Request) {
	resp, err := s.appointments.VerifyQrCode(mux.Vars(r)["kode"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// qrCodeImage menghasilkan PNG dari kode agar bisa dicetak di slip tamu.
func (s *Server) qrCodeImage(w http.ResponseWriter, r *http.Request) {
	kode := mux.Vars(r)["kode"]

	if _, err := s.appointments.CheckByQrCode(kode); err != nil {
		writeError(w, err)
		return
	}

	png, err := qrcode.Encode(kode, qrcode.Medium, 256)
	if err != nil {
		writeError(w, apperr.Internal(err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s.png"`, kode))
	w.Write(png)
}

func (s *Server) todayAppointments(w http.ResponseWriter, r *http.Request) {
	responses, err := s.appointments.Today()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, responses)
}

func pathID(r *http.Request, key string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[key])
	if err != nil || id < 1 {
		return 0, apperr.InvalidInput("%s harus berupa angka positif", key)
	}
	return id, nil
}
