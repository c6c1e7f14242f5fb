package api

import (
	"net/http"
	"strconv"
	"time"

	"bukutamu/internal/appointment"
)

func (s *Server) dailyReport(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := appointment.ParseTanggal(v)
		if err != nil {
			writeError(w, err)
			return
		}
		date = parsed
	}

	resp, err := s.reports.Daily(date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) weeklyReport(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	defaultYear, defaultWeek := now.ISOWeek()

	q := r.URL.Query()
	year := intQuery(q.Get("year"), defaultYear)
	week := intQuery(q.Get("week"), defaultWeek)

	resp, err := s.reports.Weekly(year, week)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) monthlyReport(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	q := r.URL.Query()
	year := intQuery(q.Get("year"), now.Year())
	month := intQuery(q.Get("month"), int(now.Month()))

	resp, err := s.reports.Monthly(year, month)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func intQuery(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
