package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"taipei_hotels/internal/app"
	"taipei_hotels/internal/domain"
)

// Handlers serves the snapshot produced by one pipeline run.
type Handlers struct{ Result domain.Result }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type hotelJSON struct {
	ID        *string `json:"id"`
	NameZH    *string `json:"name_zh"`
	NameEN    *string `json:"name_en"`
	AddressZH *string `json:"address_zh"`
	AddressEN *string `json:"address_en"`
	District  *string `json:"district"`
	Rooms     *int    `json:"rooms"`
	Phone     *string `json:"phone"`
}

type districtJSON struct {
	Name   string `json:"name"`
	Hotels int    `json:"hotel_count"`
	Rooms  int    `json:"room_count"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/hotels", h.listHotels)
	s.mux.Get("/v1/districts", h.listDistricts)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeWithETag(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// listHotels returns merged records, optionally filtered by exact district
// and by a name query matched with the same canonical key used for merging.
func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	district := r.URL.Query().Get("district")
	q := app.NameKey(r.URL.Query().Get("q"))

	out := make([]hotelJSON, 0, len(h.Result.Hotels))
	for _, m := range h.Result.Hotels {
		if district != "" && (m.District == nil || *m.District != district) {
			continue
		}
		if q != "" && !nameMatches(m, q) {
			continue
		}
		out = append(out, hotelJSON{
			ID:        m.ID,
			NameZH:    m.NameZH,
			NameEN:    m.NameEN,
			AddressZH: m.AddressZH,
			AddressEN: m.AddressEN,
			District:  m.District,
			Rooms:     m.Rooms,
			Phone:     m.Phone,
		})
	}
	writeWithETag(w, r, out)
}

func nameMatches(m domain.Merged, key string) bool {
	if m.NameZH != nil && strings.Contains(app.NameKey(*m.NameZH), key) {
		return true
	}
	if m.NameEN != nil && strings.Contains(app.NameKey(*m.NameEN), key) {
		return true
	}
	return false
}

func (h *Handlers) listDistricts(w http.ResponseWriter, r *http.Request) {
	if len(h.Result.Districts) == 0 {
		writeProblem(w, http.StatusNotFound, "Not Found", "no district data loaded")
		return
	}
	out := make([]districtJSON, 0, len(h.Result.Districts))
	for _, d := range h.Result.Districts {
		out = append(out, districtJSON{Name: d.Name, Hotels: d.Hotels, Rooms: d.Rooms})
	}
	writeWithETag(w, r, out)
}
