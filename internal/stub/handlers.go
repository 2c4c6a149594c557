package stub

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/autoprestige/autoprestige/internal/api"
	"github.com/autoprestige/autoprestige/internal/service"
	"github.com/autoprestige/autoprestige/internal/sheet"
)

// Detail keys of the {"detail": ...} bodies.
const (
	DetailUnsupported = "unsupported"
	DetailEmpty       = "empty"
	DetailMalformed   = "malformed"
	DetailNoFile      = "no_file"
	DetailBadJSON     = "bad_json"
	DetailNoMessage   = "no_message"
	DetailInternal    = "internal"
	DetailRateLimited = "rate_limited"
)

var details = map[string]map[string]string{
	"vi": {
		DetailUnsupported: "Chỉ hỗ trợ file .csv hoặc .xlsx",
		DetailEmpty:       "File rỗng",
		DetailMalformed:   "Không đọc được file",
		DetailNoFile:      "Thiếu trường file",
		DetailBadJSON:     "Dữ liệu JSON không hợp lệ",
		DetailNoMessage:   "Tin nhắn trống",
		DetailInternal:    "Lỗi máy chủ",
		DetailRateLimited: "Quá nhiều yêu cầu, vui lòng thử lại sau",
	},
	"en": {
		DetailUnsupported: "Only .csv or .xlsx files are supported",
		DetailEmpty:       "File is empty",
		DetailMalformed:   "File could not be read",
		DetailNoFile:      "Missing file field",
		DetailBadJSON:     "Malformed JSON body",
		DetailNoMessage:   "Message is empty",
		DetailInternal:    "Internal server error",
		DetailRateLimited: "Too many requests, try again shortly",
	},
}

// Detail returns the text served for key in lang; unknown languages use
// Vietnamese.
func Detail(lang, key string) string {
	if t, ok := details[lang]; ok {
		return t[key]
	}
	return details["vi"][key]
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "AutoPrestige backend is running"})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var in api.ValuationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, DetailBadJSON)
		return
	}
	price, err := s.valuations.Predict(r.Context(), in)
	if errors.Is(err, service.ErrInvalidInput) {
		s.writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		s.internal(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"price": price, "currency": "USD"})
}

func (s *Server) handlePredictBatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		s.writeError(w, http.StatusBadRequest, DetailNoFile)
		return
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, DetailNoFile)
		return
	}
	defer file.Close()

	res, err := s.ingest.PredictFile(r.Context(), hdr.Filename, file)
	switch {
	case errors.Is(err, sheet.ErrUnsupported):
		s.writeError(w, http.StatusBadRequest, DetailUnsupported)
		return
	case errors.Is(err, sheet.ErrEmpty):
		s.writeError(w, http.StatusBadRequest, DetailEmpty)
		return
	case errors.Is(err, sheet.ErrMalformed):
		s.writeError(w, http.StatusBadRequest, DetailMalformed)
		return
	case err != nil:
		s.internal(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"data": res.Rows})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	recs, err := s.valuations.List(r.Context())
	if err != nil {
		s.internal(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.dashboard.Stats(r.Context())
	if err != nil {
		s.internal(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, DetailBadJSON)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusUnprocessableEntity, DetailNoMessage)
		return
	}
	reply, err := s.responder.Reply(r.Context(), req.Message)
	if err != nil {
		s.internal(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"response": reply})
}

// HTTP helpers

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, key string) {
	s.writeJSON(w, status, map[string]string{"detail": Detail(s.lang, key)})
}

// writeDetail sends a free-form detail, e.g. a validation error.
func (s *Server) writeDetail(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, map[string]string{"detail": detail})
}

func (s *Server) internal(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error().Err(err).Str("path", r.URL.Path).
		Str("request_id", middleware.GetReqID(r.Context())).Msg("request failed")
	s.writeError(w, http.StatusInternalServerError, DetailInternal)
}
