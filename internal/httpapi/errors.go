package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"jobscout-engine/internal/catalog"
	"jobscout-engine/internal/scrape"
)

type APIError struct {
	Error struct {
		Code      string   `json:"code"`
		Message   string   `json:"message"`
		RequestID string   `json:"request_id,omitempty"`
		Valid     []string `json:"valid,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeAPIError(w, r, status, code, message, nil)
}

func writeAPIError(w http.ResponseWriter, r *http.Request, status int, code, message string, valid []string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	e.Error.Valid = valid
	WriteJSON(w, status, e)
}

// Classify maps an engine error to its HTTP status and API code.
func Classify(err error) (status int, code string) {
	code = scrape.ErrorCode(err)
	switch code {
	case scrape.CodeUnknownTitle, scrape.CodeUnknownLocation:
		return http.StatusBadRequest, code
	case scrape.CodeFetchFailed, scrape.CodeBrowserFailed:
		return http.StatusBadGateway, code
	default:
		return http.StatusInternalServerError, code
	}
}

// WriteEngineError writes err through Classify. Unknown-label errors carry
// the accepted labels.
func WriteEngineError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := Classify(err)
	if status >= 500 {
		log.Printf("level=error msg=%q request_id=%s code=%s err=%v", "request failed", RequestIDFrom(r.Context()), code, err)
	}

	var valid []string
	var ule *catalog.UnknownLabelError
	if errors.As(err, &ule) {
		valid = ule.Valid
	}
	writeAPIError(w, r, status, code, err.Error(), valid)
}
