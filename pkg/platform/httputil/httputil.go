// Package httputil carries the JSON request/response conventions shared by
// every handler: one error envelope, one encoder, one body decoder.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "sanad/pkg/domain-errors"
)

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the error envelope. Internal
// errors omit the description so store and backend details never reach
// clients; everything else carries its user-facing message.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	resp := errorResponse{Error: string(code)}
	if code != dErrors.CodeInternal {
		resp.ErrorDescription = dErrors.MessageOf(err)
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), resp)
}

// maxBodyBytes caps JSON request bodies. Uploaded documents arrive base64
// encoded inside JSON, so this sits above the PDF limit with headroom.
const maxBodyBytes = 4 << 20

// Decode reads the JSON request body into T. On failure it writes a
// validation error and reports false; callers just return.
func Decode[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var req T
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return nil, false
	}
	return &req, true
}
