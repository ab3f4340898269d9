package http

import (
	"encoding/json"
	"net/http"

	"github.com/agriwatch/farmportal/pkg/httpx"
	"github.com/agriwatch/farmportal/pkg/slogx"
)

// decodeJSON reads the request body into dst. Unparseable bodies get the
// validation status so clients see one consistent code for bad input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		httpx.WriteError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return false
	}
	return true
}

// internalError logs the cause and writes the opaque 500 envelope.
func internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slogx.FromContext(r.Context()).Error(msg, "err", err)
	httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
}
