package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

const ContentTypeJSON = "application/json"

// WriteJSON encodes data and writes it to w with statusCode.
//
// HTML characters are not escaped, so submitted SQL such as "a < b" is
// echoed back verbatim. If encoding fails nothing but a 500 is written.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, fmt.Errorf("error encoding JSON response: %w", err)
	}

	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(statusCode)

	return w.Write(buf.Bytes())
}
