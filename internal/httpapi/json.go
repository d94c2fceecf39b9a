package httpapi

import (
    "encoding/json"
    "net/http"
)

// toJSON writes v as the JSON response body. A nil v writes the status line
// only. The encoder streams straight to the ResponseWriter, so an encode
// failure after WriteHeader cannot change the status anymore; the write
// error is dropped and the truncated body is the client's signal.
func toJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json; charset=utf-8")
    w.WriteHeader(status)
    if v == nil {
        return
    }
    _ = json.NewEncoder(w).Encode(v)
}
