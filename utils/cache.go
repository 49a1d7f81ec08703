package utils

import (
	"context"
	"encoding/json"
	"net/http"

	"gradbridge/rdx"
)

// ServeCached writes a previously rendered JSON payload.
func ServeCached(w http.ResponseWriter, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// CacheAndSend renders the envelope, stores it under key (best effort)
// and writes it out.
func CacheAndSend(ctx context.Context, w http.ResponseWriter, key string, envelope Envelope) {
	payload, err := json.Marshal(envelope)
	if err != nil {
		SendError(w, http.StatusInternalServerError, "Failed to encode response")
		return
	}
	rdx.SetCached(ctx, key, payload)
	ServeCached(w, payload)
}
