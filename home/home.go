package home

import (
	"log"
	"net/http"

	"gradbridge/rdx"
	"gradbridge/store"
	"gradbridge/utils"

	"github.com/julienschmidt/httprouter"
)

// GetStats returns active-document counts per catalog for the home
// page counters ("120+ colleges in 15 countries").
func GetStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	key := rdx.CacheKey("stats", "counts")
	if payload, ok := rdx.GetCached(r.Context(), key); ok {
		utils.ServeCached(w, payload)
		return
	}

	counts, err := store.DB.Counts(r.Context())
	if err != nil {
		log.Printf("stats query failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	utils.CacheAndSend(r.Context(), w, key, utils.Envelope{Success: true, Message: "Stats fetched", Data: counts})
}
