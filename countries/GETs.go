package countries

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"gradbridge/rdx"
	"gradbridge/store"
	"gradbridge/utils"

	"github.com/julienschmidt/httprouter"
)

// GetCountries lists active countries for the public site.
// Query params: search, sort, page/offset, limit.
func GetCountries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	offset, limit := utils.ParsePagination(r)
	filter := store.CountryFilter{
		Search:     r.URL.Query().Get("search"),
		SortBy:     r.URL.Query().Get("sort"),
		ActiveOnly: true,
		Offset:     offset,
		Limit:      limit,
	}

	key := rdx.CacheKey("countries", fmt.Sprintf("list:s=%s:sort=%s:o=%d:l=%d",
		filter.Search, filter.SortBy, filter.Offset, filter.Limit))
	if payload, ok := rdx.GetCached(r.Context(), key); ok {
		utils.ServeCached(w, payload)
		return
	}

	page, err := store.DB.ListCountries(r.Context(), filter)
	if err != nil {
		log.Printf("list countries failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch countries")
		return
	}

	utils.CacheAndSend(r.Context(), w, key, utils.Envelope{Success: true, Message: "Countries fetched", Data: page})
}

// GetCountry returns one active country by slug.
func GetCountry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slug := ps.ByName("slug")

	key := rdx.CacheKey("countries", "detail:"+slug)
	if payload, ok := rdx.GetCached(r.Context(), key); ok {
		utils.ServeCached(w, payload)
		return
	}

	country, err := store.DB.GetCountryBySlug(r.Context(), slug, true)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(w, http.StatusNotFound, "Country not found")
		return
	}
	if err != nil {
		log.Printf("get country %q failed: %v", slug, err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch country")
		return
	}

	utils.CacheAndSend(r.Context(), w, key, utils.Envelope{Success: true, Message: "Country fetched", Data: country})
}
