package colleges

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"gradbridge/models"
	"gradbridge/rdx"
	"gradbridge/store"
	"gradbridge/utils"

	"github.com/julienschmidt/httprouter"
)

const relatedLimit = 4

// GetColleges lists active colleges.
// Query params: search, country (slug), exam, sort, page/offset, limit.
func GetColleges(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	offset, limit := utils.ParsePagination(r)
	q := r.URL.Query()
	filter := store.CollegeFilter{
		Search:     q.Get("search"),
		Exam:       q.Get("exam"),
		SortBy:     q.Get("sort"),
		ActiveOnly: true,
		Offset:     offset,
		Limit:      limit,
	}

	countrySlug := q.Get("country")
	if countrySlug != "" {
		country, err := store.DB.GetCountryBySlug(r.Context(), countrySlug, false)
		if errors.Is(err, store.ErrNotFound) {
			// A country filter that matches nothing constrains the
			// result to empty, it is not an input error.
			utils.SendSuccess(w, http.StatusOK, "Colleges fetched", store.Page[models.College]{Items: []models.College{}})
			return
		}
		if err != nil {
			log.Printf("list colleges: country lookup failed: %v", err)
			utils.SendError(w, http.StatusInternalServerError, "Failed to fetch colleges")
			return
		}
		filter.CountryID = country.ID
	}

	key := rdx.CacheKey("colleges", fmt.Sprintf("list:s=%s:c=%s:e=%s:sort=%s:o=%d:l=%d",
		filter.Search, countrySlug, filter.Exam, filter.SortBy, filter.Offset, filter.Limit))
	if payload, ok := rdx.GetCached(r.Context(), key); ok {
		utils.ServeCached(w, payload)
		return
	}

	page, err := store.DB.ListColleges(r.Context(), filter)
	if err != nil {
		log.Printf("list colleges failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch colleges")
		return
	}

	utils.CacheAndSend(r.Context(), w, key, utils.Envelope{Success: true, Message: "Colleges fetched", Data: page})
}

// GetCollege returns one active college with its country resolved.
// A dangling country reference leaves the field nil; the site renders
// its generic "International" label for those.
func GetCollege(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slug := ps.ByName("slug")

	key := rdx.CacheKey("colleges", "detail:"+slug)
	if payload, ok := rdx.GetCached(r.Context(), key); ok {
		utils.ServeCached(w, payload)
		return
	}

	college, err := store.DB.GetCollegeBySlug(r.Context(), slug, true)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(w, http.StatusNotFound, "College not found")
		return
	}
	if err != nil {
		log.Printf("get college %q failed: %v", slug, err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch college")
		return
	}

	college.Country, err = store.ResolveCountry(r.Context(), college.CountryRef)
	if err != nil {
		log.Printf("get college %q: country resolve failed: %v", slug, err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch college")
		return
	}

	utils.CacheAndSend(r.Context(), w, key, utils.Envelope{Success: true, Message: "College fetched", Data: college})
}

// GetRelatedColleges returns a few other active colleges from the same
// country, excluding the source college.
func GetRelatedColleges(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slug := ps.ByName("slug")

	key := rdx.CacheKey("colleges", "related:"+slug)
	if payload, ok := rdx.GetCached(r.Context(), key); ok {
		utils.ServeCached(w, payload)
		return
	}

	college, err := store.DB.GetCollegeBySlug(r.Context(), slug, true)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(w, http.StatusNotFound, "College not found")
		return
	}
	if err != nil {
		log.Printf("related colleges %q: lookup failed: %v", slug, err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch related colleges")
		return
	}

	related, err := store.DB.RelatedColleges(r.Context(), college.CountryRef, college.ID, relatedLimit)
	if err != nil {
		log.Printf("related colleges %q failed: %v", slug, err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch related colleges")
		return
	}

	utils.CacheAndSend(r.Context(), w, key, utils.Envelope{Success: true, Message: "Related colleges fetched", Data: utils.M{"items": related}})
}
