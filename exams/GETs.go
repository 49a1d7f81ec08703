package exams

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

// GetExams lists active exams ordered by display_order.
// Query params: search, examType, country (slug), sort, page/offset, limit.
func GetExams(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	offset, limit := utils.ParsePagination(r)
	q := r.URL.Query()
	filter := store.ExamFilter{
		Search:     q.Get("search"),
		ExamType:   q.Get("examType"),
		SortBy:     q.Get("sort"),
		ActiveOnly: true,
		Offset:     offset,
		Limit:      limit,
	}

	countrySlug := q.Get("country")
	if countrySlug != "" {
		country, err := store.DB.GetCountryBySlug(r.Context(), countrySlug, false)
		if errors.Is(err, store.ErrNotFound) {
			utils.SendSuccess(w, http.StatusOK, "Exams fetched", store.Page[models.Exam]{Items: []models.Exam{}})
			return
		}
		if err != nil {
			log.Printf("list exams: country lookup failed: %v", err)
			utils.SendError(w, http.StatusInternalServerError, "Failed to fetch exams")
			return
		}
		filter.CountryID = country.ID
	}

	key := rdx.CacheKey("exams", fmt.Sprintf("list:s=%s:t=%s:c=%s:sort=%s:o=%d:l=%d",
		filter.Search, filter.ExamType, countrySlug, filter.SortBy, filter.Offset, filter.Limit))
	if payload, ok := rdx.GetCached(r.Context(), key); ok {
		utils.ServeCached(w, payload)
		return
	}

	page, err := store.DB.ListExams(r.Context(), filter)
	if err != nil {
		log.Printf("list exams failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch exams")
		return
	}

	utils.CacheAndSend(r.Context(), w, key, utils.Envelope{Success: true, Message: "Exams fetched", Data: page})
}

// GetExam returns one active exam by slug with its countries resolved.
// Dangling country references are skipped, not errors.
func GetExam(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slug := ps.ByName("slug")

	key := rdx.CacheKey("exams", "detail:"+slug)
	if payload, ok := rdx.GetCached(r.Context(), key); ok {
		utils.ServeCached(w, payload)
		return
	}

	exam, err := store.DB.GetExamBySlug(r.Context(), slug, true)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(w, http.StatusNotFound, "Exam not found")
		return
	}
	if err != nil {
		log.Printf("get exam %q failed: %v", slug, err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch exam")
		return
	}

	for _, ref := range exam.CountryRefs {
		country, err := store.ResolveCountry(r.Context(), ref)
		if err != nil {
			log.Printf("get exam %q: country resolve failed: %v", slug, err)
			utils.SendError(w, http.StatusInternalServerError, "Failed to fetch exam")
			return
		}
		if country != nil {
			exam.Countries = append(exam.Countries, *country)
		}
	}

	utils.CacheAndSend(r.Context(), w, key, utils.Envelope{Success: true, Message: "Exam fetched", Data: exam})
}
