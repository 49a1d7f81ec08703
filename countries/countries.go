package countries

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"gradbridge/models"
	"gradbridge/mq"
	"gradbridge/store"
	"gradbridge/utils"

	"github.com/julienschmidt/httprouter"
)

type countryRequest struct {
	Name            *string `json:"name"`
	Slug            *string `json:"slug"`
	Flag            *string `json:"flag"`
	Description     *string `json:"description"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
	IsActive        *bool   `json:"is_active"`
}

// AdminListCountries lists every country, inactive ones included.
func AdminListCountries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	offset, limit := utils.ParsePagination(r)
	page, err := store.DB.ListCountries(r.Context(), store.CountryFilter{
		Search: r.URL.Query().Get("search"),
		SortBy: r.URL.Query().Get("sort"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		log.Printf("admin list countries failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch countries")
		return
	}
	utils.SendSuccess(w, http.StatusOK, "Countries fetched", page)
}

// AdminGetCountry returns a country by slug regardless of is_active.
func AdminGetCountry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	country, err := store.DB.GetCountryBySlug(r.Context(), ps.ByName("slug"), false)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(w, http.StatusNotFound, "Country not found")
		return
	}
	if err != nil {
		log.Printf("admin get country failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch country")
		return
	}
	utils.SendSuccess(w, http.StatusOK, "Country fetched", country)
}

// CreateCountry inserts a new country after slug-uniqueness validation.
func CreateCountry(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req countryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var violations []string
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		violations = append(violations, "name is required")
	}
	if len(violations) > 0 {
		utils.SendErrorDetail(w, http.StatusBadRequest, "Validation failed", strings.Join(violations, "; "))
		return
	}

	now := time.Now()
	country := models.Country{
		ID:        utils.GenerateID(16),
		Name:      strings.TrimSpace(*req.Name),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	country.Slug = utils.Slugify(country.Name)
	if req.Slug != nil && *req.Slug != "" {
		country.Slug = utils.Slugify(*req.Slug)
	}
	if req.Flag != nil {
		country.Flag = *req.Flag
	}
	if req.Description != nil {
		country.Description = *req.Description
	}
	if req.MetaTitle != nil {
		country.MetaTitle = *req.MetaTitle
	}
	if req.MetaDescription != nil {
		country.MetaDescription = *req.MetaDescription
	}
	if req.IsActive != nil {
		country.IsActive = *req.IsActive
	}

	exists, err := store.DB.CountrySlugExists(r.Context(), country.Slug, "")
	if err != nil {
		log.Printf("create country: slug check failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to create country")
		return
	}
	if exists {
		utils.SendError(w, http.StatusConflict, "A country with this slug already exists")
		return
	}

	if err := store.DB.CreateCountry(r.Context(), country); err != nil {
		log.Printf("create country failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to create country")
		return
	}

	mq.Emit(r.Context(), mq.ContentEvent{EntityType: "countries", Method: "created", EntityID: country.ID})
	utils.SendSuccess(w, http.StatusCreated, "Country created", country)
}

// EditCountry applies a partial update; changing the slug re-checks
// uniqueness against every other country.
func EditCountry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	country, err := store.DB.GetCountryByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(w, http.StatusNotFound, "Country not found")
		return
	}
	if err != nil {
		log.Printf("edit country: lookup failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to update country")
		return
	}

	var req countryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			utils.SendErrorDetail(w, http.StatusBadRequest, "Validation failed", "name is required")
			return
		}
		country.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil && utils.Slugify(*req.Slug) != country.Slug {
		newSlug := utils.Slugify(*req.Slug)
		exists, err := store.DB.CountrySlugExists(r.Context(), newSlug, id)
		if err != nil {
			log.Printf("edit country: slug check failed: %v", err)
			utils.SendError(w, http.StatusInternalServerError, "Failed to update country")
			return
		}
		if exists {
			utils.SendError(w, http.StatusConflict, "A country with this slug already exists")
			return
		}
		country.Slug = newSlug
	}
	if req.Flag != nil {
		country.Flag = *req.Flag
	}
	if req.Description != nil {
		country.Description = *req.Description
	}
	if req.MetaTitle != nil {
		country.MetaTitle = *req.MetaTitle
	}
	if req.MetaDescription != nil {
		country.MetaDescription = *req.MetaDescription
	}
	if req.IsActive != nil {
		country.IsActive = *req.IsActive
	}
	country.UpdatedAt = time.Now()

	if err := store.DB.UpdateCountry(r.Context(), id, country); err != nil {
		log.Printf("edit country failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to update country")
		return
	}

	mq.Emit(r.Context(), mq.ContentEvent{EntityType: "countries", Method: "updated", EntityID: id})
	utils.SendSuccess(w, http.StatusOK, "Country updated", country)
}

// DeleteCountry removes the document. Colleges and exams that reference
// it keep their stale reference; readers render the fallback label.
func DeleteCountry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	err := store.DB.DeleteCountry(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(w, http.StatusNotFound, "Country not found")
		return
	}
	if err != nil {
		log.Printf("delete country failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to delete country")
		return
	}

	mq.Emit(r.Context(), mq.ContentEvent{EntityType: "countries", Method: "deleted", EntityID: id})
	utils.SendSuccess(w, http.StatusOK, "Country deleted", nil)
}
