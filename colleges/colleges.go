package colleges

import (
	"encoding/json"
	"errors"
	"fmt"
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

// collegeRequest mirrors the document's nested shape. The admin form
// binds section structs directly; there are no flattened field names.
type collegeRequest struct {
	Name              *string                   `json:"name"`
	Slug              *string                   `json:"slug"`
	CountryRef        *string                   `json:"country_ref"` // a country slug, resolved before persisting
	Exams             []string                  `json:"exams"`
	Fees              *float64                  `json:"fees"`
	Duration          *string                   `json:"duration"`
	EstablishmentYear *int                      `json:"establishment_year"`
	Ranking           *models.Ranking           `json:"ranking"`
	BannerImage       *string                   `json:"banner_image"`
	Overview          *models.Overview          `json:"overview"`
	KeyHighlights     *models.KeyHighlights     `json:"key_highlights"`
	WhyChooseUs       *models.WhyChooseUs       `json:"why_choose_us"`
	AdmissionProcess  *models.AdmissionProcess  `json:"admission_process"`
	DocumentsRequired *models.DocumentsRequired `json:"documents_required"`
	FeesStructure     *models.FeesStructure     `json:"fees_structure"`
	CampusHighlights  *models.CampusHighlights  `json:"campus_highlights"`
	AboutContent      *string                   `json:"about_content"`
	IsActive          *bool                     `json:"is_active"`
}

func (req *collegeRequest) apply(c *models.College) {
	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Exams != nil {
		c.Exams = req.Exams
	}
	if req.Fees != nil {
		c.Fees = *req.Fees
	}
	if req.Duration != nil {
		c.Duration = *req.Duration
	}
	if req.EstablishmentYear != nil {
		c.EstablishmentYear = *req.EstablishmentYear
	}
	if req.Ranking != nil {
		c.Ranking = *req.Ranking
	}
	if req.BannerImage != nil {
		c.BannerImage = *req.BannerImage
	}
	if req.Overview != nil {
		c.Overview = req.Overview
	}
	if req.KeyHighlights != nil {
		c.KeyHighlights = req.KeyHighlights
	}
	if req.WhyChooseUs != nil {
		c.WhyChooseUs = req.WhyChooseUs
	}
	if req.AdmissionProcess != nil {
		c.AdmissionProcess = req.AdmissionProcess
	}
	if req.DocumentsRequired != nil {
		c.DocumentsRequired = req.DocumentsRequired
	}
	if req.FeesStructure != nil {
		c.FeesStructure = req.FeesStructure
	}
	if req.CampusHighlights != nil {
		c.CampusHighlights = req.CampusHighlights
	}
	if req.AboutContent != nil {
		c.AboutContent = *req.AboutContent
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
}

// resolveCountrySlug maps the submitted country slug to its internal
// id. On a miss the error message names every valid slug, which the
// admin form surfaces directly.
func resolveCountrySlug(r *http.Request, slug string) (string, string, error) {
	country, err := store.DB.GetCountryBySlug(r.Context(), slug, false)
	if err == nil {
		return country.ID, "", nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", "", err
	}
	slugs, err := store.DB.ActiveCountrySlugs(r.Context())
	if err != nil {
		return "", "", err
	}
	return "", fmt.Sprintf("no country matches %q; valid country slugs: %s", slug, strings.Join(slugs, ", ")), nil
}

// AdminListColleges lists every college, inactive ones included.
func AdminListColleges(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	offset, limit := utils.ParsePagination(r)
	page, err := store.DB.ListColleges(r.Context(), store.CollegeFilter{
		Search: r.URL.Query().Get("search"),
		SortBy: r.URL.Query().Get("sort"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		log.Printf("admin list colleges failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch colleges")
		return
	}
	utils.SendSuccess(w, http.StatusOK, "Colleges fetched", page)
}

// AdminGetCollege returns a college by slug regardless of is_active,
// with its country resolved.
func AdminGetCollege(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	college, err := store.DB.GetCollegeBySlug(r.Context(), ps.ByName("slug"), false)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(w, http.StatusNotFound, "College not found")
		return
	}
	if err != nil {
		log.Printf("admin get college failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch college")
		return
	}
	college.Country, err = store.ResolveCountry(r.Context(), college.CountryRef)
	if err != nil {
		log.Printf("admin get college: country resolve failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch college")
		return
	}
	utils.SendSuccess(w, http.StatusOK, "College fetched", college)
}

// CreateCollege handles the comprehensive admin form. Validation is
// front-loaded: every violation is collected and reported together, and
// nothing is written unless all checks pass.
func CreateCollege(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req collegeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	now := time.Now()
	college := models.College{
		ID:        utils.GenerateID(16),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.apply(&college)
	if req.CountryRef != nil {
		college.CountryRef = strings.TrimSpace(*req.CountryRef) // still a slug here
	}

	if violations := validateCollege(&college); len(violations) > 0 {
		utils.SendErrorDetail(w, http.StatusBadRequest, "Validation failed", strings.Join(violations, "; "))
		return
	}

	countryID, miss, err := resolveCountrySlug(r, college.CountryRef)
	if err != nil {
		log.Printf("create college: country resolution failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to create college")
		return
	}
	if miss != "" {
		utils.SendErrorDetail(w, http.StatusBadRequest, "Unknown country", miss)
		return
	}
	college.CountryRef = countryID

	college.Slug = utils.Slugify(college.Name)
	if req.Slug != nil && *req.Slug != "" {
		college.Slug = utils.Slugify(*req.Slug)
	}
	exists, err := store.DB.CollegeSlugExists(r.Context(), college.Slug, "")
	if err != nil {
		log.Printf("create college: slug check failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to create college")
		return
	}
	if exists {
		utils.SendError(w, http.StatusConflict, "A college with this slug already exists")
		return
	}

	if err := store.DB.CreateCollege(r.Context(), college); err != nil {
		log.Printf("create college failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to create college")
		return
	}

	mq.Emit(r.Context(), mq.ContentEvent{EntityType: "colleges", Method: "created", EntityID: college.ID})
	utils.SendSuccess(w, http.StatusCreated, "College created", college)
}

// EditCollege applies a partial update, re-running the comprehensive
// validation over the merged document.
func EditCollege(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	college, err := store.DB.GetCollegeByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(w, http.StatusNotFound, "College not found")
		return
	}
	if err != nil {
		log.Printf("edit college: lookup failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to update college")
		return
	}

	var req collegeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.apply(&college)

	if req.CountryRef != nil {
		countryID, miss, err := resolveCountrySlug(r, strings.TrimSpace(*req.CountryRef))
		if err != nil {
			log.Printf("edit college: country resolution failed: %v", err)
			utils.SendError(w, http.StatusInternalServerError, "Failed to update college")
			return
		}
		if miss != "" {
			utils.SendErrorDetail(w, http.StatusBadRequest, "Unknown country", miss)
			return
		}
		college.CountryRef = countryID
	}

	if violations := validateCollege(&college); len(violations) > 0 {
		utils.SendErrorDetail(w, http.StatusBadRequest, "Validation failed", strings.Join(violations, "; "))
		return
	}

	if req.Slug != nil && utils.Slugify(*req.Slug) != college.Slug {
		newSlug := utils.Slugify(*req.Slug)
		exists, err := store.DB.CollegeSlugExists(r.Context(), newSlug, id)
		if err != nil {
			log.Printf("edit college: slug check failed: %v", err)
			utils.SendError(w, http.StatusInternalServerError, "Failed to update college")
			return
		}
		if exists {
			utils.SendError(w, http.StatusConflict, "A college with this slug already exists")
			return
		}
		college.Slug = newSlug
	}

	college.UpdatedAt = time.Now()
	if err := store.DB.UpdateCollege(r.Context(), id, college); err != nil {
		log.Printf("edit college failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to update college")
		return
	}

	mq.Emit(r.Context(), mq.ContentEvent{EntityType: "colleges", Method: "updated", EntityID: id})
	utils.SendSuccess(w, http.StatusOK, "College updated", college)
}

// DeleteCollege is an unconditional hard delete by id.
func DeleteCollege(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	err := store.DB.DeleteCollege(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(w, http.StatusNotFound, "College not found")
		return
	}
	if err != nil {
		log.Printf("delete college failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to delete college")
		return
	}

	mq.Emit(r.Context(), mq.ContentEvent{EntityType: "colleges", Method: "deleted", EntityID: id})
	utils.SendSuccess(w, http.StatusOK, "College deleted", nil)
}
