package exams

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

var validExamTypes = []string{
	models.ExamTypeNational, models.ExamTypeState,
	models.ExamTypeUniversity, models.ExamTypeInternational,
}

var validExamModes = []string{
	models.ExamModeOnline, models.ExamModeOffline, models.ExamModeHybrid,
}

type examRequest struct {
	Name              *string                   `json:"name"`
	Slug              *string                   `json:"slug"`
	ShortName         *string                   `json:"short_name"`
	ExamType          *string                   `json:"exam_type"`
	ConductingBody    *string                   `json:"conducting_body"`
	ExamMode          *string                   `json:"exam_mode"`
	Frequency         *string                   `json:"frequency"`
	Description       *string                   `json:"description"`
	Countries         []string                  `json:"countries"` // country slugs
	Hero              *models.ExamHero          `json:"hero"`
	RegistrationSteps []models.RegistrationStep `json:"registration_steps"`
	Pattern           []models.PatternRow       `json:"pattern"`
	ImportantDates    []models.ImportantDate    `json:"important_dates"`
	ResultStats       []models.ResultStat       `json:"result_stats"`
	DisplayOrder      *int                      `json:"display_order"`
	IsActive          *bool                     `json:"is_active"`
}

func (req *examRequest) apply(e *models.Exam) {
	if req.Name != nil {
		e.Name = strings.TrimSpace(*req.Name)
	}
	if req.ShortName != nil {
		e.ShortName = *req.ShortName
	}
	if req.ExamType != nil {
		e.ExamType = *req.ExamType
	}
	if req.ConductingBody != nil {
		e.ConductingBody = *req.ConductingBody
	}
	if req.ExamMode != nil {
		e.ExamMode = *req.ExamMode
	}
	if req.Frequency != nil {
		e.Frequency = *req.Frequency
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Hero != nil {
		e.Hero = req.Hero
	}
	if req.RegistrationSteps != nil {
		e.RegistrationSteps = req.RegistrationSteps
	}
	if req.Pattern != nil {
		e.Pattern = req.Pattern
	}
	if req.ImportantDates != nil {
		e.ImportantDates = req.ImportantDates
	}
	if req.ResultStats != nil {
		e.ResultStats = req.ResultStats
	}
	if req.DisplayOrder != nil {
		e.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
}

func validateExam(e *models.Exam) []string {
	var violations []string
	if strings.TrimSpace(e.Name) == "" {
		violations = append(violations, "name is required")
	}
	if e.ExamType == "" || !utils.Contains(validExamTypes, e.ExamType) {
		violations = append(violations, "exam_type must be one of "+strings.Join(validExamTypes, ", "))
	}
	if e.ExamMode == "" || !utils.Contains(validExamModes, e.ExamMode) {
		violations = append(violations, "exam_mode must be one of "+strings.Join(validExamModes, ", "))
	}
	return violations
}

// resolveCountrySlugs maps submitted country slugs to internal ids,
// rejecting unknown ones with the list of valid slugs.
func resolveCountrySlugs(r *http.Request, slugs []string) ([]string, string, error) {
	var ids []string
	for _, slug := range slugs {
		country, err := store.DB.GetCountryBySlug(r.Context(), slug, false)
		if errors.Is(err, store.ErrNotFound) {
			valid, err := store.DB.ActiveCountrySlugs(r.Context())
			if err != nil {
				return nil, "", err
			}
			return nil, "no country matches \"" + slug + "\"; valid country slugs: " + strings.Join(valid, ", "), nil
		}
		if err != nil {
			return nil, "", err
		}
		ids = append(ids, country.ID)
	}
	return ids, "", nil
}

// AdminListExams lists every exam, inactive ones included.
func AdminListExams(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	offset, limit := utils.ParsePagination(r)
	page, err := store.DB.ListExams(r.Context(), store.ExamFilter{
		Search:   r.URL.Query().Get("search"),
		ExamType: r.URL.Query().Get("examType"),
		SortBy:   r.URL.Query().Get("sort"),
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		log.Printf("admin list exams failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch exams")
		return
	}
	utils.SendSuccess(w, http.StatusOK, "Exams fetched", page)
}

// AdminGetExam returns an exam by slug regardless of is_active.
func AdminGetExam(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	exam, err := store.DB.GetExamBySlug(r.Context(), ps.ByName("slug"), false)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(w, http.StatusNotFound, "Exam not found")
		return
	}
	if err != nil {
		log.Printf("admin get exam failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch exam")
		return
	}
	utils.SendSuccess(w, http.StatusOK, "Exam fetched", exam)
}

// CreateExam inserts a new exam after validation and country-slug
// resolution.
func CreateExam(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req examRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	now := time.Now()
	exam := models.Exam{
		ID:        utils.GenerateID(16),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.apply(&exam)

	if violations := validateExam(&exam); len(violations) > 0 {
		utils.SendErrorDetail(w, http.StatusBadRequest, "Validation failed", strings.Join(violations, "; "))
		return
	}

	if len(req.Countries) > 0 {
		ids, miss, err := resolveCountrySlugs(r, req.Countries)
		if err != nil {
			log.Printf("create exam: country resolution failed: %v", err)
			utils.SendError(w, http.StatusInternalServerError, "Failed to create exam")
			return
		}
		if miss != "" {
			utils.SendErrorDetail(w, http.StatusBadRequest, "Unknown country", miss)
			return
		}
		exam.CountryRefs = ids
	}

	exam.Slug = utils.Slugify(exam.Name)
	if req.Slug != nil && *req.Slug != "" {
		exam.Slug = utils.Slugify(*req.Slug)
	}
	exists, err := store.DB.ExamSlugExists(r.Context(), exam.Slug, "")
	if err != nil {
		log.Printf("create exam: slug check failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to create exam")
		return
	}
	if exists {
		utils.SendError(w, http.StatusConflict, "An exam with this slug already exists")
		return
	}

	if err := store.DB.CreateExam(r.Context(), exam); err != nil {
		log.Printf("create exam failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to create exam")
		return
	}

	mq.Emit(r.Context(), mq.ContentEvent{EntityType: "exams", Method: "created", EntityID: exam.ID})
	utils.SendSuccess(w, http.StatusCreated, "Exam created", exam)
}

// EditExam applies a partial update with the same validation envelope.
func EditExam(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	exam, err := store.DB.GetExamByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(w, http.StatusNotFound, "Exam not found")
		return
	}
	if err != nil {
		log.Printf("edit exam: lookup failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to update exam")
		return
	}

	var req examRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.apply(&exam)

	if violations := validateExam(&exam); len(violations) > 0 {
		utils.SendErrorDetail(w, http.StatusBadRequest, "Validation failed", strings.Join(violations, "; "))
		return
	}

	if req.Countries != nil {
		ids, miss, err := resolveCountrySlugs(r, req.Countries)
		if err != nil {
			log.Printf("edit exam: country resolution failed: %v", err)
			utils.SendError(w, http.StatusInternalServerError, "Failed to update exam")
			return
		}
		if miss != "" {
			utils.SendErrorDetail(w, http.StatusBadRequest, "Unknown country", miss)
			return
		}
		exam.CountryRefs = ids
	}

	if req.Slug != nil && utils.Slugify(*req.Slug) != exam.Slug {
		newSlug := utils.Slugify(*req.Slug)
		exists, err := store.DB.ExamSlugExists(r.Context(), newSlug, id)
		if err != nil {
			log.Printf("edit exam: slug check failed: %v", err)
			utils.SendError(w, http.StatusInternalServerError, "Failed to update exam")
			return
		}
		if exists {
			utils.SendError(w, http.StatusConflict, "An exam with this slug already exists")
			return
		}
		exam.Slug = newSlug
	}

	exam.UpdatedAt = time.Now()
	if err := store.DB.UpdateExam(r.Context(), id, exam); err != nil {
		log.Printf("edit exam failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to update exam")
		return
	}

	mq.Emit(r.Context(), mq.ContentEvent{EntityType: "exams", Method: "updated", EntityID: id})
	utils.SendSuccess(w, http.StatusOK, "Exam updated", exam)
}

// DeleteExam is an unconditional hard delete by id.
func DeleteExam(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	err := store.DB.DeleteExam(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(w, http.StatusNotFound, "Exam not found")
		return
	}
	if err != nil {
		log.Printf("delete exam failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to delete exam")
		return
	}

	mq.Emit(r.Context(), mq.ContentEvent{EntityType: "exams", Method: "deleted", EntityID: id})
	utils.SendSuccess(w, http.StatusOK, "Exam deleted", nil)
}
