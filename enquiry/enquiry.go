package enquiry

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"gradbridge/models"
	"gradbridge/store"
	"gradbridge/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

var mailer = NewMailer()

type enquiryRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Number string `json:"number"`
	City   string `json:"city"`
}

// Submit accepts the contact-modal form, persists the enquiry and
// forwards it by mail. The mail send is attempted once; a failure comes
// back as a generic error, never a retry loop.
func Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req enquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var violations []string
	if strings.TrimSpace(req.Name) == "" {
		violations = append(violations, "name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		violations = append(violations, "email is required")
	} else if !utils.IsValidEmail(req.Email) {
		violations = append(violations, "email is not valid")
	}
	if strings.TrimSpace(req.Number) == "" {
		violations = append(violations, "number is required")
	}
	if strings.TrimSpace(req.City) == "" {
		violations = append(violations, "city is required")
	}
	if len(violations) > 0 {
		utils.SendErrorDetail(w, http.StatusBadRequest, "Validation failed", strings.Join(violations, "; "))
		return
	}

	e := models.Enquiry{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Number:    strings.TrimSpace(req.Number),
		City:      strings.TrimSpace(req.City),
		CreatedAt: time.Now(),
	}

	if err := store.DB.CreateEnquiry(r.Context(), e); err != nil {
		log.Printf("enquiry insert failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to submit enquiry")
		return
	}

	if mailer.IsConfigured() {
		if err := mailer.SendEnquiry(e); err != nil {
			log.Printf("enquiry mail failed: %v", err)
			utils.SendError(w, http.StatusInternalServerError, "Failed to submit enquiry")
			return
		}
	} else {
		log.Printf("SMTP not configured; enquiry %s stored without notification", e.ID)
	}

	utils.SendSuccess(w, http.StatusCreated, "Enquiry submitted", utils.M{"id": e.ID})
}
