package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"gradbridge/globals"
	"gradbridge/middleware"
	"gradbridge/models"
	"gradbridge/store"
	"gradbridge/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies an admin account and issues a 24h JWT.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.SendError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := store.DB.GetUserByUsername(r.Context(), req.Username)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		log.Printf("login: user lookup failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.SendError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := issueToken(user)
	if err != nil {
		log.Printf("login: token signing failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	utils.SendSuccess(w, http.StatusOK, "Logged in", utils.M{
		"token":    token,
		"username": user.Username,
		"role":     user.Role,
	})
}

// Logout exists for client symmetry; the token is simply discarded.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.SendSuccess(w, http.StatusOK, "Logged out", nil)
}

func issueToken(user models.User) (string, error) {
	claims := &middleware.Claims{
		Username: user.Username,
		UserID:   user.ID,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
}

// SeedAdmin creates the initial back-office account from ADMIN_USERNAME
// / ADMIN_PASSWORD when the users collection is empty.
func SeedAdmin() {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return
	}

	n, err := store.DB.CountUsers(globals.Ctx)
	if err != nil {
		log.Printf("seed admin: count failed: %v", err)
		return
	}
	if n > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seed admin: bcrypt failed: %v", err)
		return
	}

	user := models.User{
		ID:           utils.GenerateID(16),
		Username:     username,
		PasswordHash: string(hash),
		Role:         "admin",
		CreatedAt:    time.Now(),
	}
	if err := store.DB.CreateUser(globals.Ctx, user); err != nil {
		log.Printf("seed admin: insert failed: %v", err)
		return
	}
	log.Printf("Seeded admin account %q", username)
}
