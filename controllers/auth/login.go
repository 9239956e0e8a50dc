package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/database"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/models"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	IsApp    bool   `json:"is_app"`
}

// POST /v1/login
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Not valid JSON"))
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := utils.ValidateStruct(&req); err != nil {
		utils.WriteError(w, err)
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, utils.ErrAuthentication.WithMessage("Invalid email or password"))
			return
		}
		log.Printf("[login] DB error: %v", err)
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.WriteError(w, utils.ErrAuthentication.WithMessage("Invalid email or password"))
		return
	}

	if !strings.EqualFold(user.Status, "Active") {
		utils.WriteError(w, utils.ErrAuthentication.WithMessage("Account is disabled"))
		return
	}

	expiry := 15 * time.Minute
	if req.IsApp {
		expiry = 30 * 24 * time.Hour
	}
	accessToken, err := utils.GenerateAccessTokenWithExpiry(user.ID, "user", expiry)
	if err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}
	refreshID, _, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Login successful",
		Data: map[string]interface{}{
			"user":          user,
			"access_token":  accessToken,
			"refresh_token": refreshID,
		},
	})
}
