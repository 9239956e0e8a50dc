package admins

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/database"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/models"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/utils"

	"gorm.io/gorm"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// POST /v1/manage/login
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Not valid JSON"))
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := utils.ValidateStruct(&req); err != nil {
		utils.WriteError(w, err)
		return
	}

	var admin models.Admin
	if err := database.DB.Where("username = ?", req.Username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, utils.ErrAuthentication.WithMessage("Invalid username or password"))
			return
		}
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}
	if !admin.ValidatePassword(req.Password) {
		utils.WriteError(w, utils.ErrAuthentication.WithMessage("Invalid username or password"))
		return
	}
	if !admin.IsActive {
		utils.WriteError(w, utils.ErrAuthentication.WithMessage("Account is disabled"))
		return
	}

	token, err := utils.GenerateAccessTokenWithExpiry(uint(admin.ID), "admin", 8*time.Hour)
	if err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Login successful",
		Data: map[string]interface{}{
			"admin":        admin,
			"access_token": token,
		},
	})
}
