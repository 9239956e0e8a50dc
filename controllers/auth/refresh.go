package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/database"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/models"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/utils"

	"gorm.io/gorm"
)

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// POST /v1/refresh rotates the refresh token: the presented token is revoked
// and a fresh pair is issued inside one transaction, so a replayed token can
// never mint a second session.
func RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Not valid JSON"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.WriteError(w, err)
		return
	}

	rt, err := utils.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		utils.WriteError(w, utils.ErrAuthentication.WithMessage("Invalid or expired refresh token"))
		return
	}

	newRT, err := models.NewRefreshToken(rt.UserID, 30)
	if err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.RefreshToken{}).
			Where("id = ? AND revoked = ?", rt.ID, false).
			Update("revoked", true).Error; err != nil {
			return err
		}
		return tx.Create(newRT).Error
	})
	if err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	accessToken, err := utils.GenerateAccessTokenWithExpiry(rt.UserID, "user", 15*time.Minute)
	if err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Token refreshed",
		Data: map[string]interface{}{
			"access_token":  accessToken,
			"refresh_token": newRT.ID,
		},
	})
}
