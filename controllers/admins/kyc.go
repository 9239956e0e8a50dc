package admins

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/database"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/models"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/utils"
)

// GET /v1/manage/kyc lists members awaiting review.
func ListKYCHandler(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status == "" {
		status = models.KYCSubmitted
	}
	var users []models.User
	if err := database.DB.
		Select("id, name, email, phone, kyc_status, kyc_document_url, kyc_note").
		Where("kyc_status = ?", status).
		Order("id ASC").Limit(200).Find(&users).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: users})
}

type ReviewKYCRequest struct {
	Action string `json:"action" validate:"required,oneof=verify reject"`
	Note   string `json:"note" validate:"max=2000"`
}

// PUT /v1/manage/kyc/{id}
//
// Review is only valid from the submitted state; the guard is in the WHERE
// clause so two reviewers racing on the same member cannot both win.
func ReviewKYCHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Invalid id"))
		return
	}

	var req ReviewKYCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Not valid JSON"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.WriteError(w, err)
		return
	}
	if req.Action == "reject" && strings.TrimSpace(req.Note) == "" {
		utils.WriteError(w, utils.ErrValidation.WithMessage("A note is required when rejecting"))
		return
	}

	newStatus := models.KYCVerified
	if req.Action == "reject" {
		newStatus = models.KYCRejected
	}
	updates := map[string]interface{}{"kyc_status": newStatus}
	if n := strings.TrimSpace(req.Note); n != "" {
		updates["kyc_note"] = n
	} else {
		updates["kyc_note"] = nil
	}

	res := database.DB.Model(&models.User{}).
		Where("id = ? AND kyc_status = ?", id, models.KYCSubmitted).
		Updates(updates)
	if res.Error != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(res.Error))
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteError(w, utils.ErrNotFound.WithMessage("No submitted KYC for this user"))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "KYC " + newStatus,
		Data:    map[string]interface{}{"user_id": id, "kyc_status": newStatus},
	})
}
