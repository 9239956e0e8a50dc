package admins

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/database"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/models"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/utils"
)

type UpdateProofRequest struct {
	TransactionDetails *string `json:"transaction_details"`
	TransactionDate    *string `json:"transaction_date"` // RFC 3339
	Amount             *int64  `json:"amount"`
	PaymentMode        *string `json:"payment_mode"`
}

// PUT /v1/manage/proofs/{id}
//
// Edits metadata only. The stored file and its URL are immutable evidence;
// there is deliberately no way to swap the object behind a proof.
func UpdateProofHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Invalid id"))
		return
	}

	var req UpdateProofRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Not valid JSON"))
		return
	}

	updates := map[string]interface{}{}
	if req.TransactionDetails != nil {
		updates["transaction_details"] = strings.TrimSpace(*req.TransactionDetails)
	}
	if req.TransactionDate != nil {
		t, err := time.Parse(time.RFC3339, *req.TransactionDate)
		if err != nil {
			utils.WriteError(w, utils.ErrValidation.WithMessage("transaction_date must be RFC 3339"))
			return
		}
		updates["transaction_date"] = t
	}
	if req.Amount != nil {
		if *req.Amount < 0 {
			utils.WriteError(w, utils.ErrValidation.WithMessage("Amount cannot be negative"))
			return
		}
		updates["amount"] = *req.Amount
	}
	if req.PaymentMode != nil {
		if !paymentModes[*req.PaymentMode] {
			utils.WriteError(w, utils.ErrValidation.WithMessage("Unknown payment mode"))
			return
		}
		updates["payment_mode"] = *req.PaymentMode
	}
	if len(updates) == 0 {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Nothing to update"))
		return
	}

	res := database.DB.Model(&models.TransactionProof{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(res.Error))
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteError(w, utils.ErrNotFound.WithMessage("Proof not found"))
		return
	}

	var row models.TransactionProof
	if err := database.DB.First(&row, id).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Proof updated", Data: row})
}

// DELETE /v1/manage/proofs/{id}
//
// Removes the metadata row only. The stored object is kept for audit; orphan
// cleanup is an offline concern.
func DeleteProofHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Invalid id"))
		return
	}

	res := database.DB.Delete(&models.TransactionProof{}, id)
	if res.Error != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(res.Error))
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteError(w, utils.ErrNotFound.WithMessage("Proof not found"))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Proof deleted"})
}

// GET /v1/manage/proofs?investment_id=N
func ListProofsHandler(w http.ResponseWriter, r *http.Request) {
	query := database.DB.Order("id DESC")
	if invID := strings.TrimSpace(r.URL.Query().Get("investment_id")); invID != "" {
		query = query.Where("investment_id = ?", invID)
	}
	var rows []models.TransactionProof
	if err := query.Limit(200).Find(&rows).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: rows})
}
