package admins

import (
	"net/http"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/database"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/models"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/utils"
)

// DashboardHandler aggregates the whole ledger the same way the member
// portfolio view does, just unscoped, plus a few headline counts.
//
// GET /v1/manage/dashboard
func DashboardHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	var rows []models.Investment
	if err := db.Find(&rows).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	var projects []models.Project
	if err := db.Find(&projects).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}
	index := make(map[string]models.Project, len(projects))
	for _, p := range projects {
		index[p.Name] = p
	}

	var memberCount, pendingKYC int64
	if err := db.Model(&models.User{}).Count(&memberCount).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}
	if err := db.Model(&models.User{}).Where("kyc_status = ?", models.KYCSubmitted).Count(&pendingKYC).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	summary := utils.SummarizePortfolio(rows, index)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"portfolio":   summary,
			"members":     memberCount,
			"pending_kyc": pendingKYC,
			"projects":    len(projects),
		},
	})
}
