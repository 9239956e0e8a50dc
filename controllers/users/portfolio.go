package users

import (
	"net/http"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/database"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/models"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/utils"
)

// PortfolioHandler reduces the member's ledger rows into display totals.
//
// GET /v1/users/portfolio
func PortfolioHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, utils.ErrAuthentication)
		return
	}

	db := database.DB
	var rows []models.Investment
	if err := db.Where("user_id = ?", uid).Find(&rows).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	projects, err := loadProjectIndex(rows)
	if err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	summary := utils.SummarizePortfolio(rows, projects)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: summary})
}

// loadProjectIndex resolves the names referenced by a set of ledger rows into
// their project reference rows.
func loadProjectIndex(rows []models.Investment) (map[string]models.Project, error) {
	names := make([]string, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for i := range rows {
		if !seen[rows[i].ProjectName] {
			seen[rows[i].ProjectName] = true
			names = append(names, rows[i].ProjectName)
		}
	}

	index := make(map[string]models.Project, len(names))
	if len(names) == 0 {
		return index, nil
	}
	var projects []models.Project
	if err := database.DB.Where("name IN ?", names).Find(&projects).Error; err != nil {
		return nil, err
	}
	for _, p := range projects {
		index[p.Name] = p
	}
	return index, nil
}
