package controllers

import (
	"net/http"
	"strings"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/database"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/models"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/utils"
)

// ListProjectsHandler is the public project catalogue shown before login.
//
// GET /v1/projects
func ListProjectsHandler(w http.ResponseWriter, r *http.Request) {
	query := database.DB.Order("start_date DESC, name ASC")
	if status := strings.TrimSpace(r.URL.Query().Get("status")); status != "" {
		query = query.Where("status = ?", status)
	}

	var rows []models.Project
	if err := query.Find(&rows).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: rows})
}
