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

	"github.com/go-sql-driver/mysql"
)

var projectStatuses = map[string]bool{
	models.ProjectActive:    true,
	models.ProjectUpcoming:  true,
	models.ProjectCompleted: true,
}

var projectCategories = map[string]bool{
	models.CategoryPreSeed:          true,
	models.CategorySeed:             true,
	models.CategoryPostSeed:         true,
	models.CategoryRevenueBased:     true,
	models.CategoryConvertibleNotes: true,
	models.CategorySAFEs:            true,
	models.CategoryEquityCrowdfund:  true,
}

type ProjectRequest struct {
	Name      string `json:"name" validate:"required,max=191"`
	Status    string `json:"status" validate:"required"`
	Category  string `json:"category" validate:"required"`
	StartDate string `json:"start_date"` // RFC 3339
}

// POST /v1/manage/projects
func CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Not valid JSON"))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := utils.ValidateStruct(&req); err != nil {
		utils.WriteError(w, err)
		return
	}
	if !projectStatuses[req.Status] {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Unknown project status"))
		return
	}
	if !projectCategories[req.Category] {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Unknown category"))
		return
	}

	project := models.Project{Name: req.Name, Status: req.Status, Category: req.Category}
	if req.StartDate != "" {
		t, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			utils.WriteError(w, utils.ErrValidation.WithMessage("start_date must be RFC 3339"))
			return
		}
		project.StartDate = t
	}

	if err := database.DB.Create(&project).Error; err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Project name already exists"})
			return
		}
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Project created", Data: project})
}

type UpdateProjectRequest struct {
	Status    *string `json:"status"`
	Category  *string `json:"category"`
	StartDate *string `json:"start_date"`
}

// PUT /v1/manage/projects/{id}
//
// Name is not editable: the ledger links to projects by name, so renaming
// would silently detach every historical row.
func UpdateProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Invalid id"))
		return
	}

	var req UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Not valid JSON"))
		return
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		if !projectStatuses[*req.Status] {
			utils.WriteError(w, utils.ErrValidation.WithMessage("Unknown project status"))
			return
		}
		updates["status"] = *req.Status
	}
	if req.Category != nil {
		if !projectCategories[*req.Category] {
			utils.WriteError(w, utils.ErrValidation.WithMessage("Unknown category"))
			return
		}
		updates["category"] = *req.Category
	}
	if req.StartDate != nil {
		t, err := time.Parse(time.RFC3339, *req.StartDate)
		if err != nil {
			utils.WriteError(w, utils.ErrValidation.WithMessage("start_date must be RFC 3339"))
			return
		}
		updates["start_date"] = t
	}
	if len(updates) == 0 {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Nothing to update"))
		return
	}

	res := database.DB.Model(&models.Project{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(res.Error))
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteError(w, utils.ErrNotFound.WithMessage("Project not found"))
		return
	}

	var row models.Project
	if err := database.DB.First(&row, id).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Project updated", Data: row})
}

// GET /v1/manage/projects
func ListProjectsHandler(w http.ResponseWriter, r *http.Request) {
	var rows []models.Project
	if err := database.DB.Order("name ASC").Find(&rows).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: rows})
}
