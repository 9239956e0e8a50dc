package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/database"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/models"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/utils"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateInvestmentRequest struct {
	ProjectName string `json:"project_name" validate:"required,max=191"`
	Units       int    `json:"units" validate:"required"`
	Notes       string `json:"notes" validate:"max=2000"`
}

// CreateInvestmentHandler turns a purchase intent into a pending ledger row
// plus a signed hosted-checkout payload. The server never contacts the
// gateway here; the browser posts the returned payload itself and the webhook
// finalizes the outcome.
//
// POST /v1/users/investments
func CreateInvestmentHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, utils.ErrAuthentication)
		return
	}

	var req CreateInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Not valid JSON"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.WriteError(w, err)
		return
	}
	if req.Units < 1 || req.Units > utils.MaxUnits {
		utils.WriteError(w, utils.ErrValidation.WithMessage(
			fmt.Sprintf("units must be between 1 and %d", utils.MaxUnits)))
		return
	}

	db := database.DB

	var project models.Project
	if err := db.Where("name = ?", strings.TrimSpace(req.ProjectName)).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, utils.ErrValidation.WithMessage("Unknown project"))
			return
		}
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	cfg, err := utils.GetPayUConfig()
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var user models.User
	if err := db.Select("id, name, email, phone").Where("id = ?", uid).First(&user).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	amount := int64(req.Units) * utils.UnitPrice
	now := time.Now()
	inv := models.Investment{
		UserID:            uid,
		ProjectName:       project.Name,
		InvestmentType:    models.TypeInvestment,
		Category:          project.Category,
		Units:             req.Units,
		Amount:            amount,
		TransactionStatus: models.StatusInitiated,
		PaymentMode:       models.PaymentModeCard,
		InvestmentDate:    now,
	}
	if n := strings.TrimSpace(req.Notes); n != "" {
		inv.Notes = &n
	}

	if err := db.Create(&inv).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	// The txn id is derived from the row id, so it can only be assigned after
	// the insert. A crash between insert and update leaves a row with a nil
	// transaction id that no webhook can ever touch - same bucket as an
	// abandoned checkout.
	txnid := utils.GenerateTxnID(inv.ID)
	if err := db.Model(&inv).Update("transaction_id", txnid).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	payload := utils.BuildPaymentRequest(cfg, txnid, amount, project.Name, &user)

	utils.PayLog.Info("investment initiated",
		zap.Uint("investment_id", inv.ID),
		zap.Uint("user_id", uid),
		zap.String("project", project.Name),
		zap.String("txnid", txnid),
		zap.Int64("amount", amount))

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Investment initiated, redirect to checkout",
		Data: map[string]interface{}{
			"investment_id": inv.ID,
			"payment":       payload,
		},
	})
}

// GET /v1/users/investments
func ListInvestmentsHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, utils.ErrAuthentication)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	db := database.DB
	countQuery := db.Model(&models.Investment{}).Where("user_id = ?", uid)
	if search != "" {
		countQuery = countQuery.Where("project_name LIKE ? OR transaction_id LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	var totalRows int64
	if err := countQuery.Count(&totalRows).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	var rows []models.Investment
	query := db.Where("user_id = ?", uid)
	if search != "" {
		query = query.Where("project_name LIKE ? OR transaction_id LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if err := query.Order("id DESC").Limit(limit).Offset((page - 1) * limit).Find(&rows).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"data": rows,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total_rows":  totalRows,
				"total_pages": int(math.Ceil(float64(totalRows) / float64(limit))),
			},
		},
	})
}

// GET /v1/users/investments/{id}
func GetInvestmentHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, utils.ErrAuthentication)
		return
	}
	id64, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id64 == 0 {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Invalid id"))
		return
	}

	var row models.Investment
	if err := database.DB.Where("id = ? AND user_id = ?", uint(id64), uid).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, utils.ErrNotFound.WithMessage("Investment not found"))
			return
		}
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: row})
}
