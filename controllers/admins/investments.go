package admins

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/database"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/models"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

var paymentModes = map[string]bool{
	models.PaymentModeBankTransfer: true,
	models.PaymentModeUPI:          true,
	models.PaymentModeCard:         true,
	models.PaymentModeCash:         true,
	models.PaymentModeOther:        true,
}

var investmentTypes = map[string]bool{
	models.TypeInvestment: true,
	models.TypeFollowOn:   true,
	models.TypePayout:     true,
}

// Statuses a manual entry may carry. "completed" is absent: it is a legacy
// read-side alias and no writer may produce it.
var transactionStatuses = map[string]bool{
	models.StatusInitiated:     true,
	models.StatusSuccess:       true,
	models.StatusFailure:       true,
	models.StatusBounced:       true,
	models.StatusCancelled:     true,
	models.StatusDropped:       true,
	models.StatusAutoRefund:    true,
	models.StatusRefundSuccess: true,
	models.StatusRefundPending: true,
	models.StatusRefundFailed:  true,
	models.StatusInProgress:    true,
}

type CreateInvestmentRequest struct {
	UserID         uint   `json:"user_id" validate:"required"`
	ProjectName    string `json:"project_name" validate:"required,max=191"`
	InvestmentType string `json:"investment_type" validate:"required"`
	Units          int    `json:"units"`
	Amount         *int64 `json:"amount"`
	Notes          string `json:"notes" validate:"max=2000"`
	PaymentMode    string `json:"payment_mode" validate:"required"`
	InvestmentDate string `json:"investment_date"` // RFC 3339 date, defaults to now
	Status         string `json:"status"`
}

// CreateInvestmentHandler records an offline investment on behalf of a member.
// Unlike member-initiated rows there is no gateway round trip: the amount may
// be set directly (payouts and negotiated tickets), the status defaults to
// success, and no transaction id is assigned.
//
// POST /v1/manage/investments
func CreateInvestmentHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Not valid JSON"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.WriteError(w, err)
		return
	}
	if !investmentTypes[req.InvestmentType] {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Unknown investment type"))
		return
	}
	if !paymentModes[req.PaymentMode] {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Unknown payment mode"))
		return
	}
	status := models.StatusSuccess
	if req.Status != "" {
		if !transactionStatuses[req.Status] {
			utils.WriteError(w, utils.ErrValidation.WithMessage("Unknown transaction status"))
			return
		}
		status = req.Status
	}

	db := database.DB

	var user models.User
	if err := db.Select("id").Where("id = ?", req.UserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, utils.ErrValidation.WithMessage("Unknown user"))
			return
		}
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	var project models.Project
	if err := db.Where("name = ?", strings.TrimSpace(req.ProjectName)).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, utils.ErrValidation.WithMessage("Unknown project"))
			return
		}
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	var amount int64
	switch {
	case req.Amount != nil:
		if *req.Amount < 0 {
			utils.WriteError(w, utils.ErrValidation.WithMessage("Amount cannot be negative"))
			return
		}
		amount = *req.Amount
	case req.Units >= 1 && req.Units <= utils.MaxUnits:
		amount = int64(req.Units) * utils.UnitPrice
	default:
		utils.WriteError(w, utils.ErrValidation.WithMessage("Either amount or a valid unit count is required"))
		return
	}

	invDate := time.Now()
	if req.InvestmentDate != "" {
		t, err := time.Parse(time.RFC3339, req.InvestmentDate)
		if err != nil {
			utils.WriteError(w, utils.ErrValidation.WithMessage("investment_date must be RFC 3339"))
			return
		}
		invDate = t
	}

	inv := models.Investment{
		UserID:            req.UserID,
		ProjectName:       project.Name,
		InvestmentType:    req.InvestmentType,
		Category:          project.Category,
		Units:             req.Units,
		Amount:            amount,
		TransactionStatus: status,
		PaymentMode:       req.PaymentMode,
		InvestmentDate:    invDate,
	}
	if n := strings.TrimSpace(req.Notes); n != "" {
		inv.Notes = &n
	}
	if err := db.Create(&inv).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Investment recorded", Data: inv})
}

type UpdateInvestmentRequest struct {
	Notes       *string `json:"notes"`
	PaymentMode *string `json:"payment_mode"`
	Amount      *int64  `json:"amount"`
}

// PUT /v1/manage/investments/{id}
//
// Only bookkeeping fields are editable. Transaction id and status stay under
// the reconciler's ownership so a manual edit can never mask a gateway
// outcome.
func UpdateInvestmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Invalid id"))
		return
	}

	var req UpdateInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Not valid JSON"))
		return
	}

	updates := map[string]interface{}{}
	if req.Notes != nil {
		updates["notes"] = strings.TrimSpace(*req.Notes)
	}
	if req.PaymentMode != nil {
		if !paymentModes[*req.PaymentMode] {
			utils.WriteError(w, utils.ErrValidation.WithMessage("Unknown payment mode"))
			return
		}
		updates["payment_mode"] = *req.PaymentMode
	}
	if req.Amount != nil {
		if *req.Amount < 0 {
			utils.WriteError(w, utils.ErrValidation.WithMessage("Amount cannot be negative"))
			return
		}
		updates["amount"] = *req.Amount
	}
	if len(updates) == 0 {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Nothing to update"))
		return
	}

	res := database.DB.Model(&models.Investment{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(res.Error))
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteError(w, utils.ErrNotFound.WithMessage("Investment not found"))
		return
	}

	var row models.Investment
	if err := database.DB.First(&row, id).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Investment updated", Data: row})
}

// GET /v1/manage/investments
func ListInvestmentsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 20
	}
	search := strings.TrimSpace(q.Get("search"))
	status := strings.TrimSpace(q.Get("status"))

	filtered := func(db *gorm.DB) *gorm.DB {
		if search != "" {
			db = db.Where("project_name LIKE ? OR transaction_id LIKE ?", "%"+search+"%", "%"+search+"%")
		}
		if uid, _ := strconv.Atoi(q.Get("user_id")); uid > 0 {
			db = db.Where("user_id = ?", uid)
		}
		if status != "" {
			db = db.Where("transaction_status = ?", status)
		}
		return db
	}

	var totalRows int64
	if err := filtered(database.DB.Model(&models.Investment{})).Count(&totalRows).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	var rows []models.Investment
	if err := filtered(database.DB).Order("id DESC").Limit(limit).Offset((page - 1) * limit).Find(&rows).Error; err != nil {
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

func pathID(r *http.Request) (uint, error) {
	id64, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id64 == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id64), nil
}
