package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/database"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/models"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/utils"

	"go.uber.org/zap"
)

// writeWebhookError answers the gateway with a deliberately generic error
// body. The callback is unauthenticated; nothing about ledger contents may
// leak here.
func writeWebhookError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "unable to process callback"})
}

// PayUWebhookHandler is the server-to-server payment callback. The gateway
// retries delivery on non-2xx, so every path through here must be safely
// re-enterable: the single UPDATE keyed by transaction_id makes reapplying
// the same callback a no-op.
//
// POST /v1/payments/webhook (form-encoded)
func PayUWebhookHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeWebhookError(w, http.StatusBadRequest)
		return
	}

	txnid := strings.TrimSpace(r.PostFormValue("txnid"))
	status := strings.TrimSpace(r.PostFormValue("status"))
	hash := strings.TrimSpace(r.PostFormValue("hash"))
	unmapped := strings.TrimSpace(r.PostFormValue("unmappedstatus"))
	errField := strings.TrimSpace(r.PostFormValue("error"))
	errMessage := strings.TrimSpace(r.PostFormValue("error_Message"))

	if txnid == "" || status == "" || hash == "" {
		utils.PayLog.Warn("webhook missing required fields",
			zap.Bool("has_txnid", txnid != ""),
			zap.Bool("has_status", status != ""),
			zap.Bool("has_hash", hash != ""))
		writeWebhookError(w, http.StatusBadRequest)
		return
	}

	cfg, err := utils.GetPayUConfig()
	if err != nil {
		utils.PayLog.Error("webhook received with gateway unconfigured", zap.Error(err))
		writeWebhookError(w, http.StatusInternalServerError)
		return
	}

	// Verify the checksum before trusting any other field. Fails closed: no
	// ledger mutation on mismatch.
	if !utils.VerifyResponseHash(cfg, hash, status, txnid,
		r.PostFormValue("amount"), r.PostFormValue("productinfo"),
		r.PostFormValue("firstname"), r.PostFormValue("email")) {
		utils.PayLog.Warn("webhook hash verification failed", zap.String("txnid", txnid))
		writeWebhookError(w, http.StatusBadRequest)
		return
	}

	errAny := errField
	if errAny == "" {
		errAny = errMessage
	}
	mapped, recognized := utils.MapGatewayStatus(status, unmapped, errAny)
	if !recognized {
		// Unknown vocabulary with no error indication: leave the row at
		// "initiated" and acknowledge so the gateway stops retrying.
		utils.PayLog.Info("webhook status unrecognized, row left unchanged",
			zap.String("txnid", txnid),
			zap.String("status", status),
			zap.String("unmappedstatus", unmapped))
		utils.WriteMessage(w, http.StatusOK, "Callback received")
		return
	}

	reason := status
	if errMessage != "" {
		reason = errMessage
	} else if errField != "" {
		reason = errField
	}

	// Single atomic UPDATE keyed by transaction_id. Concurrent deliveries for
	// the same transaction serialize on the row; different transactions need
	// no coordination.
	res := database.DB.Model(&models.Investment{}).
		Where("transaction_id = ?", txnid).
		Updates(map[string]interface{}{
			"transaction_status": mapped,
			"notes":              reason,
		})
	if res.Error != nil {
		utils.PayLog.Error("webhook ledger update failed", zap.String("txnid", txnid), zap.Error(res.Error))
		writeWebhookError(w, http.StatusInternalServerError)
		return
	}
	if res.RowsAffected == 0 {
		// Unknown transaction id: report generically and let the gateway
		// retry in case the initiation write is still in flight.
		utils.PayLog.Warn("webhook for unknown transaction", zap.String("txnid", txnid))
		writeWebhookError(w, http.StatusBadRequest)
		return
	}

	utils.PayLog.Info("webhook reconciled",
		zap.String("txnid", txnid),
		zap.String("gateway_status", status),
		zap.String("ledger_status", mapped))
	utils.WriteMessage(w, http.StatusOK, "Callback processed")
}
