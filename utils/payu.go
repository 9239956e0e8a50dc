package utils

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/models"
)

// Investment terms. Every direct purchase is units x UnitPrice; amounts are
// currency minor units throughout.
const (
	UnitPrice int64 = 30000
	MaxUnits        = 100
)

// PayUConfig holds the merchant credentials and return URLs for the hosted
// checkout. Loaded from env once per request; missing values are a config
// error, not a validation one.
type PayUConfig struct {
	MerchantKey string
	Salt        string
	BaseURL     string
	SuccessURL  string
	FailureURL  string
}

func GetPayUConfig() (PayUConfig, error) {
	key := os.Getenv("PAYU_MERCHANT_KEY")
	salt := os.Getenv("PAYU_MERCHANT_SALT")
	base := strings.TrimRight(os.Getenv("SITE_BASE_URL"), "/")
	if key == "" || salt == "" || base == "" {
		return PayUConfig{}, ErrGatewayConfig.WithErr(fmt.Errorf("PAYU_MERCHANT_KEY, PAYU_MERCHANT_SALT and SITE_BASE_URL are required"))
	}
	return PayUConfig{
		MerchantKey: key,
		Salt:        salt,
		BaseURL:     base,
		SuccessURL:  base + "/payment/success",
		FailureURL:  base + "/payment/failure",
	}, nil
}

// PayURequest is the form payload for PayU's hosted checkout. The caller (the
// browser) posts it to the gateway; the server never contacts the gateway at
// initiation.
type PayURequest struct {
	Key         string `json:"key"`
	TxnID       string `json:"txnid"`
	Amount      string `json:"amount"`
	ProductInfo string `json:"productinfo"`
	Firstname   string `json:"firstname"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	SURL        string `json:"surl"`
	FURL        string `json:"furl"`
	Hash        string `json:"hash"`
}

// FormatAmount renders minor units as the gateway's decimal string, e.g.
// 3000000 -> "30000.00".
func FormatAmount(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}

// RequestHash computes the PayU payment-request checksum:
// sha512(key|txnid|amount|productinfo|firstname|email|udf1..udf5||||||salt).
// The udf slots are unused and stay empty.
func RequestHash(cfg PayUConfig, txnid, amount, productinfo, firstname, email string) string {
	raw := strings.Join([]string{
		cfg.MerchantKey, txnid, amount, productinfo, firstname, email,
		"", "", "", "", "", // udf1..udf5
		"", "", "", "", "", // reserved
		cfg.Salt,
	}, "|")
	sum := sha512.Sum512([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// ResponseHash computes the checksum PayU sends with its callbacks. The field
// order is the reverse of the request hash with status spliced in:
// sha512(salt|status||||||udf5..udf1|email|firstname|productinfo|amount|txnid|key).
func ResponseHash(cfg PayUConfig, status, txnid, amount, productinfo, firstname, email string) string {
	raw := strings.Join([]string{
		cfg.Salt, status,
		"", "", "", "", "", // reserved
		"", "", "", "", "", // udf5..udf1
		email, firstname, productinfo, amount, txnid, cfg.MerchantKey,
	}, "|")
	sum := sha512.Sum512([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// VerifyResponseHash checks a callback's hash, case-insensitively on the hex
// digest. The reconciler must not trust any other callback field until this
// passes.
func VerifyResponseHash(cfg PayUConfig, got, status, txnid, amount, productinfo, firstname, email string) bool {
	want := ResponseHash(cfg, status, txnid, amount, productinfo, firstname, email)
	return strings.EqualFold(strings.TrimSpace(got), want)
}

// BuildPaymentRequest assembles the signed checkout payload for an initiated
// investment.
func BuildPaymentRequest(cfg PayUConfig, txnid string, amountMinor int64, projectName string, user *models.User) PayURequest {
	amount := FormatAmount(amountMinor)
	return PayURequest{
		Key:         cfg.MerchantKey,
		TxnID:       txnid,
		Amount:      amount,
		ProductInfo: projectName,
		Firstname:   user.Name,
		Email:       user.Email,
		Phone:       user.Phone,
		SURL:        cfg.SuccessURL,
		FURL:        cfg.FailureURL,
		Hash:        RequestHash(cfg, txnid, amount, projectName, user.Name, user.Email),
	}
}

// MapGatewayStatus translates PayU's status/unmappedstatus vocabulary to the
// ledger's. The boolean reports whether the callback carries a recognizable
// outcome at all: false means the row must be left untouched at "initiated".
func MapGatewayStatus(status, unmapped, errField string) (string, bool) {
	for _, s := range []string{status, unmapped} {
		switch strings.TrimSpace(s) {
		case "success", "captured":
			return models.StatusSuccess, true
		case "failure", "failed":
			return models.StatusFailure, true
		case "bounced":
			return models.StatusBounced, true
		case "userCancelled":
			return models.StatusCancelled, true
		case "userDropped":
			return models.StatusDropped, true
		case "auto_refund":
			return models.StatusAutoRefund, true
		case "refund_success":
			return models.StatusRefundSuccess, true
		case "refund_pending":
			return models.StatusRefundPending, true
		case "refund_failed":
			return models.StatusRefundFailed, true
		case "in_progress":
			return models.StatusInProgress, true
		}
	}
	// Unrecognized vocabulary: an error field present means the gateway is
	// reporting a failure it could not classify.
	if strings.TrimSpace(errField) != "" {
		return models.StatusFailure, true
	}
	return models.StatusInitiated, false
}

// IsSuccessfulStatus treats the legacy "completed" spelling as success on the
// read side. The reconciler itself only writes "success".
func IsSuccessfulStatus(status string) bool {
	return status == models.StatusSuccess || status == models.StatusCompleted
}
