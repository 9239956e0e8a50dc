package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/database"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/utils"

	"github.com/DATA-DOG/go-sqlmock"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func postCallback(t *testing.T, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/payments/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	PayUWebhookHandler(rr, req)
	return rr
}

func setGatewayEnv(t *testing.T) utils.PayUConfig {
	t.Helper()
	t.Setenv("PAYU_MERCHANT_KEY", "gtKFFx")
	t.Setenv("PAYU_MERCHANT_SALT", "eCwWELxi")
	t.Setenv("SITE_BASE_URL", "https://portal.example.com")
	cfg, err := utils.GetPayUConfig()
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestWebhookMissingFields(t *testing.T) {
	setGatewayEnv(t)
	cases := []url.Values{
		{},
		{"txnid": {"PM-1-1"}},
		{"txnid": {"PM-1-1"}, "status": {"success"}},
		{"status": {"success"}, "hash": {"deadbeef"}},
	}
	for i, form := range cases {
		rr := postCallback(t, form)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("case %d: status = %d, want 400", i, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "unable to process callback") {
			t.Errorf("case %d: body must stay generic, got %q", i, rr.Body.String())
		}
	}
}

func TestWebhookBadHash(t *testing.T) {
	setGatewayEnv(t)
	form := url.Values{
		"txnid":       {"PM-1-1700000000"},
		"status":      {"success"},
		"amount":      {"30000.00"},
		"productinfo": {"Aurora Robotics"},
		"firstname":   {"Asha"},
		"email":       {"asha@example.com"},
		"hash":        {strings.Repeat("ab", 64)},
	}
	rr := postCallback(t, form)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("forged hash: status = %d, want 400", rr.Code)
	}
}

func TestWebhookTamperedAmount(t *testing.T) {
	cfg := setGatewayEnv(t)
	// Hash computed over the real amount, then the form reports a different
	// one. Verification covers the reported fields, so this must be rejected.
	good := utils.ResponseHash(cfg, "success", "PM-1-1700000000", "30000.00", "Aurora Robotics", "Asha", "asha@example.com")
	form := url.Values{
		"txnid":       {"PM-1-1700000000"},
		"status":      {"success"},
		"amount":      {"1.00"},
		"productinfo": {"Aurora Robotics"},
		"firstname":   {"Asha"},
		"email":       {"asha@example.com"},
		"hash":        {good},
	}
	rr := postCallback(t, form)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("tampered amount: status = %d, want 400", rr.Code)
	}
}

func TestWebhookUnrecognizedStatusAcked(t *testing.T) {
	cfg := setGatewayEnv(t)
	// A valid callback whose vocabulary is unknown and carries no error field
	// is acknowledged without touching the ledger, so the gateway stops
	// retrying. No database fixture needed; the handler returns before any
	// query.
	hash := utils.ResponseHash(cfg, "mystery", "PM-1-1700000000", "30000.00", "Aurora Robotics", "Asha", "asha@example.com")
	form := url.Values{
		"txnid":       {"PM-1-1700000000"},
		"status":      {"mystery"},
		"amount":      {"30000.00"},
		"productinfo": {"Aurora Robotics"},
		"firstname":   {"Asha"},
		"email":       {"asha@example.com"},
		"hash":        {hash},
	}
	rr := postCallback(t, form)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Callback received") {
		t.Errorf("body = %q, want the received-not-processed ack", rr.Body.String())
	}
}

// newMockLedger swaps database.DB for a sqlmock-backed gorm handle for the
// duration of one test.
func newMockLedger(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	gdb, err := gorm.Open(gormmysql.New(gormmysql.Config{Conn: db, SkipInitializeWithVersion: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	prev := database.DB
	database.DB = gdb
	t.Cleanup(func() {
		database.DB = prev
		db.Close()
	})
	return mock
}

func successCallback(cfg utils.PayUConfig, txnid string) url.Values {
	hash := utils.ResponseHash(cfg, "success", txnid, "30000.00", "Aurora Robotics", "Asha", "asha@example.com")
	return url.Values{
		"txnid":       {txnid},
		"status":      {"success"},
		"amount":      {"30000.00"},
		"productinfo": {"Aurora Robotics"},
		"firstname":   {"Asha"},
		"email":       {"asha@example.com"},
		"hash":        {hash},
	}
}

func TestWebhookReconcileIdempotent(t *testing.T) {
	cfg := setGatewayEnv(t)
	mock := newMockLedger(t)
	form := successCallback(cfg, "PM-11-1700000000")

	// The gateway redelivers on its own schedule. Each delivery must be a
	// single UPDATE keyed by transaction_id and produce the same outcome.
	for i := 0; i < 2; i++ {
		mock.ExpectExec("UPDATE `investments` SET").
			WillReturnResult(sqlmock.NewResult(0, 1))
		rr := postCallback(t, form)
		if rr.Code != http.StatusOK {
			t.Fatalf("delivery %d: status = %d, want 200", i+1, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Callback processed") {
			t.Errorf("delivery %d: body = %q", i+1, rr.Body.String())
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("ledger expectations: %v", err)
	}
}

func TestWebhookUnknownTransactionID(t *testing.T) {
	cfg := setGatewayEnv(t)
	mock := newMockLedger(t)

	// Zero rows matched: the initiation write may still be in flight, so the
	// answer is a generic 400 that makes the gateway retry.
	mock.ExpectExec("UPDATE `investments` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	rr := postCallback(t, successCallback(cfg, "PM-404-1700000000"))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "unable to process callback") {
		t.Errorf("body must stay generic, got %q", rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("ledger expectations: %v", err)
	}
}

func TestWebhookUnconfiguredGateway(t *testing.T) {
	t.Setenv("PAYU_MERCHANT_KEY", "")
	t.Setenv("PAYU_MERCHANT_SALT", "")
	t.Setenv("SITE_BASE_URL", "")
	form := url.Values{
		"txnid":  {"PM-1-1"},
		"status": {"success"},
		"hash":   {"deadbeef"},
	}
	rr := postCallback(t, form)
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
}
