package utils

import (
	"strings"
	"testing"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/models"
)

var testCfg = PayUConfig{
	MerchantKey: "gtKFFx",
	Salt:        "eCwWELxi",
	BaseURL:     "https://portal.example.com",
	SuccessURL:  "https://portal.example.com/payment/success",
	FailureURL:  "https://portal.example.com/payment/failure",
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		minor int64
		want  string
	}{
		{3000000, "30000.00"},
		{30000, "300.00"},
		{1, "0.01"},
		{99, "0.99"},
		{100, "1.00"},
		{123456789, "1234567.89"},
	}
	for _, c := range cases {
		if got := FormatAmount(c.minor); got != c.want {
			t.Errorf("FormatAmount(%d) = %q, want %q", c.minor, got, c.want)
		}
	}
}

func TestRequestHashPipeLayout(t *testing.T) {
	// The checksum must cover exactly key|txnid|amount|productinfo|firstname|
	// email, ten empty slots, then the salt. Any drift in a covered field must
	// change the digest; the layout itself is what the gateway verifies.
	h1 := RequestHash(testCfg, "PM-1-1700000000", "30000.00", "Aurora Robotics", "Asha", "asha@example.com")
	h2 := RequestHash(testCfg, "PM-1-1700000000", "30000.00", "Aurora Robotics", "Asha", "asha@example.com")
	if h1 != h2 {
		t.Fatal("request hash is not deterministic")
	}
	if len(h1) != 128 {
		t.Fatalf("request hash length = %d, want 128 hex chars", len(h1))
	}
	h3 := RequestHash(testCfg, "PM-1-1700000000", "30000.01", "Aurora Robotics", "Asha", "asha@example.com")
	if h1 == h3 {
		t.Error("amount change did not change the request hash")
	}
}

func TestVerifyResponseHash(t *testing.T) {
	status, txnid, amount := "success", "PM-42-1700000000", "60000.00"
	product, name, email := "Aurora Robotics", "Asha", "asha@example.com"

	good := ResponseHash(testCfg, status, txnid, amount, product, name, email)
	if !VerifyResponseHash(testCfg, good, status, txnid, amount, product, name, email) {
		t.Error("valid response hash rejected")
	}
	if !VerifyResponseHash(testCfg, strings.ToUpper(good), status, txnid, amount, product, name, email) {
		t.Error("hex case must not matter")
	}
	if !VerifyResponseHash(testCfg, "  "+good+" ", status, txnid, amount, product, name, email) {
		t.Error("surrounding whitespace must be tolerated")
	}

	if VerifyResponseHash(testCfg, good, "failure", txnid, amount, product, name, email) {
		t.Error("hash for success verified against status failure")
	}
	if VerifyResponseHash(testCfg, good, status, txnid, "60000.01", product, name, email) {
		t.Error("tampered amount passed verification")
	}
	forged := strings.Repeat("ab", 64)
	if VerifyResponseHash(testCfg, forged, status, txnid, amount, product, name, email) {
		t.Error("forged hash passed verification")
	}
}

func TestRequestResponseHashesDiffer(t *testing.T) {
	// Same fields, different layouts. A callback must never verify against the
	// request-side checksum.
	req := RequestHash(testCfg, "PM-7-1", "300.00", "P", "N", "e@x.com")
	resp := ResponseHash(testCfg, "success", "PM-7-1", "300.00", "P", "N", "e@x.com")
	if req == resp {
		t.Error("request and response hashes collide")
	}
}

func TestMapGatewayStatus(t *testing.T) {
	cases := []struct {
		status, unmapped, errField string
		want                       string
		recognized                 bool
	}{
		{"success", "", "", models.StatusSuccess, true},
		{"captured", "", "", models.StatusSuccess, true},
		{"failure", "", "", models.StatusFailure, true},
		{"failed", "", "", models.StatusFailure, true},
		{"bounced", "", "", models.StatusBounced, true},
		{"userCancelled", "", "", models.StatusCancelled, true},
		{"userDropped", "", "", models.StatusDropped, true},
		{"auto_refund", "", "", models.StatusAutoRefund, true},
		{"refund_success", "", "", models.StatusRefundSuccess, true},
		{"refund_pending", "", "", models.StatusRefundPending, true},
		{"refund_failed", "", "", models.StatusRefundFailed, true},
		{"in_progress", "", "", models.StatusInProgress, true},

		// Falls through to unmappedstatus.
		{"pending", "captured", "", models.StatusSuccess, true},
		{"", "userDropped", "", models.StatusDropped, true},

		// Unrecognized with an error field reported: classify as failure.
		{"weird", "", "E502: bank declined", models.StatusFailure, true},
		{"", "", "E000", models.StatusFailure, true},

		// Unrecognized and silent: leave the row alone.
		{"weird", "odd", "", models.StatusInitiated, false},
		{"", "", "", models.StatusInitiated, false},
		{"  ", "  ", "  ", models.StatusInitiated, false},
	}
	for _, c := range cases {
		got, recognized := MapGatewayStatus(c.status, c.unmapped, c.errField)
		if got != c.want || recognized != c.recognized {
			t.Errorf("MapGatewayStatus(%q, %q, %q) = (%q, %v), want (%q, %v)",
				c.status, c.unmapped, c.errField, got, recognized, c.want, c.recognized)
		}
	}
}

func TestIsSuccessfulStatus(t *testing.T) {
	if !IsSuccessfulStatus(models.StatusSuccess) {
		t.Error("success must be successful")
	}
	if !IsSuccessfulStatus(models.StatusCompleted) {
		t.Error("legacy completed rows must still read as successful")
	}
	for _, s := range []string{models.StatusInitiated, models.StatusFailure, models.StatusRefundSuccess, ""} {
		if IsSuccessfulStatus(s) {
			t.Errorf("%q must not be successful", s)
		}
	}
}

func TestBuildPaymentRequest(t *testing.T) {
	user := &models.User{ID: 9, Name: "Asha", Email: "asha@example.com", Phone: "9876543210"}
	payload := BuildPaymentRequest(testCfg, "PM-9-1700000000", 2*UnitPrice, "Aurora Robotics", user)

	if payload.Amount != FormatAmount(2*UnitPrice) {
		t.Errorf("amount = %q, want %q", payload.Amount, FormatAmount(2*UnitPrice))
	}
	if payload.SURL != testCfg.SuccessURL || payload.FURL != testCfg.FailureURL {
		t.Error("return URLs not taken from config")
	}
	want := RequestHash(testCfg, "PM-9-1700000000", payload.Amount, "Aurora Robotics", "Asha", "asha@example.com")
	if payload.Hash != want {
		t.Error("payload hash does not match the request checksum")
	}
}
