package admins

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func postManualEntry(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/manage/investments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	CreateInvestmentHandler(rr, req)
	return rr
}

func TestManualEntryRejectsUnknownStatus(t *testing.T) {
	// The vocabulary checks run before any database access, so an invented
	// status string can never reach a transaction_status column. No fixture
	// needed.
	cases := []string{
		`{"user_id":1,"project_name":"Aurora Robotics","investment_type":"investment","units":2,"payment_mode":"bank_transfer","status":"settled"}`,
		`{"user_id":1,"project_name":"Aurora Robotics","investment_type":"investment","units":2,"payment_mode":"bank_transfer","status":"SUCCESS"}`,
		// The legacy read-side alias is not writable either.
		`{"user_id":1,"project_name":"Aurora Robotics","investment_type":"investment","units":2,"payment_mode":"bank_transfer","status":"completed"}`,
	}
	for _, body := range cases {
		rr := postManualEntry(t, body)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rr.Code)
		}
	}
}

func TestManualEntryRejectsUnknownVocabulary(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"investment type", `{"user_id":1,"project_name":"P","investment_type":"dividend","units":1,"payment_mode":"cash"}`},
		{"payment mode", `{"user_id":1,"project_name":"P","investment_type":"investment","units":1,"payment_mode":"cheque"}`},
	}
	for _, c := range cases {
		rr := postManualEntry(t, c.body)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", c.name, rr.Code)
		}
	}
}
