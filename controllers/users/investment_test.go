package users

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/utils"
)

func postInvestment(t *testing.T, uid uint, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/users/investments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if uid != 0 {
		req = req.WithContext(context.WithValue(req.Context(), utils.UserIDKey, uid))
	}
	rr := httptest.NewRecorder()
	CreateInvestmentHandler(rr, req)
	return rr
}

func TestCreateInvestmentRejectsUnitBounds(t *testing.T) {
	// Out-of-range unit counts fail before any database access, so no row can
	// ever be written for them and no fixture is needed here.
	cases := []struct {
		name string
		body string
	}{
		{"zero units", `{"project_name":"Aurora Robotics","units":0}`},
		{"over the cap", `{"project_name":"Aurora Robotics","units":101}`},
		{"negative units", `{"project_name":"Aurora Robotics","units":-3}`},
	}
	for _, c := range cases {
		rr := postInvestment(t, 7, c.body)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", c.name, rr.Code)
		}
	}
}

func TestCreateInvestmentRequiresSession(t *testing.T) {
	rr := postInvestment(t, 0, `{"project_name":"Aurora Robotics","units":1}`)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestCreateInvestmentRejectsBadJSON(t *testing.T) {
	rr := postInvestment(t, 7, `{"project_name":`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestCreateInvestmentRejectsOverlongProjectName(t *testing.T) {
	rr := postInvestment(t, 7, `{"project_name":"`+strings.Repeat("x", 200)+`","units":1}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}
