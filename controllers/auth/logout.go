package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/database"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/models"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/utils"
)

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// POST /v1/logout denylists the presented access token and revokes the
// refresh token when one is supplied. Always answers 200; logout is
// best-effort by design of the clients.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		if _, claims, err := utils.ValidateAccessToken(strings.TrimSpace(token)); err == nil {
			utils.RevokeAccessToken(claims)
		}
	}

	var req LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.RefreshToken != "" {
		database.DB.Model(&models.RefreshToken{}).
			Where("id = ?", req.RefreshToken).
			Update("revoked", true)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Logged out"})
}
