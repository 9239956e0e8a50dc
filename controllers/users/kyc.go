package users

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/database"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/models"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/utils"

	"github.com/google/uuid"
)

// SubmitKYCHandler stores an identity document and moves the member's KYC
// status to submitted. Same allow-list and storage discipline as payment
// proofs; staff review happens in the manage console.
//
// POST /v1/users/kyc (multipart: file)
func SubmitKYCHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, utils.ErrAuthentication)
		return
	}

	if err := r.ParseMultipartForm(12 << 20); err != nil {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Invalid multipart body"))
		return
	}
	// The original filename is deliberately not persisted for KYC documents.
	f, _, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, utils.ErrValidation.WithMessage("file is required"))
		return
	}
	defer f.Close()

	mimeType, ext, head, err := SniffDocumentType(f)
	if err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}
	if ext == "" {
		utils.WriteError(w, utils.ErrUnsupportedMedia.WithMessage(
			"File type "+mimeType+" is not allowed (JPEG, PNG, BMP or PDF)"))
		return
	}

	objectName := fmt.Sprintf("kyc/%d/%s%s", uid, uuid.NewString(), ext)
	if err := utils.UploadObject(r.Context(), objectName, io.MultiReader(bytes.NewReader(head), f)); err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}
	url, err := utils.PresignObjectURL(r.Context(), objectName, utils.ProofURLExpiry)
	if err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	updates := map[string]interface{}{
		"kyc_status":       models.KYCSubmitted,
		"kyc_document_url": url,
		"kyc_note":         nil,
	}
	if err := database.DB.Model(&models.User{}).Where("id = ?", uid).Updates(updates).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "KYC document submitted for review",
		Data:    map[string]interface{}{"url": url, "filePath": objectName},
	})
}

// GET /v1/users/kyc
func KYCStatusHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, utils.ErrAuthentication)
		return
	}
	var user models.User
	if err := database.DB.Select("kyc_status, kyc_note").Where("id = ?", uid).First(&user).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"kyc_status": user.KYCStatus,
			"kyc_note":   user.KYCNote,
		},
	})
}
