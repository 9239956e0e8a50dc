package users

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/database"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/models"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaxProofsPerBatch caps a single upload request.
const MaxProofsPerBatch = 3

// Sniffed MIME type -> canonical stored extension. Anything else is rejected.
var proofExtByMIME = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/bmp":       ".bmp",
	"application/pdf": ".pdf",
}

// SniffDocumentType reads the leading bytes of an uploaded part and returns
// its detected MIME type, the stored extension for it, and the bytes consumed
// by sniffing (which must be replayed before the rest of the stream).
func SniffDocumentType(f multipart.File) (mimeType, ext string, head []byte, err error) {
	head = make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return "", "", nil, err
	}
	head = head[:n]
	mimeType = http.DetectContentType(head)
	// DetectContentType can return parameters (e.g. "text/plain; charset=..").
	if j := strings.IndexByte(mimeType, ';'); j >= 0 {
		mimeType = strings.TrimSpace(mimeType[:j])
	}
	ext, ok := proofExtByMIME[mimeType]
	if !ok {
		return mimeType, "", head, nil
	}
	return mimeType, ext, head, nil
}

type uploadedProof struct {
	ProofID  uint   `json:"proof_id"`
	URL      string `json:"url"`
	FilePath string `json:"filePath"`
	FileName string `json:"fileName"`
}

// UploadProofHandler attaches 1..3 payment documents to an investment. The
// storage write happens strictly before the metadata insert: a stored object
// without a row is an acceptable orphan (logged, never retried), a row
// without an object is not.
//
// POST /v1/users/investments/proofs (multipart: investmentId, file...)
func UploadProofHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, utils.ErrAuthentication)
		return
	}

	if err := r.ParseMultipartForm(12 << 20); err != nil {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Invalid multipart body"))
		return
	}

	invID64, err := strconv.ParseUint(r.FormValue("investmentId"), 10, 64)
	if err != nil || invID64 == 0 {
		utils.WriteError(w, utils.ErrValidation.WithMessage("investmentId is required"))
		return
	}
	invID := uint(invID64)

	var inv models.Investment
	if err := database.DB.Where("id = ? AND user_id = ?", invID, uid).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, utils.ErrNotFound.WithMessage("Investment not found"))
			return
		}
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		utils.WriteError(w, utils.ErrValidation.WithMessage("At least one file is required"))
		return
	}
	if len(files) > MaxProofsPerBatch {
		utils.WriteError(w, utils.ErrValidation.WithMessage(
			fmt.Sprintf("At most %d files per upload", MaxProofsPerBatch)))
		return
	}

	// Validate every part before storing any, so a bad file in the batch
	// rejects the whole request without side effects.
	type pendingFile struct {
		header *multipart.FileHeader
		ext    string
	}
	pending := make([]pendingFile, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			utils.WriteError(w, utils.ErrValidation.WithMessage("Unreadable file "+fh.Filename))
			return
		}
		mimeType, ext, _, err := SniffDocumentType(f)
		f.Close()
		if err != nil {
			utils.WriteError(w, utils.ErrUpstream.WithErr(err))
			return
		}
		if ext == "" {
			utils.WriteError(w, utils.ErrUnsupportedMedia.WithMessage(
				"File type "+mimeType+" is not allowed (JPEG, PNG, BMP or PDF)"))
			return
		}
		pending = append(pending, pendingFile{header: fh, ext: ext})
	}

	results := make([]uploadedProof, 0, len(pending))
	for _, pf := range pending {
		f, err := pf.header.Open()
		if err != nil {
			utils.WriteError(w, utils.ErrUpstream.WithErr(err))
			return
		}
		_, _, head, err := SniffDocumentType(f)
		if err != nil {
			f.Close()
			utils.WriteError(w, utils.ErrUpstream.WithErr(err))
			return
		}

		// Random stored name: avoids collisions and never leaks the
		// uploader's original filename into the bucket.
		objectName := fmt.Sprintf("proofs/%d/%s%s", invID, uuid.NewString(), pf.ext)
		err = utils.UploadObject(r.Context(), objectName, io.MultiReader(bytes.NewReader(head), f))
		f.Close()
		if err != nil {
			utils.WriteError(w, utils.ErrUpstream.WithErr(err))
			return
		}

		url, err := utils.PresignObjectURL(r.Context(), objectName, utils.ProofURLExpiry)
		if err != nil {
			utils.WriteError(w, utils.ErrUpstream.WithErr(err))
			return
		}

		proof := models.TransactionProof{
			InvestmentID: invID,
			FileURL:      url,
			FileName:     path.Base(pf.header.Filename),
		}
		if err := database.DB.Create(&proof).Error; err != nil {
			// The stored object is now an orphan. The record is the
			// authoritative half, so log and surface the failure.
			utils.PayLog.Error("proof metadata insert failed, stored object orphaned",
				zap.Uint("investment_id", invID),
				zap.String("object", objectName),
				zap.Error(err))
			utils.WriteError(w, utils.ErrUpstream.WithErr(err))
			return
		}

		results = append(results, uploadedProof{
			ProofID:  proof.ID,
			URL:      url,
			FilePath: objectName,
			FileName: proof.FileName,
		})
	}

	data := map[string]interface{}{"files": results}
	if len(results) > 0 {
		data["url"] = results[0].URL
		data["filePath"] = results[0].FilePath
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Proof uploaded",
		Data:    data,
	})
}

// ListProofsHandler returns all proofs for one of the member's investments.
//
// GET /v1/users/investments/{id}/proofs
func ListProofsHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, utils.ErrAuthentication)
		return
	}
	invID, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, utils.ErrValidation.WithMessage("Invalid id"))
		return
	}

	var inv models.Investment
	if err := database.DB.Where("id = ? AND user_id = ?", invID, uid).First(&inv).Error; err != nil {
		utils.WriteError(w, utils.ErrNotFound.WithMessage("Investment not found"))
		return
	}

	var proofs []models.TransactionProof
	if err := database.DB.Where("investment_id = ?", invID).Order("id ASC").Find(&proofs).Error; err != nil {
		utils.WriteError(w, utils.ErrUpstream.WithErr(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: proofs})
}
