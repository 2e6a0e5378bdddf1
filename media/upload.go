package media

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"cityguide/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
)

const (
	uploadDir     = "static/uploads"
	thumbDir      = "static/uploads/thumb"
	maxUploadSize = 5 << 20
	thumbWidth    = 300
)

var extByMime = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
	"image/bmp":  ".bmp",
	"image/tiff": ".tiff",
}

// POST /api/upload/image
// Stores the image under static/uploads with a generated name and writes
// a 300px thumbnail alongside it.
func UploadImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image too large (max 5MB)")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	ext := extByMime[header.Header.Get("Content-Type")]
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(header.Filename))
	}
	name := utils.GetUUID() + ext

	if err := utils.EnsureDir(uploadDir); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Could not decode image")
		return
	}

	dst := filepath.Join(uploadDir, name)
	if err := imaging.Save(img, dst); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	if err := utils.EnsureDir(thumbDir); err == nil {
		thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
		if err := imaging.Save(thumb, filepath.Join(thumbDir, name)); err != nil {
			log.Printf("thumbnail for %s failed: %v", name, err)
			os.Remove(filepath.Join(thumbDir, name))
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"url":     "/uploads/" + name,
		"thumb":   "/uploads/thumb/" + name,
	})
}
