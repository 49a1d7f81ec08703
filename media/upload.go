package media

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"gradbridge/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

const uploadDir = "./static/uploads"

var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// UploadImage accepts one admin-submitted image (college banner or blog
// cover), stores it as JPEG and writes a 300px-wide thumbnail next to
// it. Responds with both public paths.
func UploadImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "An image file is required")
		return
	}
	defer file.Close()

	if !supportedImageTypes[header.Header.Get("Content-Type")] {
		utils.SendError(w, http.StatusBadRequest, "Invalid file type. Supported formats: JPEG, PNG, WebP, GIF.")
		return
	}

	imagePath, thumbPath, err := saveWithThumbnail(file)
	if err != nil {
		log.Printf("image upload failed: %v", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}

	utils.SendSuccess(w, http.StatusCreated, "Image uploaded", utils.M{
		"image": imagePath,
		"thumb": thumbPath,
	})
}

func saveWithThumbnail(file multipart.File) (string, string, error) {
	img, err := imaging.Decode(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image: %w", err)
	}

	fileName := uuid.New().String() + ".jpg"

	thumbDir := filepath.Join(uploadDir, "thumb")
	if err := utils.EnsureDir(uploadDir); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := utils.EnsureDir(thumbDir); err != nil {
		return "", "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	if err := imaging.Save(img, filepath.Join(uploadDir, fileName)); err != nil {
		return "", "", fmt.Errorf("failed to save original image: %w", err)
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, filepath.Join(thumbDir, fileName)); err != nil {
		return "", "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return "/static/uploads/" + fileName, "/static/uploads/thumb/" + fileName, nil
}
