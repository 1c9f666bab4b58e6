package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"mediconnect/services/storage"
	"mediconnect/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadFileHandler handles POST /api/storage/upload (multipart). The
// "kind" field picks the destination folder: photo or certificate.
func UploadFileHandler(svc storage.StorageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "file is required", err.Error())
			return
		}
		kind := c.PostForm("kind")

		// The cloudinary client uploads from a path, so the file lands in
		// a temp location first.
		tmpPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(fileHeader.Filename))
		if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to stage upload", err.Error())
			return
		}
		defer os.Remove(tmpPath)

		publicID, err := svc.UploadFile(c.Request.Context(), tmpPath, storage.FolderFor(kind))
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "upload failed", err.Error())
			return
		}
		url, err := svc.GetDownloadURL("image", publicID)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to build file URL", err.Error())
			return
		}
		c.JSON(http.StatusCreated, gin.H{"publicId": publicID, "url": url})
	}
}
