package httpserver

import (
	"fmt"
	"math/rand"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// uploadHandler stores a listing image in the local uploads directory
// and returns the URL it will be served from.
func uploadHandler(logger *logrus.Logger, dir string, maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
			return
		}
		if maxBytes > 0 && file.Size > maxBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large"})
			return
		}
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedImageExts[ext] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are allowed"})
			return
		}

		name := fmt.Sprintf("image-%d-%d%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), ext)
		if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
			logger.Errorf("upload: save file: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":  "Image uploaded successfully",
			"imageUrl": "/uploads/" + name,
		})
	}
}
