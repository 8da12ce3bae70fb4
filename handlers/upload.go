package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"desidine-api/services"
)

// UploadImage stores a multipart image and returns its public URL.
func UploadImage(store services.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Image file required"})
			return
		}

		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read image"})
			return
		}
		defer f.Close()

		url, err := store.Save(c.Request.Context(), fileHeader.Filename, f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
