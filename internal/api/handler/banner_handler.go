package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wryteup/jobboard-be/internal/api/dto"
	"github.com/wryteup/jobboard-be/internal/api/model"
)

const maxBannerSize = 5 << 20 // 5 MiB

// UploadBanner handles POST /api/v1/banners
// Banners are uploaded before the job exists (multi-step form); the record
// stays unlinked until job creation references its id. Anything never
// referenced is purged by the post-creation orphan sweep.
func (h *BannerHandler) UploadBanner(c *gin.Context) {
	if _, ok := actorFromContext(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	fileHeader, err := c.FormFile("banner")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "banner file is required"})
		return
	}

	if fileHeader.Size > maxBannerSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "banner file too large"})
		return
	}

	ext := filepath.Ext(fileHeader.Filename)
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported banner file type"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded banner", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store banner"})
		return
	}
	defer file.Close()

	name := fmt.Sprintf("banners/%s%s", uuid.NewString(), ext)

	link, err := h.files.Save(name, file)
	if err != nil {
		h.logger.Error("Failed to store banner file", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store banner"})
		return
	}

	banner := model.Banner{
		Link:      link,
		CreatedAt: time.Now(),
	}

	if err := h.storage.CreateBanner(c.Request.Context(), &banner); err != nil {
		h.logger.Error("Failed to create banner record", slog.Any("error", err))
		// Record failed; remove the file so it does not linger unreferenced.
		if delErr := h.files.Delete(link); delErr != nil {
			h.logger.Warn("Failed to remove banner file after record failure",
				slog.String("link", link),
				slog.Any("error", delErr),
			)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store banner"})
		return
	}

	c.JSON(http.StatusCreated, dto.UploadBannerResponse{
		ID:   banner.ID,
		Link: banner.Link,
	})
}
