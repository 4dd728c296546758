package handlers

import (
	"github.com/gin-gonic/gin"

	"spotgrab/services/download"
)

type Handler struct {
	DownloadService download.DownloadService
}

func SetupRoutes(router *gin.Engine, downloadService download.DownloadService) {
	h := &Handler{DownloadService: downloadService}

	router.Group("/api").
		GET("/download", h.StartDownload).
		GET("/status", h.GetStatus)
}
