package handlers

import (
	"errors"
	"fmt"

	"github.com/gcottom/go-zaplog"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) StartDownload(ctx *gin.Context) {
	url := ctx.Query("url")
	if url == "" {
		zaplog.WarnC(ctx, "start download request without URL present: URL is required")
		ResponseFailure(ctx, errors.New("start download request without URL present: URL is required"))
		return
	}
	zaplog.InfoC(ctx, "start download request received", zap.String("url", url))

	if err := h.DownloadService.InitiateDownload(ctx, url); err != nil {
		zaplog.ErrorC(ctx, "failed to start download", zap.String("url", url), zap.Error(err))
		ResponseFailure(ctx, fmt.Errorf("failed to start download: %w", err))
		return
	}

	zaplog.InfoC(ctx, "start download request queued successfully", zap.String("url", url))
	ResponseSuccess(ctx, StartDownloadResponse{State: "ACK"})
}

func (h *Handler) GetStatus(ctx *gin.Context) {
	id := ctx.Query("id")
	if id == "" {
		zaplog.WarnC(ctx, "status request without ID present: ID is required")
		ResponseFailure(ctx, errors.New("status request without ID present: ID is required"))
		return
	}

	status, err := h.DownloadService.GetStatus(ctx, id)
	if err != nil {
		zaplog.ErrorC(ctx, "failed to get status", zap.String("id", id), zap.Error(err))
		ResponseInternalError(ctx, fmt.Errorf("failed to get status: %w", err))
		return
	}
	ResponseSuccess(ctx, StatusResponse{ID: id, Status: status})
}
