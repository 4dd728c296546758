package handlers

import "github.com/gin-gonic/gin"

type Failure struct {
	Error string `json:"error"`
}

type StartDownloadResponse struct {
	State string `json:"state"`
}

type StatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func ResponseFailure(ctx *gin.Context, err error) {
	ctx.JSON(400, Failure{err.Error()})
}

func ResponseInternalError(ctx *gin.Context, err error) {
	ctx.JSON(500, Failure{err.Error()})
}

func ResponseSuccess(ctx *gin.Context, data any) {
	ctx.JSON(200, data)
}
