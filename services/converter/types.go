package converter

import (
	"context"

	"spotgrab/config"
)

type ConverterService interface {
	Convert(ctx context.Context, inPath, outPath string) error
}

type Service struct {
	Config *config.Config
}
