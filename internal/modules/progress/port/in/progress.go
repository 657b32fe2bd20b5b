package in

import (
	"context"

	"habitforge/internal/modules/progress/dto"
)

type Usecase interface {
	Stats(ctx context.Context) (dto.StatsOutput, error)
	Distribution(ctx context.Context) ([]dto.SliceOutput, error)
	Summary(ctx context.Context) (dto.SummaryOutput, error)
}
