package in

import (
	"context"
	"time"

	"habitforge/internal/modules/entry/dto"
)

type Usecase interface {
	Session(ctx context.Context) dto.SessionOutput
	Record(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error)
	Get(ctx context.Context, date string) (dto.EntryOutput, error)
	List(ctx context.Context) ([]dto.EntryOutput, error)
	Month(ctx context.Context, year int, month time.Month) ([]dto.EntryOutput, error)
}
