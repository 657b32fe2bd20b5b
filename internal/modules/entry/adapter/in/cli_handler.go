package in

import (
	"context"
	"time"

	"habitforge/internal/modules/entry/dto"
	entryin "habitforge/internal/modules/entry/port/in"
)

type CLIHandler struct {
	usecase entryin.Usecase
}

func NewCLIHandler(usecase entryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Log(ctx context.Context, date, category, note string, tags []string, learned bool) (dto.RecordOutput, error) {
	return h.usecase.Record(ctx, dto.RecordInput{
		Date:             date,
		Type:             category,
		Note:             note,
		Tags:             tags,
		LearnedSomething: learned,
	})
}

func (h CLIHandler) Show(ctx context.Context, date string) (dto.EntryOutput, error) {
	return h.usecase.Get(ctx, date)
}

func (h CLIHandler) List(ctx context.Context) ([]dto.EntryOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Month(ctx context.Context, year int, month time.Month) ([]dto.EntryOutput, error) {
	return h.usecase.Month(ctx, year, month)
}

func (h CLIHandler) WhoAmI(ctx context.Context) dto.SessionOutput {
	return h.usecase.Session(ctx)
}
