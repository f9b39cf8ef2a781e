package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"fleetfuel/internal/domain/entity"
	"fleetfuel/pkg/utils"
)

type SampleReader interface {
	GetSamples(ctx context.Context, key entity.GroupKey, variable string) ([]entity.Sample, error)
}

type SummaryWriter interface {
	PutSummary(ctx context.Context, summary entity.GroupSummary, filledCSV []byte) error
}

type SummaryStore interface {
	SaveSummaries(ctx context.Context, summaries []entity.GroupSummary) error
}

type TableArchive interface {
	UploadTable(ctx context.Context, key entity.GroupKey, csv []byte) error
}

// PipelineUseCase drives one aggregation job: fetch each unit's raw streams
// from the columnar store, run the in-memory pipeline per group, then fan
// the results out to the summary row store, the reporting database and the
// filled-table archive.
type PipelineUseCase struct {
	Samples   SampleReader
	Summaries SummaryWriter
	Reports   SummaryStore
	Archive   TableArchive
	Params    FuelParams
}

func NewPipelineUseCase(samples SampleReader, summaries SummaryWriter, reports SummaryStore, archive TableArchive, params FuelParams) *PipelineUseCase {
	return &PipelineUseCase{
		Samples:   samples,
		Summaries: summaries,
		Reports:   reports,
		Archive:   archive,
		Params:    params,
	}
}

// ProcessJob aggregates every unit named by the job. Groups fail
// independently: a unit whose streams cannot be read or persisted lands in
// the failure list and the rest of the batch proceeds.
func (u *PipelineUseCase) ProcessJob(ctx context.Context, job *entity.AggregationJob) (*entity.BatchResult, error) {
	if job.JobID == "" {
		job.JobID = uuid.New().String()
	}
	log.Printf("Processing aggregation job %s: site=%s day=%s units=%d\n",
		job.JobID, job.Site, job.Day, len(job.Units))

	variables := job.Variables
	if len(variables) == 0 {
		variables = []string{entity.VarGear, entity.VarRPM, entity.VarSpeed}
	}

	result := &entity.BatchResult{JobID: job.JobID, Site: job.Site, Day: job.Day}

	for _, unit := range job.Units {
		key := entity.GroupKey{Site: job.Site, Day: job.Day, UnitID: unit}

		gs, err := u.readGroup(ctx, key, variables)
		if err != nil {
			result.Failures = append(result.Failures, entity.GroupFailure{
				Key: key, Reason: entity.ReasonReadFailed, Detail: err.Error(),
			})
			continue
		}

		summary, filled, err := SummarizeGroup(gs, u.Params)
		if err != nil {
			result.Failures = append(result.Failures, entity.GroupFailure{
				Key: key, Reason: entity.ReasonInvalidInput, Detail: err.Error(),
			})
			continue
		}

		if err := u.persistGroup(ctx, summary, filled); err != nil {
			result.Failures = append(result.Failures, entity.GroupFailure{
				Key: key, Reason: entity.ReasonWriteFailed, Detail: err.Error(),
			})
			continue
		}

		result.Summaries = append(result.Summaries, summary)
	}

	if len(result.Summaries) > 0 {
		if err := u.Reports.SaveSummaries(ctx, result.Summaries); err != nil {
			return nil, fmt.Errorf("save summaries: %w", err)
		}
	}

	log.Printf("Job %s done: %d summaries, %d failures\n",
		job.JobID, len(result.Summaries), len(result.Failures))
	return result, nil
}

func (u *PipelineUseCase) readGroup(ctx context.Context, key entity.GroupKey, variables []string) (GroupStreams, error) {
	gs := GroupStreams{Key: key}
	for _, variable := range variables {
		samples, err := u.Samples.GetSamples(ctx, key, variable)
		if err != nil {
			return GroupStreams{}, fmt.Errorf("read %s samples: %w", variable, err)
		}
		gs.Streams = append(gs.Streams, entity.SampleStream{
			Key:      key,
			Variable: variable,
			Samples:  samples,
		})
	}
	return gs, nil
}

func (u *PipelineUseCase) persistGroup(ctx context.Context, summary entity.GroupSummary, filled *entity.FilledTable) error {
	csv := utils.FilledTableToCSV(filled)

	if err := u.Summaries.PutSummary(ctx, summary, csv); err != nil {
		return fmt.Errorf("put summary row: %w", err)
	}
	if err := u.Archive.UploadTable(ctx, summary.Key(), csv); err != nil {
		return fmt.Errorf("archive filled table: %w", err)
	}
	return nil
}
