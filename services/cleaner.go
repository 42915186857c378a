package services

import (
	"context"
	"fmt"
	"time"

	"github.com/andrrresj/automotive-market-dashboard/models"
	"github.com/andrrresj/automotive-market-dashboard/storage"
	"github.com/andrrresj/automotive-market-dashboard/utils"
)

// Pipeline stage names used in StageError and progress events.
const (
	StageLoad       = "load"
	StageSchema     = "schema"
	StageValidate   = "validate"
	StageCategorize = "categorize"
	StageWrite      = "write"
)

// Job is one dataset run: read InputPath, clean, write OutputPath.
type Job struct {
	Dataset    Dataset
	InputPath  string
	OutputPath string
}

// RunResult is the outcome of one Job. Err is a *models.StageError when the run failed.
type RunResult struct {
	Dataset    string
	OutputPath string
	Table      *models.Table
	Err        error
	// SinkErrors holds export failures by sink name; they do not fail the run.
	SinkErrors map[string]error
	Duration   time.Duration
}

// Cleaner runs the Loader, Validator, Categorizer and Writer stages for a dataset.
type Cleaner struct {
	logger      *utils.Logger
	validator   *Validator
	categorizer *Categorizer
	sinks       []storage.TableWriter
}

// NewCleaner creates a Cleaner. observer may be nil; sinks receive every cleaned
// table after the CSV output has been written.
func NewCleaner(logger *utils.Logger, observer Observer, sinks ...storage.TableWriter) *Cleaner {
	return &Cleaner{
		logger:      logger,
		validator:   NewValidator(observer),
		categorizer: NewCategorizer(observer),
		sinks:       sinks,
	}
}

// Clean filters t and appends the derived columns. t itself is not modified.
func (c *Cleaner) Clean(ds Dataset, t *models.Table) (*models.Table, error) {
	out, stage, err := c.clean(ds, t)
	if err != nil {
		return nil, &models.StageError{Dataset: ds.Name, Stage: stage, Path: t.Name, Err: err}
	}
	return out, nil
}

func (c *Cleaner) clean(ds Dataset, t *models.Table) (*models.Table, string, error) {
	for _, col := range ds.RequiredColumns() {
		if !t.Has(col) {
			return nil, StageSchema, fmt.Errorf("%w: %q", models.ErrMissingColumn, col)
		}
	}

	in := t.Filter(func(models.Row) bool { return true })
	for _, col := range ds.Numeric {
		if in.Has(col) {
			in.SetColumn(col, func(r models.Row) models.Value { return numberOf(r.Get(col)) })
		}
	}

	out, err := c.validator.Apply(ds.Name, in, ds.Stages)
	if err != nil {
		return nil, StageValidate, err
	}

	if err := c.categorizer.Apply(ds.Name, out, ds.Derivations); err != nil {
		return nil, StageCategorize, err
	}
	out.Name = ds.Table
	return out, "", nil
}

// Run executes one job end to end. Nothing is written when any stage before the
// Writer fails.
func (c *Cleaner) Run(ctx context.Context, job Job) RunResult {
	start := time.Now()
	res := RunResult{
		Dataset:    job.Dataset.Name,
		OutputPath: job.OutputPath,
		SinkErrors: make(map[string]error),
	}
	fail := func(stage, path string, err error) RunResult {
		res.Err = &models.StageError{Dataset: job.Dataset.Name, Stage: stage, Path: path, Err: err}
		res.Duration = time.Since(start)
		return res
	}

	c.logger.Info("[%s] Cleaning %s", job.Dataset.Name, job.InputPath)

	raw, err := storage.ReadCSV(job.InputPath, job.Dataset.Numeric...)
	if err != nil {
		return fail(StageLoad, job.InputPath, err)
	}

	out, stage, err := c.clean(job.Dataset, raw)
	if err != nil {
		return fail(stage, job.InputPath, err)
	}

	if err := ctx.Err(); err != nil {
		return fail(StageWrite, job.OutputPath, err)
	}
	if err := storage.NewCSVWriter(job.OutputPath).Write(ctx, out); err != nil {
		return fail(StageWrite, job.OutputPath, err)
	}
	c.logger.Info("[%s] Cleaned data: %d rows saved to %s", job.Dataset.Name, out.Len(), job.OutputPath)

	for _, sink := range c.sinks {
		if err := sink.Write(ctx, out); err != nil {
			c.logger.Warn("[%s] %s export of %s failed: %v", job.Dataset.Name, sink.Name(), out.Name, err)
			res.SinkErrors[sink.Name()] = err
			continue
		}
		c.logger.Info("[%s] Exported %d rows to %s (table: %s)", job.Dataset.Name, out.Len(), sink.Name(), out.Name)
	}

	res.Table = out
	res.Duration = time.Since(start)
	return res
}

// RunAll runs the jobs independently on at most concurrency workers and returns
// one result per job, in job order. A failing job never stops the others.
func (c *Cleaner) RunAll(ctx context.Context, jobs []Job, concurrency int) []RunResult {
	results := make([]RunResult, len(jobs))
	pool := utils.NewWorkerPool(concurrency)

	for i, job := range jobs {
		i, job := i, job
		pool.Submit(func() {
			results[i] = c.Run(ctx, job)
		})
	}
	pool.Wait()
	return results
}

// numberOf reads v as a number; anything that does not parse is null.
func numberOf(v models.Value) models.Value {
	if v.Kind() == models.KindNumber {
		return v
	}
	return storage.ParseNumber(v.Text())
}
