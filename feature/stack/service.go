package stack

import (
	"context"
	"fmt"
	"slices"
	"time"

	"docker-up/core/docker"
	"docker-up/core/future"
	"docker-up/core/history"
	"docker-up/core/mapper"
	"docker-up/core/resource"
	"docker-up/core/storage"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Service reconciles stack files.
type Service struct {
	docker  docker.Client
	store   storage.Client
	history history.Recorder
	logger  *zap.Logger
	// lists collapses concurrent List calls of one kind into one daemon walk.
	lists singleflight.Group
}

// NewService creates a new stack service. store may be nil when object
// storage is disabled; rec may be nil when history is disabled.
func NewService(client docker.Client, store storage.Client, rec history.Recorder, logger *zap.Logger) *Service {
	if rec == nil {
		rec = history.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		docker:  client,
		store:   store,
		history: rec,
		logger:  logger,
	}
}

// Load reads a stack file from a local path or an s3://bucket/key location.
func (s *Service) Load(ctx context.Context, location string) (*File, error) {
	return Load(ctx, s.store, location)
}

// Up creates or updates every resource of f, in up order. It stops at the
// first failure; the report holds the results up to and including it.
func (s *Service) Up(ctx context.Context, f *File) (*Report, error) {
	entries, err := s.plan(f)
	if err != nil {
		return nil, err
	}

	// Build every payload before the first call so a bad entry aborts the run.
	payloads := make([]resource.Document, len(entries))
	for i, e := range entries {
		if payloads[i], err = e.Kind.Mapper.FromConfig(e.Declared); err != nil {
			return nil, fmt.Errorf("%w: %s %s: %w", cerrdefs.ErrInvalidArgument, e.Kind.Name(), e.Declared.Name, err)
		}
	}

	report, rctx := s.begin(f, ActionUp)
	steps := make([]future.Future[struct{}], len(entries))
	for i, e := range entries {
		steps[i] = future.Void(s.track(report, e, e.Kind.Bind(rctx).Up(payloads[i])))
	}
	return s.finish(ctx, report, future.Series(steps...))
}

// Down removes every resource of f in reverse up order. Absent resources
// count as removed.
func (s *Service) Down(ctx context.Context, f *File) (*Report, error) {
	entries, err := s.plan(f)
	if err != nil {
		return nil, err
	}
	slices.Reverse(entries)

	report, rctx := s.begin(f, ActionDown)
	steps := make([]future.Future[struct{}], len(entries))
	for i, e := range entries {
		target := resource.Document{"Name": e.Name()}
		steps[i] = future.Void(s.track(report, e, e.Kind.Bind(rctx).Down(target)))
	}
	return s.finish(ctx, report, future.Series(steps...))
}

// Diff compares every resource of f with its remote state. Inspects run in
// parallel; the results keep the up order.
func (s *Service) Diff(ctx context.Context, f *File) (*Report, error) {
	entries, err := s.plan(f)
	if err != nil {
		return nil, err
	}

	report, rctx := s.begin(f, ActionDiff)
	diffs := make([]future.Future[Result], len(entries))
	for i, e := range entries {
		diffs[i] = s.diff(rctx, e)
	}

	results, err := future.Parallel(resource.ListConcurrency, diffs).Run(ctx)
	if err != nil {
		return report, fmt.Errorf("stack diff: %w", err)
	}
	report.Results = results
	for _, result := range results {
		s.record(ctx, report, result)
	}
	if report.Failed() {
		return report, fmt.Errorf("stack diff: some resources could not be inspected")
	}
	return report, nil
}

// List returns every instance of kind. A non-empty namespace keeps only the
// resources of that stack. Concurrent calls for the same kind share one
// listing, so the returned documents must be treated as read-only.
func (s *Service) List(ctx context.Context, kind, namespace string) ([]resource.Document, error) {
	k, err := s.builtin(kind)
	if err != nil {
		return nil, err
	}
	listed, err, _ := s.lists.Do(k.Name(), func() (any, error) {
		return k.Bind(resource.Context{Docker: s.docker, Log: s.logger}).List().Run(ctx)
	})
	if err != nil {
		return nil, err
	}
	states := listed.([]resource.Document)
	if namespace == "" {
		return states, nil
	}
	owned := make([]resource.Document, 0, len(states))
	for _, state := range states {
		if mapper.InNamespace(state, namespace) {
			owned = append(owned, state)
		}
	}
	return owned, nil
}

// Inspect returns the remote state of one instance of kind.
func (s *Service) Inspect(ctx context.Context, kind, name string) (resource.Document, error) {
	k, err := s.builtin(kind)
	if err != nil {
		return nil, err
	}
	return k.Bind(resource.Context{Docker: s.docker, Log: s.logger}).Inspect(resource.Document{"Name": name}).Run(ctx)
}

// History returns the most recent reconcile records.
func (s *Service) History(ctx context.Context, limit int) ([]history.Record, error) {
	return s.history.Recent(ctx, limit)
}

func (s *Service) builtin(kind string) (*Kind, error) {
	registry, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	return registry.Lookup(kind)
}

func (s *Service) plan(f *File) ([]Entry, error) {
	registry, err := NewRegistry(f.Kinds...)
	if err != nil {
		return nil, err
	}
	return registry.Plan(f)
}

// begin opens a report with a fresh run id and the resource context logging under it.
func (s *Service) begin(f *File, action string) (*Report, resource.Context) {
	report := &Report{
		RunID:     uuid.New().String(),
		Namespace: f.Namespace,
		Action:    action,
		Results:   []Result{},
	}
	log := s.logger.With(
		zap.String("run_id", report.RunID),
		zap.String("namespace", f.Namespace),
	)
	log.Info("Starting stack " + action)
	return report, resource.Context{Docker: s.docker, Log: log}
}

func (s *Service) finish(ctx context.Context, report *Report, run future.Future[struct{}]) (*Report, error) {
	log := s.logger.With(zap.String("run_id", report.RunID))
	if _, err := run.Run(ctx); err != nil {
		log.Error("Stack "+report.Action+" failed", zap.Error(err))
		return report, fmt.Errorf("stack %s: %w", report.Action, err)
	}
	log.Info("Stack "+report.Action+" completed", zap.Int("resources", len(report.Results)))
	return report, nil
}

// track appends the outcome of f to report and records it in history.
func (s *Service) track(report *Report, e Entry, f future.Future[resource.Document]) future.Future[resource.Document] {
	return future.New(func(ctx context.Context) (resource.Document, error) {
		start := time.Now()
		state, err := f.Run(ctx)

		result := Result{
			Kind:     e.Kind.Name(),
			Name:     e.Name(),
			Status:   StatusOK,
			Duration: time.Since(start),
		}
		if err != nil {
			result.Status = StatusFailed
			result.Error = err.Error()
		}
		report.Results = append(report.Results, result)
		s.record(ctx, report, result)
		return state, err
	})
}

// diff never fails: mapping and inspect failures become failed results.
func (s *Service) diff(rctx resource.Context, e Entry) future.Future[Result] {
	return future.New(func(ctx context.Context) (Result, error) {
		start := time.Now()
		result := Result{Kind: e.Kind.Name(), Name: e.Name()}

		payload, err := e.Kind.Mapper.FromConfig(e.Declared)
		if err == nil {
			var state resource.Document
			state, err = e.Kind.Bind(rctx).Inspect(payload).ChainRej(absentAsNil).Run(ctx)
			switch {
			case err != nil:
			case state == nil:
				result.Status = StatusMissing
			default:
				result.Drift = mapper.Compare(e.Kind.Mapper, payload, state)
				result.Status = StatusInSync
				if len(result.Drift) > 0 {
					result.Status = StatusDrifted
				}
			}
		}
		if err != nil {
			result.Status = StatusFailed
			result.Error = err.Error()
		}

		result.Duration = time.Since(start)
		return result, nil
	})
}

func absentAsNil(err error) future.Future[resource.Document] {
	if docker.IsNotFound(err) {
		return future.Of[resource.Document](nil)
	}
	return future.Reject[resource.Document](err)
}

func (s *Service) record(ctx context.Context, report *Report, result Result) {
	err := s.history.Record(ctx, &history.Record{
		RunID:      report.RunID,
		Namespace:  report.Namespace,
		Kind:       result.Kind,
		Name:       result.Name,
		Action:     report.Action,
		Status:     result.Status,
		Error:      result.Error,
		DurationMs: result.Duration.Milliseconds(),
	})
	if err != nil {
		s.logger.Warn("Failed to record history", zap.String("run_id", report.RunID), zap.Error(err))
	}
}
