// Package seed brings the Coffeemon application database into the demo
// state: accounts, admin role, catalog, players, their Coffeemons with
// starter moves and sample orders. Every stage checks before it creates, so
// a second run against a seeded database changes nothing.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kasuganosora/coffeemon-seed/account"
	"github.com/kasuganosora/coffeemon-seed/store"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

var (
	// ErrAccountServiceUnreachable aborts a run before anything is written.
	ErrAccountServiceUnreachable = errors.New("seed: account service unreachable")
	// ErrRunInProgress means another run holds the seed lock.
	ErrRunInProgress = errors.New("seed: another seed run is in progress")
	// ErrIncomplete is returned when a run finished but some stages failed or
	// were skipped.
	ErrIncomplete = errors.New("seed: run incomplete")
	// ErrInvalidPipeline means a stage requires a stage not declared before it.
	ErrInvalidPipeline = errors.New("seed: invalid stage pipeline")
)

// Cache keys shared by every seed run against the same store.
const (
	LockKey    = "seed:lock"
	LastRunKey = "seed:last_run"
)

// AccountService creates accounts. *account.Client implements it.
type AccountService interface {
	Health(ctx context.Context) error
	CreateUser(ctx context.Context, u account.NewUser) error
}

// Locker is the subset of cache.Cache a run needs for its lock and its last
// run record.
type Locker interface {
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	CompareAndDel(ctx context.Context, key, value string) (bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Options control a run.
type Options struct {
	// Clear wipes the application tables before seeding.
	Clear bool
	// SampleOrders enables the orders stage.
	SampleOrders bool
	// Locker, when set, serializes runs and keeps the last run record.
	Locker  Locker
	LockTTL time.Duration
	// Out receives progress lines. Defaults to io.Discard.
	Out io.Writer
	// Now defaults to time.Now.
	Now func() time.Time
}

// Seeder runs the seed pipeline. It is not safe for concurrent Run calls;
// use a Locker to keep separate processes apart.
type Seeder struct {
	store    *store.Store
	accounts AccountService
	data     Dataset
	opts     Options
	logger   *zap.Logger
	stages   []stage
}

// New validates data and builds the stage pipeline.
func New(st *store.Store, accounts AccountService, data Dataset, opts Options, logger *zap.Logger) (*Seeder, error) {
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("seed: invalid dataset: %w", err)
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Seeder{
		store:    st,
		accounts: accounts,
		data:     data,
		opts:     opts,
		logger:   logger,
	}
	s.stages = s.pipeline()
	if err := checkPipeline(s.stages); err != nil {
		return nil, err
	}
	return s, nil
}

// Run applies the pipeline once. The Account Service is probed before
// anything is written; if it is down the run aborts with
// ErrAccountServiceUnreachable and the database is untouched.
//
// The returned Summary is non-nil whenever stages ran, including when the
// error is ErrIncomplete.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	runID := uuid.NewString()
	log := s.logger.With(zap.String("run_id", runID))
	ctx = account.WithTraceID(ctx, runID)

	if err := s.accounts.Health(ctx); err != nil {
		log.Error("account service is not reachable, nothing was changed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrAccountServiceUnreachable, err)
	}

	release, err := s.acquire(ctx, log, runID)
	if err != nil {
		return nil, err
	}
	defer release()

	sum := newSummary(runID, s.opts.Now(), s.data)
	enabled := lo.Filter(s.stages, func(st stage, _ int) bool { return st.enabled })
	broken := make(map[string]bool)

	for i, st := range enabled {
		fmt.Fprintf(s.opts.Out, "[%d/%d] %s...\n", i+1, len(enabled), st.title)
		stageLog := log.With(zap.String("stage", st.name))

		if blockedBy := lo.Filter(st.requires, func(r string, _ int) bool { return broken[r] }); len(blockedBy) > 0 {
			stageLog.Warn("stage skipped", zap.Strings("blocked_by", blockedBy))
			fmt.Fprintf(s.opts.Out, "  > skipped, needs %s\n", strings.Join(blockedBy, ", "))
			sum.SkippedStages = append(sum.SkippedStages, st.name)
			broken[st.name] = true
			continue
		}

		if err := st.run(ctx, stageLog, sum); err != nil {
			stageLog.Error("stage failed", zap.Error(err))
			fmt.Fprintf(s.opts.Out, "  > failed: %v\n", err)
			sum.FailedStages = append(sum.FailedStages, st.name)
			broken[st.name] = true
			if st.hard {
				sum.FinishedAt = s.opts.Now()
				return sum, fmt.Errorf("seed: stage %s: %w", st.name, err)
			}
			continue
		}
		stageLog.Debug("stage done")
	}

	sum.FinishedAt = s.opts.Now()
	s.record(ctx, log, sum)

	if !sum.OK() {
		failed := append(append([]string(nil), sum.FailedStages...), sum.SkippedStages...)
		return sum, fmt.Errorf("%w: %s", ErrIncomplete, strings.Join(failed, ", "))
	}
	log.Info("seed run complete")
	return sum, nil
}

func (s *Seeder) acquire(ctx context.Context, log *zap.Logger, runID string) (func(), error) {
	if s.opts.Locker == nil {
		return func() {}, nil
	}
	ok, err := s.opts.Locker.SetNX(ctx, LockKey, runID, s.opts.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("seed: acquire lock: %w", err)
	}
	if !ok {
		log.Warn("seed lock is held by another run")
		return nil, ErrRunInProgress
	}
	return func() {
		// The run context may already be cancelled; the lock must still go.
		if _, err := s.opts.Locker.CompareAndDel(context.WithoutCancel(ctx), LockKey, runID); err != nil {
			log.Warn("release seed lock", zap.Error(err))
		}
	}, nil
}

func (s *Seeder) record(ctx context.Context, log *zap.Logger, sum *Summary) {
	if s.opts.Locker == nil {
		return
	}
	raw, err := json.Marshal(sum)
	if err != nil {
		log.Warn("encode run summary", zap.Error(err))
		return
	}
	if err := s.opts.Locker.Set(context.WithoutCancel(ctx), LastRunKey, string(raw), 0); err != nil {
		log.Warn("store run summary", zap.Error(err))
	}
}
