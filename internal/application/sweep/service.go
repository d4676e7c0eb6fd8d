package sweep

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/colony-go/internal/adapters/metrics"
	"github.com/andrescamacho/colony-go/internal/application/assignment/types"
	"github.com/andrescamacho/colony-go/internal/application/common"
	"github.com/andrescamacho/colony-go/internal/domain/colony"
	"github.com/andrescamacho/colony-go/internal/domain/shared"
)

// Report summarizes one sweep over all colonies
type Report struct {
	Colonies  int
	Failures  int
	Completed int
	Errors    map[string]error
	Duration  time.Duration
}

// Service periodically completes due assignments of every colony. Colonies
// are processed one at a time and a failing colony never stops the sweep.
type Service struct {
	mediator common.Mediator
	colonies colony.Repository
	limiter  *rate.Limiter
	clock    shared.Clock

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewService creates a sweep service. ratePerSecond <= 0 disables throttling.
func NewService(mediator common.Mediator, colonies colony.Repository, ratePerSecond float64, burst int, clock shared.Clock) *Service {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	limit := rate.Inf
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
	}
	if burst < 1 {
		burst = 1
	}
	return &Service{
		mediator: mediator,
		colonies: colonies,
		limiter:  rate.NewLimiter(limit, burst),
		clock:    clock,
		stopCh:   make(chan struct{}),
	}
}

// RunOnce sweeps every colony once
func (s *Service) RunOnce(ctx context.Context) (*Report, error) {
	logger := common.LoggerFromContext(ctx)
	start := time.Now()

	ids, err := s.colonies.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list colonies: %w", err)
	}

	report := &Report{Colonies: len(ids), Errors: map[string]error{}}
	now := s.clock.Now()

	for _, id := range ids {
		if err := s.limiter.Wait(ctx); err != nil {
			return report, err
		}

		resp, err := s.mediator.Send(ctx, &types.CompleteDueAssignmentsCommand{ColonyID: id, Now: now})
		if err != nil {
			report.Failures++
			report.Errors[id] = err
			logger.Log("ERROR", "Sweep failed for colony", map[string]interface{}{
				"colony_id": id,
				"error":     err.Error(),
			})
			continue
		}
		if r, ok := resp.(*types.CompleteDueAssignmentsResponse); ok {
			report.Completed += len(r.Completed)
		}
	}

	report.Duration = time.Since(start)
	metrics.RecordSweep(report.Duration.Seconds(), report.Colonies, report.Failures, report.Completed)
	logger.Log("INFO", "Sweep finished", map[string]interface{}{
		"colonies":  report.Colonies,
		"failures":  report.Failures,
		"completed": report.Completed,
		"duration":  report.Duration.String(),
	})
	return report, nil
}

// Start runs a sweep immediately and then every interval until Stop
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.sweep(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

// Stop ends the background loop and waits for a running sweep to finish.
// Later calls only wait.
func (s *Service) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

func (s *Service) sweep(ctx context.Context) {
	if _, err := s.RunOnce(ctx); err != nil {
		common.LoggerFromContext(ctx).Log("ERROR", "Sweep aborted", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
