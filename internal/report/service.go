package report

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/doccover/internal/budget"
	"github.com/dgallion1/doccover/internal/config"
	"github.com/dgallion1/doccover/internal/ignore"
	"github.com/dgallion1/doccover/internal/scanner"
)

// Service scans the repository and caches the latest report. The cached
// report is immutable once built, so concurrent readers need no
// coordination beyond the pointer swap.
type Service struct {
	cfg config.Config
	log *slog.Logger

	mu      sync.RWMutex
	current *Report

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewService(cfg config.Config, log *slog.Logger) *Service {
	return &Service{cfg: cfg, log: log}
}

// Start launches the periodic rebuild when a refresh interval is
// configured. With no interval the service rebuilds only on demand.
func (s *Service) Start(ctx context.Context) {
	if s.cfg.RefreshInterval <= 0 {
		return
	}
	tickerCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.cfg.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-tickerCtx.Done():
				return
			case <-ticker.C:
				if _, err := s.Rebuild(tickerCtx); err != nil {
					s.log.Error("scheduled rebuild failed", "error", err)
				}
			}
		}
	}()
}

// Stop shuts down the background rebuild.
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// Current returns the cached report, building one first if none exists.
func (s *Service) Current(ctx context.Context) (*Report, error) {
	s.mu.RLock()
	rep := s.current
	s.mu.RUnlock()
	if rep != nil {
		return rep, nil
	}
	return s.Rebuild(ctx)
}

// Rebuild scans the repository, loads contents, and recomputes the report.
func (s *Service) Rebuild(ctx context.Context) (*Report, error) {
	start := time.Now()

	snap, err := scanner.Scan(s.cfg.RepoRoot, s.cfg.AnchorNames())
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	matcher, err := ignore.Load(s.cfg.RepoRoot, s.cfg.IgnoreFile)
	if err != nil {
		return nil, fmt.Errorf("ignore: %w", err)
	}

	contents, err := scanner.LoadContents(s.cfg.RepoRoot, snap.SourceFiles, s.cfg.ScanWorkers, s.cfg.MaxFileBytes)
	if err != nil {
		return nil, fmt.Errorf("load contents: %w", err)
	}
	if len(contents.Errors) > 0 {
		s.log.Warn("some files could not be read", "count", len(contents.Errors))
	}

	rep := Build(snap, contents, Params{
		ThresholdPercent: s.cfg.BudgetThresholdPercent,
		TokenOptions: budget.Options{
			SkipBinary: s.cfg.SkipBinary,
			MaxLines:   s.cfg.MaxLines,
		},
		MinSplitFiles:    s.cfg.MinSplitFiles,
		MinSplitCoverage: s.cfg.MinSplitCoveragePercent,
		AnchorNames:      s.cfg.AnchorNames(),
		Ignore:           matcher.Predicate(),
	})

	s.mu.Lock()
	s.current = rep
	s.mu.Unlock()

	s.log.Info("report rebuilt",
		"files", rep.TotalFiles,
		"digest", rep.Digest,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return rep, nil
}
