// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package batch

import (
	"context"
	"runtime"
	"sync"

	"github.com/jfcg/sorty/v2"
	"github.com/rs/zerolog/log"
	"github.com/thinhdanggroup/executor"

	"pwd-analyzer/pkg/hibp"
	"pwd-analyzer/pkg/strength"
)

// Item is the outcome for one password of a batch. Password is retained
// only when the runner was configured to keep it; Breach is nil unless
// breach checking was enabled.
type Item struct {
	Index    int
	Password string
	Length   int
	Analysis *strength.Result
	Breach   *hibp.Result
}

// Config bounds a batch run.
type Config struct {
	// Workers caps the pool size. Zero or negative picks a default from
	// the machine's processor count.
	Workers int
	// CheckBreaches also queries the breach corpus for every password.
	CheckBreaches bool
	// KeepPasswords copies the raw password into each Item, for callers
	// that explicitly opted in to exporting it.
	KeepPasswords bool
}

// Runner fans a list of passwords out over a bounded worker pool. Each
// password is scored (and optionally breach-checked) independently; there
// is no cross-password state.
type Runner struct {
	analyzer *strength.Analyzer
	checker  hibp.Checker
	cfg      Config
}

// NewRunner builds a batch runner. checker may be nil when CheckBreaches is
// off.
func NewRunner(analyzer *strength.Analyzer, checker hibp.Checker, cfg Config) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Runner{analyzer: analyzer, checker: checker, cfg: cfg}
}

// Run analyzes every non-empty password and returns the items ordered by
// descending score. A cancelled context stops scheduling; already-completed
// items are still returned.
func (r *Runner) Run(ctx context.Context, passwords []string) ([]Item, error) {
	pool, err := executor.New(executor.Config{
		ReqPerSeconds: 0,
		QueueSize:     2 * r.cfg.Workers,
		NumWorkers:    r.cfg.Workers,
	})
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	var (
		mu    sync.Mutex
		items []Item
	)

	for i, password := range passwords {
		if password == "" {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		if err := pool.Publish(func(index int, pw string) {
			if ctx.Err() != nil {
				return
			}

			analysis, err := r.analyzer.Analyze(pw)
			if err != nil {
				// Only empty input fails, and those were filtered.
				log.Error().Err(err).Msgf("error analyzing password at line %d", index+1)
				return
			}

			item := Item{Index: index, Length: analysis.Length, Analysis: analysis}
			if r.cfg.KeepPasswords {
				item.Password = pw
			}
			if r.cfg.CheckBreaches && r.checker != nil {
				breach, err := r.checker.Check(ctx, pw)
				if err == nil {
					item.Breach = breach
				}
			}

			mu.Lock()
			items = append(items, item)
			mu.Unlock()
		}, i, password); err != nil {
			log.Panic().Err(err).Msg("there is a programming error here.")
		}
	}

	pool.Wait()

	if len(items) < 2 {
		return items, ctx.Err()
	}

	lsw := func(i, k, p, q int) bool {
		if items[i].Analysis.Score > items[k].Analysis.Score ||
			(items[i].Analysis.Score == items[k].Analysis.Score && items[i].Index < items[k].Index) {
			if p != q {
				items[p], items[q] = items[q], items[p]
			}
			return true
		}
		return false
	}
	sorty.Sort(len(items), lsw)

	return items, ctx.Err()
}
