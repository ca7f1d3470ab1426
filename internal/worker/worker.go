// Package worker converts batches of drawing files concurrently. Each
// worker pulls a file from the shared queue, runs it through the
// conversion pipeline and saves the result.
package worker

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/draftline/outline/internal/pipeline"
	"github.com/draftline/outline/internal/queue"
	"github.com/draftline/outline/internal/storage"
)

// Outcome is the result of converting one file.
type Outcome struct {
	File      string
	DrawingID uint
	Stats     pipeline.Stats
	Err       error
}

// Pool converts drawing files with a fixed number of workers.
type Pool struct {
	logger   *slog.Logger
	pipeline *pipeline.Pipeline
	backend  storage.Backend
	workers  int

	// Storage backends are not required to be safe for concurrent
	// writes, so saves are serialized.
	saveMu sync.Mutex
}

// NewPool creates a worker pool. Worker count is clamped to at least 1.
func NewPool(logger *slog.Logger, p *pipeline.Pipeline, backend storage.Backend, workers int) *Pool {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		logger:   logger,
		pipeline: p,
		backend:  backend,
		workers:  workers,
	}
}

// Run converts all files and returns one outcome per file, in input
// order. A failed file does not stop the others.
func (p *Pool) Run(ctx context.Context, files []string) []Outcome {
	pending := queue.New[string]()
	pending.Push(files...)

	results := make(chan Outcome, len(files))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				file, ok := pending.Pop()
				if !ok {
					return
				}
				results <- p.convert(ctx, file)
			}
		}()
	}
	wg.Wait()
	close(results)

	order := make(map[string]int, len(files))
	for i, f := range files {
		order[f] = i
	}

	outcomes := make([]Outcome, 0, len(files))
	for outcome := range results {
		outcomes = append(outcomes, outcome)
	}
	sort.Slice(outcomes, func(i, j int) bool {
		return order[outcomes[i].File] < order[outcomes[j].File]
	})
	return outcomes
}

func (p *Pool) convert(ctx context.Context, file string) Outcome {
	outcome := Outcome{File: file}

	data, err := os.ReadFile(file)
	if err != nil {
		p.logger.Error("Failed to read drawing file", "file", file, "error", err)
		outcome.Err = err
		return outcome
	}

	model, stats, err := p.pipeline.Convert(ctx, filepath.Base(file), string(data))
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Stats = stats

	p.saveMu.Lock()
	id, err := p.backend.SaveDrawing(&stats.Meta, model.Snapshot())
	p.saveMu.Unlock()
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.DrawingID = id

	return outcome
}
