package scribe

import (
	"context"
	"log/slog"
	"time"
)

// Worker drains queued transcription jobs: claim, transcribe, settle. One
// worker per process is enough; the claim visibility window keeps concurrent
// claimers from double-processing a job.
type Worker struct {
	store       *JobStore
	transcriber Transcriber
	interval    time.Duration
	concurrency int
	log         *slog.Logger
}

// WorkerOption configures a Worker.
type WorkerOption func(*Worker)

// WithConcurrency bounds how many jobs transcribe at once. Zero or negative
// keeps the default runner, sized to the machine.
func WithConcurrency(n int) WorkerOption {
	return func(w *Worker) { w.concurrency = n }
}

// NewWorker builds a worker polling at the given interval.
func NewWorker(store *JobStore, transcriber Transcriber, interval time.Duration, log *slog.Logger, opts ...WorkerOption) *Worker {
	if interval <= 0 {
		interval = time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	w := &Worker{
		store:       store,
		transcriber: transcriber,
		interval:    interval,
		log:         log,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run polls until ctx is cancelled, processing claimed jobs with bounded
// concurrency. Returns nil on cancellation.
func (w *Worker) Run(ctx context.Context) error {
	r := DefaultRunner(ctx)
	if w.concurrency > 0 {
		r = NewLimitedRunner(ctx, w.concurrency)
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = r.Wait()
			return nil
		case <-ticker.C:
			for {
				job, err := w.store.Claim(ctx)
				if err != nil {
					w.log.Error("job claim failed", "error", err)
					break
				}
				if job == nil {
					break
				}
				r.Go(func() error {
					w.process(ctx, job)
					return nil // a failed job settles as failed, it never stops the worker
				})
			}
		}
	}
}

func (w *Worker) process(ctx context.Context, job *Job) {
	w.log.Info("transcribing", "job", job.ID, "filename", job.Filename, "bytes", len(job.Audio), "provider", w.transcriber.Name())

	tr, err := w.transcriber.Transcribe(ctx, job.Audio, job.Options)
	if err != nil {
		w.log.Warn("transcription failed", "job", job.ID, "error", err)
		if failErr := w.store.Fail(ctx, job.ID, err.Error()); failErr != nil {
			w.log.Error("job settle failed", "job", job.ID, "error", failErr)
		}
		return
	}

	if err := w.store.Complete(ctx, job.ID, tr, job.Options.DeleteAfterTranscription); err != nil {
		w.log.Error("job settle failed", "job", job.ID, "error", err)
		return
	}
	w.log.Info("transcription completed", "job", job.ID, "length", len(tr.Transcript))
}
