package assets

import (
	"errors"
	"fmt"
	"time"
)

// Format is the container format of an artifact.
type Format string

const (
	FormatPNG Format = "png"
	FormatICO Format = "ico"
)

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatICO {
		return "image/x-icon"
	}
	return "image/png"
}

// Artifact is one encoded output file. Path is relative to the sink's base
// directory and may climb above it.
type Artifact struct {
	Path   string
	Data   []byte
	Width  int
	Height int
	Format Format
}

// Result is the outcome of one job.
type Result struct {
	Job       Job
	Artifacts []Artifact
	Err       error
	Duration  time.Duration
}

// OK reports whether the job succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Report collects the results of a Generate call in execution order.
type Report struct {
	Results []Result
	// Cancelled holds the context error when the run stopped early. Jobs
	// that never started have no Result.
	Cancelled error
}

// Failed returns the results of failed jobs.
func (r *Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Files returns the number of artifacts written.
func (r *Report) Files() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n += len(res.Artifacts)
		}
	}
	return n
}

// Err joins every job error and the cancellation cause, or returns nil when
// the whole run succeeded.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", res.Job, res.Err))
	}
	if r.Cancelled != nil {
		errs = append(errs, r.Cancelled)
	}
	return errors.Join(errs...)
}

// Interrupted reports whether the run stopped because its context ended.
func (r *Report) Interrupted() bool {
	return r.Cancelled != nil
}
