// Package assets turns a brand.Config into the files of a brand asset set.
//
// Work is split into four jobs that always run in the same order:
//
//	favicon     multi-resolution favicon.ico plus one PNG per glyph size
//	touch-icon  the Apple touch icon, flattened onto the background color
//	social      the Open Graph preview image
//	icons       the fixed-size platform icons
//
// A Generator renders each job entirely in memory and only then hands the
// artifacts to a Sink, so a job whose input cannot be read or parsed writes
// nothing. Jobs are independent: one failing does not stop the others.
package assets

import (
	"fmt"
	"strings"
)

// Job names one unit of generation work.
type Job string

const (
	JobFavicon   Job = "favicon"
	JobTouchIcon Job = "touch-icon"
	JobSocial    Job = "social"
	JobIcons     Job = "icons"
)

// AllJobs lists every job in execution order.
var AllJobs = []Job{JobFavicon, JobTouchIcon, JobSocial, JobIcons}

// Valid reports whether j is a known job.
func (j Job) Valid() bool {
	for _, k := range AllJobs {
		if j == k {
			return true
		}
	}
	return false
}

// ParseJobs maps job names to Jobs. Empty input selects every job. Names may
// be given in any order or repeated; the result is in execution order.
func ParseJobs(names []string) ([]Job, error) {
	if len(names) == 0 {
		return AllJobs, nil
	}
	want := make(map[Job]bool, len(names))
	for _, n := range names {
		j := Job(strings.TrimSpace(n))
		if !j.Valid() {
			return nil, fmt.Errorf("unknown job %q (valid: %s)", n, jobList())
		}
		want[j] = true
	}
	var jobs []Job
	for _, j := range AllJobs {
		if want[j] {
			jobs = append(jobs, j)
		}
	}
	return jobs, nil
}

func jobList() string {
	names := make([]string, len(AllJobs))
	for i, j := range AllJobs {
		names[i] = string(j)
	}
	return strings.Join(names, ", ")
}
