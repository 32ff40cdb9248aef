package model

import (
	"fmt"
	"time"
)

// Result is a produced video held in memory
type Result struct {
	Data         []byte
	MIMEType     string
	URI          string // playable location of the preview copy
	PreviewPath  string // local path behind URI
	DownloadName string // file name offered on save

	// Probed metadata, zero when probing was unavailable
	DurationSec float64
	Width       int
	Height      int
	Codec       string
}

// Size returns the byte length of the video
func (r *Result) Size() int64 {
	if r == nil {
		return 0
	}
	return int64(len(r.Data))
}

// GetResolutionString returns "1280x720", or "—" if unknown
func (r *Result) GetResolutionString() string {
	if r == nil || r.Width <= 0 || r.Height <= 0 {
		return "—"
	}
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// GetDurationString returns the duration formatted as mm:ss, or "—" if unknown
func (r *Result) GetDurationString() string {
	if r == nil || r.DurationSec <= 0 {
		return "—"
	}

	total := int(r.DurationSec + 0.5)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// Job is a snapshot of the orchestrator published to listeners
type Job struct {
	ID         string
	State      RunState
	Percent    int    // 0 to 100
	LastError  string // last error message if any
	ImageCount int
	Params     Params
	Result     *Result // latest published result, kept across failed runs
	StartedAt  time.Time
	FinishedAt time.Time
}

// IsReady returns true if the job is idle with a published result
func (j *Job) IsReady() bool {
	return j.State == RunStateIdle && j.Result != nil
}

// Failed returns true if the last run ended with an error
func (j *Job) Failed() bool {
	return j.State == RunStateIdle && j.LastError != ""
}

// Elapsed returns the run duration, measured up to now while converting
func (j *Job) Elapsed() time.Duration {
	if j.StartedAt.IsZero() {
		return 0
	}
	if j.FinishedAt.IsZero() || j.FinishedAt.Before(j.StartedAt) {
		return time.Since(j.StartedAt)
	}
	return j.FinishedAt.Sub(j.StartedAt)
}
