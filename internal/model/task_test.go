package model

import (
	"testing"
	"time"
)

func TestResult_GetDurationString(t *testing.T) {
	tests := []struct {
		duration float64
		expected string
	}{
		{-1, "—"},
		{0, "—"},
		{0.4, "00:00"},
		{2.6, "00:03"},
		{90, "01:30"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
	}

	for _, test := range tests {
		r := &Result{DurationSec: test.duration}
		result := r.GetDurationString()
		if result != test.expected {
			t.Errorf("GetDurationString() with DurationSec=%v = %s, expected %s", test.duration, result, test.expected)
		}
	}

	var nilResult *Result
	if nilResult.GetDurationString() != "—" {
		t.Error("Expected placeholder for nil result")
	}
}

func TestResult_GetResolutionString(t *testing.T) {
	r := &Result{Width: 1280, Height: 720}
	if got := r.GetResolutionString(); got != "1280x720" {
		t.Errorf("Expected 1280x720, got %s", got)
	}

	r = &Result{}
	if got := r.GetResolutionString(); got != "—" {
		t.Errorf("Expected placeholder, got %s", got)
	}
}

func TestResult_Size(t *testing.T) {
	var nilResult *Result
	if nilResult.Size() != 0 {
		t.Error("Expected zero size for nil result")
	}

	r := &Result{Data: []byte("abc")}
	if r.Size() != 3 {
		t.Errorf("Expected size 3, got %d", r.Size())
	}
}

func TestJob_States(t *testing.T) {
	job := &Job{State: RunStateConverting}
	if job.IsReady() || job.Failed() {
		t.Error("Converting job should be neither ready nor failed")
	}

	job = &Job{State: RunStateIdle, Result: &Result{}}
	if !job.IsReady() {
		t.Error("Idle job with result should be ready")
	}

	job = &Job{State: RunStateIdle, LastError: "boom"}
	if !job.Failed() {
		t.Error("Idle job with error should be failed")
	}
}

func TestJob_Elapsed(t *testing.T) {
	job := &Job{}
	if job.Elapsed() != 0 {
		t.Error("Expected zero elapsed for job that never started")
	}

	start := time.Now().Add(-2 * time.Second)
	job = &Job{StartedAt: start, FinishedAt: start.Add(1500 * time.Millisecond)}
	if job.Elapsed() != 1500*time.Millisecond {
		t.Errorf("Expected 1.5s elapsed, got %v", job.Elapsed())
	}

	job = &Job{StartedAt: start}
	if job.Elapsed() < 2*time.Second {
		t.Errorf("Expected running job elapsed >= 2s, got %v", job.Elapsed())
	}
}
