package model

import (
	"fmt"
	"strings"
)

// MusicMode is the background music choice. It is recorded with the job
// but has no effect on the encoded video.
type MusicMode string

const (
	MusicNone      MusicMode = "None"
	MusicUpbeat    MusicMode = "Upbeat"
	MusicRelaxing  MusicMode = "Relaxing"
	MusicEnergetic MusicMode = "Energetic"
	MusicCustom    MusicMode = "Custom..."
)

// Default parameter values
const (
	DefaultOutputName = "awesome_video"
	DefaultFPS        = 10
	DefaultMusic      = MusicNone
)

// Output container
const (
	VideoExtension = ".mp4"
	VideoMIMEType  = "video/mp4"
)

// FPSOptions lists the selectable frame rates in display order
var FPSOptions = []int{5, 10, 15, 20, 25, 30}

// MusicOptions lists the selectable music modes in display order
var MusicOptions = []MusicMode{MusicNone, MusicUpbeat, MusicRelaxing, MusicEnergetic, MusicCustom}

// Params holds the user-chosen conversion parameters
type Params struct {
	OutputName string
	FPS        int
	Music      MusicMode
}

// DefaultParams returns the parameters a fresh session starts with
func DefaultParams() Params {
	return Params{
		OutputName: DefaultOutputName,
		FPS:        DefaultFPS,
		Music:      DefaultMusic,
	}
}

// DownloadName returns the file name offered when saving the result
func (p Params) DownloadName() string {
	return p.OutputName + VideoExtension
}

// IsValidFPS reports whether fps is one of FPSOptions
func IsValidFPS(fps int) bool {
	for _, v := range FPSOptions {
		if v == fps {
			return true
		}
	}
	return false
}

// IsValidMusic reports whether m is one of MusicOptions
func IsValidMusic(m MusicMode) bool {
	for _, v := range MusicOptions {
		if v == m {
			return true
		}
	}
	return false
}

// FPSLabel formats a frame rate the way the selector shows it ("10 FPS")
func FPSLabel(fps int) string {
	return fmt.Sprintf("%d FPS", fps)
}

// ParseFPSLabel is the inverse of FPSLabel. Bare numbers are accepted too.
func ParseFPSLabel(label string) (int, error) {
	var fps int
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(label), "FPS"))
	if _, err := fmt.Sscanf(s, "%d", &fps); err != nil {
		return 0, fmt.Errorf("invalid fps label %q: %w", label, err)
	}
	return fps, nil
}
