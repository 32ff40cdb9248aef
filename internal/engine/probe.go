package engine

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// DefaultProbeTimeout bounds a single ffprobe run
const DefaultProbeTimeout = 15 * time.Second

// VideoInfo is the subset of ffprobe output shown with a result
type VideoInfo struct {
	DurationSec float64
	Width       int
	Height      int
	Codec       string
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
}

// Probe reads duration, size and codec of the first video stream of path
func Probe(path string) (*VideoInfo, error) {
	out, err := ffmpeg.ProbeWithTimeout(path, DefaultProbeTimeout, ffmpeg.KwArgs{})
	if err != nil {
		return nil, fmt.Errorf("failed to probe %s: %w", path, err)
	}
	return parseProbeOutput(out)
}

func parseProbeOutput(out string) (*VideoInfo, error) {
	var probed probeOutput
	if err := json.Unmarshal([]byte(out), &probed); err != nil {
		return nil, fmt.Errorf("failed to parse probe output: %w", err)
	}

	info := &VideoInfo{}
	if probed.Format.Duration != "" {
		if d, err := strconv.ParseFloat(probed.Format.Duration, 64); err == nil {
			info.DurationSec = d
		}
	}

	for _, s := range probed.Streams {
		if s.CodecType != "video" {
			continue
		}
		info.Width = s.Width
		info.Height = s.Height
		info.Codec = s.CodecName
		break
	}

	return info, nil
}
