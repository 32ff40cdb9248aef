package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// ffmpeg progress keys (-progress pipe:2)
const (
	ProgressTimePrefix  = "out_time_us="
	ProgressStatePrefix = "progress="
	ProgressStateEnd    = "end"
)

var durationRe = regexp.MustCompile(`Duration:\s*(\d+):(\d{2}):(\d{2}(?:\.\d+)?)`)

// progressParser turns ffmpeg stderr lines into completion fractions. The
// total is taken from the first "Duration:" banner of the input.
type progressParser struct {
	total float64 // seconds, 0 while unknown
}

// parseDuration extracts the seconds of a "Duration: HH:MM:SS.xx" line
func parseDuration(line string) (float64, bool) {
	m := durationRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return 0, false
	}
	return float64(hours*3600+minutes*60) + seconds, true
}

// isProgressLine reports whether line is a key=value record of -progress output
func isProgressLine(line string) bool {
	eq := strings.IndexByte(line, '=')
	if eq <= 0 || strings.ContainsAny(line[:eq], " \t:") {
		return false
	}
	return true
}

// Parse consumes one line. It returns a fraction and true when the line
// advances progress.
func (p *progressParser) Parse(line string) (float64, bool) {
	line = strings.TrimSpace(line)

	if p.total == 0 {
		if d, ok := parseDuration(line); ok && d > 0 {
			p.total = d
			return 0, false
		}
	}

	switch {
	case strings.HasPrefix(line, ProgressStatePrefix):
		if strings.TrimPrefix(line, ProgressStatePrefix) == ProgressStateEnd {
			return 1.0, true
		}
	case strings.HasPrefix(line, ProgressTimePrefix):
		if p.total <= 0 {
			return 0, false
		}
		us, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
		if err != nil || us < 0 {
			return 0, false
		}
		fraction := float64(us) / 1000000.0 / p.total
		if fraction > 1.0 {
			fraction = 1.0
		}
		return fraction, true
	}

	return 0, false
}
