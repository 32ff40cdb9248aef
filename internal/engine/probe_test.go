package engine

import "testing"

func TestParseProbeOutput(t *testing.T) {
	out := `{
		"streams": [
			{"codec_type": "audio", "codec_name": "aac"},
			{"codec_type": "video", "codec_name": "h264", "width": 1280, "height": 720}
		],
		"format": {"duration": "0.400000"}
	}`

	info, err := parseProbeOutput(out)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if info.Width != 1280 || info.Height != 720 {
		t.Errorf("Expected 1280x720, got %dx%d", info.Width, info.Height)
	}
	if info.Codec != "h264" {
		t.Errorf("Expected codec h264, got %s", info.Codec)
	}
	if info.DurationSec != 0.4 {
		t.Errorf("Expected duration 0.4, got %v", info.DurationSec)
	}
}

func TestParseProbeOutput_Invalid(t *testing.T) {
	if _, err := parseProbeOutput("not json"); err == nil {
		t.Error("Expected error for invalid JSON")
	}

	info, err := parseProbeOutput(`{"format": {}, "streams": []}`)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if info.DurationSec != 0 || info.Width != 0 || info.Codec != "" {
		t.Errorf("Expected zero info, got %+v", info)
	}
}
