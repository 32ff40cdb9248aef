package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ytget/img2video/internal/model"
)

// Environment variables read by the command line tool
const (
	EnvFFmpegPath = "IMG2VIDEO_FFMPEG"
	EnvOutputDir  = "IMG2VIDEO_OUTPUT_DIR"
	EnvFPS        = "IMG2VIDEO_FPS"
	EnvOutputName = "IMG2VIDEO_NAME"
)

// Env holds settings taken from the environment. Empty fields were not set.
type Env struct {
	FFmpegPath string
	OutputDir  string
	OutputName string
	FPS        int
}

// LoadDotEnv loads variables from the given .env files (".env" when none
// are given) without overriding the process environment. Missing files are
// not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// FromEnv reads the command line settings from the environment
func FromEnv() (Env, error) {
	env := Env{
		FFmpegPath: strings.TrimSpace(os.Getenv(EnvFFmpegPath)),
		OutputDir:  strings.TrimSpace(os.Getenv(EnvOutputDir)),
		OutputName: strings.TrimSpace(os.Getenv(EnvOutputName)),
	}

	if raw := strings.TrimSpace(os.Getenv(EnvFPS)); raw != "" {
		fps, err := strconv.Atoi(raw)
		if err != nil {
			return Env{}, fmt.Errorf("invalid %s %q: %w", EnvFPS, raw, err)
		}
		if !model.IsValidFPS(fps) {
			return Env{}, fmt.Errorf("invalid %s %d: must be one of %v", EnvFPS, fps, model.FPSOptions)
		}
		env.FPS = fps
	}

	return env, nil
}
