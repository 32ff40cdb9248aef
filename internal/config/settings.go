package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/img2video/internal/model"
	"github.com/ytget/img2video/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyOutputDir          = "output_directory"
	KeyFPS                = "frames_per_second"
	KeyMusic              = "music_mode"
	KeyOutputName         = "output_name"
	KeyFFmpegPath         = "ffmpeg_path"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultFFmpegPath         = "ffmpeg"
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = false
	FallbackOutputDir         = "/tmp/img2video"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetOutputDirectory returns the directory saved videos go to by default
func (s *Settings) GetOutputDirectory() string {
	dir := s.app.Preferences().String(KeyOutputDir)
	if dir == "" {
		defaultDir, err := platform.GetDefaultVideosDir()
		if err != nil {
			defaultDir = FallbackOutputDir
		}
		s.SetOutputDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetOutputDirectory sets the output directory
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDir, dir)
}

// GetFPS returns the last chosen frame rate
func (s *Settings) GetFPS() int {
	fps := s.app.Preferences().Int(KeyFPS)
	if !model.IsValidFPS(fps) {
		s.SetFPS(model.DefaultFPS)
		return model.DefaultFPS
	}
	return fps
}

// SetFPS stores fps; values outside the selectable set fall back to the default
func (s *Settings) SetFPS(fps int) {
	if !model.IsValidFPS(fps) {
		fps = model.DefaultFPS
	}
	s.app.Preferences().SetInt(KeyFPS, fps)
}

// GetMusic returns the last chosen music mode
func (s *Settings) GetMusic() model.MusicMode {
	music := model.MusicMode(s.app.Preferences().String(KeyMusic))
	if !model.IsValidMusic(music) {
		s.SetMusic(model.DefaultMusic)
		return model.DefaultMusic
	}
	return music
}

// SetMusic stores the music mode
func (s *Settings) SetMusic(music model.MusicMode) {
	if !model.IsValidMusic(music) {
		music = model.DefaultMusic
	}
	s.app.Preferences().SetString(KeyMusic, string(music))
}

// GetOutputName returns the last used output name
func (s *Settings) GetOutputName() string {
	name := s.app.Preferences().String(KeyOutputName)
	if name == "" {
		return model.DefaultOutputName
	}
	return name
}

// SetOutputName stores the output name
func (s *Settings) SetOutputName(name string) {
	s.app.Preferences().SetString(KeyOutputName, name)
}

// GetParams returns the stored conversion parameters
func (s *Settings) GetParams() model.Params {
	return model.Params{
		OutputName: s.GetOutputName(),
		FPS:        s.GetFPS(),
		Music:      s.GetMusic(),
	}
}

// GetFFmpegPath returns the ffmpeg binary name or path
func (s *Settings) GetFFmpegPath() string {
	path := s.app.Preferences().String(KeyFFmpegPath)
	if path == "" {
		return DefaultFFmpegPath
	}
	return path
}

// SetFFmpegPath sets the ffmpeg binary; empty restores the default
func (s *Settings) SetFFmpegPath(path string) {
	if path == "" {
		path = DefaultFFmpegPath
	}
	s.app.Preferences().SetString(KeyFFmpegPath, path)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether a saved video is revealed in the file manager
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether a saved video is revealed in the file manager
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
