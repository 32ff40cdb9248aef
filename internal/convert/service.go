package convert

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2/storage"
	"github.com/google/uuid"

	"github.com/ytget/img2video/internal/engine"
	"github.com/ytget/img2video/internal/model"
)

// Staging and encoding constants
const (
	FrameNameFormat = "image%05d.jpg"
	ManifestName    = "fileList.txt"
	OutputFileName  = "output.mp4"

	VideoCodec  = "libx264"
	PixelFormat = "yuv420p"
	FrameWidth  = 1280
	FrameHeight = 720

	// Engine-reported progress stops here until the result is published
	MaxRunningPercent = 99

	JobIDPrefix      = "convert-"
	PreviewPrefix    = "preview-"
	previewFilePerms = 0o644
)

var (
	ErrNoImages = errors.New("no images selected")
	ErrNoEngine = engine.ErrNoEngine
	ErrBusy     = errors.New("conversion already in progress")
)

// Service drives a single engine through one conversion at a time
type Service struct {
	handle     *engine.Handle
	previewDir string
	probe      func(path string) (*engine.VideoInfo, error)

	mu       sync.Mutex
	job      model.Job
	onUpdate func(*model.Job) // callback for UI updates
}

// NewService creates a conversion service. Previews of produced videos are
// written to previewDir; an empty previewDir keeps results in memory only.
func NewService(handle *engine.Handle, previewDir string) *Service {
	return &Service{
		handle:     handle,
		previewDir: previewDir,
		probe:      engine.Probe,
		job: model.Job{
			State: model.RunStateIdle,
		},
	}
}

// SetUpdateCallback sets the callback function for job updates
func (s *Service) SetUpdateCallback(callback func(*model.Job)) {
	s.mu.Lock()
	s.onUpdate = callback
	s.mu.Unlock()
}

// SetProber replaces the metadata prober; nil disables probing
func (s *Service) SetProber(probe func(path string) (*engine.VideoInfo, error)) {
	s.mu.Lock()
	s.probe = probe
	s.mu.Unlock()
}

// Snapshot returns a copy of the current job
func (s *Service) Snapshot() model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.job
}

// IsConverting reports whether a conversion is running
func (s *Service) IsConverting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.job.State.IsActive()
}

// Convert turns images into a video using params. It returns ErrNoImages or
// ErrNoEngine without touching any state, and ErrBusy while another
// conversion runs. An engine that fails to load counts as no engine. On
// failure the previously published result is kept.
func (s *Service) Convert(ctx context.Context, images []model.ImageInput, params model.Params) (*model.Result, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	if s.handle == nil || s.handle.Engine() == nil {
		return nil, ErrNoEngine
	}
	if s.IsConverting() {
		return nil, ErrBusy
	}

	eng, err := s.handle.Get(ctx)
	if err != nil {
		log.Printf("Conversion skipped: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrNoEngine, err)
	}

	// Check and claim the run state in one step
	s.mu.Lock()
	if s.job.State.IsActive() {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.job = model.Job{
		ID:         generateJobID(),
		State:      model.RunStateConverting,
		Percent:    0,
		ImageCount: len(images),
		Params:     params,
		Result:     s.job.Result,
		StartedAt:  time.Now(),
	}
	jobID := s.job.ID
	s.mu.Unlock()
	s.notifyUpdate()

	log.Printf("Conversion %s started: %d images at %d fps", jobID, len(images), params.FPS)

	result, err := s.run(ctx, eng, jobID, images, params)

	s.mu.Lock()
	var superseded *model.Result
	if err != nil {
		s.job.LastError = err.Error()
	} else {
		superseded = s.job.Result
		s.job.Result = result
		s.job.Percent = 100
	}
	s.job.State = model.RunStateIdle
	s.job.FinishedAt = time.Now()
	s.mu.Unlock()
	s.notifyUpdate()

	if err != nil {
		log.Printf("Conversion %s failed: %v", jobID, err)
		return nil, err
	}

	if superseded != nil && superseded.PreviewPath != "" && superseded.PreviewPath != result.PreviewPath {
		if rmErr := os.Remove(superseded.PreviewPath); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Printf("Failed to remove superseded preview %s: %v", superseded.PreviewPath, rmErr)
		}
	}

	log.Printf("Conversion %s completed: %d bytes", jobID, result.Size())
	return result, nil
}

// run performs the staged pipeline inside a workspace that is released on
// every exit path
func (s *Service) run(ctx context.Context, eng engine.Engine, jobID string, images []model.ImageInput, params model.Params) (*model.Result, error) {
	ws, err := eng.NewWorkspace(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open workspace: %w", err)
	}
	defer func() {
		// Release must run even if ctx was canceled
		if relErr := ws.Release(context.Background()); relErr != nil {
			log.Printf("Conversion %s: %v", jobID, relErr)
		}
	}()

	eng.SetProgressHandler(s.updateProgress)
	eng.SetLogHandler(func(line string) {
		log.Printf("[engine %s] %s", ws.ID(), line)
	})
	defer func() {
		eng.SetProgressHandler(nil)
		eng.SetLogHandler(nil)
	}()

	for i, img := range images {
		if err := ws.WriteFile(ctx, FrameName(i), img.Data); err != nil {
			return nil, fmt.Errorf("failed to stage %s: %w", img.Name, err)
		}
	}

	if err := ws.WriteFile(ctx, ManifestName, []byte(BuildManifest(len(images)))); err != nil {
		return nil, fmt.Errorf("failed to stage manifest: %w", err)
	}

	if err := ws.Exec(ctx, BuildFFmpegArgs(params.FPS)); err != nil {
		return nil, fmt.Errorf("transcode failed: %w", err)
	}

	data, err := ws.ReadFile(ctx, OutputFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to read output: %w", err)
	}

	return s.buildResult(jobID, data, params)
}

// buildResult wraps the produced bytes and writes the playable preview copy
func (s *Service) buildResult(jobID string, data []byte, params model.Params) (*model.Result, error) {
	result := &model.Result{
		Data:         data,
		MIMEType:     model.VideoMIMEType,
		DownloadName: params.DownloadName(),
	}

	if s.previewDir == "" {
		return result, nil
	}

	if err := os.MkdirAll(s.previewDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create preview dir: %w", err)
	}
	path := filepath.Join(s.previewDir, PreviewPrefix+strings.TrimPrefix(jobID, JobIDPrefix)+model.VideoExtension)
	if err := os.WriteFile(path, data, previewFilePerms); err != nil {
		return nil, fmt.Errorf("failed to write preview: %w", err)
	}
	result.PreviewPath = path
	result.URI = storage.NewFileURI(path).String()

	s.mu.Lock()
	probe := s.probe
	s.mu.Unlock()
	if probe != nil {
		info, err := probe(path)
		if err != nil {
			log.Printf("Conversion %s: metadata unavailable: %v", jobID, err)
		} else {
			result.DurationSec = info.DurationSec
			result.Width = info.Width
			result.Height = info.Height
			result.Codec = info.Codec
		}
	}

	return result, nil
}

// updateProgress maps an engine fraction to a percentage that never
// decreases and stays below 100 until the run succeeds
func (s *Service) updateProgress(fraction float64) {
	percent := int(math.Round(fraction * 100))
	if percent > MaxRunningPercent {
		percent = MaxRunningPercent
	}

	s.mu.Lock()
	if !s.job.State.IsActive() || percent <= s.job.Percent {
		s.mu.Unlock()
		return
	}
	s.job.Percent = percent
	s.mu.Unlock()

	s.notifyUpdate()
}

// notifyUpdate calls the update callback with a copy of the job
func (s *Service) notifyUpdate() {
	s.mu.Lock()
	callback := s.onUpdate
	job := s.job
	s.mu.Unlock()

	if callback != nil {
		callback(&job)
	}
}

// FrameName returns the staged name of the i-th image
func FrameName(i int) string {
	return fmt.Sprintf(FrameNameFormat, i)
}

// BuildManifest returns the concat demuxer list for n staged frames
func BuildManifest(n int) string {
	lines := make([]string, n)
	for i := 0; i < n; i++ {
		lines[i] = fmt.Sprintf("file '%s'", FrameName(i))
	}
	return strings.Join(lines, "\n")
}

// ScalePadFilter letterboxes every frame to FrameWidth x FrameHeight
func ScalePadFilter() string {
	return fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
		FrameWidth, FrameHeight, FrameWidth, FrameHeight)
}

// BuildFFmpegArgs builds the transcode command for the staged workspace
func BuildFFmpegArgs(fps int) []string {
	return []string{
		"-f", "concat", // Concat demuxer
		"-safe", "0", // Accept the local manifest
		"-i", ManifestName, // Manifest input
		"-framerate", strconv.Itoa(fps), // User frame rate
		"-c:v", VideoCodec, // Video codec
		"-pix_fmt", PixelFormat, // Pixel format
		"-vf", ScalePadFilter(), // Letterbox to 1280x720
		OutputFileName, // Output file
	}
}

// generateJobID generates a unique job ID using UUID v7 for time ordering
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}
