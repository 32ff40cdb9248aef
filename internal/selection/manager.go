package selection

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ytget/img2video/internal/model"
)

// Summary format shown under the picker
const SummaryFormat = "%d images selected"

var (
	ErrInvalidFPS   = errors.New("unsupported frame rate")
	ErrInvalidMusic = errors.New("unsupported music mode")
)

// Manager keeps the current selection and parameters
type Manager struct {
	mu       sync.RWMutex
	images   []model.ImageInput
	params   model.Params
	summary  string
	collator *collate.Collator
}

// NewManager creates a manager with default parameters and no selection
func NewManager() *Manager {
	return &Manager{
		params:   model.DefaultParams(),
		collator: collate.New(language.Und),
	}
}

// SelectImages replaces the selection with the image entries of files,
// ordered by display name. Non-image entries are dropped.
func (m *Manager) SelectImages(files []model.RawFile) []model.ImageInput {
	images := make([]model.ImageInput, 0, len(files))
	for _, f := range files {
		if !f.IsImage() {
			continue
		}
		images = append(images, model.ImageInput{Name: f.Name, Data: f.Data})
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sort.SliceStable(images, func(i, j int) bool {
		return m.collator.CompareString(images[i].Name, images[j].Name) < 0
	})

	m.images = images
	m.summary = fmt.Sprintf(SummaryFormat, len(images))

	return m.snapshotLocked()
}

// Images returns a copy of the current selection
func (m *Manager) Images() []model.ImageInput {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// Count returns the number of selected images
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.images)
}

// Summary returns the human readable count, empty before the first selection
func (m *Manager) Summary() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.summary
}

// Params returns the current parameters
func (m *Manager) Params() model.Params {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.params
}

// SetOutputName sets the base name of the saved video. Any text is accepted.
func (m *Manager) SetOutputName(name string) {
	m.mu.Lock()
	m.params.OutputName = name
	m.mu.Unlock()
}

// SetFPS sets the frame rate
func (m *Manager) SetFPS(fps int) error {
	if !model.IsValidFPS(fps) {
		return fmt.Errorf("%w: %d", ErrInvalidFPS, fps)
	}
	m.mu.Lock()
	m.params.FPS = fps
	m.mu.Unlock()
	return nil
}

// SetMusic sets the music mode
func (m *Manager) SetMusic(mode model.MusicMode) error {
	if !model.IsValidMusic(mode) {
		return fmt.Errorf("%w: %q", ErrInvalidMusic, mode)
	}
	m.mu.Lock()
	m.params.Music = mode
	m.mu.Unlock()
	return nil
}

func (m *Manager) snapshotLocked() []model.ImageInput {
	out := make([]model.ImageInput, len(m.images))
	copy(out, m.images)
	return out
}
