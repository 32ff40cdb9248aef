package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNoEngine is returned by a Handle that was created without an engine
var ErrNoEngine = errors.New("no engine configured")

// Handle owns an engine and loads it on first use. A failed load is
// retried by the next Get.
type Handle struct {
	mu     sync.Mutex
	engine Engine
}

// NewHandle wraps engine without loading it
func NewHandle(engine Engine) *Handle {
	return &Handle{engine: engine}
}

// Get returns the loaded engine, loading it if needed
func (h *Handle) Get(ctx context.Context) (Engine, error) {
	if h == nil {
		return nil, ErrNoEngine
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.engine == nil {
		return nil, ErrNoEngine
	}
	if h.engine.Loaded() {
		return h.engine, nil
	}
	if err := h.engine.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load engine: %w", err)
	}
	return h.engine, nil
}

// Ready reports whether the engine has been loaded
func (h *Handle) Ready() bool {
	if h == nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine != nil && h.engine.Loaded()
}

// Engine returns the wrapped engine, loaded or not
func (h *Handle) Engine() Engine {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine
}
