package llm

import (
	"sync"
	"sync/atomic"
)

var (
	sharedMu sync.Mutex
	shared   atomic.Pointer[Embedder]
)

// InitShared creates the process-wide embedder once. Later calls return the
// existing instance and ignore config.
func InitShared(config EmbedderConfig) (*Embedder, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if e := shared.Load(); e != nil {
		return e, nil
	}

	e, err := NewEmbedderWithConfig(config)
	if err != nil {
		return nil, err
	}
	shared.Store(e)
	return e, nil
}

// Shared returns the process-wide embedder, or nil before InitShared.
func Shared() *Embedder {
	return shared.Load()
}

// CloseShared drops the process-wide embedder. In-flight callers keep
// their reference.
func CloseShared() {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	shared.Store(nil)
}
