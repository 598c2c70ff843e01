package dataset

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"listingscope/internal/errors"
	"listingscope/ports"
)

// Holder loads the listings table once per process and hands out the same value after that.
// A failed load is not remembered; the next Get tries the source again.
type Holder struct {
	source ports.TableSource

	mu     sync.Mutex
	loaded atomic.Pointer[Table]
}

// NewHolder creates a holder over source. Nothing is read until the first Get.
func NewHolder(source ports.TableSource) *Holder {
	return &Holder{source: source}
}

// Get returns the loaded table, reading the source on first use.
// Concurrent first calls share a single read.
func (h *Holder) Get(ctx context.Context) (*Table, error) {
	if t := h.loaded.Load(); t != nil {
		return t, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if t := h.loaded.Load(); t != nil {
		return t, nil
	}

	start := time.Now()
	raw, err := h.source.Read(ctx)
	if err != nil {
		log.Printf("[Dataset] load of %s failed: %v", h.source.Name(), err)
		return nil, errors.DataUnavailable(h.source.Name(), err)
	}

	t, err := FromRecords(raw.Records())
	if err != nil {
		log.Printf("[Dataset] %s is malformed: %v", h.source.Name(), err)
		return nil, errors.DataUnavailable(h.source.Name(), err)
	}

	h.loaded.Store(t)
	log.Printf("[Dataset] loaded %s: %d rows, %d columns in %v",
		h.source.Name(), t.Len(), len(t.columns), time.Since(start))
	return t, nil
}

// Loaded reports whether the table has been read, without triggering a read.
func (h *Holder) Loaded() bool {
	return h.loaded.Load() != nil
}

// Source returns the name of the underlying source.
func (h *Holder) Source() string {
	return h.source.Name()
}
