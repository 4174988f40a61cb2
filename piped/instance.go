// Package piped implements the mirror fleet: health-probed Piped API
// instances, ranked selection, and the stream resolution protocol.
package piped

import (
	"fmt"
	"net/url"
	"sync"
	"time"
)

// Instance represents a single independently operated Piped API mirror.
//
// Health state is session-local: once an instance goes offline it stays
// offline until a fresh Instance is constructed. All state fields are
// guarded by the instance's own mutex since probes and resolutions run
// on separate goroutines.
type Instance struct {
	host   string
	domain string

	mu          sync.RWMutex
	initialized bool
	online      bool
	cdn         bool
	ping        time.Duration
	priority    int
}

// New builds an instance for the given base address. The instance starts
// online and uninitialized; call Probe to establish real health state.
func New(host string) *Instance {
	domain := host
	if u, err := url.Parse(host); err == nil && u.Hostname() != "" {
		domain = u.Hostname()
	}

	return &Instance{
		host:   host,
		domain: domain,
		online: true,
	}
}

// NewOfficial builds an instance with elevated selection priority.
func NewOfficial(host string) *Instance {
	i := New(host)
	i.priority = 1
	return i
}

// Host returns the immutable base address of the mirror.
func (i *Instance) Host() string { return i.host }

// Domain returns the host label derived from the base address.
func (i *Instance) Domain() string { return i.domain }

// Initialized reports whether the health probe has completed.
func (i *Instance) Initialized() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.initialized
}

// Online reports whether the instance is considered healthy.
func (i *Instance) Online() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.online
}

// CDN reports whether the mirror serves stream bytes directly
// (content-length-bearing responses) rather than proxying them.
func (i *Instance) CDN() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.cdn
}

// Ping returns the measured probe latency.
func (i *Instance) Ping() time.Duration {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.ping
}

// Priority returns the selection priority tier (higher is preferred).
func (i *Instance) Priority() int { return i.priority }

// markOffline flips the instance offline. The transition is one-way for
// the lifetime of the instance.
func (i *Instance) markOffline() {
	i.mu.Lock()
	i.online = false
	i.mu.Unlock()
}

// setInitialized records probe completion regardless of its outcome.
func (i *Instance) setInitialized() {
	i.mu.Lock()
	i.initialized = true
	i.mu.Unlock()
}

func (i *Instance) String() string {
	return fmt.Sprintf("%s (ping %dms)", i.domain, i.Ping().Milliseconds())
}
