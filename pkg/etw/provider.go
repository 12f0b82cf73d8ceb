package etw

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/Microsoft/go-tracelogging/pkg/guid"
)

// ErrNotSupported is returned when registering a provider on a platform without
// an event tracing transport.
var ErrNotSupported = errors.New("etw: event tracing is not supported on this platform")

// ProviderState informs the provider EnableCallback what action is being
// performed.
type ProviderState uint32

const (
	// ProviderStateDisable indicates the provider is being disabled.
	ProviderStateDisable ProviderState = iota
	// ProviderStateEnable indicates the provider is being enabled.
	ProviderStateEnable
	// ProviderStateCaptureState indicates the provider is having its current
	// state snap-shotted.
	ProviderStateCaptureState
)

// EnableCallback is the form of the callback function that receives provider
// enable/disable notifications from ETW.
type EnableCallback func(guid.GUID, ProviderState, Level, uint64, uint64, uintptr)

// Provider represents a registered ETW event provider. It is identified by a
// provider ID, and carries the provider metadata block that is passed with
// every event it writes.
type Provider struct {
	ID       guid.GUID
	handle   providerHandle
	metadata []byte
	callback EnableCallback
	index    uint

	mu         sync.RWMutex
	enabled    bool
	level      Level
	keywordAny uint64
	keywordAll uint64
}

// String returns the provider ID.
func (provider *Provider) String() string {
	if provider == nil {
		return "<nil>"
	}
	return provider.ID.String()
}

// Metadata returns the provider metadata block.
func (provider *Provider) Metadata() []byte {
	return provider.metadata
}

// Enabled reports whether any session wants events with the given level and
// keyword from this provider.
func (provider *Provider) Enabled(level Level, keywords uint64) bool {
	provider.mu.RLock()
	defer provider.mu.RUnlock()

	if !provider.enabled {
		return false
	}

	// ETW automatically sets the level to 255 if it is specified as 0, so we
	// don't need to worry about the level=0 (all events) case.
	if level > provider.level {
		return false
	}

	if keywords != 0 && (keywords&provider.keywordAny == 0 || keywords&provider.keywordAll != provider.keywordAll) {
		return false
	}

	return true
}

func (provider *Provider) setState(state ProviderState, level Level, matchAnyKeyword, matchAllKeyword uint64) {
	provider.mu.Lock()
	defer provider.mu.Unlock()

	switch state {
	case ProviderStateDisable:
		provider.enabled = false
	case ProviderStateEnable:
		provider.enabled = true
		provider.level = level
		provider.keywordAny = matchAnyKeyword
		provider.keywordAll = matchAllKeyword
	}
}

// Because the provider callback function needs to be able to access the
// provider data when it is invoked by ETW, we need to keep provider data stored
// in a global map based on an index. The index is passed as the callback
// context to ETW.
type providerMap struct {
	m    map[uint]*Provider
	i    uint
	lock sync.Mutex
}

var providers = providerMap{
	m: make(map[uint]*Provider),
}

func (p *providerMap) newProvider() *Provider {
	p.lock.Lock()
	defer p.lock.Unlock()

	i := p.i
	p.i++

	provider := &Provider{
		index: i,
	}

	p.m[i] = provider
	return provider
}

func (p *providerMap) removeProvider(provider *Provider) {
	p.lock.Lock()
	defer p.lock.Unlock()

	delete(p.m, provider.index)
}

func (p *providerMap) getProvider(index uint) *Provider {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.m[index]
}

func providerCallback(sourceID guid.GUID, state ProviderState, level Level, matchAnyKeyword uint64, matchAllKeyword uint64, filterData uintptr, i uintptr) {
	provider := providers.getProvider(uint(i))
	if provider == nil {
		return
	}

	provider.setState(state, level, matchAnyKeyword, matchAllKeyword)

	if provider.callback != nil {
		provider.callback(sourceID, state, level, matchAnyKeyword, matchAllKeyword, filterData)
	}
}

func validateProviderMetadata(metadata []byte) error {
	if len(metadata) < 3 {
		return fmt.Errorf("etw: provider metadata too short (%d bytes)", len(metadata))
	}
	if size := int(metadata[0]) | int(metadata[1])<<8; size != len(metadata) {
		return fmt.Errorf("etw: provider metadata size prefix %d does not match block length %d", size, len(metadata))
	}
	return nil
}
