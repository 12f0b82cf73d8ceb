//go:build !windows

package etw

import "github.com/Microsoft/go-tracelogging/pkg/guid"

type providerHandle uint64

// NewProvider is not supported outside of Windows. It validates its arguments
// so callers see the same errors as on Windows, then returns ErrNotSupported.
func NewProvider(id guid.GUID, metadata []byte, callback EnableCallback) (*Provider, error) {
	if err := validateProviderMetadata(metadata); err != nil {
		return nil, err
	}
	return nil, ErrNotSupported
}

// Close unregisters the provider.
func (provider *Provider) Close() error {
	return ErrNotSupported
}

// WriteTransfer writes a single event to ETW, from this provider.
func (provider *Provider) WriteTransfer(descriptor *EventDescriptor, activityID, relatedActivityID *guid.GUID, data []EventDataDescriptor) error {
	return ErrNotSupported
}
