//go:build windows

package etw

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/Microsoft/go-tracelogging/pkg/guid"
	"github.com/Microsoft/go-tracelogging/pkg/osversion"
)

type providerHandle uint64

type eventInfoClass uint32

//nolint:unused // all values listed here for completeness.
const (
	eventInfoClassProviderBinaryTrackInfo eventInfoClass = iota
	eventInfoClassProviderSetReserved1
	eventInfoClassProviderSetTraits
	eventInfoClassProviderUseDescriptorType
)

// eventDataDescriptor matches EVENT_DATA_DESCRIPTOR from evntprov.h.
type eventDataDescriptor struct {
	ptr       uint64
	size      uint32
	dataType  EventDataDescriptorType
	reserved1 uint8
	reserved2 uint16
}

func newEventDataDescriptor(d EventDataDescriptor) eventDataDescriptor {
	desc := eventDataDescriptor{
		size:     uint32(len(d.Data)),
		dataType: d.Type,
	}
	// The Go GC does not move heap objects, and the caller keeps d.Data alive
	// until the write returns.
	if len(d.Data) != 0 {
		desc.ptr = uint64(uintptr(unsafe.Pointer(&d.Data[0])))
	}
	return desc
}

// providerCallbackAdapter acts as the first-level callback from the C/ETW side
// for provider notifications. Because Go has trouble with callback arguments of
// different size, it has only pointer-sized arguments, which are then cast to
// the appropriate types when calling providerCallback.
func providerCallbackAdapter(sourceID *guid.GUID, state uintptr, level uintptr, matchAnyKeyword uintptr, matchAllKeyword uintptr, filterData uintptr, i uintptr) uintptr {
	var id guid.GUID
	if sourceID != nil {
		id = *sourceID
	}
	providerCallback(id, ProviderState(state), Level(level), uint64(matchAnyKeyword), uint64(matchAllKeyword), filterData, i)
	return 0
}

// NewProvider registers a provider with the given ID. metadata is the provider
// metadata block, which is also registered as the provider's traits so that
// events written without it still decode with the right provider name and
// group.
func NewProvider(id guid.GUID, metadata []byte, callback EnableCallback) (provider *Provider, err error) {
	if err := validateProviderMetadata(metadata); err != nil {
		return nil, err
	}

	provider = providers.newProvider()
	defer func() {
		if err != nil {
			providers.removeProvider(provider)
		}
	}()
	provider.ID = id
	provider.callback = callback
	provider.metadata = metadata

	if err := eventRegister(&provider.ID, windows.NewCallback(providerCallbackAdapter), uintptr(provider.index), &provider.handle); err != nil {
		return nil, err
	}

	// Provider traits are only understood by Windows 10 and later.
	if osversion.Get().SupportsProviderTraits() {
		// The error is ignored: traits only affect decoding of events that
		// do not carry the provider metadata themselves.
		_ = eventSetInformation(provider.handle, eventInfoClassProviderSetTraits, uintptr(unsafe.Pointer(&metadata[0])), uint32(len(metadata)))
	}

	return provider, nil
}

// Close unregisters the provider.
func (provider *Provider) Close() error {
	providers.removeProvider(provider)
	return eventUnregister(provider.handle)
}

// WriteTransfer writes a single event to ETW, from this provider. data is
// passed through in order and normally starts with the provider metadata and
// event metadata blocks.
func (provider *Provider) WriteTransfer(descriptor *EventDescriptor, activityID, relatedActivityID *guid.GUID, data []EventDataDescriptor) error {
	native := make([]eventDataDescriptor, len(data))
	for i := range data {
		native[i] = newEventDataDescriptor(data[i])
	}

	var first *eventDataDescriptor
	if len(native) != 0 {
		first = &native[0]
	}
	err := eventWriteTransfer(provider.handle, descriptor, activityID, relatedActivityID, uint32(len(native)), first)
	runtime.KeepAlive(data)
	return err
}
