//go:build windows

package etw

import "github.com/Microsoft/go-tracelogging/pkg/guid"

// Control codes of [EventActivityIdControl].
//
// [EventActivityIdControl]: https://learn.microsoft.com/en-us/windows/win32/api/evntprov/nf-evntprov-eventactivityidcontrol
type eventActivityIDControlCode uint32

const (
	getEventActivityID eventActivityIDControlCode = iota + 1
	setEventActivityID
	createEventActivityID
	getSetEventActivityID
)

func newActivityID() (guid.GUID, error) {
	var g guid.GUID
	err := eventActivityIdControl(createEventActivityID, &g)
	return g, err
}

// ThreadActivityID returns the activity ID ETW uses for events written from
// the current OS thread without an explicit activity ID. Goroutines move
// between threads, so callers must lock the goroutine to its thread.
func ThreadActivityID() (guid.GUID, error) {
	var g guid.GUID
	err := eventActivityIdControl(getEventActivityID, &g)
	return g, err
}

// SwapThreadActivityID sets the current OS thread's activity ID to g and
// returns the previous one.
func SwapThreadActivityID(g guid.GUID) (guid.GUID, error) {
	err := eventActivityIdControl(getSetEventActivityID, &g)
	return g, err
}
