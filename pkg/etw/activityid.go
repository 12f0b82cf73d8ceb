package etw

import "github.com/Microsoft/go-tracelogging/pkg/guid"

// NewActivityID returns an ID for correlating the events of one activity:
// pass it as the activity ID of the activity's events, and as the related
// activity ID of the event starting a child activity.
//
// On Windows the ID is locally unique and created by ETW. Elsewhere it is a
// random version 4 GUID.
func NewActivityID() (guid.GUID, error) {
	return newActivityID()
}
