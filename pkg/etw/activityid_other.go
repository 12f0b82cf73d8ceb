//go:build !windows

package etw

import "github.com/Microsoft/go-tracelogging/pkg/guid"

func newActivityID() (guid.GUID, error) {
	return guid.NewV4()
}
