//go:build windows

package osversion

import (
	"sync"

	"golang.org/x/sys/windows"
)

// RtlGetVersion is used rather than GetVersion, which lies to processes
// without a compatibility manifest.
var current = sync.OnceValue(func() Version {
	vi := windows.RtlGetVersion()
	return Version{
		Major: MajorVersion(vi.MajorVersion),
		Minor: MinorVersion(vi.MinorVersion),
		Build: BuildNumber(vi.BuildNumber),
	}
})

// Get returns the version of the running Windows.
func Get() Version {
	return current()
}
