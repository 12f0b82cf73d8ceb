//go:build !windows

package osversion

// Get returns the zero Version on platforms other than Windows.
func Get() Version {
	return Version{}
}
