// Package osversion reports the running Windows version, which decides the
// provider registration features ETW offers.
package osversion

import "fmt"

type (
	MajorVersion uint8
	MinorVersion uint8
	BuildNumber  uint16
)

// Builds that change how event providers are registered.
const (
	// RTM is the first Windows 10 build. EventSetInformation accepts
	// provider traits from this build on.
	RTM BuildNumber = 10240

	// RS1 is version 1607, Windows Server 2016.
	RS1 BuildNumber = 14393

	// RS5 is version 1809, Windows Server 2019.
	RS5 BuildNumber = 17763

	// LTSC2022 is version 21H2, Windows Server 2022.
	LTSC2022 BuildNumber = 20348
)

// Windows10 is the first version that supports provider traits.
var Windows10 = Version{Major: 10, Minor: 0, Build: RTM}

// Version is a Windows major.minor.build triple. Outside of Windows the
// current version is the zero Version, which supports nothing.
type Version struct {
	Major MajorVersion
	Minor MinorVersion
	Build BuildNumber
}

// FromPackedVersion unpacks the DWORD returned by GetVersion: the major
// version in the low byte, the minor version in the next byte and the build
// number in the high word.
func FromPackedVersion(v uint32) Version {
	return Version{
		Major: MajorVersion(v),
		Minor: MinorVersion(v >> 8),
		Build: BuildNumber(v >> 16),
	}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Build)
}

// Compare orders versions by major version, then minor, then build. It
// returns -1, 0 or +1.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return sign(int(v.Major) - int(other.Major))
	case v.Minor != other.Minor:
		return sign(int(v.Minor) - int(other.Minor))
	default:
		return sign(int(v.Build) - int(other.Build))
	}
}

// SupportsProviderTraits reports whether v can register provider traits such
// as a provider group.
func (v Version) SupportsProviderTraits() bool {
	return v.Compare(Windows10) >= 0
}

func sign(d int) int {
	if d < 0 {
		return -1
	} else if d > 0 {
		return 1
	}
	return 0
}
