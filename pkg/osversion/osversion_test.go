package osversion

import (
	"fmt"
	"runtime"
	"testing"
)

func TestCompare(t *testing.T) {
	tt := []struct {
		a, b Version
		res  int
	}{
		{
			Version{10, 0, RS5},
			Version{10, 0, LTSC2022},
			-1,
		},
		{
			Version{6, 1, 9801},
			Version{10, 0, LTSC2022},
			-1,
		},
		{
			Version{10, 0, RS5},
			Version{10, 0, RS5},
			0,
		},
		{
			Version{10, 0, LTSC2022},
			Version{10, 0, RS5},
			1,
		},
		{
			Version{10, 0, LTSC2022},
			Version{6, 1, 9801},
			1,
		},
	}

	for _, tc := range tt {
		if res := tc.a.Compare(tc.b); res != tc.res {
			t.Errorf("(%s).Compare(%s): expected: %d, got: %d", tc.a, tc.b, res, tc.res)
		}
	}
}

func TestOSVersionString(t *testing.T) {
	v := FromPackedVersion(809042555)
	expected := "123.2.12345"
	actual := fmt.Sprintf("%s", v) //nolint: gosimple // testing that fmt works
	if actual != expected {
		t.Errorf("expected: %q, got: %q", expected, actual)
	}
}

func TestSupportsProviderTraits(t *testing.T) {
	for _, tc := range []struct {
		v    Version
		want bool
	}{
		{Version{6, 3, 9600}, false},
		{Version{10, 0, 10239}, false},
		{Version{10, 0, RTM}, true},
		{Version{10, 0, LTSC2022}, true},
	} {
		if got := tc.v.SupportsProviderTraits(); got != tc.want {
			t.Errorf("(%s).SupportsProviderTraits(): expected: %t, got: %t", tc.v, tc.want, got)
		}
	}
}

func TestGet(t *testing.T) {
	v := Get()
	if runtime.GOOS != "windows" {
		if v != (Version{}) {
			t.Errorf("expected the zero version, got: %s", v)
		}
		return
	}
	if v.Major == 0 || v.Build == 0 {
		t.Errorf("expected a real Windows version, got: %s", v)
	}
}
