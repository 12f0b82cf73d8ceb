//go:build tools

// Package tools pins the code generators this module runs through
// go:generate, so `go run` builds them at the version in go.mod.
//
// mkwinsyscall generates pkg/etw/zsyscall_windows.go from the //sys lines in
// pkg/etw/syscall.go.
package tools

import _ "golang.org/x/sys/windows/mkwinsyscall"
