// Package guid implements the GUID type used for provider IDs, provider group
// IDs and activity IDs.
//
// A GUID has two binary forms: the big-endian form of RFC 4122 and the
// mixed-endian form Windows uses in memory. Provider metadata always carries
// the Windows form. On Windows GUID converts to and from
// golang.org/x/sys/windows.GUID.
package guid
