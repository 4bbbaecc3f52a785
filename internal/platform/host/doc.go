// Package host abstracts the host capabilities the setup wizard depends on:
// memory, swap, free disk space, physical CPU cores and listening TCP ports.
//
// System implements Host with gopsutil, which covers Linux, macOS and the
// BSDs without shelling out to free, df or netstat. Tests substitute their
// own Host.
package host
