// Package trackload holds the I/O helpers shared by the trackload packages
// and binaries: compression sniffing, delimiter detection, home directory
// expansion and Google Storage access.
package trackload
