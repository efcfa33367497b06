//go:build !linux && !darwin

package source

import "fmt"

// newPlatformSource has no byte counters to read on this OS; New falls
// back to the synthetic signal.
func newPlatformSource(iface string) (Source, error) {
	return nil, fmt.Errorf("no byte counter support on this platform")
}
