//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package screen

import "fmt"

func platformMonitors() ([]Monitor, error) {
	return nil, fmt.Errorf("monitor listing is not supported on this platform")
}
