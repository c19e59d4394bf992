//go:build !linux && !darwin && !windows

package platform

// Notify discards the message on platforms without a desktop notifier.
func Notify(string, string, Options) error { return nil }
