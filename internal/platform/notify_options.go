package platform

import "time"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName identifies the sender. Empty means DefaultAppName.
	AppName string
	// IconPath, when non-empty, points to an image file the notification
	// centre should show next to the message.
	IconPath string
	// Timeout is how long the notification stays visible where supported.
	// Zero leaves it to the notification server.
	Timeout time.Duration
}

// DefaultAppName is used when Options.AppName is empty.
const DefaultAppName = "Photo Editor"

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}
