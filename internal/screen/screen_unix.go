//go:build linux || freebsd || openbsd || netbsd || dragonfly

package screen

import (
	"fmt"
	"image"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
)

// platformMonitors asks the X server for its outputs through RandR and falls
// back to the root window size when the extension is missing.
func platformMonitors() ([]Monitor, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	if setup == nil {
		return nil, fmt.Errorf("xproto setup unavailable")
	}
	root := setup.DefaultScreen(conn)
	if root == nil {
		return nil, fmt.Errorf("xproto screen unavailable")
	}
	whole := Monitor{
		Name:    "screen",
		Rect:    image.Rect(0, 0, int(root.WidthInPixels), int(root.HeightInPixels)),
		Primary: true,
	}

	if err := randr.Init(conn); err != nil {
		return []Monitor{whole}, nil
	}
	res, err := randr.GetScreenResources(conn, root.Root).Reply()
	if err != nil {
		return []Monitor{whole}, nil
	}
	primary := randr.Output(0)
	if p, err := randr.GetOutputPrimary(conn, root.Root).Reply(); err == nil {
		primary = p.Output
	}
	var monitors []Monitor
	for _, output := range res.Outputs {
		info, err := randr.GetOutputInfo(conn, output, res.ConfigTimestamp).Reply()
		if err != nil || info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		crtc, err := randr.GetCrtcInfo(conn, info.Crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		monitors = append(monitors, Monitor{
			Name:    strings.TrimSpace(string(info.Name)),
			Rect:    image.Rect(int(crtc.X), int(crtc.Y), int(crtc.X)+int(crtc.Width), int(crtc.Y)+int(crtc.Height)),
			Primary: output == primary,
		})
	}
	if len(monitors) == 0 {
		return []Monitor{whole}, nil
	}
	return monitors, nil
}
