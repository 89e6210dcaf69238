// Package x11 detects the focused window on X11 (and XWayland) via EWMH
// properties: _NET_ACTIVE_WINDOW, _NET_WM_NAME, _NET_WM_PID, WM_CLASS and
// _NET_FRAME_EXTENTS.
package x11

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/shirou/gopsutil/process"

	"github.com/wingman-desktop/wingman/internal/model"
)

// Detector queries the X server for the active window. The connection is
// opened lazily on first use and kept for the process lifetime.
type Detector struct {
	mu sync.Mutex
	X  *xgbutil.XUtil
}

func New() *Detector { return &Detector{} }

func (d *Detector) Name() string { return "x11" }

func (d *Detector) Available() bool {
	return os.Getenv("DISPLAY") != ""
}

func (d *Detector) conn() (*xgbutil.XUtil, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.X != nil {
		return d.X, nil
	}
	display := os.Getenv("DISPLAY")
	X, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect to X server on %q: %w", display, err)
	}
	d.X = X
	return X, nil
}

func (d *Detector) FocusedWindow() (*model.Window, error) {
	X, err := d.conn()
	if err != nil {
		return nil, err
	}

	active, err := ewmh.ActiveWindowGet(X)
	if err != nil {
		return nil, fmt.Errorf("_NET_ACTIVE_WINDOW: %w", err)
	}
	if active == 0 {
		return nil, nil
	}

	win := &model.Window{}

	// Individual property failures degrade to zero values; a window with
	// a bad title is still a usable result.
	if name, err := ewmh.WmNameGet(X, active); err == nil && name != "" {
		win.Title = name
	} else if name, err := icccm.WmNameGet(X, active); err == nil {
		win.Title = name
	}

	if class, err := icccm.WmClassGet(X, active); err == nil {
		win.AppID = class.Class
	}

	if pid, err := ewmh.WmPidGet(X, active); err == nil {
		win.PID = int(pid)
		win.ProcessName = processName(int32(pid))
	}

	win.Geometry = d.windowGeometry(X, active)

	// Terminal emulators report the terminal's class, not the program
	// running inside it. Resolve the foreground command where possible.
	if strings.Contains(win.ProcessName, "gnome-terminal") {
		if cmd := terminalCommand(int32(win.PID)); cmd != "" {
			win.AppID = cmd
		}
	}

	if win.AppID == "" {
		win.AppID = win.ProcessName
	}
	return win, nil
}

// windowGeometry returns the window's absolute geometry, adjusted for
// window-manager frame extents when the WM reports them.
func (d *Detector) windowGeometry(X *xgbutil.XUtil, win xproto.Window) model.Geometry {
	geomReply, err := xproto.GetGeometry(X.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return model.Geometry{}
	}
	// Translate to root coordinates for the absolute screen position.
	trans, err := xproto.TranslateCoordinates(X.Conn(), win, X.RootWin(), 0, 0).Reply()
	if err != nil {
		return model.Geometry{}
	}

	g := model.Geometry{
		X:      int(trans.DstX),
		Y:      int(trans.DstY),
		Width:  int(geomReply.Width),
		Height: int(geomReply.Height),
	}

	if extents, err := ewmh.FrameExtentsGet(X, win); err == nil && extents != nil {
		g = applyFrameExtents(g, extents.Left, extents.Right, extents.Top, extents.Bottom)
	}
	return g
}

// applyFrameExtents grows a client-area rectangle to cover the decorated
// frame: the origin moves up-left by the left/top borders and the size
// grows by the border totals.
func applyFrameExtents(g model.Geometry, left, right, top, bottom int) model.Geometry {
	return model.Geometry{
		X:      g.X - left,
		Y:      g.Y - top,
		Width:  g.Width + left + right,
		Height: g.Height + top + bottom,
	}
}

func processName(pid int32) string {
	proc, err := process.NewProcess(pid)
	if err != nil {
		return ""
	}
	name, err := proc.Name()
	if err != nil {
		return ""
	}
	return name
}

// terminalCommand walks terminal -> shell -> command and returns the
// foreground command's executable name, or "" when the shell is idle.
func terminalCommand(pid int32) string {
	term, err := process.NewProcess(pid)
	if err != nil {
		return ""
	}
	shells, err := term.Children()
	if err != nil || len(shells) == 0 {
		return ""
	}
	commands, err := shells[0].Children()
	if err != nil || len(commands) == 0 {
		return ""
	}
	cmdline, err := commands[0].Cmdline()
	if err != nil {
		return ""
	}
	return commandName(cmdline)
}

// commandName extracts the executable base name from a command line.
func commandName(cmdline string) string {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return ""
	}
	name := fields[0]
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
