//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"errors"
	"image"
	"sync"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// readTimeout bounds how long a paste waits for the selection owner.
const readTimeout = 2 * time.Second

var (
	initOnce sync.Once
	initErr  error
	owner    *selectionOwner

	errTimeout     = errors.New("clipboard owner did not answer")
	errUnavailable = errors.New("clipboard target unavailable")
	errConnClosed  = errors.New("clipboard connection closed")
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		o, err := newSelectionOwner()
		if err != nil {
			initErr = err
			return
		}
		owner = o
	})
	return initErr
}

// WriteImage publishes img to the clipboard as PNG.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	data, err := encode(img)
	if err != nil {
		return err
	}
	return owner.own(data)
}

// ReadImage decodes the image currently on the clipboard.
func ReadImage() (image.Image, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	if data := owner.local(); data != nil {
		return decode(data)
	}
	data, err := requestSelection(owner.atoms)
	if err != nil {
		return nil, err
	}
	return decode(data)
}

type atoms struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

func internAtoms(conn *xgb.Conn) (atoms, error) {
	names := []string{"CLIPBOARD", "TARGETS", "image/png", "PHOTOEDIT_CLIPBOARD"}
	got := make([]xproto.Atom, len(names))
	for i, name := range names {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return atoms{}, err
		}
		got[i] = reply.Atom
	}
	return atoms{clipboard: got[0], targets: got[1], png: got[2], property: got[3]}, nil
}

// selectionOwner keeps a hidden window that serves the PNG we copied until
// another client takes the selection.
type selectionOwner struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atoms

	mu   sync.RWMutex
	data []byte
}

func newSelectionOwner() (*selectionOwner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	mask := []uint32{xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify}
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask, mask).Check(); err != nil {
		conn.Close()
		return nil, err
	}
	a, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return nil, err
	}
	o := &selectionOwner{conn: conn, window: window, atoms: a}
	go o.serve()
	return o, nil
}

func (o *selectionOwner) own(data []byte) error {
	o.mu.Lock()
	o.data = append([]byte(nil), data...)
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.window, o.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

// local returns our own copy while we still own the selection.
func (o *selectionOwner) local() []byte {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.data
}

func (o *selectionOwner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if err != nil || ev == nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.data = nil
			o.mu.Unlock()
		}
	}
}

func (o *selectionOwner) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}
	data := o.local()

	switch {
	case e.Target == o.atoms.targets:
		list := []xproto.Atom{o.atoms.targets}
		if len(data) > 0 {
			list = append(list, o.atoms.png)
		}
		buf := make([]byte, 4*len(list))
		for i, a := range list {
			xgb.Put32(buf[4*i:], uint32(a))
		}
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, xproto.AtomAtom, 32, uint32(len(list)), buf)
	case e.Target == o.atoms.png && len(data) > 0:
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, o.atoms.png, 8, uint32(len(data)), data)
	default:
		property = xproto.AtomNone
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	xproto.SendEvent(o.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// requestSelection asks the current owner for PNG data on a separate
// connection so the serving loop never sees the reply.
func requestSelection(a atoms) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	if err := xproto.ConvertSelectionChecked(conn, window, a.clipboard, a.png, a.property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		e, err := waitSelectionNotify(conn)
		if err != nil {
			done <- result{err: err}
			return
		}
		if e.Property == xproto.AtomNone {
			done <- result{err: errUnavailable}
			return
		}
		reply, err := xproto.GetProperty(conn, true, window, a.property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if err != nil {
			done <- result{err: err}
			return
		}
		done <- result{data: append([]byte(nil), reply.Value...)}
	}()

	select {
	case r := <-done:
		return r.data, r.err
	case <-time.After(readTimeout):
		return nil, errTimeout
	}
}

// eventSource is the part of *xgb.Conn the paste reader uses.
type eventSource interface {
	WaitForEvent() (xgb.Event, xgb.Error)
}

// waitSelectionNotify skips unrelated events until the owner answers. A
// closed connection yields a nil event with no error.
func waitSelectionNotify(src eventSource) (xproto.SelectionNotifyEvent, error) {
	for {
		ev, err := src.WaitForEvent()
		if err != nil {
			return xproto.SelectionNotifyEvent{}, err
		}
		if ev == nil {
			return xproto.SelectionNotifyEvent{}, errConnClosed
		}
		if e, ok := ev.(xproto.SelectionNotifyEvent); ok {
			return e, nil
		}
	}
}
