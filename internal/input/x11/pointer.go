// Package x11 reads the global pointer position from the X server, for
// windows that never receive pointer events themselves (a desktop background
// sits below every other window).
package x11

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// PointerSource queries the root window of the default screen
type PointerSource struct {
	conn *xgb.Conn
	root xproto.Window
}

// Connect opens a connection to the display named by $DISPLAY
func Connect() (*PointerSource, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	setup := xproto.Setup(conn)
	return &PointerSource{
		conn: conn,
		root: setup.DefaultScreen(conn).Root,
	}, nil
}

// Position returns the pointer position in root window coordinates
func (p *PointerSource) Position() (int, int, error) {
	reply, err := xproto.QueryPointer(p.conn, p.root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("query pointer: %w", err)
	}
	return int(reply.RootX), int(reply.RootY), nil
}

func (p *PointerSource) Close() {
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
}
