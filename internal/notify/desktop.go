package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsDest = "org.freedesktop.Notifications"
	notificationsPath = "/org/freedesktop/Notifications"
	notifyMethod      = "org.freedesktop.Notifications.Notify"
)

// Desktop posts notices to the freedesktop notification daemon on the
// user's session bus. The connection is opened lazily on first use.
type Desktop struct {
	AppName   string
	ExpireMs  int32
	connect   func() (*dbus.Conn, error)
	mu        sync.Mutex
	conn      *dbus.Conn
	replaceID uint32
}

// NewDesktop creates a Desktop notifier for the given application name.
func NewDesktop(appName string) *Desktop {
	return &Desktop{
		AppName:  appName,
		ExpireMs: 10000,
		connect: func() (*dbus.Conn, error) {
			return dbus.ConnectSessionBus()
		},
	}
}

func (d *Desktop) Notify(ctx context.Context, n Notice) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil {
		conn, err := d.connect()
		if err != nil {
			return fmt.Errorf("failed to connect to session bus: %w", err)
		}
		d.conn = conn
	}

	obj := d.conn.Object(notificationsDest, dbus.ObjectPath(notificationsPath))
	call := obj.CallWithContext(ctx, notifyMethod, 0,
		d.AppName,         // app_name
		d.replaceID,       // replaces_id
		"alarm-symbolic",  // app_icon
		n.Title(),         // summary
		n.Body(),          // body
		[]string{},        // actions
		map[string]dbus.Variant{
			"urgency": dbus.MakeVariant(byte(1)),
		},
		d.ExpireMs,
	)
	if call.Err != nil {
		return fmt.Errorf("failed to send notification: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err == nil {
		d.replaceID = id
	}
	return nil
}

// Close releases the session bus connection, if one was opened.
func (d *Desktop) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}
