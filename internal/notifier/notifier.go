package notifier

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/julianstephens/sundial/internal/constants"
)

const (
	notificationsDest   = "org.freedesktop.Notifications"
	notificationsPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	notificationsMethod = "org.freedesktop.Notifications.Notify"
)

var (
	sessionBusFunc = dbus.ConnectSessionBus
	sendFunc       = sendNotification
)

// Notification holds the arguments of one org.freedesktop.Notifications.Notify call.
type Notification struct {
	AppName string
	Icon    string
	Summary string
	Body    string
	// TimeoutMs is the display time in milliseconds; -1 leaves it to the server.
	TimeoutMs int32
}

type Notifier struct {
	enabled bool
}

func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

func (n *Notifier) Enabled() bool {
	return n.enabled
}

// Notify shows a desktop notification. It is a no-op when disabled.
func (n *Notifier) Notify(summary, body string) error {
	if !n.enabled {
		return nil
	}

	return sendFunc(Notification{
		AppName:   constants.AppName,
		Icon:      constants.NotificationIcon,
		Summary:   summary,
		Body:      body,
		TimeoutMs: int32(constants.NotificationTimeout.Milliseconds()),
	})
}

func sendNotification(note Notification) error {
	conn, err := sessionBusFunc()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	// ConnectSessionBus returns a shared connection that must stay open

	obj := conn.Object(notificationsDest, notificationsPath)
	call := obj.Call(notificationsMethod, 0,
		note.AppName,
		uint32(0), // replaces_id
		note.Icon,
		note.Summary,
		note.Body,
		[]string{},
		map[string]dbus.Variant{},
		note.TimeoutMs,
	)
	if call.Err != nil {
		return fmt.Errorf("notification failed: %w", call.Err)
	}
	return nil
}
