package bridge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"

	"github.com/yllada/tunnelsplit/common"
)

// helper error names raised by the native side.
const (
	errNameUnauthorized = common.HelperInterface + ".Error.Unauthorized"
	errNameFailed       = common.HelperInterface + ".Error.Failed"
)

// DBusInvoker invokes helper methods over the system bus.
// Each call carries a correlation ID and the helper session token.
type DBusInvoker struct {
	conn    *dbus.Conn
	obj     dbus.BusObject
	token   string
	timeout time.Duration
}

// Connect opens a system bus connection to the helper service.
// token may be empty; the helper will reject calls that require one.
func Connect(token string, timeout time.Duration) (*DBusInvoker, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, common.WrapError(common.ErrHelperUnavailable, "system bus connection failed: "+err.Error())
	}

	if timeout <= 0 {
		timeout = common.DefaultBridgeTimeout
	}

	return &DBusInvoker{
		conn:    conn,
		obj:     conn.Object(common.HelperBusName, dbus.ObjectPath(common.HelperObjectPath)),
		token:   token,
		timeout: timeout,
	}, nil
}

// Invoke implements Invoker. The method name and JSON-encoded arguments
// are forwarded to the helper's generic Invoke method together with a
// fresh correlation ID and the session token.
func (b *DBusInvoker) Invoke(ctx context.Context, method string, args any) (string, error) {
	payload, err := encodeArgs(args)
	if err != nil {
		return "", err
	}

	callID := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	start := time.Now()
	call := b.obj.CallWithContext(ctx, common.HelperInvokeMethod, 0, method, payload, callID, b.token)
	if call.Err != nil {
		err := mapBridgeError(call.Err)
		common.LogWarn("bridge call %s (%s) failed after %v: %v", method, callID, time.Since(start), err)
		return "", err
	}

	var reply string
	if len(call.Body) > 0 {
		if err := call.Store(&reply); err != nil {
			return "", common.WrapError(common.ErrInvalidReply, err.Error())
		}
	}

	common.LogDebug("bridge call %s (%s) completed in %v, %d reply bytes",
		method, callID, time.Since(start), len(reply))
	return reply, nil
}

// Ping checks whether the helper service is reachable on the bus.
func (b *DBusInvoker) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	call := b.obj.CallWithContext(ctx, "org.freedesktop.DBus.Peer.Ping", 0)
	if call.Err != nil {
		return mapBridgeError(call.Err)
	}
	return nil
}

// Close releases the bus connection.
func (b *DBusInvoker) Close() error {
	return b.conn.Close()
}

// mapBridgeError translates transport failures into the package's
// sentinel errors so callers can distinguish "helper not running" from
// a failed call.
func mapBridgeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return common.ErrTimeout
	}
	if errors.Is(err, context.Canceled) {
		return common.ErrCancelled
	}

	var dbusErr dbus.Error
	if errors.As(err, &dbusErr) {
		switch dbusErr.Name {
		case "org.freedesktop.DBus.Error.ServiceUnknown",
			"org.freedesktop.DBus.Error.NameHasNoOwner",
			"org.freedesktop.DBus.Error.NoReply",
			"org.freedesktop.DBus.Error.Disconnected":
			return common.WrapError(common.ErrHelperUnavailable, dbusErr.Name)
		case "org.freedesktop.DBus.Error.AccessDenied", errNameUnauthorized:
			return common.ErrUnauthorized
		case "org.freedesktop.DBus.Error.Timeout", "org.freedesktop.DBus.Error.TimedOut":
			return common.ErrTimeout
		case errNameFailed:
			return common.WrapError(common.ErrCallFailed, dbusBody(dbusErr))
		default:
			return common.WrapError(common.ErrCallFailed, dbusErr.Name)
		}
	}

	return fmt.Errorf("%w: %v", common.ErrCallFailed, err)
}

// dbusBody extracts a printable message from a D-Bus error body.
func dbusBody(e dbus.Error) string {
	parts := make([]string, 0, len(e.Body))
	for _, v := range e.Body {
		if s, ok := v.(string); ok {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return e.Name
	}
	return strings.Join(parts, "; ")
}
