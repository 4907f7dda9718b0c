package bridge

import (
	"context"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"

	"github.com/yllada/tunnelsplit/common"
)

func TestEncodeArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    any
		want    string
		wantErr bool
	}{
		{"nil args", nil, "", false},
		{"string slice", []string{"org.mozilla.firefox", "curl"}, `["org.mozilla.firefox","curl"]`, false},
		{"empty slice", []string{}, `[]`, false},
		{"string", "query", `"query"`, false},
		{"map", map[string]bool{"system": true}, `{"system":true}`, false},
		{"unencodable", func() {}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encodeArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("encodeArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("encodeArgs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMapBridgeError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"deadline", context.DeadlineExceeded, common.ErrTimeout},
		{"cancelled", context.Canceled, common.ErrCancelled},
		{
			"service unknown",
			dbus.Error{Name: "org.freedesktop.DBus.Error.ServiceUnknown"},
			common.ErrHelperUnavailable,
		},
		{
			"no owner",
			dbus.Error{Name: "org.freedesktop.DBus.Error.NameHasNoOwner"},
			common.ErrHelperUnavailable,
		},
		{
			"access denied",
			dbus.Error{Name: "org.freedesktop.DBus.Error.AccessDenied"},
			common.ErrUnauthorized,
		},
		{
			"helper unauthorized",
			dbus.Error{Name: errNameUnauthorized},
			common.ErrUnauthorized,
		},
		{
			"dbus timeout",
			dbus.Error{Name: "org.freedesktop.DBus.Error.Timeout"},
			common.ErrTimeout,
		},
		{
			"helper failure",
			dbus.Error{Name: errNameFailed, Body: []interface{}{"enumeration failed"}},
			common.ErrCallFailed,
		},
		{
			"unknown dbus error",
			dbus.Error{Name: "org.example.Strange"},
			common.ErrCallFailed,
		},
		{
			"plain error",
			errors.New("broken pipe"),
			common.ErrCallFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapBridgeError(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("mapBridgeError(nil) = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("mapBridgeError(%v) = %v, want errors.Is %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDBusBody(t *testing.T) {
	tests := []struct {
		name string
		err  dbus.Error
		want string
	}{
		{"single message", dbus.Error{Name: errNameFailed, Body: []interface{}{"boom"}}, "boom"},
		{"multiple messages", dbus.Error{Name: errNameFailed, Body: []interface{}{"a", "b"}}, "a; b"},
		{"no body falls back to name", dbus.Error{Name: errNameFailed}, errNameFailed},
		{"non-string body ignored", dbus.Error{Name: errNameFailed, Body: []interface{}{42}}, errNameFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dbusBody(tt.err); got != tt.want {
				t.Errorf("dbusBody() = %q, want %q", got, tt.want)
			}
		})
	}
}
