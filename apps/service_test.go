package apps

import (
	"context"
	"errors"
	"testing"

	"github.com/yllada/tunnelsplit/common"
)

// fakeInvoker is a scripted bridge for tests. It records every call and
// replies from the replies map keyed by method name.
type fakeInvoker struct {
	replies map[string]string
	errs    map[string]error
	calls   []fakeCall
}

type fakeCall struct {
	method string
	args   any
}

func (f *fakeInvoker) Invoke(_ context.Context, method string, args any) (string, error) {
	f.calls = append(f.calls, fakeCall{method: method, args: args})
	if err, ok := f.errs[method]; ok {
		return "", err
	}
	return f.replies[method], nil
}

func TestService_InstalledApps(t *testing.T) {
	inv := &fakeInvoker{replies: map[string]string{
		common.MethodGetInstalledApps: `[
			{"packageName":"org.mozilla.firefox","name":"Firefox","icon":"firefox"},
			{"packageName":"curl","name":""},
			{"packageName":"org.mozilla.firefox","name":"Firefox Duplicate"},
			{"packageName":"systemd-resolved","name":"systemd-resolved","isSystemApp":true},
			{"packageName":"x","name":"X","unknownField":42}
		]`,
	}}
	svc := NewService(inv)

	apps, err := svc.InstalledApps(context.Background())
	if err != nil {
		t.Fatalf("InstalledApps() error = %v", err)
	}

	if len(apps) != 4 {
		t.Fatalf("len = %d, want 4 (duplicate dropped)", len(apps))
	}

	// Sorted by display name: curl, Firefox, systemd-resolved, X.
	if apps[0].PackageName != "curl" {
		t.Errorf("apps[0] = %q, want curl", apps[0].PackageName)
	}
	if apps[1].Name != "Firefox" {
		t.Errorf("duplicate handling: apps[1].Name = %q, want Firefox (first wins)", apps[1].Name)
	}
	if !apps[2].System {
		t.Error("system flag lost in decoding")
	}

	if len(inv.calls) != 1 || inv.calls[0].method != common.MethodGetInstalledApps {
		t.Errorf("unexpected calls: %+v", inv.calls)
	}
	if inv.calls[0].args != nil {
		t.Errorf("getInstalledApps should carry no arguments, got %v", inv.calls[0].args)
	}
}

func TestService_InstalledApps_EmptyReply(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"empty string", ""},
		{"empty array", "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &fakeInvoker{replies: map[string]string{common.MethodGetInstalledApps: tt.reply}}
			svc := NewService(inv)

			apps, err := svc.InstalledApps(context.Background())
			if err != nil {
				t.Fatalf("InstalledApps() error = %v", err)
			}
			if apps == nil {
				t.Error("InstalledApps() should return an empty slice, not nil")
			}
			if len(apps) != 0 {
				t.Errorf("len = %d, want 0", len(apps))
			}
		})
	}
}

func TestService_InstalledApps_BadJSON(t *testing.T) {
	inv := &fakeInvoker{replies: map[string]string{common.MethodGetInstalledApps: `{not json`}}
	svc := NewService(inv)

	_, err := svc.InstalledApps(context.Background())
	if !errors.Is(err, common.ErrInvalidReply) {
		t.Errorf("InstalledApps() error = %v, want ErrInvalidReply", err)
	}
}

func TestService_InstalledApps_BridgeError(t *testing.T) {
	inv := &fakeInvoker{errs: map[string]error{common.MethodGetInstalledApps: common.ErrHelperUnavailable}}
	svc := NewService(inv)

	_, err := svc.InstalledApps(context.Background())
	if !errors.Is(err, common.ErrHelperUnavailable) {
		t.Errorf("InstalledApps() error = %v, want ErrHelperUnavailable", err)
	}
}

func TestService_SetAllowedApps(t *testing.T) {
	inv := &fakeInvoker{}
	svc := NewService(inv)

	if err := svc.SetAllowedApps(context.Background(), []string{"curl", "firefox"}); err != nil {
		t.Fatalf("SetAllowedApps() error = %v", err)
	}

	if len(inv.calls) != 1 || inv.calls[0].method != common.MethodSetAllowedApps {
		t.Fatalf("unexpected calls: %+v", inv.calls)
	}

	args, ok := inv.calls[0].args.([]string)
	if !ok {
		t.Fatalf("args type = %T, want []string", inv.calls[0].args)
	}
	if len(args) != 2 || args[0] != "curl" {
		t.Errorf("args = %v", args)
	}
}

func TestService_SetAllowedApps_NilBecomesEmpty(t *testing.T) {
	inv := &fakeInvoker{}
	svc := NewService(inv)

	if err := svc.SetAllowedApps(context.Background(), nil); err != nil {
		t.Fatalf("SetAllowedApps() error = %v", err)
	}

	args, ok := inv.calls[0].args.([]string)
	if !ok {
		t.Fatalf("args type = %T, want []string", inv.calls[0].args)
	}
	if args == nil {
		t.Error("nil selection must be sent as an empty list, not nil")
	}
}

func TestService_AllowedApps(t *testing.T) {
	inv := &fakeInvoker{replies: map[string]string{
		common.MethodGetAllowedApps: `["curl","org.mozilla.firefox"]`,
	}}
	svc := NewService(inv)

	allowed, err := svc.AllowedApps(context.Background())
	if err != nil {
		t.Fatalf("AllowedApps() error = %v", err)
	}
	if len(allowed) != 2 || allowed[1] != "org.mozilla.firefox" {
		t.Errorf("AllowedApps() = %v", allowed)
	}
}

func TestService_AllowedApps_EmptyReply(t *testing.T) {
	inv := &fakeInvoker{}
	svc := NewService(inv)

	allowed, err := svc.AllowedApps(context.Background())
	if err != nil {
		t.Fatalf("AllowedApps() error = %v", err)
	}
	if allowed == nil || len(allowed) != 0 {
		t.Errorf("AllowedApps() = %v, want empty slice", allowed)
	}
}
