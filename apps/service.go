package apps

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yllada/tunnelsplit/bridge"
	"github.com/yllada/tunnelsplit/common"
)

// Service is the data-access layer over the invocation bridge.
// It owns the wire format of the two native operations and returns
// cleaned-up domain values.
type Service struct {
	inv bridge.Invoker
}

// NewService creates a Service over the given invoker.
func NewService(inv bridge.Invoker) *Service {
	return &Service{inv: inv}
}

// InstalledApps fetches the list of installed applications from the
// helper. The result is deduplicated and sorted by display name.
func (s *Service) InstalledApps(ctx context.Context) ([]App, error) {
	reply, err := s.inv.Invoke(ctx, common.MethodGetInstalledApps, nil)
	if err != nil {
		return nil, err
	}

	if reply == "" {
		return []App{}, nil
	}

	var apps []App
	if err := json.Unmarshal([]byte(reply), &apps); err != nil {
		return nil, common.WrapError(common.ErrInvalidReply, err.Error())
	}

	apps = DedupeApps(apps)
	SortApps(apps)

	common.LogDebug("helper reported %d installed applications", len(apps))
	return apps, nil
}

// SetAllowedApps pushes the set of applications that bypass the tunnel.
// A nil slice is sent as an empty list, never as JSON null.
func (s *Service) SetAllowedApps(ctx context.Context, packageNames []string) error {
	if packageNames == nil {
		packageNames = []string{}
	}

	if _, err := s.inv.Invoke(ctx, common.MethodSetAllowedApps, packageNames); err != nil {
		return fmt.Errorf("setting allowed apps: %w", err)
	}

	common.LogInfo("allowed set updated, %d applications", len(packageNames))
	return nil
}

// AllowedApps fetches the currently allowed set from the helper.
func (s *Service) AllowedApps(ctx context.Context) ([]string, error) {
	reply, err := s.inv.Invoke(ctx, common.MethodGetAllowedApps, nil)
	if err != nil {
		return nil, err
	}

	if reply == "" {
		return []string{}, nil
	}

	var packageNames []string
	if err := json.Unmarshal([]byte(reply), &packageNames); err != nil {
		return nil, common.WrapError(common.ErrInvalidReply, err.Error())
	}
	return packageNames, nil
}
