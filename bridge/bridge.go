// Package bridge provides the generic invocation bridge to the privileged
// native helper. The helper owns application enumeration and traffic
// routing; this package only marshals method names and arguments to it
// and returns raw replies.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
)

// Invoker marshals a method name and arguments to native code and returns
// the raw string reply. Methods without a return value reply with an
// empty string. An error is returned when the native side fails.
//
// args may be any JSON-encodable value; nil means no arguments.
type Invoker interface {
	Invoke(ctx context.Context, method string, args any) (string, error)
}

// encodeArgs serializes bridge call arguments to their wire form.
// nil arguments encode as the empty string, everything else as JSON.
func encodeArgs(args any) (string, error) {
	if args == nil {
		return "", nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("failed to encode bridge arguments: %w", err)
	}
	return string(data), nil
}
