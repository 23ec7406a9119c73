package strata

import (
	"fmt"
	"time"

	"github.com/arloliu/strata/types"
)

// OptionsMap carries sparse per-call execution overrides.
//
// Recognized keys and their accepted value types:
//
//	consistency        types.Consistency or string ("quorum", "LOCAL_ONE", ...)
//	serial_consistency types.Consistency or string ("serial", "local_serial")
//	page_size          int (positive)
//	trace              bool
//	timeout            time.Duration or duration string ("500ms"); positive
//	paging_state       []byte
//	arguments          []any
//	type_hints         []string
//	idempotent         bool
//	payload            map[string][]byte
//	execution_profile  string naming a registered profile
//
// Unknown keys are ignored; they belong to the collaborator client. A value
// of the wrong type fails resolution with an InvalidArgumentError before any
// profile lookup happens.
type OptionsMap map[string]any

// Option keys recognized by the resolver.
const (
	optConsistency       = "consistency"
	optSerialConsistency = "serial_consistency"
	optPageSize          = "page_size"
	optTrace             = "trace"
	optTimeout           = "timeout"
	optPagingState       = "paging_state"
	optArguments         = "arguments"
	optTypeHints         = "type_hints"
	optIdempotent        = "idempotent"
	optPayload           = "payload"
	optExecutionProfile  = "execution_profile"
)

// validate converts the raw map into a sparse profile layer and extracts the
// execution profile name, if any. Validation is complete before the caller
// performs any profile lookup.
//
// Returns:
//   - *types.Profile: The per-call override layer, nil when the map is empty
//   - string: The execution_profile name, or ""
//   - error: InvalidArgumentError describing the first bad value
func (m OptionsMap) validate() (*types.Profile, string, error) {
	if len(m) == 0 {
		return nil, "", nil
	}

	var (
		opts        []types.ProfileOption
		profileName string
	)

	if v, ok := m[optConsistency]; ok {
		c, err := consistencyValue(optConsistency, v)
		if err != nil {
			return nil, "", err
		}
		opts = append(opts, types.WithConsistency(c))
	}
	if v, ok := m[optSerialConsistency]; ok {
		c, err := consistencyValue(optSerialConsistency, v)
		if err != nil {
			return nil, "", err
		}
		opts = append(opts, types.WithSerialConsistency(c))
	}
	if v, ok := m[optPageSize]; ok {
		n, ok := v.(int)
		if !ok {
			return nil, "", badOption(optPageSize, "int", v)
		}
		if n <= 0 {
			return nil, "", &types.InvalidArgumentError{Detail: "page_size must be positive"}
		}
		opts = append(opts, types.WithPageSize(n))
	}
	if v, ok := m[optTrace]; ok {
		b, ok := v.(bool)
		if !ok {
			return nil, "", badOption(optTrace, "bool", v)
		}
		opts = append(opts, types.WithTrace(b))
	}
	if v, ok := m[optTimeout]; ok {
		d, err := durationValue(optTimeout, v)
		if err != nil {
			return nil, "", err
		}
		opts = append(opts, types.WithRequestTimeout(d))
	}
	if v, ok := m[optPagingState]; ok {
		state, ok := v.([]byte)
		if !ok {
			return nil, "", badOption(optPagingState, "[]byte", v)
		}
		opts = append(opts, types.WithPagingState(state))
	}
	if v, ok := m[optArguments]; ok {
		switch args := v.(type) {
		case []any:
			opts = append(opts, types.WithArguments(args...))
		case map[string]any:
			opts = append(opts, types.WithNamedArguments(args))
		default:
			return nil, "", badOption(optArguments, "[]any or map[string]any", v)
		}
	}
	if v, ok := m[optTypeHints]; ok {
		hints, ok := v.([]string)
		if !ok {
			return nil, "", badOption(optTypeHints, "[]string", v)
		}
		opts = append(opts, types.WithTypeHints(hints...))
	}
	if v, ok := m[optIdempotent]; ok {
		b, ok := v.(bool)
		if !ok {
			return nil, "", badOption(optIdempotent, "bool", v)
		}
		opts = append(opts, types.WithIdempotent(b))
	}
	if v, ok := m[optPayload]; ok {
		payload, ok := v.(map[string][]byte)
		if !ok {
			return nil, "", badOption(optPayload, "map[string][]byte", v)
		}
		opts = append(opts, types.WithPayload(payload))
	}
	if v, ok := m[optExecutionProfile]; ok {
		name, ok := v.(string)
		if !ok {
			return nil, "", badOption(optExecutionProfile, "string", v)
		}
		if name == "" {
			return nil, "", &types.InvalidArgumentError{Detail: "execution_profile must not be empty"}
		}
		profileName = name
		opts = append(opts, types.WithProfileName(name))
	}

	return types.NewProfile(opts...), profileName, nil
}

// consistencyValue accepts a Consistency constant or its textual name.
func consistencyValue(key string, v any) (types.Consistency, error) {
	switch c := v.(type) {
	case types.Consistency:
		return c, nil
	case string:
		parsed, err := types.ParseConsistency(c)
		if err != nil {
			return 0, err
		}

		return parsed, nil
	default:
		return 0, badOption(key, "types.Consistency or string", v)
	}
}

// durationValue accepts a time.Duration or a Go duration string.
func durationValue(key string, v any) (time.Duration, error) {
	var d time.Duration
	switch t := v.(type) {
	case time.Duration:
		d = t
	case string:
		parsed, err := time.ParseDuration(t)
		if err != nil {
			return 0, &types.InvalidArgumentError{
				Detail: fmt.Sprintf("option %q: %v", key, err),
			}
		}
		d = parsed
	default:
		return 0, badOption(key, "time.Duration or string", v)
	}
	if d <= 0 {
		return 0, &types.InvalidArgumentError{Detail: key + " must be positive"}
	}

	return d, nil
}

func badOption(key, want string, got any) error {
	return &types.InvalidArgumentError{
		Detail: fmt.Sprintf("option %q must be %s, got %T", key, want, got),
	}
}
