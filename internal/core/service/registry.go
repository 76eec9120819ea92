package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/config-baseline-auditor/internal/core/domain"
	"github.com/olusolaa/config-baseline-auditor/internal/core/ports"
	"github.com/olusolaa/config-baseline-auditor/internal/errors"
)

// Host-facing filter names.
const (
	FilterExtractConfigSections = "extract_config_sections"
	FilterNormalizeConfig       = "normalize_config"
	FilterCompareWithBaseline   = "compare_with_baseline"
)

var filterJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// FilterFunc receives the decoded named arguments of one invocation.
type FilterFunc func(ctx context.Context, args map[string]any) (any, error)

// Filter is a named pure operation. Params lists argument names in positional
// order; a JSON array of arguments is matched against it.
type Filter struct {
	Name   string
	Params []string
	Call   FilterFunc
}

type FilterRegistry struct {
	mu      sync.RWMutex
	filters map[string]Filter
}

func NewFilterRegistry() *FilterRegistry {
	return &FilterRegistry{filters: make(map[string]Filter)}
}

// NewDefaultFilterRegistry registers the three configuration filters backed by
// the given collaborators.
func NewDefaultFilterRegistry(extractor ports.SectionExtractor, normalize ports.Normalizer, compare ports.BaselineComparer) (*FilterRegistry, error) {
	if extractor == nil || normalize == nil || compare == nil {
		return nil, errors.New(errors.CodeInternal, "filter registry requires an extractor, a normalizer and a comparer")
	}

	r := NewFilterRegistry()
	filters := []Filter{
		{
			Name:   FilterExtractConfigSections,
			Params: []string{"running_config", "network_os"},
			Call: func(_ context.Context, raw map[string]any) (any, error) {
				var args struct {
					RunningConfig string `mapstructure:"running_config"`
					NetworkOS     string `mapstructure:"network_os"`
				}
				if err := decodeArgs(FilterExtractConfigSections, raw, &args); err != nil {
					return nil, err
				}
				return extractor.Extract(args.RunningConfig, domain.ResolvePlatform(args.NetworkOS)), nil
			},
		},
		{
			Name:   FilterNormalizeConfig,
			Params: []string{"config", "network_os"},
			Call: func(_ context.Context, raw map[string]any) (any, error) {
				var args struct {
					Config    string `mapstructure:"config"`
					NetworkOS string `mapstructure:"network_os"`
				}
				if err := decodeArgs(FilterNormalizeConfig, raw, &args); err != nil {
					return nil, err
				}
				return normalize(args.Config, domain.ResolvePlatform(args.NetworkOS)), nil
			},
		},
		{
			Name:   FilterCompareWithBaseline,
			Params: []string{"running_config_lines", "baseline_lines", "network_os"},
			Call: func(_ context.Context, raw map[string]any) (any, error) {
				var args struct {
					Running   []string `mapstructure:"running_config_lines"`
					Baseline  []string `mapstructure:"baseline_lines"`
					NetworkOS string   `mapstructure:"network_os"`
				}
				if err := decodeArgs(FilterCompareWithBaseline, raw, &args); err != nil {
					return nil, err
				}
				return compare(args.Running, args.Baseline, domain.ResolvePlatform(args.NetworkOS)), nil
			},
		},
	}
	for _, f := range filters {
		if err := r.Register(f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *FilterRegistry) Register(f Filter) error {
	if f.Name == "" {
		return errors.New(errors.CodeInternal, "filter name cannot be empty")
	}
	if f.Call == nil {
		return errors.Newf(errors.CodeInternal, "attempted to register nil filter '%s'", f.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.filters[f.Name]; exists {
		return errors.Newf(errors.CodeInternal, "filter '%s' already registered", f.Name)
	}
	r.filters[f.Name] = f
	return nil
}

// Names returns the registered filter names in lexical order.
func (r *FilterRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.filters))
	for name := range r.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *FilterRegistry) Get(name string) (Filter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, exists := r.filters[name]
	if !exists {
		return Filter{}, errors.NewUserFacing(errors.CodeUnknownFilter,
			fmt.Sprintf("filter '%s' is not registered", name),
			"Run the 'filter' command without arguments to list available filters.")
	}
	return f, nil
}

// Invoke runs a filter with JSON encoded arguments: an object of named
// arguments, an array of positional arguments, or nothing. Absent arguments
// take their zero value.
func (r *FilterRegistry) Invoke(ctx context.Context, name string, rawArgs []byte) (any, error) {
	f, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	args, err := parseArgs(f, rawArgs)
	if err != nil {
		return nil, err
	}
	return f.Call(ctx, args)
}

// Call runs a filter with already decoded named arguments.
func (r *FilterRegistry) Call(ctx context.Context, name string, args map[string]any) (any, error) {
	f, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]any{}
	}
	return f.Call(ctx, args)
}

func parseArgs(f Filter, rawArgs []byte) (map[string]any, error) {
	args := map[string]any{}
	if len(bytes.TrimSpace(rawArgs)) == 0 {
		return args, nil
	}

	var decoded any
	if err := filterJSON.Unmarshal(rawArgs, &decoded); err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeFilterArgs,
			fmt.Sprintf("arguments for filter '%s' are not valid JSON", f.Name),
			"Pass a JSON object of named arguments.")
	}

	switch v := decoded.(type) {
	case nil:
		return args, nil
	case map[string]any:
		return v, nil
	case []any:
		if len(v) > len(f.Params) {
			return nil, errors.NewUserFacing(errors.CodeFilterArgs,
				fmt.Sprintf("filter '%s' takes at most %d arguments, got %d", f.Name, len(f.Params), len(v)),
				fmt.Sprintf("Arguments are: %v.", f.Params))
		}
		for i, value := range v {
			args[f.Params[i]] = value
		}
		return args, nil
	default:
		return nil, errors.NewUserFacing(errors.CodeFilterArgs,
			fmt.Sprintf("arguments for filter '%s' must be a JSON object or array", f.Name),
			"Pass a JSON object of named arguments.")
	}
}

func decodeArgs(filter string, raw map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "creating argument decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return errors.WrapUserFacing(err, errors.CodeFilterArgs,
			fmt.Sprintf("invalid arguments for filter '%s': %v", filter, err),
			"Check argument names and types.")
	}
	return nil
}
