package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/shensd/icecold"
	"gopkg.in/yaml.v3"
)

// YAML is a kong.ConfigurationLoader for YAML files whose top-level keys are
// flag names, e.g. "max-word-len: 12". Underscores may stand in for dashes.
// Values given on the command line take precedence over the file.
func YAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, icecold.Errorf(icecold.EINVALID, "invalid config file: %v", err)
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		raw, ok := values[flag.Name]
		if !ok {
			raw, ok = values[strings.ReplaceAll(flag.Name, "-", "_")]
		}
		if !ok || raw == nil {
			return nil, nil
		}
		switch raw.(type) {
		case map[string]any, []any:
			return nil, icecold.Errorf(icecold.EINVALID, "config key %q must be a single value", flag.Name)
		}
		return fmt.Sprint(raw), nil
	}
	return f, nil
}
