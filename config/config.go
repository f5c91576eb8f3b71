// Package config supplies flag defaults from YAML files.
//
// Keys are flag names. A key at the top level applies to every command that
// has the flag, a key inside a section named after a command only to that
// command:
//
//	log-level: debug
//	hide:
//	  secret: 42
//	  force: true
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// Loader is a kong.ConfigurationLoader.
func Loader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("could not parse configuration: %w", err)
	}

	return kong.ResolverFunc(func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		v, ok := lookup(values, commandPath(parent), flag.Name)
		if !ok {
			return nil, nil
		}
		return v, nil
	}), nil
}

func commandPath(parent *kong.Path) []string {
	if parent == nil {
		return nil
	}

	var path []string
	for n := parent.Node(); n != nil && n.Type != kong.ApplicationNode; n = n.Parent {
		path = append([]string{n.Name}, path...)
	}
	return path
}

// lookup tries the deepest command section first.
func lookup(values map[string]any, path []string, name string) (string, bool) {
	for depth := len(path); depth >= 0; depth-- {
		section, ok := values, true
		for _, p := range path[:depth] {
			if section, ok = section[p].(map[string]any); !ok {
				break
			}
		}
		if !ok {
			continue
		}

		if v, found := section[name]; found {
			return scalar(v)
		}
	}
	return "", false
}

func scalar(v any) (string, bool) {
	switch v := v.(type) {
	case nil, map[string]any:
		return "", false
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = fmt.Sprint(item)
		}
		return strings.Join(items, ","), true
	default:
		return fmt.Sprint(v), true
	}
}
