package config

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keys address Config values by their dot-separated yaml names, e.g.
// "top_n", "columns.quota" or "server.addr". Blocks ("columns", "server")
// can be read but only their scalar leaves can be set.

// GetValue returns the value at keyPath in cfg: scalars as-is, blocks as
// maps. Unknown keys and keys with no value set are errors.
func GetValue(cfg *Config, keyPath string) (any, error) {
	if _, err := resolveKey(keyPath); err != nil {
		return nil, err
	}
	m, err := toMap(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}

	var cur any = m
	for _, part := range strings.Split(keyPath, ".") {
		block, _ := cur.(map[string]any)
		v, ok := block[part]
		if !ok {
			return nil, fmt.Errorf("key %q is not set", keyPath)
		}
		cur = v
	}
	return cur, nil
}

// SetValue parses raw as the type of the field at keyPath and stores it in
// data, a raw YAML document, creating intermediate blocks as needed.
func SetValue(data map[string]any, keyPath, raw string) error {
	if err := ValidateKeyPath(keyPath); err != nil {
		return err
	}
	ft, _ := resolveKey(keyPath)
	val, err := parseAs(ft, raw)
	if err != nil {
		return fmt.Errorf("key %q: %w", keyPath, err)
	}

	parts := strings.Split(keyPath, ".")
	block := data
	for _, part := range parts[:len(parts)-1] {
		switch next := block[part].(type) {
		case map[string]any:
			block = next
		case nil:
			child := make(map[string]any)
			block[part] = child
			block = child
		default:
			return fmt.Errorf("key %q holds %T, not a block", part, next)
		}
	}
	block[parts[len(parts)-1]] = val
	return nil
}

// Flatten returns the values set in cfg keyed by dot-separated path.
func Flatten(cfg *Config) (map[string]any, error) {
	m, err := toMap(cfg)
	if err != nil {
		return nil, err
	}
	return FlattenMap(m, ""), nil
}

// FlattenMap recursively flattens a nested map to dot-separated keys.
func FlattenMap(m map[string]any, prefix string) map[string]any {
	out := make(map[string]any)
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		sub, ok := v.(map[string]any)
		if !ok {
			out[key] = v
			continue
		}
		maps.Copy(out, FlattenMap(sub, key))
	}
	return out
}

// ValidateKeyPath checks that keyPath names a settable Config field.
func ValidateKeyPath(keyPath string) error {
	t, err := resolveKey(keyPath)
	if err != nil {
		return err
	}
	if t.Kind() == reflect.Struct {
		return fmt.Errorf("key %q is a block; name one of: %s", keyPath, fieldList(t))
	}
	return nil
}

// resolveKey walks the yaml tags of Config and returns the type of the
// field keyPath names.
func resolveKey(keyPath string) (reflect.Type, error) {
	if keyPath == "" {
		return nil, errors.New("empty key path")
	}
	parts := strings.Split(keyPath, ".")

	t := reflect.TypeOf(Config{})
	for i, part := range parts {
		ft, ok := yamlFields(t)[part]
		if !ok {
			where := "top-level keys"
			if i > 0 {
				where = "keys under " + strings.Join(parts[:i], ".")
			}
			return nil, fmt.Errorf("unknown key %q; valid %s: %s", part, where, fieldList(t))
		}
		if ft.Kind() != reflect.Struct && i < len(parts)-1 {
			return nil, fmt.Errorf("key %q is a scalar; cannot use sub-keys", strings.Join(parts[:i+1], "."))
		}
		t = ft
	}
	return t, nil
}

// parseAs converts raw to the kind of t. Strings are kept verbatim, so a
// header named "2021" stays a string.
func parseAs(t reflect.Type, raw string) (any, error) {
	switch t.Kind() {
	case reflect.String:
		return raw, nil
	case reflect.Int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", raw)
		}
		return n, nil
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not true or false", raw)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported field type %s", t)
	}
}

// toMap converts cfg to a generic map through YAML, so only set fields
// appear.
func toMap(cfg *Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	m := make(map[string]any)
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// yamlFields maps yaml tag names of struct type t to their field types.
func yamlFields(t reflect.Type) map[string]reflect.Type {
	fields := make(map[string]reflect.Type)
	for _, f := range reflect.VisibleFields(t) {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			continue
		}
		fields[name] = f.Type
	}
	return fields
}

// fieldList is the sorted, comma-separated yaml keys of struct type t.
func fieldList(t reflect.Type) string {
	return strings.Join(slices.Sorted(maps.Keys(yamlFields(t))), ", ")
}
