package config

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/spf13/cast"

	"github.com/bnema/activity-feed-filter/internal/models"
)

var booleanKeys = []string{
	"remove.uncommented",
	"remove.unliked",
	"remove.text",
	"remove.images",
	"remove.gifs",
	"remove.videos",
	"options.case_sensitive",
	"options.reverse_conditions",
	"run_on.home",
	"run_on.social",
	"run_on.profile",
	"run_on.guest_home",
}

var stringArrayKeys = []string{
	"remove.contains_strings",
	"options.linked_conditions",
}

// Validate checks decoded settings and returns one message per problem.
// An empty result means the settings can be unmarshalled safely.
func Validate(settings map[string]any) []string {
	var errs []string

	if _, ok := positiveInt(lookup(settings, "options.target_load_count")); !ok {
		errs = append(errs, "options.target_load_count should be a positive non-zero integer")
	}

	if msg := validateLinkedConditions(lookup(settings, "options.linked_conditions")); msg != "" {
		errs = append(errs, msg)
	}

	for _, key := range stringArrayKeys {
		items, ok := asSlice(lookup(settings, key))
		if !ok {
			errs = append(errs, key+" should be an array")
		} else if !onlyStrings(items) {
			errs = append(errs, key+" should only contain strings")
		}
	}

	for _, key := range booleanKeys {
		if _, ok := lookup(settings, key).(bool); !ok {
			errs = append(errs, key+" should be a boolean")
		}
	}

	return errs
}

func validateLinkedConditions(v any) string {
	items, ok := asSlice(v)
	if !ok {
		return ""
	}
	for _, item := range flatten(items) {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if _, known := models.ParseCondition(s); !known {
			names := make([]string, 0, len(models.AllConditions()))
			for _, c := range models.AllConditions() {
				names = append(names, c.String())
			}
			return fmt.Sprintf("options.linked_conditions should only contain the following strings: %s",
				strings.Join(names, ", "))
		}
	}
	return ""
}

// lookup walks a dotted key through nested maps
func lookup(settings map[string]any, key string) any {
	var current any = settings
	for _, part := range strings.Split(key, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[part]
	}
	return current
}

func positiveInt(v any) (int, bool) {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
	case float32:
		if float64(n) != math.Trunc(float64(n)) {
			return 0, false
		}
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
	default:
		return 0, false
	}

	i, err := cast.ToIntE(v)
	if err != nil || i <= 0 {
		return 0, false
	}
	return i, true
}

func asSlice(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func onlyStrings(items []any) bool {
	for _, item := range items {
		if nested, ok := asSlice(item); ok {
			if !onlyStrings(nested) {
				return false
			}
			continue
		}
		if _, ok := item.(string); !ok {
			return false
		}
	}
	return true
}

func flatten(items []any) []any {
	var out []any
	for _, item := range items {
		if nested, ok := asSlice(item); ok {
			out = append(out, flatten(nested)...)
			continue
		}
		out = append(out, item)
	}
	return out
}
