package nlp

import (
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Settings is a nested settings tree. Keys may be addressed with dotted paths such as "index.analysis".
type Settings map[string]interface{}

func (s Settings) Get(key string) (interface{}, bool) {
	return lookup(s, key)
}

func lookup(m map[string]interface{}, key string) (interface{}, bool) {
	if m == nil {
		return nil, false
	}
	if value, ok := m[key]; ok {
		return value, true
	}
	for i := 0; i < len(key); i++ {
		if key[i] != '.' {
			continue
		}
		value, ok := m[key[:i]]
		if !ok {
			continue
		}
		child, err := cast.ToStringMapE(value)
		if err != nil {
			continue
		}
		if result, ok := lookup(child, key[i+1:]); ok {
			return result, true
		}
	}
	return nil, false
}

func (s Settings) GetString(key, defaultValue string) string {
	value, ok := s.Get(key)
	if !ok {
		return defaultValue
	}
	return cast.ToString(value)
}

func (s Settings) GetBool(key string, defaultValue bool) (bool, error) {
	value, ok := s.Get(key)
	if !ok {
		return defaultValue, nil
	}
	return cast.ToBoolE(value)
}

func (s Settings) GetInt(key string, defaultValue int) (int, error) {
	value, ok := s.Get(key)
	if !ok {
		return defaultValue, nil
	}
	return cast.ToIntE(value)
}

// GetStringSlice accepts a list or a comma separated string.
func (s Settings) GetStringSlice(key string) []string {
	value, ok := s.Get(key)
	if !ok || value == nil {
		return nil
	}
	if str, ok := value.(string); ok {
		var result []string
		for _, item := range strings.Split(str, ",") {
			if item = strings.TrimSpace(item); item != "" {
				result = append(result, item)
			}
		}
		return result
	}
	return cast.ToStringSlice(value)
}

// Sub returns the settings under key, or an empty Settings.
func (s Settings) Sub(key string) Settings {
	value, ok := s.Get(key)
	if !ok {
		return Settings{}
	}
	child, err := cast.ToStringMapE(value)
	if err != nil {
		return Settings{}
	}
	return Settings(child)
}

func (s Settings) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

func (s Settings) Keys() []string {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
