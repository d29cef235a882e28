package link

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// Values holds the raw parameters a share link carries, either as a parsed
// query string or as a decoded vmess JSON object. A key may repeat; every
// accessor takes the first occurrence.
type Values map[string][]string

func ValuesFromQuery(q url.Values) Values {
	return Values(q)
}

// ValuesFromJSON flattens a decoded JSON object into Values. Scalars are
// stringified (numbers via json.Number, booleans as "true"/"false"); nested
// values are ignored.
func ValuesFromJSON(obj map[string]interface{}) Values {
	v := make(Values, len(obj))
	for key, raw := range obj {
		switch val := raw.(type) {
		case string:
			v[key] = []string{val}
		case json.Number:
			v[key] = []string{val.String()}
		case bool:
			v[key] = []string{strconv.FormatBool(val)}
		}
	}
	return v
}

// First returns the first value for key and whether the key is present.
func (v Values) First(key string) (string, bool) {
	vals, ok := v[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func (v Values) Has(key string) bool {
	val, ok := v.First(key)
	return ok && val != ""
}

// Str returns the first value for key, or def when the key is absent.
func (v Values) Str(key, def string) string {
	if val, ok := v.First(key); ok {
		return val
	}
	return def
}

// StrOr walks keys and returns the first non-empty value, falling back to def.
func (v Values) StrOr(def string, keys ...string) string {
	for _, key := range keys {
		if val, ok := v.First(key); ok && val != "" {
			return val
		}
	}
	return def
}

// Int returns the first value for key parsed as an integer. Absent or
// unparsable values yield def.
func (v Values) Int(key string, def int) int {
	val, ok := v.First(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return def
	}
	return n
}

// Bool reports whether the first value for key is the literal "true".
func (v Values) Bool(key string) bool {
	val, _ := v.First(key)
	return val == "true"
}
