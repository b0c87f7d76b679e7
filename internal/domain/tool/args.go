package tool

import "encoding/json"

// Args is the decoded argument map of one tool call.
type Args map[string]any

// String returns the named parameter as a string.
func (a Args) String(key string) (string, error) {
	v, ok := a[key]
	if !ok {
		return "", &InvalidArgumentsError{Param: key, Reason: "is required"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &InvalidArgumentsError{Param: key, Reason: "must be a string"}
	}
	return s, nil
}

// OptionalString returns the named parameter when present, or "".
func (a Args) OptionalString(key string) (string, error) {
	if _, ok := a[key]; !ok {
		return "", nil
	}
	return a.String(key)
}

// OptionalInt returns the named parameter when present, or fallback.
// JSON numbers decode as float64; only whole values are accepted.
func (a Args) OptionalInt(key string, fallback int) (int, error) {
	v, ok := a[key]
	if !ok {
		return fallback, nil
	}
	f, ok := v.(float64)
	if !ok || f != float64(int(f)) {
		return 0, &InvalidArgumentsError{Param: key, Reason: "must be an integer"}
	}
	return int(f), nil
}

// JSONObject returns the named parameter, a JSON-formatted string, decoded
// into a field map. The outer contract passes record fields as JSON text
// (e.g. the "contact" parameter of create_contact).
func (a Args) JSONObject(key string) (map[string]any, error) {
	raw, err := a.String(key)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, &InvalidArgumentsError{Param: key, Reason: "is not a valid JSON object"}
	}
	return fields, nil
}
