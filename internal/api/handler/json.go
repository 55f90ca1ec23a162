package handler

import "encoding/json"

// errorResponse mirrors the envelope the central error handler renders; it
// exists here so the swagger annotations can reference it.
type errorResponse struct {
	Error string `json:"error"`
}

func jsonUnmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// jsonHasKey reports whether a top-level key is present in a JSON object,
// including when its value is null.
func jsonHasKey(data []byte, key string) bool {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return false
	}
	_, ok := raw[key]
	return ok
}
