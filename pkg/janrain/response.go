package janrain

import (
	"encoding/json"
	"fmt"
)

// StatOK is the "stat" value of a successful API response.
const StatOK = "ok"

// Response is a decoded JSON object returned by the API.
type Response map[string]any

// Stat returns the "stat" field, or an empty string if absent.
func (r Response) Stat() string {
	s, _ := r["stat"].(string)
	return s
}

// Object returns the nested object stored under key, if any.
func (r Response) Object(key string) (map[string]any, bool) {
	m, ok := r[key].(map[string]any)
	return m, ok
}

// check returns an *APIError when the payload reports a failure:
// an "error" field, or a "stat" other than "ok".
func (r Response) check(op string) error {
	if e, ok := r["error"]; ok && e != nil {
		return newAPIError(op, r)
	}
	if _, ok := r["stat"]; ok && r.Stat() != StatOK {
		return newAPIError(op, r)
	}
	return nil
}

// APIError is returned when the provider answers with an error payload.
// It matches ErrProvider with errors.Is.
type APIError struct {
	Response Response
	Op       string // API path that failed
	Stat     string
	Code     string
	Message  string
}

func newAPIError(op string, r Response) *APIError {
	e := &APIError{
		Op:       op,
		Stat:     r.Stat(),
		Response: r,
	}

	// Capture: {"stat":"error","code":200,"error":"invalid_argument","error_description":"..."}
	// Engage:  {"stat":"fail","err":{"code":2,"msg":"..."}}
	if nested, ok := r.Object("err"); ok {
		e.Code = scalar(nested["code"])
		e.Message = scalar(nested["msg"])
	}
	if c := scalar(r["code"]); c != "" {
		e.Code = c
	}
	if msg := scalar(r["error_description"]); msg != "" {
		e.Message = msg
	} else if msg := scalar(r["error"]); msg != "" && e.Message == "" {
		e.Message = msg
	}
	return e
}

func (e *APIError) Error() string {
	body, err := json.Marshal(e.Response)
	if err != nil {
		return fmt.Sprintf("janrain: %s returned error response: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("janrain: %s returned error response: %s", e.Op, body)
}

// Is reports whether target is ErrProvider.
func (e *APIError) Is(target error) bool {
	return target == ErrProvider
}

// scalar renders a JSON scalar as a string; objects and arrays yield "".
func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		return ""
	}
}
