package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"artifacts/internal/runner"

	"golang.org/x/exp/maps"
)

// Result is the set of named fields an Action reports from a response.
type Result map[string]string

// Connection sends one request for a character and returns the raw response body.
// *runner.Runner is the production implementation.
type Connection interface {
	Send(ctx context.Context, method, character, action string, body []byte) ([]byte, error)
}

// Narrower picks the fields of a decoded response an Action reports.
type Narrower func(Result) (Result, error)

type Option func(*Action)

// WithNarrower replaces the default post processing, which reports every field.
func WithNarrower(n Narrower) Option {
	return func(a *Action) { a.narrow = n }
}

// WithEnvelope makes post processing read the object stored under key when the
// response wraps its payload, as the API does with "data". Responses where key is
// missing or not an object are read from the top level.
func WithEnvelope(key string) Option {
	return func(a *Action) { a.envelope = key }
}

// WithPinned marks fixed arguments that extra arguments cannot overwrite.
func WithPinned(keys ...string) Option {
	return func(a *Action) { a.pinned = append(a.pinned, keys...) }
}

// Action is a single request against a character. It is immutable once built
// and can be executed any number of times.
type Action struct {
	Method    string
	Character string
	// Name is the action path segment, empty for state queries.
	Name     string
	args     map[string]string
	pinned   []string
	narrow   Narrower
	envelope string
}

func NewAction(method, character, name string, args map[string]string, opts ...Option) *Action {
	a := &Action{
		Method:    method,
		Character: character,
		Name:      name,
		args:      maps.Clone(args),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Action) String() string {
	if a.Name == "" {
		return fmt.Sprintf("%s %s", a.Method, a.Character)
	}
	return fmt.Sprintf("%s %s/%s", a.Method, a.Character, a.Name)
}

// Arguments merges the fixed arguments with extra. Extra wins on shared keys
// unless the key is pinned.
func (a *Action) Arguments(extra Result) map[string]string {
	merged := make(map[string]string, len(a.args)+len(extra))
	maps.Copy(merged, a.args)
	maps.Copy(merged, extra)
	for _, k := range a.pinned {
		if v, ok := a.args[k]; ok {
			merged[k] = v
		}
	}
	return merged
}

// Execute sends the action over conn and post processes the response. GET requests
// carry no body; everything else sends the merged arguments as a JSON object.
func (a *Action) Execute(ctx context.Context, conn Connection, extra Result) (Result, error) {
	var body []byte
	if a.Method != http.MethodGet {
		b, err := json.Marshal(a.Arguments(extra))
		if err != nil {
			return nil, fmt.Errorf("encode arguments: %w", err)
		}
		body = b
	}

	raw, err := conn.Send(ctx, a.Method, a.Character, a.Name, body)
	if err != nil {
		return nil, err
	}

	return a.PostProcess(raw)
}

func (a *Action) PostProcess(body []byte) (Result, error) {
	if a.envelope != "" {
		body = unwrap(body, a.envelope)
	}
	res, err := DecodeResult(body)
	if err != nil {
		return nil, err
	}
	if a.narrow == nil {
		return res, nil
	}
	return a.narrow(res)
}

// unwrap returns the raw object under key, or body itself when there is none.
func unwrap(body []byte, key string) []byte {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return body
	}
	inner, ok := fields[key]
	if !ok {
		return body
	}
	inner = bytes.TrimSpace(inner)
	if len(inner) == 0 || inner[0] != '{' {
		return body
	}
	return inner
}

// DecodeResult flattens the top level of a JSON object. String values are stored
// unquoted, anything else as its compact JSON text.
func DecodeResult(body []byte) (Result, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, &runner.ResponseError{Err: fmt.Errorf("decode response: %w", err)}
	}
	if fields == nil {
		return nil, &runner.ResponseError{Err: fmt.Errorf("response is not a JSON object")}
	}

	res := make(Result, len(fields))
	for k, v := range fields {
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err != nil {
			return nil, &runner.ResponseError{Err: fmt.Errorf("decode field %s: %w", k, err)}
		}
		text := buf.Bytes()
		if len(text) > 0 && text[0] == '"' {
			var s string
			if err := json.Unmarshal(text, &s); err != nil {
				return nil, &runner.ResponseError{Err: fmt.Errorf("decode field %s: %w", k, err)}
			}
			res[k] = s
			continue
		}
		res[k] = string(text)
	}

	return res, nil
}

// Fields narrows a result to exactly the named fields, failing if any is absent.
func Fields(names ...string) Narrower {
	return func(r Result) (Result, error) {
		out := make(Result, len(names))
		var missing []string
		for _, n := range names {
			v, ok := r[n]
			if !ok {
				missing = append(missing, n)
				continue
			}
			out[n] = v
		}
		if len(missing) > 0 {
			return nil, &runner.ResponseError{Err: fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))}
		}
		return out, nil
	}
}
