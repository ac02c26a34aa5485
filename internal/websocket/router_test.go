// internal/websocket/router_test.go
package websocket

import (
	"encoding/json"
	"errors"
	"testing"
)

type demoAPI struct{}

func (d *demoAPI) Add(a, b int) int { return a + b }

func (d *demoAPI) Greet(name string) (string, error) {
	if name == "" {
		return "", errors.New("empty name")
	}
	return "hello " + name, nil
}

func (d *demoAPI) Ping() {}

func rawParams(values ...string) []json.RawMessage {
	params := make([]json.RawMessage, len(values))
	for i, v := range values {
		params[i] = json.RawMessage(v)
	}
	return params
}

func TestRouterCall(t *testing.T) {
	r := NewRouter(&demoAPI{})

	result, err := r.Call("Add", rawParams("2", "3"))
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if result != 5 {
		t.Errorf("Expected 5, got %v", result)
	}
}

func TestRouterCallWithError(t *testing.T) {
	r := NewRouter(&demoAPI{})

	result, err := r.Call("Greet", rawParams(`"world"`))
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if result != "hello world" {
		t.Errorf("Expected greeting, got %v", result)
	}

	if _, err := r.Call("Greet", rawParams(`""`)); err == nil {
		t.Fatal("Expected error from method")
	}
}

func TestRouterUnknownMethod(t *testing.T) {
	r := NewRouter(&demoAPI{})
	if _, err := r.Call("Nope", nil); err == nil {
		t.Fatal("Expected error for unknown method")
	}
}

func TestRouterParamCountMismatch(t *testing.T) {
	r := NewRouter(&demoAPI{})
	if _, err := r.Call("Add", rawParams("1")); err == nil {
		t.Fatal("Expected error for missing param")
	}
}

func TestRouterParamTypeMismatch(t *testing.T) {
	r := NewRouter(&demoAPI{})
	if _, err := r.Call("Add", rawParams(`"two"`, "3")); err == nil {
		t.Fatal("Expected error for wrong param type")
	}
}

func TestRouterVoidMethod(t *testing.T) {
	r := NewRouter(&demoAPI{})
	result, err := r.Call("Ping", nil)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if result != nil {
		t.Errorf("Expected nil result, got %v", result)
	}
}
