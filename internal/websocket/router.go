// internal/websocket/router.go
package websocket

import (
	"encoding/json"
	"fmt"
	"reflect"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Router exposes the exported methods of the bound App over the wire, so
// browser clients see the same surface the desktop bindings do. Params
// arrive as raw JSON and are decoded directly into each parameter type.
type Router struct {
	app     reflect.Value
	methods map[string]reflect.Method
}

// NewRouter registers every exported method of app.
func NewRouter(app interface{}) *Router {
	r := &Router{
		app:     reflect.ValueOf(app),
		methods: make(map[string]reflect.Method),
	}

	appType := r.app.Type()
	for i := 0; i < appType.NumMethod(); i++ {
		method := appType.Method(i)
		if method.IsExported() {
			r.methods[method.Name] = method
		}
	}
	return r
}

// Call invokes a registered method, decoding each raw param into the
// declared parameter type.
func (r *Router) Call(name string, params []json.RawMessage) (interface{}, error) {
	method, ok := r.methods[name]
	if !ok {
		return nil, fmt.Errorf("unknown method %q", name)
	}

	numIn := method.Type.NumIn() - 1 // minus receiver
	if len(params) != numIn {
		return nil, fmt.Errorf("method %s takes %d params, got %d", name, numIn, len(params))
	}

	args := make([]reflect.Value, 0, numIn+1)
	args = append(args, r.app)
	for i, raw := range params {
		arg := reflect.New(method.Type.In(i + 1))
		if err := json.Unmarshal(raw, arg.Interface()); err != nil {
			return nil, fmt.Errorf("method %s param %d: %w", name, i, err)
		}
		args = append(args, arg.Elem())
	}

	return foldResults(method.Func.Call(args))
}

// foldResults turns a method's return values into (result, error). A
// trailing error return is split off; multiple remaining values are
// returned as a slice.
func foldResults(out []reflect.Value) (interface{}, error) {
	if n := len(out); n > 0 && out[n-1].Type().Implements(errType) {
		if !out[n-1].IsNil() {
			return nil, out[n-1].Interface().(error)
		}
		out = out[:n-1]
	}

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	default:
		values := make([]interface{}, len(out))
		for i, v := range out {
			values[i] = v.Interface()
		}
		return values, nil
	}
}
