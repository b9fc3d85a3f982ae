package errors

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownOperation is returned by Entity.Call for names missing from the table.
var ErrUnknownOperation = errors.New("unknown operation")

// OperationDef is one manifest entry. Only Async entries are instrumented.
type OperationDef struct {
	Name  string
	Async bool
	Fn    Func
}

// AsyncOp declares a remote, blocking operation eligible for wrapping.
func AsyncOp(name string, fn Func) OperationDef {
	return OperationDef{Name: name, Async: true, Fn: fn}
}

// SyncOp declares a local operation that is stored untouched.
func SyncOp(name string, fn Func) OperationDef {
	return OperationDef{Name: name, Fn: fn}
}

// EntityDef is the explicit manifest of an entity's operations.
type EntityDef struct {
	Name       string
	Operations []OperationDef
}

// Entity is a named table of operations, async ones already instrumented.
type Entity struct {
	name  string
	order []string
	ops   map[string]Func
	async map[string]bool
}

// Instrument builds an Entity from def, wrapping every async operation with
// the default name "<entity>.<operation>".
//
// Instrument panics on an empty or duplicate operation name or a nil Fn:
// manifests are static and such mistakes are programming errors.
func Instrument(def EntityDef) *Entity {
	e := &Entity{
		name:  def.Name,
		order: make([]string, 0, len(def.Operations)),
		ops:   make(map[string]Func, len(def.Operations)),
		async: make(map[string]bool, len(def.Operations)),
	}

	for _, od := range def.Operations {
		if od.Name == "" || od.Fn == nil {
			panic(fmt.Sprintf("errors: invalid operation %q in entity %q", od.Name, def.Name))
		}

		if _, dup := e.ops[od.Name]; dup {
			panic(fmt.Sprintf("errors: duplicate operation %q in entity %q", od.Name, def.Name))
		}

		fn := od.Fn
		if od.Async {
			fn = WrapFunc(Op{Entity: def.Name, Method: od.Name}, od.Fn)
		}

		e.order = append(e.order, od.Name)
		e.ops[od.Name] = fn
		e.async[od.Name] = od.Async
	}

	return e
}

func (e *Entity) Name() string { return e.name }

// Operations lists operation names in manifest order.
func (e *Entity) Operations() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)

	return out
}

// Operation returns the (possibly instrumented) operation registered as name.
func (e *Entity) Operation(name string) (Func, bool) {
	fn, ok := e.ops[name]
	return fn, ok
}

// IsInstrumented reports whether name was wrapped at construction.
func (e *Entity) IsInstrumented(name string) bool {
	return e.async[name]
}

// Call dispatches to the named operation.
func (e *Entity) Call(ctx context.Context, name string, args ...any) (any, error) {
	fn, ok := e.ops[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownOperation, e.name, name)
	}

	return fn(ctx, args...)
}
