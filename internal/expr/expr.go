package expr

import (
	"context"
	"errors"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// Lookup resolves an identifier to a value. It returns ErrUnknownName when
// the name should fall back to the Lua globals.
type Lookup func(name string) (any, error)

// Expr is a compiled expression. It is safe for concurrent use.
type Expr struct {
	src   string
	proto *lua.FunctionProto
	pool  sync.Pool
}

// Compile parses src as a single Lua expression.
func Compile(src string) (*Expr, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, ErrEmpty
	}
	chunk, err := parse.Parse(strings.NewReader("return "+src), src)
	if err != nil {
		return nil, &Error{Expr: src, Err: err}
	}
	proto, err := lua.Compile(chunk, src)
	if err != nil {
		return nil, &Error{Expr: src, Err: err}
	}
	x := &Expr{src: src, proto: proto}
	x.pool.New = func() any { return newState() }
	return x, nil
}

// String returns the expression source.
func (x *Expr) String() string {
	return x.src
}

func newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "print"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// Eval runs the expression. Identifiers not defined by the expression are
// resolved through lookup first and the Lua globals second. A cancelled ctx
// stops a running evaluation.
func (x *Expr) Eval(ctx context.Context, lookup Lookup) (result any, err error) {
	L := x.pool.Get().(*lua.LState)
	defer func() {
		if r := recover(); r != nil {
			L.Close()
			L = nil
			err = &Error{Expr: x.src, Err: errors.New("lua panic")}
		}
		if L != nil {
			L.SetTop(0)
			x.pool.Put(L)
		}
	}()

	if ctx != nil && ctx.Done() != nil {
		L.SetContext(ctx)
		defer L.RemoveContext()
	}

	fn := L.NewFunctionFromProto(x.proto)
	fn.Env = environment(L, lookup)
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		var apiErr *lua.ApiError
		if errors.As(err, &apiErr) {
			if cause, ok := apiErr.Object.(*lua.LUserData); ok {
				if e, ok := cause.Value.(error); ok {
					return nil, &Error{Expr: x.src, Err: e}
				}
			}
		}
		return nil, &Error{Expr: x.src, Err: err}
	}
	return fromLua(L.Get(-1)), nil
}

func environment(L *lua.LState, lookup Lookup) *lua.LTable {
	globals := L.Get(lua.GlobalsIndex).(*lua.LTable)
	env := L.NewTable()
	mt := L.NewTable()
	mt.RawSetString("__index", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(2)
		if lookup != nil {
			v, err := lookup(name)
			switch {
			case err == nil:
				L.Push(toLua(L, v))
				return 1
			case !errors.Is(err, ErrUnknownName):
				ud := L.NewUserData()
				ud.Value = err
				L.Error(ud, 0)
				return 0
			}
		}
		L.Push(globals.RawGetString(name))
		return 1
	}))
	L.SetMetatable(env, mt)
	return env
}
