package expr

import (
	"math"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/sheetstorm/internal/column"
)

func toLua(L *lua.LState, v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(x)
	case int:
		return lua.LNumber(x)
	case int32:
		return lua.LNumber(x)
	case int64:
		return lua.LNumber(x)
	case uint64:
		return lua.LNumber(x)
	case float32:
		return lua.LNumber(x)
	case float64:
		return lua.LNumber(x)
	case string:
		return lua.LString(x)
	case []byte:
		return lua.LString(x)
	case time.Time:
		return lua.LNumber(x.Unix())
	case []any:
		t := L.CreateTable(len(x), 0)
		for i, e := range x {
			t.RawSetInt(i+1, toLua(L, e))
		}
		return t
	case map[string]any:
		t := L.CreateTable(0, len(x))
		for k, e := range x {
			t.RawSetString(k, toLua(L, e))
		}
		return t
	default:
		return lua.LString(column.ToString(v))
	}
}

// fromLua converts a result. Integral numbers become int64; tables become
// []any when their keys are 1..n and map[string]any otherwise.
func fromLua(lv lua.LValue) any {
	return fromLuaDepth(lv, 0)
}

const maxDepth = 32

func fromLuaDepth(lv lua.LValue, depth int) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if depth >= maxDepth {
			return nil
		}
		return tableToGo(v, depth+1)
	case *lua.LUserData:
		return v.Value
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable, depth int) any {
	n := t.MaxN()
	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })
	if n > 0 && n == count {
		arr := make([]any, n)
		for i := 1; i <= n; i++ {
			arr[i-1] = fromLuaDepth(t.RawGetInt(i), depth)
		}
		return arr
	}
	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		m[k.String()] = fromLuaDepth(v, depth)
	})
	return m
}
