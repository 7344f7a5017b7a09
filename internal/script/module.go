package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/xps/internal/engine/xps"
)

// ModuleName is the global name of the chunked string module.
const ModuleName = "xps"

// typeName names the userdata metatable.
const typeName = "xps.string"

var moduleFuncs = map[string]lua.LGFunction{
	"new":      xpsNew,
	"len":      xpsLen,
	"byte_at":  xpsByteAt,
	"set_byte": xpsSetByte,
	"slice":    xpsSlice,
	"concat":   xpsConcat,
	"compare":  xpsCompare,
	"find":     xpsFind,
	"text":     xpsText,
	"encode":   xpsEncode,
	"decode":   xpsDecode,
}

// registerModule installs the xps global and the userdata metatable.
func registerModule(L *lua.LState) {
	mt := L.NewTypeMetatable(typeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), moduleFuncs))
	L.SetField(mt, "__len", L.NewFunction(xpsLen))
	L.SetField(mt, "__concat", L.NewFunction(xpsConcat))
	L.SetField(mt, "__eq", L.NewFunction(xpsEq))
	L.SetField(mt, "__lt", L.NewFunction(xpsLt))
	L.SetField(mt, "__le", L.NewFunction(xpsLe))
	L.SetField(mt, "__tostring", L.NewFunction(xpsText))

	L.SetGlobal(ModuleName, L.SetFuncs(L.NewTable(), moduleFuncs))
}

// NewValue wraps s as a Lua value.
func NewValue(L *lua.LState, s xps.String) lua.LValue {
	ud := L.NewUserData()
	ud.Value = s
	L.SetMetatable(ud, L.GetTypeMetatable(typeName))
	return ud
}

// ToString converts a Lua string or xps value to a String.
func ToString(v lua.LValue) (xps.String, bool) {
	switch v := v.(type) {
	case lua.LString:
		return xps.FromText(string(v)), true
	case *lua.LUserData:
		s, ok := v.Value.(xps.String)
		return s, ok
	}
	return xps.String{}, false
}

// checkString returns argument n as a String, raising an argument error
// when it is neither a Lua string nor an xps value.
func checkString(L *lua.LState, n int) xps.String {
	s, ok := ToString(L.Get(n))
	if !ok {
		L.ArgError(n, "string or xps value expected")
	}
	return s
}

// checkValue returns argument n, which must be an xps value.
func checkValue(L *lua.LState, n int) xps.String {
	ud := L.CheckUserData(n)
	s, ok := ud.Value.(xps.String)
	if !ok {
		L.ArgError(n, "xps value expected")
	}
	return s
}

func xpsNew(L *lua.LState) int {
	L.Push(NewValue(L, checkString(L, 1).Clone()))
	return 1
}

func xpsLen(L *lua.LState) int {
	L.Push(lua.LNumber(checkString(L, 1).Len()))
	return 1
}

func xpsByteAt(L *lua.LState) int {
	b, ok := checkString(L, 1).ByteAt(L.CheckInt(2))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(b))
	return 1
}

func xpsSetByte(L *lua.LState) int {
	s := checkValue(L, 1)
	i := L.CheckInt(2)
	b := L.CheckInt(3)
	if b < 0 || b > 255 {
		L.ArgError(3, "byte value must be in [0, 255]")
		return 0
	}
	if err := s.SetByte(i, byte(b)); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func xpsSlice(L *lua.LState) int {
	s := checkString(L, 1)
	start := L.CheckInt(2)
	stop := L.OptInt(3, s.Len())
	L.Push(NewValue(L, s.Slice(start, stop)))
	return 1
}

func xpsConcat(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]xps.String, 0, top)
	for i := 1; i <= top; i++ {
		parts = append(parts, checkString(L, i))
	}
	L.Push(NewValue(L, xps.Concat(parts...)))
	return 1
}

func xpsCompare(L *lua.LState) int {
	L.Push(lua.LNumber(xps.Compare(checkString(L, 1), checkString(L, 2))))
	return 1
}

func xpsFind(L *lua.LState) int {
	s := checkString(L, 1)
	pattern := checkString(L, 2)
	i, ok := xps.FindFrom(s, pattern, L.OptInt(3, 0))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(i))
	return 1
}

func xpsText(L *lua.LState) int {
	L.Push(lua.LString(checkString(L, 1).String()))
	return 1
}

func xpsEncode(L *lua.LState) int {
	L.Push(lua.LString(checkString(L, 1).Encode()))
	return 1
}

func xpsDecode(L *lua.LState) int {
	s, err := xps.Chunked(L.CheckString(1)).Decode()
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(NewValue(L, s))
	return 1
}

func xpsEq(L *lua.LState) int {
	L.Push(lua.LBool(xps.Equal(checkString(L, 1), checkString(L, 2))))
	return 1
}

func xpsLt(L *lua.LState) int {
	L.Push(lua.LBool(xps.Compare(checkString(L, 1), checkString(L, 2)) < 0))
	return 1
}

func xpsLe(L *lua.LState) int {
	L.Push(lua.LBool(xps.Compare(checkString(L, 1), checkString(L, 2)) <= 0))
	return 1
}
