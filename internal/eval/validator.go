package eval

import (
	"encoding/json"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// Validator decides whether a candidate payload has acceptable structure.
// Exactly one strategy is active per run, selected at configuration time.
type Validator interface {
	Validate(payload string) Verdict
}

// SchemaValidator deserializes the payload against the fixed record shape
// {problem, resolution}.
type SchemaValidator struct{}

type payloadRecord struct {
	Problem    string `json:"problem"`
	Resolution string `json:"resolution"`
}

func (SchemaValidator) Validate(payload string) Verdict {
	var rec payloadRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return Verdict{Diagnostic: err.Error()}
	}
	return Verdict{OK: true}
}

// ScriptValidator runs a user-supplied Lua predicate against the raw payload
// text. The script must define a global function test(payload) returning a
// boolean. Every call gets a fresh interpreter with only the base, string,
// table and math libraries loaded, so no state leaks between evaluations and
// the script has no access to the host beyond its argument.
type ScriptValidator struct {
	source string
}

func NewScriptValidator(source string) *ScriptValidator {
	return &ScriptValidator{source: source}
}

func (v *ScriptValidator) Validate(payload string) Verdict {
	L := newSandbox()
	defer L.Close()

	if err := L.DoString(v.source); err != nil {
		return Verdict{Diagnostic: err.Error()}
	}

	fn := L.GetGlobal("test")
	if fn.Type() != lua.LTFunction {
		return Verdict{Diagnostic: `script does not define a "test" function`}
	}

	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(payload)); err != nil {
		return Verdict{Diagnostic: err.Error()}
	}

	ret := L.Get(-1)
	L.Pop(1)

	b, ok := ret.(lua.LBool)
	if !ok {
		return Verdict{Diagnostic: fmt.Sprintf("test returned %s, want boolean", ret.Type())}
	}
	if !bool(b) {
		// Structural rejection, not a runtime error: no diagnostic.
		return Verdict{}
	}
	return Verdict{OK: true}
}

func newSandbox() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage}, // must be loaded first
		{lua.BaseLibName, lua.OpenBase},
		{lua.StringLibName, lua.OpenString},
		{lua.TabLibName, lua.OpenTable},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	// The base and package libraries register file loaders; the sandbox must
	// not touch the host.
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("loadfile", lua.LNil)
	L.SetGlobal("require", lua.LNil)
	return L
}
