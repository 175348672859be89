package eval

import (
	"strings"
	"testing"
)

func TestSchemaValidator(t *testing.T) {
	v := SchemaValidator{}

	t.Run("well-formed record", func(t *testing.T) {
		verdict := v.Validate(`{"problem": "p", "resolution": "r"}`)
		if !verdict.OK {
			t.Errorf("expected pass, got diagnostic %q", verdict.Diagnostic)
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		verdict := v.Validate(`{"problem": "p", "resolution":`)
		if verdict.OK {
			t.Fatal("expected failure")
		}
		if verdict.Diagnostic == "" {
			t.Error("expected the decode error as diagnostic")
		}
	})

	t.Run("array does not match the record shape", func(t *testing.T) {
		verdict := v.Validate(`[1, 2, 3]`)
		if verdict.OK {
			t.Fatal("expected failure")
		}
		if verdict.Diagnostic == "" {
			t.Error("expected the decode error as diagnostic")
		}
	})
}

func TestScriptValidator(t *testing.T) {
	t.Run("predicate accepts", func(t *testing.T) {
		v := NewScriptValidator(`function test(payload) return true end`)
		verdict := v.Validate(`{"x": 1}`)
		if !verdict.OK {
			t.Errorf("expected pass, got diagnostic %q", verdict.Diagnostic)
		}
	})

	t.Run("predicate rejects without diagnostic", func(t *testing.T) {
		v := NewScriptValidator(`function test(payload) return false end`)
		verdict := v.Validate(`{"x": 1}`)
		if verdict.OK {
			t.Fatal("expected failure")
		}
		if verdict.Diagnostic != "" {
			t.Errorf("rejection must carry no diagnostic, got %q", verdict.Diagnostic)
		}
	})

	t.Run("payload is passed verbatim", func(t *testing.T) {
		v := NewScriptValidator(`function test(payload) return payload == '{"x": 1}' end`)
		if verdict := v.Validate(`{"x": 1}`); !verdict.OK {
			t.Errorf("expected pass, got diagnostic %q", verdict.Diagnostic)
		}
	})

	t.Run("runtime error becomes diagnostic", func(t *testing.T) {
		v := NewScriptValidator(`function test(payload) error("boom") end`)
		verdict := v.Validate(`{}`)
		if verdict.OK {
			t.Fatal("expected failure")
		}
		if !strings.Contains(verdict.Diagnostic, "boom") {
			t.Errorf("diagnostic %q does not preserve the raised error", verdict.Diagnostic)
		}
	})

	t.Run("non-boolean return is an error", func(t *testing.T) {
		v := NewScriptValidator(`function test(payload) return "yes" end`)
		verdict := v.Validate(`{}`)
		if verdict.OK {
			t.Fatal("expected failure")
		}
		if !strings.Contains(verdict.Diagnostic, "boolean") {
			t.Errorf("diagnostic = %q", verdict.Diagnostic)
		}
	})

	t.Run("missing test function", func(t *testing.T) {
		v := NewScriptValidator(`x = 1`)
		verdict := v.Validate(`{}`)
		if verdict.OK {
			t.Fatal("expected failure")
		}
		if !strings.Contains(verdict.Diagnostic, "test") {
			t.Errorf("diagnostic = %q", verdict.Diagnostic)
		}
	})

	t.Run("script syntax error becomes diagnostic", func(t *testing.T) {
		v := NewScriptValidator(`function test( return`)
		verdict := v.Validate(`{}`)
		if verdict.OK {
			t.Fatal("expected failure")
		}
		if verdict.Diagnostic == "" {
			t.Error("expected the load error as diagnostic")
		}
	})

	t.Run("no state leaks between calls", func(t *testing.T) {
		// Rejects on any call that observes a global set by a prior call.
		v := NewScriptValidator(`
			function test(payload)
				if seen then return false end
				seen = true
				return true
			end`)
		for i := 0; i < 3; i++ {
			if verdict := v.Validate(`{}`); !verdict.OK {
				t.Fatalf("call %d observed leaked state", i+1)
			}
		}
	})

	t.Run("no host access from the sandbox", func(t *testing.T) {
		v := NewScriptValidator(`function test(payload) return os == nil and io == nil and dofile == nil end`)
		if verdict := v.Validate(`{}`); !verdict.OK {
			t.Errorf("sandbox exposes host libraries (diagnostic %q)", verdict.Diagnostic)
		}
	})
}
