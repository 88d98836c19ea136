package validation_test

import (
	"encoding/json"
	"testing"

	"github.com/km-arc/go-rio/framework/http/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

// pass asserts the validator passes for the given data/rules.
func pass(t *testing.T, label string, data map[string]string, rules validation.Rules) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		v := validation.Make(data, rules)
		if v.Fails() {
			t.Errorf("expected PASS, got FAIL, errors: %+v", v.Errors().Bag)
		}
	})
}

// fail asserts the validator fails with an error on the given field.
func fail(t *testing.T, label, field string, data map[string]string, rules validation.Rules) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		v := validation.Make(data, rules)
		if v.Passes() {
			t.Errorf("expected FAIL on field %q, but validator PASSED", field)
		}
		if v.Errors().First(field) == "" {
			t.Errorf("expected error on field %q, but none found. Errors: %+v", field, v.Errors().Bag)
		}
	})
}

// ── required ─────────────────────────────────────────────────────────────────

func TestValidation_Required(t *testing.T) {
	r := validation.Rules{"name": "required"}
	pass(t, "present", map[string]string{"name": "Alice"}, r)
	fail(t, "empty", "name", map[string]string{"name": ""}, r)
	fail(t, "whitespace", "name", map[string]string{"name": "   "}, r)
	fail(t, "missing", "name", map[string]string{}, r)
}

func TestValidation_Required_MessageFormat(t *testing.T) {
	v := validation.Make(map[string]string{}, validation.Rules{"limit": "required"})
	v.Fails()
	if got := v.Errors().First("limit"); got != "The limit field is required." {
		t.Errorf("message: got %q", got)
	}
}

// ── numbers ──────────────────────────────────────────────────────────────────

func TestValidation_Numeric(t *testing.T) {
	r := validation.Rules{"n": "numeric"}
	pass(t, "int", map[string]string{"n": "42"}, r)
	pass(t, "float", map[string]string{"n": "4.2"}, r)
	fail(t, "text", "n", map[string]string{"n": "abc"}, r)
}

func TestValidation_Integer(t *testing.T) {
	r := validation.Rules{"n": "integer"}
	pass(t, "int", map[string]string{"n": "-7"}, r)
	fail(t, "float", "n", map[string]string{"n": "4.2"}, r)
}

func TestValidation_Comparisons(t *testing.T) {
	pass(t, "gte equal", map[string]string{"n": "0"}, validation.Rules{"n": "gte:0"})
	fail(t, "gte below", "n", map[string]string{"n": "-1"}, validation.Rules{"n": "gte:0"})
	pass(t, "gt", map[string]string{"n": "1"}, validation.Rules{"n": "gt:0"})
	fail(t, "gt equal", "n", map[string]string{"n": "0"}, validation.Rules{"n": "gt:0"})
	pass(t, "lte", map[string]string{"n": "10"}, validation.Rules{"n": "lte:10"})
	fail(t, "lt equal", "n", map[string]string{"n": "10"}, validation.Rules{"n": "lt:10"})
	fail(t, "not a number", "n", map[string]string{"n": "x"}, validation.Rules{"n": "gte:0"})
}

// ── strings ──────────────────────────────────────────────────────────────────

func TestValidation_MinMax_Unicode(t *testing.T) {
	pass(t, "min runes", map[string]string{"s": "日本"}, validation.Rules{"s": "min:2"})
	fail(t, "max runes", "s", map[string]string{"s": "日本語"}, validation.Rules{"s": "max:2"})
}

func TestValidation_Boolean(t *testing.T) {
	r := validation.Rules{"b": "boolean"}
	for _, v := range []string{"true", "FALSE", "1", "0", "yes", "No"} {
		pass(t, v, map[string]string{"b": v}, r)
	}
	fail(t, "maybe", "b", map[string]string{"b": "maybe"}, r)
}

func TestValidation_In(t *testing.T) {
	r := validation.Rules{"role": "in:admin, editor"}
	pass(t, "allowed", map[string]string{"role": "editor"}, r)
	fail(t, "other", "role", map[string]string{"role": "guest"}, r)
}

func TestValidation_Same(t *testing.T) {
	r := validation.Rules{"a": "same:b"}
	pass(t, "match", map[string]string{"a": "x", "b": "x"}, r)
	fail(t, "differ", "a", map[string]string{"a": "x", "b": "y"}, r)
}

func TestValidation_AlphaNumAndRegex(t *testing.T) {
	pass(t, "alpha_num", map[string]string{"s": "abc123"}, validation.Rules{"s": "alpha_num"})
	fail(t, "alpha_num dash", "s", map[string]string{"s": "abc-1"}, validation.Rules{"s": "alpha_num"})
	pass(t, "regex", map[string]string{"s": "2024"}, validation.Rules{"s": `regex:^\d{4}$`})
	fail(t, "bad regex", "s", map[string]string{"s": "2024"}, validation.Rules{"s": "regex:("})
}

// ── control rules ────────────────────────────────────────────────────────────

func TestValidation_NullableAndSometimes(t *testing.T) {
	pass(t, "nullable empty", map[string]string{}, validation.Rules{"n": "nullable|integer"})
	fail(t, "nullable set", "n", map[string]string{"n": "x"}, validation.Rules{"n": "nullable|integer"})
	pass(t, "sometimes empty", map[string]string{}, validation.Rules{"n": "sometimes|required"})
}

func TestValidation_UnknownRuleIgnored(t *testing.T) {
	pass(t, "unknown", map[string]string{"n": "1"}, validation.Rules{"n": "integer|shiny"})
}

func TestValidation_StopsAtFirstFailure(t *testing.T) {
	v := validation.Make(map[string]string{"n": ""}, validation.Rules{"n": "required|integer"})
	v.Fails()
	if got := len(v.Errors().Bag["n"]); got != 1 {
		t.Errorf("expected 1 error, got %d", got)
	}
}

// ── Errors ───────────────────────────────────────────────────────────────────

func TestErrors_RepeatedChecksDoNotDuplicate(t *testing.T) {
	v := validation.Make(map[string]string{}, validation.Rules{"n": "required"})
	v.Fails()
	v.Passes()
	if got := len(v.Errors().Bag["n"]); got != 1 {
		t.Errorf("expected 1 error after repeated checks, got %d", got)
	}
}

func TestErrors_Validate(t *testing.T) {
	v := validation.Make(map[string]string{"a": "", "b": "x"}, validation.Rules{
		"a": "required",
		"b": "integer",
	})
	err := v.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	want := "The a field is required. The b must be an integer."
	if err.Error() != want {
		t.Errorf("Error(): got %q want %q", err.Error(), want)
	}

	ok := validation.Make(map[string]string{"a": "1"}, validation.Rules{"a": "integer"})
	if err := ok.Validate(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestErrors_JSONShape(t *testing.T) {
	v := validation.Make(map[string]string{}, validation.Rules{"limit": "required"})
	v.Fails()

	b, err := json.Marshal(v.Errors())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"errors":{"limit":["The limit field is required."]}}`
	if string(b) != want {
		t.Errorf("JSON: got %s want %s", b, want)
	}
}
