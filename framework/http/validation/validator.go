package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

// ── Types ────────────────────────────────────────────────────────────────────

// Errors holds validation errors keyed by field.
// JSON output: {"errors": {"field": ["msg1", "msg2"]}}
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

func (e *Errors) add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has returns true if there are any errors.
func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *Errors) First(field string) string {
	if msgs, ok := e.Bag[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Error joins the first message of every field, in field order.
func (e *Errors) Error() string {
	fields := lo.Keys(e.Bag)
	slices.Sort(fields)
	return strings.Join(lo.Map(fields, func(f string, _ int) string { return e.First(f) }), " ")
}

// ── Rules ────────────────────────────────────────────────────────────────────

// Rules is a map of field → pipe-separated rule string.
// e.g. Rules{"limit": "required|integer|gte:0"}
type Rules map[string]string

// check inspects one value. It returns a message and false on failure.
type check func(field, value, param string, data map[string]string) (string, bool)

var checks = map[string]check{
	"required": func(field, value, _ string, _ map[string]string) (string, bool) {
		return fmt.Sprintf("The %s field is required.", field), strings.TrimSpace(value) != ""
	},
	"numeric": func(field, value, _ string, _ map[string]string) (string, bool) {
		_, err := strconv.ParseFloat(value, 64)
		return fmt.Sprintf("The %s must be a number.", field), err == nil
	},
	"integer": func(field, value, _ string, _ map[string]string) (string, bool) {
		_, err := strconv.Atoi(value)
		return fmt.Sprintf("The %s must be an integer.", field), err == nil
	},
	"boolean": func(field, value, _ string, _ map[string]string) (string, bool) {
		ok := slices.Contains([]string{"true", "false", "1", "0", "yes", "no"}, strings.ToLower(value))
		return fmt.Sprintf("The %s field must be true or false.", field), ok
	},
	"min": func(field, value, param string, _ map[string]string) (string, bool) {
		n, _ := strconv.Atoi(param)
		return fmt.Sprintf("The %s must be at least %d characters.", field, n), utf8.RuneCountInString(value) >= n
	},
	"max": func(field, value, param string, _ map[string]string) (string, bool) {
		n, _ := strconv.Atoi(param)
		return fmt.Sprintf("The %s may not be greater than %d characters.", field, n), utf8.RuneCountInString(value) <= n
	},
	"in": func(field, value, param string, _ map[string]string) (string, bool) {
		allowed := lo.Map(strings.Split(param, ","), func(s string, _ int) string { return strings.TrimSpace(s) })
		return fmt.Sprintf("The selected %s is invalid.", field), slices.Contains(allowed, value)
	},
	"same": func(field, value, param string, data map[string]string) (string, bool) {
		return fmt.Sprintf("The %s and %s must match.", field, param), data[param] == value
	},
	"alpha_num": func(field, value, _ string, _ map[string]string) (string, bool) {
		return fmt.Sprintf("The %s may only contain letters and numbers.", field), alphaNum.MatchString(value)
	},
	"regex": func(field, value, param string, _ map[string]string) (string, bool) {
		re, err := regexp.Compile(param)
		return fmt.Sprintf("The %s format is invalid.", field), err == nil && re.MatchString(value)
	},
	"gte": compare("greater than or equal to", func(a, b float64) bool { return a >= b }),
	"gt":  compare("greater than", func(a, b float64) bool { return a > b }),
	"lte": compare("less than or equal to", func(a, b float64) bool { return a <= b }),
	"lt":  compare("less than", func(a, b float64) bool { return a < b }),
}

var alphaNum = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

func compare(phrase string, ok func(a, b float64) bool) check {
	return func(field, value, param string, _ map[string]string) (string, bool) {
		a, errA := strconv.ParseFloat(value, 64)
		b, errB := strconv.ParseFloat(param, 64)
		return fmt.Sprintf("The %s must be %s %s.", field, phrase, param), errA == nil && errB == nil && ok(a, b)
	}
}

// ── Validator ────────────────────────────────────────────────────────────────

// Validator validates a flat map of input values.
type Validator struct {
	data   map[string]string
	rules  Rules
	errors *Errors
	ran    bool
}

// Make creates a new Validator.
func Make(data map[string]string, rules Rules) *Validator {
	return &Validator{
		data:   data,
		rules:  rules,
		errors: &Errors{},
	}
}

// Fails runs validation and returns true if any rule fails.
func (v *Validator) Fails() bool {
	v.validate()
	return v.errors.Has()
}

// Passes runs validation and returns true if all rules pass.
func (v *Validator) Passes() bool { return !v.Fails() }

// Errors returns the validation error bag.
func (v *Validator) Errors() *Errors { return v.errors }

// Validate returns the error bag as an error, or nil when every rule passes.
func (v *Validator) Validate() error {
	if v.Fails() {
		return v.errors
	}
	return nil
}

// ── Core validation loop ─────────────────────────────────────────────────────

func (v *Validator) validate() {
	if v.ran {
		return
	}
	v.ran = true

	for field, ruleStr := range v.rules {
		value := v.data[field]

		for _, rule := range strings.Split(ruleStr, "|") {
			rule = strings.TrimSpace(rule)
			if rule == "" {
				continue
			}
			// min:3 → name=min, param=3
			name, param, _ := strings.Cut(rule, ":")

			if name == "nullable" || name == "sometimes" {
				if value == "" {
					break
				}
				continue
			}
			chk, ok := checks[name]
			if !ok {
				continue
			}
			if msg, ok := chk(field, value, param, v.data); !ok {
				v.errors.add(field, msg)
				break // stop on first failure per field
			}
		}
	}
}
