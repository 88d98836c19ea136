// Package validation validates flat string input such as route arguments
// and form fields.
//
// Rules are expressed as pipe-separated strings on a map of field names.
//
//	v := validation.Make(map[string]string{
//	    "limit": "10",
//	}, validation.Rules{
//	    "limit": "required|integer|gte:0",
//	})
//
//	if err := v.Validate(); err != nil {
//	    // err is *validation.Errors
//	    // JSON: {"errors": {"limit": ["The limit must be an integer."]}}
//	}
//
// # Available Rules
//
//   - required: present and non-empty
//   - numeric: parseable as float64
//   - integer: parseable as int
//   - boolean: true/false/1/0/yes/no (case-insensitive)
//   - min:n / max:n: length bounds in UTF-8 characters
//   - in:a,b,c: one of the listed values
//   - same:other: equal to data[other]
//   - alpha_num: letters and numbers only
//   - regex:pattern: matches the pattern
//   - gt, gte, lt, lte: numeric comparison against the parameter
//   - nullable, sometimes: skip the remaining rules when the value is empty
//
// Unknown rule names are ignored. Validation stops at the first failing
// rule of each field.
package validation
