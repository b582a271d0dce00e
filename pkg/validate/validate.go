// Package validate provides struct-tag validation for request input.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	alpha_dash          letters, digits, hyphens, underscores
//	numeric             any number
//	integer             whole number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gte=N               number >= N
//	lte=N               number <= N
//	in=a,b,c            value must be one of the listed items
//
// Example:
//
//	type Input struct {
//	    Username string `json:"username" validate:"required,alpha_dash,min=2,max=150"`
//	    Email    string `json:"email"    validate:"required,email"`
//	    Role     string `json:"role"     validate:"required,in=owner,staff,customer"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var (
	emailRE     = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	alphaDashRE = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		rules := strings.Split(tag, ",")

		// in= rules contain commas; re-join the pieces that belong to them.
		rules = mergeParams(rules)

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func applyRule(rule, field string, v reflect.Value) string {
	raw := fmt.Sprintf("%v", v.Interface())
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
	case "email":
		if !emailRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}
	case "alpha_dash":
		if !alphaDashRE.MatchString(raw) {
			return fmt.Sprintf("The %s may only contain letters, numbers, dashes and underscores.", field)
		}
	case "numeric":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Sprintf("The %s must be a number.", field)
		}
	case "integer":
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return fmt.Sprintf("The %s must be an integer.", field)
		}
	case "min":
		if !compare(v, param, func(a, b float64) bool { return a >= b }) {
			return fmt.Sprintf("The %s must be at least %s.", field, param)
		}
	case "max":
		if !compare(v, param, func(a, b float64) bool { return a <= b }) {
			return fmt.Sprintf("The %s may not be greater than %s.", field, param)
		}
	case "gte":
		if !compareNumeric(raw, param, func(a, b float64) bool { return a >= b }) {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}
	case "lte":
		if !compareNumeric(raw, param, func(a, b float64) bool { return a <= b }) {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
		}
	case "in":
		options := strings.Split(param, ",")
		for _, o := range options {
			if raw == o {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	}
	return ""
}

// compare applies op to a string field's length or a numeric field's value.
func compare(v reflect.Value, param string, op func(a, b float64) bool) bool {
	bound, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return true
	}

	switch v.Kind() {
	case reflect.String:
		return op(float64(len([]rune(v.String()))), bound)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return op(float64(v.Int()), bound)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return op(float64(v.Uint()), bound)
	case reflect.Float32, reflect.Float64:
		return op(v.Float(), bound)
	}
	return true
}

func compareNumeric(raw, param string, op func(a, b float64) bool) bool {
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return false
	}
	bound, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return true
	}
	return op(val, bound)
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}

func hasRule(rules []string, name string) bool {
	for _, r := range rules {
		if r == name {
			return true
		}
	}
	return false
}

// mergeParams re-joins comma-split pieces that belong to an in= parameter
// list, so "in=owner,staff,customer" survives the top-level split.
func mergeParams(rules []string) []string {
	merged := make([]string, 0, len(rules))
	for _, r := range rules {
		if len(merged) > 0 && strings.HasPrefix(merged[len(merged)-1], "in=") && !strings.Contains(r, "=") {
			merged[len(merged)-1] += "," + r
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return strings.ToLower(field.Name)
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return strings.ToLower(field.Name)
	}
	return name
}
