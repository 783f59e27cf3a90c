// Package assert holds the few test assertions used across the module.
// Every assertion stops the test on failure.
package assert

import (
	"reflect"
	"testing"

	"github.com/iov-one/tokendrop/errors"
)

// Nil fails unless value is nil, including a typed nil pointer. Errors are
// printed with their stack trace.
func Nil(t testing.TB, value interface{}) {
	t.Helper()
	if !isNil(value) {
		t.Fatalf("want nil, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal fails unless both values are deeply equal.
func Equal(t testing.TB, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal\nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails unless fn panics.
func Panics(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// IsErr fails unless got is want or wraps it. Two nil errors match.
func IsErr(t testing.TB, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if w, ok := want.(interface{ Is(error) bool }); ok && w.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}

// FieldError fails unless err holds exactly one error for the field and
// that error is want. With a nil want it fails if the field has any error.
func FieldError(t testing.TB, err error, field string, want *errors.Error) {
	t.Helper()
	errs := errors.FieldErrors(err, field)
	if want == nil {
		if len(errs) != 0 {
			t.Fatalf("want no %q error, got %d: %v", field, len(errs), errs)
		}
		return
	}
	switch len(errs) {
	case 0:
		t.Fatalf("no %q error in %+v", field, err)
	case 1:
		if !want.Is(errs[0]) {
			t.Fatalf("want %q for %q, got %q", want, field, errs[0])
		}
	default:
		t.Fatalf("want a single %q error, got %d: %v", field, len(errs), errs)
	}
}
