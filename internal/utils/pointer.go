package utils

// Ptr returns a pointer to the passed value.
func Ptr[T any](t T) *T {
	return &t
}

// Get dereferences t, yielding the zero value for nil.
func Get[T any](t *T) T {
	if t == nil {
		var v T
		return v
	}
	return *t
}

// Or dereferences t, yielding def for nil.
func Or[T any](t *T, def T) T {
	if t == nil {
		return def
	}
	return *t
}

// Clone copies the pointee so the result shares no memory with t.
func Clone[T any](t *T) *T {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
