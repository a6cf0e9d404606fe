package models

import (
	"bytes"
	"encoding/json"
)

// Optional is a patch field with three states: unset, cleared and set.
// The zero value is unset.
type Optional[T any] struct {
	set   bool
	value *T
}

func Set[T any](v T) Optional[T] { return Optional[T]{set: true, value: &v} }

func Clear[T any]() Optional[T] { return Optional[T]{set: true} }

func (o Optional[T]) IsSet() bool { return o.set }

func (o Optional[T]) IsCleared() bool { return o.set && o.value == nil }

// Value returns the new value; ok is false for unset and cleared fields.
func (o Optional[T]) Value() (v T, ok bool) {
	if o.value == nil {
		return v, false
	}
	return *o.value, true
}

// ApplyTo writes the field into dst when it is set.
func (o Optional[T]) ApplyTo(dst **T) {
	if !o.set {
		return
	}
	if o.value == nil {
		*dst = nil
		return
	}
	v := *o.value
	*dst = &v
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.value = &v
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.value)
}
