package models

import "encoding/json"

// Optional is a field of a partial update: either Unchanged or Set to a value.
// A JSON field that is present (even null) decodes as Set; an absent field
// stays Unchanged.
type Optional[T any] struct {
	value T
	set   bool
}

func Set[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

func Unchanged[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) IsSet() bool { return o.set }

func (o Optional[T]) Get() (T, bool) { return o.value, o.set }

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	var v T
	if string(data) != "null" {
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
	}
	o.value = v
	o.set = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
