package params

import (
	"bytes"
	"encoding/json"
)

// Opt is a tagged option. The zero value is the unset sentinel.
type Opt[T any] struct {
	value T
	set   bool
}

// Some returns an explicit value.
func Some[T any](v T) Opt[T] {
	return Opt[T]{value: v, set: true}
}

// Unset returns the sentinel meaning "use the program's default".
func Unset[T any]() Opt[T] {
	return Opt[T]{}
}

// Get returns the value and whether it is set.
func (o Opt[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether o carries an explicit value.
func (o Opt[T]) IsSet() bool {
	return o.set
}

// MarshalJSON encodes the sentinel as null.
func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null to the sentinel.
func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Opt[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
