package validation

import "encoding/json"

// Optional carries the tri-state a partial update needs: a field can be
// absent (leave untouched), explicitly null (clear), or set to a value.
// encoding/json only calls UnmarshalJSON for keys present in the document,
// so Set stays false for absent fields.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Present reports whether the field carries an actual value.
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}
