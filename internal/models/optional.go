package models

import "encoding/json"

// OptionalString is a string field of a partial update. The zero value means
// "not set" and is left out of the request; a set field is sent either as a
// string (possibly empty) or as an explicit null.
type OptionalString struct {
	Set   bool
	Valid bool
	Value string
}

// String returns a set field carrying v. An empty v is sent as "".
func String(v string) OptionalString {
	return OptionalString{Set: true, Valid: true, Value: v}
}

// NullString returns a set field sent as null, which clears it remotely.
func NullString() OptionalString {
	return OptionalString{Set: true}
}

// IsZero reports whether the field was left unset; used by omitzero.
func (o OptionalString) IsZero() bool {
	return !o.Set
}

// Get returns the value, or "" when unset or null.
func (o OptionalString) Get() string {
	if !o.Valid {
		return ""
	}
	return o.Value
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON is only called for keys present in the input, so a decoded
// field is always Set.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = NullString()
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = String(v)
	return nil
}
