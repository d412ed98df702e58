package models

import (
	"bytes"
	"encoding/json"
)

// FormValue is a raw form field. It decodes from a JSON string or a JSON
// number so clients may send either; validation sees the text as typed.
type FormValue string

// UnmarshalJSON accepts strings, numbers and null
func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = FormValue(n.String())
	return nil
}
