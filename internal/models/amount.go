package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
)

// Amount is a shopping quantity. It is either numeric (reducible) or
// free text such as "etwas" (not reducible).
type Amount struct {
	value   float64
	text    string
	numeric bool
}

// NumericAmount returns a reducible quantity
func NumericAmount(v float64) Amount {
	return Amount{value: v, numeric: true}
}

// TextAmount returns a free-text quantity
func TextAmount(s string) Amount {
	return Amount{text: s}
}

// IsNumeric reports whether the amount can take part in arithmetic
func (a Amount) IsNumeric() bool {
	return a.numeric
}

// Float returns the numeric value and whether the amount is numeric
func (a Amount) Float() (float64, bool) {
	return a.value, a.numeric
}

// Text returns the free-text quantity, empty for numeric amounts
func (a Amount) Text() string {
	return a.text
}

// String formats the amount the way the list displays it: numbers
// without trailing zeros, text unchanged.
func (a Amount) String() string {
	if a.numeric {
		return strconv.FormatFloat(a.value, 'f', -1, 64)
	}
	return a.text
}

// MarshalJSON encodes numeric amounts as JSON numbers and text amounts as strings
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.numeric {
		if math.IsNaN(a.value) || math.IsInf(a.value, 0) {
			return nil, errors.New("amount is not a finite number")
		}
		return []byte(strconv.FormatFloat(a.value, 'f', -1, 64)), nil
	}
	return json.Marshal(a.text)
}

// UnmarshalJSON accepts either a JSON number or a JSON string
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = TextAmount(s)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return errors.New("amount must be a number or a string")
	}
	*a = NumericAmount(f)
	return nil
}

// Equal reports whether two amounts hold the same kind and value
func (a Amount) Equal(b Amount) bool {
	if a.numeric != b.numeric {
		return false
	}
	if a.numeric {
		return a.value == b.value
	}
	return a.text == b.text
}
