package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Flag is a boolean that also accepts numbers and strings.
//
//	true, false       as is
//	0, 1, 2.5         non-zero is true
//	"true", "0", "f"  strconv.ParseBool, other non-empty strings are true
//	null              false
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("flag: empty value")
	}

	switch data[0] {
	case 'n':
		if string(data) != "null" {
			return fmt.Errorf("flag: invalid literal %q", data)
		}
		*f = false
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("flag: %w", err)
		}
		*f = Flag(b)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("flag: %w", err)
		}
		*f = Flag(parseFlagString(s))
	case '{', '[':
		return fmt.Errorf("flag: cannot use %c as boolean", data[0])
	default:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("flag: invalid number %q", data)
		}
		*f = n != 0
	}
	return nil
}

func parseFlagString(s string) bool {
	s = strings.TrimSpace(s)
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s != ""
}
