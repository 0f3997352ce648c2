package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexibleID — идентификатор, который в JSON может прийти строкой или числом.
// null и отсутствие поля дают пустую строку.
type FlexibleID string

// UnmarshalJSON принимает строку, число или null.
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}

	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return fmt.Errorf("identifier must be a string or a number: %w", err)
	}
	*id = FlexibleID(n.String())
	return nil
}
