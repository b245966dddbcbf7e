package extract

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Names holds a person field that models emit either as one string or as a list,
// as with co-directors. A list is joined with ", ".
type Names string

func (n *Names) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}

	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*n = Names(strings.Join(list, ", "))
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*n = Names(s)
	return nil
}

func (n Names) String() string {
	return string(n)
}
