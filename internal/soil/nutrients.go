package soil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Nutrient is one named micro-nutrient level, e.g. Boron "0.5 ppm".
type Nutrient struct {
	Name  string
	Value string
}

// Nutrients is an ordered name to level mapping. It encodes as a JSON
// object whose keys keep slice order.
type Nutrients []Nutrient

// Get returns the level recorded for name.
func (n Nutrients) Get(name string) (string, bool) {
	for _, v := range n {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

func (n Nutrients) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range n {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(v.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (n *Nutrients) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("micro nutrients: expected object, got %v", tok)
	}

	out := Nutrients{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name := tok.(string)

		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("micro nutrients %q: %w", name, err)
		}
		out = append(out, Nutrient{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*n = out
	return nil
}

// PH is a pH value. It always encodes with a fractional part, so 5 is
// written as 5.0.
type PH float64

func (p PH) MarshalJSON() ([]byte, error) {
	s := strconv.FormatFloat(float64(p), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return []byte(s), nil
}
