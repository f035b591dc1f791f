package converter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Decode reads JSON or YAML into v. JSON numbers are kept as json.Number so
// integers beyond 2^53 survive untouched.
func Decode(data []byte, v interface{}) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("failed to decode json: %w", err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode yaml: %w", err)
	}
	return nil
}

// DecodeFormColumns reads a list of form columns.
func DecodeFormColumns(data []byte) ([]FormColumn, error) {
	var cols []FormColumn
	if err := Decode(data, &cols); err != nil {
		return nil, err
	}
	return cols, nil
}

// DecodeServerColumns reads a list of server columns.
func DecodeServerColumns(data []byte) ([]ServerColumn, error) {
	var cols []ServerColumn
	if err := Decode(data, &cols); err != nil {
		return nil, err
	}
	return cols, nil
}
