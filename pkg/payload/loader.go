package payload

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/deckmason/deckmason/pkg/errors"
)

// Parse decodes a YAML (or JSON, which YAML subsumes) document into a
// Payload. The document must be a flat mapping from data keys to scalars,
// lists of scalars, or lists of flat mappings (table rows). Anything
// deeper is rejected with an INVALID_PAYLOAD error.
func Parse(data []byte) (Payload, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "decode payload")
	}

	p := make(Payload, len(raw))
	for key, rv := range raw {
		v, err := convert(key, rv)
		if err != nil {
			return nil, err
		}
		p[key] = v
	}
	return p, nil
}

// Load reads and parses a payload file.
func Load(path string) (Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "payload file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read payload file %s", path)
	}
	return Parse(data)
}

func convert(key string, rv any) (Value, error) {
	switch x := rv.(type) {
	case nil:
		return Absent(), nil
	case bool:
		// Booleans have no formatting rule; carry them as text.
		if x {
			return String("true"), nil
		}
		return String("false"), nil
	case int:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case float64:
		return Number(x), nil
	case string:
		return String(x), nil
	case []any:
		return convertList(key, x)
	default:
		return Value{}, errors.New(errors.ErrCodeInvalidPayload,
			"key %q: unsupported value type %T", key, rv)
	}
}

func convertList(key string, xs []any) (Value, error) {
	if len(xs) == 0 {
		return List(nil), nil
	}

	// A list of mappings is table-row data; anything else must be scalars.
	if _, ok := xs[0].(map[string]any); ok {
		rows := make([]Row, 0, len(xs))
		for i, item := range xs {
			m, ok := item.(map[string]any)
			if !ok {
				return Value{}, errors.New(errors.ErrCodeInvalidPayload,
					"key %q: row %d is not a mapping", key, i)
			}
			row := make(Row, len(m))
			for ck, cv := range m {
				v, err := convert(key+"["+ck+"]", cv)
				if err != nil {
					return Value{}, err
				}
				if v.Kind() == KindList || v.Kind() == KindRows {
					return Value{}, errors.New(errors.ErrCodeInvalidPayload,
						"key %q: row %d column %q must be a scalar", key, i, ck)
				}
				row[ck] = v
			}
			rows = append(rows, row)
		}
		return Rows(rows), nil
	}

	elems := make([]Value, 0, len(xs))
	for i, item := range xs {
		v, err := convert(key, item)
		if err != nil {
			return Value{}, err
		}
		if v.Kind() == KindList || v.Kind() == KindRows {
			return Value{}, errors.New(errors.ErrCodeInvalidPayload,
				"key %q: element %d must be a scalar", key, i)
		}
		elems = append(elems, v)
	}
	return List(elems), nil
}
