package schema

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/deckmason/deckmason/pkg/errors"
)

// Parse decodes a TOML template definition and validates it. Partial
// [design] tables are completed with the stock design system.
func Parse(data []byte) (*Template, error) {
	var t Template
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSchema, err, "decode template")
	}

	t.Design.applyDefaults()

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Load reads and parses a TOML template file.
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "template file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read template file %s", path)
	}
	return Parse(data)
}

// Encode serializes a template back to TOML, suitable for review and
// version control. The inverse of Parse up to field ordering.
func (t *Template) Encode() ([]byte, error) {
	data, err := toml.Marshal(t)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode template %q", t.Name)
	}
	return data, nil
}
