package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateDataKey validates a payload data key for safety and convention.
// Keys follow the "<slide>.<field>" convention: a dot separator with
// non-empty segments on both sides.
//
// The validation rules are intentionally conservative:
//   - No empty keys
//   - No control characters or whitespace
//   - Must contain exactly one namespace separator with non-empty parts
//   - Maximum length of 256 characters
func ValidateDataKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidDataKey, "data key cannot be empty")
	}

	if len(key) > 256 {
		return New(ErrCodeInvalidDataKey, "data key too long (max 256 characters)")
	}

	for _, r := range key {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidDataKey, "data key %q contains invalid characters", key)
		}
	}

	i := strings.Index(key, ".")
	if i <= 0 || i >= len(key)-1 {
		return New(ErrCodeInvalidDataKey,
			"data key %q is not namespaced (expected \"<slide>.<field>\")", key)
	}

	return nil
}

// slotNameRegex matches valid slot and slide machine names.
var slotNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateSlotName validates a slot or slide machine name: lowercase
// snake_case starting with a letter.
func ValidateSlotName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidSchema, "name cannot be empty")
	}

	if !slotNameRegex.MatchString(name) {
		return New(ErrCodeInvalidSchema, "invalid name %q (expected lowercase snake_case)", name)
	}

	return nil
}

// hexColorRegex matches "#RRGGBB" hex colors.
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateHexColor validates a "#RRGGBB" color string. Empty strings are
// allowed; they mean "use the design-system default".
func ValidateHexColor(color string) error {
	if color == "" {
		return nil
	}

	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidColor, "invalid color %q (expected #RRGGBB)", color)
	}

	return nil
}

// ValidateOutputPath validates a file path supplied for artifact output.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
