package schema

import (
	"github.com/deckmason/deckmason/pkg/errors"
)

// Validate checks the structural invariants a template must satisfy
// before it can be rendered or used for QA:
//
//   - slide indices are 0..n-1 in declaration order (no gaps, no duplicates)
//   - slot names are unique within each slide
//   - every slot carries a namespaced data key ("<slide>.<field>")
//   - slot, chart, and format kinds are known
//   - positions have positive width and height
//
// The first violation found is returned as a structured error with code
// ErrCodeInvalidSchema (or ErrCodeInvalidDataKey for key problems).
func (t *Template) Validate() error {
	if t.Name == "" {
		return errors.New(errors.ErrCodeInvalidSchema, "template name cannot be empty")
	}
	if t.WidthInches <= 0 || t.HeightInches <= 0 {
		return errors.New(errors.ErrCodeInvalidSchema,
			"template canvas must have positive dimensions, got %.3f x %.3f",
			t.WidthInches, t.HeightInches)
	}

	for i, slide := range t.Slides {
		if slide.Index != i {
			return errors.New(errors.ErrCodeInvalidSchema,
				"slide %q has index %d, expected %d (indices must be 0..n-1 in order)",
				slide.Name, slide.Index, i)
		}
		if err := errors.ValidateSlotName(slide.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSchema, err, "slide %d", i)
		}

		seen := make(map[string]struct{}, len(slide.Slots))
		for j := range slide.Slots {
			slot := &slide.Slots[j]
			if _, dup := seen[slot.Name]; dup {
				return errors.New(errors.ErrCodeInvalidSchema,
					"slide %q: duplicate slot name %q", slide.Name, slot.Name)
			}
			seen[slot.Name] = struct{}{}

			if err := validateSlot(slide.Name, slot); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateSlot(slideName string, slot *Slot) error {
	if err := errors.ValidateSlotName(slot.Name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSchema, err, "slide %q", slideName)
	}
	if !slot.Kind.Known() {
		return errors.New(errors.ErrCodeInvalidSchema,
			"slide %q slot %q: unknown slot kind %q", slideName, slot.Name, slot.Kind)
	}

	// The data key is mandatory even for slots that bind additional keys;
	// it is how tooling addresses the slot's content.
	if slot.DataKey == "" {
		return errors.New(errors.ErrCodeInvalidDataKey,
			"slide %q slot %q: missing data key", slideName, slot.Name)
	}

	// Every declared key must follow the namespace convention.
	for _, key := range slot.Keys() {
		if err := errors.ValidateDataKey(key); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDataKey, err,
				"slide %q slot %q", slideName, slot.Name)
		}
	}

	if slot.Position.Width <= 0 || slot.Position.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidSchema,
			"slide %q slot %q: position must have positive width and height",
			slideName, slot.Name)
	}

	if slot.Format != nil && !slot.Format.Kind.Known() {
		return errors.New(errors.ErrCodeInvalidSchema,
			"slide %q slot %q: unknown format kind %q",
			slideName, slot.Name, slot.Format.Kind)
	}

	switch slot.Kind {
	case SlotChart:
		if slot.ChartKind != "" && !slot.ChartKind.Known() {
			return errors.New(errors.ErrCodeInvalidSchema,
				"slide %q slot %q: unknown chart kind %q",
				slideName, slot.Name, slot.ChartKind)
		}
		for _, s := range slot.Series {
			if err := errors.ValidateHexColor(s.Color); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidSchema, err,
					"slide %q slot %q series %q", slideName, slot.Name, s.Name)
			}
		}
	case SlotTable:
		for _, col := range slot.Columns {
			if col.Header == "" {
				return errors.New(errors.ErrCodeInvalidSchema,
					"slide %q slot %q: column with empty header", slideName, slot.Name)
			}
			if col.DataKey == "" {
				return errors.New(errors.ErrCodeInvalidSchema,
					"slide %q slot %q column %q: missing data key",
					slideName, slot.Name, col.Header)
			}
			if col.Format != nil && !col.Format.Kind.Known() {
				return errors.New(errors.ErrCodeInvalidSchema,
					"slide %q slot %q column %q: unknown format kind %q",
					slideName, slot.Name, col.Header, col.Format.Kind)
			}
		}
	}

	if slot.Format != nil {
		for _, c := range []string{slot.Format.PositiveColor, slot.Format.NegativeColor, slot.Format.NeutralColor} {
			if err := errors.ValidateHexColor(c); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidSchema, err,
					"slide %q slot %q format rule", slideName, slot.Name)
			}
		}
	}

	return nil
}
