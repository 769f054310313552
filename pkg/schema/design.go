package schema

// DesignSystem is the shared palette and typography applied across all
// slides absent a per-slot override.
type DesignSystem struct {
	// Colors ("#RRGGBB").
	BrandBlue   string `toml:"brand_blue" json:"brand_blue"`
	DarkText    string `toml:"dark_text" json:"dark_text"`
	White       string `toml:"white" json:"white"`
	DarkBlue    string `toml:"dark_blue" json:"dark_blue"`
	DarkGrey    string `toml:"dark_grey" json:"dark_grey"`
	AccentGreen string `toml:"accent_green" json:"accent_green"`
	Positive    string `toml:"positive" json:"positive"`
	Negative    string `toml:"negative" json:"negative"`
	LightGray   string `toml:"light_gray" json:"light_gray"`
	DividerBG   string `toml:"divider_bg" json:"divider_bg"` // section divider background

	// Typography.
	PrimaryFont     string  `toml:"primary_font" json:"primary_font"`
	TitleSizePt     float64 `toml:"title_size_pt" json:"title_size_pt"`
	HeaderSizePt    float64 `toml:"header_size_pt" json:"header_size_pt"`
	BodySizePt      float64 `toml:"body_size_pt" json:"body_size_pt"`
	KPINumberSizePt float64 `toml:"kpi_number_size_pt" json:"kpi_number_size_pt"`
	KPILabelSizePt  float64 `toml:"kpi_label_size_pt" json:"kpi_label_size_pt"`
	CaptionSizePt   float64 `toml:"caption_size_pt" json:"caption_size_pt"`
}

// DefaultDesign returns the stock design system used when a template does
// not override it.
func DefaultDesign() DesignSystem {
	return DesignSystem{
		BrandBlue:   "#0065E0",
		DarkText:    "#000000",
		White:       "#FFFFFF",
		DarkBlue:    "#190263",
		DarkGrey:    "#1C2B33",
		AccentGreen: "#00E167",
		Positive:    "#00AA00",
		Negative:    "#CC0000",
		LightGray:   "#D1D5DB",
		DividerBG:   "#0065E0",

		PrimaryFont:     "DM Sans",
		TitleSizePt:     36.0,
		HeaderSizePt:    24.0,
		BodySizePt:      14.0,
		KPINumberSizePt: 48.0,
		KPILabelSizePt:  12.0,
		CaptionSizePt:   9.0,
	}
}

// applyDefaults fills any zero-valued design field with the stock value.
// Called by the loader so partial [design] tables behave predictably.
func (d *DesignSystem) applyDefaults() {
	def := DefaultDesign()
	fillStr := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fillF := func(dst *float64, v float64) {
		if *dst == 0 {
			*dst = v
		}
	}
	fillStr(&d.BrandBlue, def.BrandBlue)
	fillStr(&d.DarkText, def.DarkText)
	fillStr(&d.White, def.White)
	fillStr(&d.DarkBlue, def.DarkBlue)
	fillStr(&d.DarkGrey, def.DarkGrey)
	fillStr(&d.AccentGreen, def.AccentGreen)
	fillStr(&d.Positive, def.Positive)
	fillStr(&d.Negative, def.Negative)
	fillStr(&d.LightGray, def.LightGray)
	fillStr(&d.DividerBG, def.DividerBG)
	fillStr(&d.PrimaryFont, def.PrimaryFont)
	fillF(&d.TitleSizePt, def.TitleSizePt)
	fillF(&d.HeaderSizePt, def.HeaderSizePt)
	fillF(&d.BodySizePt, def.BodySizePt)
	fillF(&d.KPINumberSizePt, def.KPINumberSizePt)
	fillF(&d.KPILabelSizePt, def.KPILabelSizePt)
	fillF(&d.CaptionSizePt, def.CaptionSizePt)
}
