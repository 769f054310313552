// Package builtin ships ready-made templates so a deck can be rendered
// without authoring a TOML schema first.
package builtin

import (
	"github.com/deckmason/deckmason/pkg/schema"
)

// Shared format rules.
var (
	currency   = &schema.FormatRule{Kind: schema.FormatCurrency}
	percentage = &schema.FormatRule{Kind: schema.FormatPercentage}
	variance   = &schema.FormatRule{Kind: schema.FormatVariancePercentage}
	number     = &schema.FormatRule{Kind: schema.FormatNumber}
	integer    = &schema.FormatRule{Kind: schema.FormatInteger}
)

// Shared font specs.
var (
	titleFont   = &schema.Font{Name: "DM Sans", SizePt: 36, Bold: true, Color: "#000000"}
	headerFont  = &schema.Font{Name: "DM Sans", SizePt: 24, Bold: true, Color: "#000000"}
	bodyFont    = &schema.Font{Name: "DM Sans", SizePt: 14, Color: "#000000"}
	kpiFont     = &schema.Font{Name: "DM Sans", SizePt: 48, Bold: true, Color: "#000000"}
	smallKPI    = &schema.Font{Name: "DM Sans", SizePt: 30, Bold: true}
	dividerFont = &schema.Font{Name: "DM Sans", SizePt: 36, Bold: true, Color: "#FFFFFF"}
)

// MonthlyReport returns the canonical monthly commerce report template:
// a 16:9 deck with a KPI cover, section dividers, performance tables,
// trend charts, and closing narrative slides. Data keys follow the
// "<slide>.<field>" convention throughout.
func MonthlyReport() *schema.Template {
	return &schema.Template{
		Name:         "Monthly Commerce Report",
		WidthInches:  13.333,
		HeightInches: 7.5,
		Design:       schema.DefaultDesign(),
		Slides: []schema.Slide{
			slideCover(),       // 0
			slideTOC(),         // 1
			slideDivider(2, "divider_performance", "Performance Overview", "divider.performance_title"),
			slideExecutiveSummary(), // 3
			slideDailyPerformance(), // 4
			slidePromotions(),       // 5
			slideDivider(6, "divider_channels", "Channel Deep Dives", "divider.channels_title"),
			slideChannelMix(), // 7
			slideDivider(8, "divider_outlook", "Outlook", "divider.outlook_title"),
			slideNextSteps(), // 9
		},
	}
}

func slideCover() schema.Slide {
	kpi := func(name, dataKey, varianceKey, label string, left float64, rule *schema.FormatRule) schema.Slot {
		return schema.Slot{
			Name:        name,
			Kind:        schema.SlotKPIValue,
			DataKey:     dataKey,
			VarianceKey: varianceKey,
			Label:       label,
			Position:    schema.Position{Left: left, Top: 3.0, Width: 2.0, Height: 1.5},
			Font:        kpiFont,
			Format:      rule,
		}
	}

	return schema.Slide{
		Index: 0,
		Name:  "cover_kpis",
		Title: "Cover + KPIs",
		Kind:  schema.SlideCover,
		Slots: []schema.Slot{
			{
				Name: "report_title", Kind: schema.SlotText,
				DataKey:  "cover.report_title",
				Position: schema.Position{Left: 0.5, Top: 0.4, Width: 12.0, Height: 0.8},
				Font:     titleFont,
			},
			{
				Name: "report_period", Kind: schema.SlotText,
				DataKey:  "cover.report_period",
				Position: schema.Position{Left: 0.5, Top: 1.2, Width: 8.0, Height: 0.5},
				Font:     &schema.Font{Name: "DM Sans", SizePt: 20, Color: "#1C2B33"},
			},
			kpi("kpi_revenue", "cover.total_revenue", "cover.revenue_vs_target", "Revenue", 0.5, currency),
			kpi("kpi_orders", "cover.total_orders", "cover.orders_vs_target", "Orders", 2.7, number),
			kpi("kpi_aov", "cover.aov", "cover.aov_vs_target", "AOV", 4.9, currency),
			kpi("kpi_new_customers", "cover.new_customers", "cover.nc_vs_target", "New Customers", 7.1, number),
			kpi("kpi_cvr", "cover.cvr", "cover.cvr_vs_target", "CVR", 9.3, percentage),
			kpi("kpi_cos", "cover.cos", "cover.cos_vs_target", "COS", 11.5, percentage),
		},
	}
}

func slideTOC() schema.Slide {
	return schema.Slide{
		Index:    1,
		Name:     "toc",
		Title:    "Table of Contents",
		Kind:     schema.SlideTOC,
		IsStatic: true,
		Slots: []schema.Slot{
			{
				Name: "toc_items", Kind: schema.SlotStatic,
				DataKey:  "toc.items",
				Position: schema.Position{Left: 1.0, Top: 1.5, Width: 11.0, Height: 5.0},
				Font:     bodyFont,
			},
		},
	}
}

func slideDivider(index int, name, title, dataKey string) schema.Slide {
	return schema.Slide{
		Index:    index,
		Name:     name,
		Title:    title,
		Kind:     schema.SlideDivider,
		IsStatic: true,
		Slots: []schema.Slot{
			{
				Name: "section_title", Kind: schema.SlotSectionDivider,
				DataKey:  dataKey,
				Position: schema.Position{Left: 0, Top: 0, Width: 13.333, Height: 7.5},
				Font:     dividerFont,
			},
		},
	}
}

func slideExecutiveSummary() schema.Slide {
	col := func(header, dataKey string, width float64, rule *schema.FormatRule) schema.Column {
		align := "right"
		if rule == nil {
			align = "left"
		}
		return schema.Column{Header: header, DataKey: dataKey, WidthIn: width, Format: rule, Alignment: align}
	}

	return schema.Slide{
		Index: 3,
		Name:  "executive_summary",
		Title: "Executive Summary",
		Kind:  schema.SlideData,
		Slots: []schema.Slot{
			{
				Name: "slide_title", Kind: schema.SlotText,
				DataKey:  "exec.title",
				Position: schema.Position{Left: 0.3, Top: 0.2, Width: 12.0, Height: 0.5},
				Font:     headerFont,
			},
			{
				Name: "performance_table", Kind: schema.SlotTable,
				DataKey:    "exec.performance_table",
				RowDataKey: "exec.performance_rows",
				Position:   schema.Position{Left: 0.3, Top: 0.9, Width: 12.7, Height: 4.5},
				Columns: []schema.Column{
					col("Channel", "channel", 1.8, nil),
					col("Revenue", "revenue", 1.3, currency),
					col("vs Target", "revenue_vs_target", 1.0, variance),
					col("vs LY", "revenue_vs_ly", 1.0, variance),
					col("Orders", "orders", 1.0, integer),
					col("Sessions", "sessions", 1.1, integer),
					col("CVR", "cvr", 0.8, percentage),
					col("AOV", "aov", 0.9, currency),
					col("COS", "cos", 0.8, percentage),
				},
			},
			{
				Name: "narrative", Kind: schema.SlotText,
				DataKey:  "exec.narrative",
				Position: schema.Position{Left: 0.3, Top: 5.6, Width: 12.7, Height: 1.5},
				Font:     bodyFont,
			},
		},
	}
}

func slideDailyPerformance() schema.Slide {
	return schema.Slide{
		Index: 4,
		Name:  "daily_performance",
		Title: "Daily Performance",
		Kind:  schema.SlideData,
		Slots: []schema.Slot{
			{
				Name: "slide_title", Kind: schema.SlotText,
				DataKey:  "daily.title",
				Position: schema.Position{Left: 0.3, Top: 0.2, Width: 12.0, Height: 0.5},
				Font:     headerFont,
			},
			{
				Name: "daily_chart", Kind: schema.SlotChart,
				DataKey:       "daily.chart",
				ChartKind:     schema.ChartColumnClustered,
				CategoriesKey: "daily.dates",
				Position:      schema.Position{Left: 0.3, Top: 0.9, Width: 8.5, Height: 4.5},
				Series: []schema.Series{
					{Name: "Revenue", DataKey: "daily.revenue_actual", Color: "#0065E0"},
					{Name: "Target", DataKey: "daily.revenue_target", Color: "#D1D5DB"},
					{Name: "LY", DataKey: "daily.revenue_ly", Color: "#1C2B33"},
				},
			},
			{
				Name: "campaign_table", Kind: schema.SlotTable,
				DataKey:    "daily.campaign_table",
				RowDataKey: "daily.campaign_rows",
				Position:   schema.Position{Left: 9.0, Top: 0.9, Width: 4.0, Height: 4.5},
				Columns: []schema.Column{
					{Header: "Date", DataKey: "date", WidthIn: 1.0, Alignment: "left"},
					{Header: "Campaign/Activity", DataKey: "activity", WidthIn: 3.0, Alignment: "left"},
				},
			},
			{
				Name: "revenue_gauge", Kind: schema.SlotChart,
				DataKey:   "daily.revenue_gauge",
				ChartKind: schema.ChartDoughnut,
				Position:  schema.Position{Left: 0.5, Top: 5.5, Width: 2.0, Height: 1.5},
				Series: []schema.Series{
					{Name: "Achieved", DataKey: "daily.revenue_achieved_pct", Color: "#0065E0"},
					{Name: "Remaining", DataKey: "daily.revenue_remaining_pct", Color: "#D1D5DB"},
				},
			},
		},
	}
}

func slidePromotions() schema.Slide {
	return schema.Slide{
		Index: 5,
		Name:  "promotion_performance",
		Title: "Promotion Performance",
		Kind:  schema.SlideData,
		Slots: []schema.Slot{
			{
				Name: "slide_title", Kind: schema.SlotText,
				DataKey:  "promo.title",
				Position: schema.Position{Left: 0.3, Top: 0.2, Width: 12.0, Height: 0.5},
				Font:     headerFont,
			},
			{
				Name: "promotion_table", Kind: schema.SlotTable,
				DataKey:    "promo.table",
				RowDataKey: "promo.rows",
				Position:   schema.Position{Left: 0.3, Top: 0.9, Width: 12.7, Height: 6.0},
				Columns: []schema.Column{
					{Header: "Promotion", DataKey: "promotion_name", WidthIn: 4.0, Alignment: "left"},
					{Header: "Channel", DataKey: "channel", WidthIn: 1.5, Alignment: "left"},
					{Header: "Redemptions", DataKey: "redemptions", WidthIn: 1.5, Format: integer, Alignment: "right"},
					{Header: "vs LY", DataKey: "redemptions_vs_ly", WidthIn: 1.0, Format: variance, Alignment: "right"},
					{Header: "Revenue", DataKey: "revenue", WidthIn: 1.5, Format: currency, Alignment: "right"},
					{Header: "Discount", DataKey: "discount_amount", WidthIn: 1.2, Format: currency, Alignment: "right"},
				},
			},
		},
	}
}

func slideChannelMix() schema.Slide {
	return schema.Slide{
		Index: 7,
		Name:  "channel_mix",
		Title: "Channel Mix",
		Kind:  schema.SlideData,
		Slots: []schema.Slot{
			{
				Name: "slide_title", Kind: schema.SlotText,
				DataKey:  "channels.title",
				Position: schema.Position{Left: 0.3, Top: 0.2, Width: 12.0, Height: 0.5},
				Font:     headerFont,
			},
			{
				Name: "kpi_channel_revenue", Kind: schema.SlotKPIValue,
				DataKey:     "channels.top_revenue",
				VarianceKey: "channels.top_revenue_vs_ly",
				Label:       "Top Channel Revenue",
				Position:    schema.Position{Left: 0.5, Top: 1.0, Width: 2.5, Height: 1.2},
				Font:        smallKPI,
				Format:      currency,
			},
			{
				Name: "trend_chart", Kind: schema.SlotChart,
				DataKey:       "channels.trend",
				ChartKind:     schema.ChartLine,
				CategoriesKey: "channels.months",
				Position:      schema.Position{Left: 0.3, Top: 2.5, Width: 8.0, Height: 4.5},
				Series: []schema.Series{
					{Name: "Search", DataKey: "channels.search_revenue", Color: "#0065E0"},
					{Name: "Social", DataKey: "channels.social_revenue", Color: "#00E167"},
					{Name: "Email", DataKey: "channels.email_revenue", Color: "#190263"},
				},
			},
			{
				Name: "mix_donut", Kind: schema.SlotChart,
				DataKey:   "channels.mix",
				ChartKind: schema.ChartDoughnut,
				Position:  schema.Position{Left: 8.8, Top: 2.5, Width: 4.0, Height: 4.0},
				Series: []schema.Series{
					{Name: "Search", DataKey: "channels.search_share", Color: "#0065E0"},
					{Name: "Social", DataKey: "channels.social_share", Color: "#00E167"},
					{Name: "Email", DataKey: "channels.email_share", Color: "#190263"},
					{Name: "Direct", DataKey: "channels.direct_share", Color: "#D1D5DB"},
				},
			},
		},
	}
}

func slideNextSteps() schema.Slide {
	return schema.Slide{
		Index: 9,
		Name:  "next_steps",
		Title: "Next Steps",
		Kind:  schema.SlideData,
		Slots: []schema.Slot{
			{
				Name: "slide_title", Kind: schema.SlotText,
				DataKey:  "next.title",
				Position: schema.Position{Left: 0.3, Top: 0.2, Width: 12.0, Height: 0.5},
				Font:     headerFont,
			},
			{
				Name: "action_items", Kind: schema.SlotText,
				DataKey:  "next.items",
				Position: schema.Position{Left: 0.8, Top: 1.2, Width: 11.7, Height: 5.5},
				Font:     bodyFont,
			},
		},
	}
}
