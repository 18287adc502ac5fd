package converter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// StyleConfig is the named parameter set controlling document formatting for
// a markup-to-document run. It is assembled once per run by layering defaults,
// then config-file values, then inline front-matter overrides, and is
// read-only from that point on.
type StyleConfig struct {
	FontName    string  `mapstructure:"font_name" yaml:"font_name" json:"font_name"`
	FontSize    float64 `mapstructure:"font_size" yaml:"font_size" json:"font_size"`
	LineSpacing float64 `mapstructure:"line_spacing" yaml:"line_spacing" json:"line_spacing"`

	HeadingFont          string             `mapstructure:"heading_font" yaml:"heading_font" json:"heading_font"`
	HeadingColors        map[int]string     `mapstructure:"heading_colors" yaml:"heading_colors" json:"heading_colors"`
	HeadingSizes         map[int]float64    `mapstructure:"heading_sizes" yaml:"heading_sizes" json:"heading_sizes"`
	HeadingSpacingBefore map[int]float64    `mapstructure:"heading_spacing_before" yaml:"heading_spacing_before" json:"heading_spacing_before"`
	HeadingSpacingAfter  map[int]float64    `mapstructure:"heading_spacing_after" yaml:"heading_spacing_after" json:"heading_spacing_after"`

	ParagraphSpacingAfter    float64 `mapstructure:"paragraph_spacing_after" yaml:"paragraph_spacing_after" json:"paragraph_spacing_after"`
	ParagraphFirstLineIndent float64 `mapstructure:"paragraph_first_line_indent" yaml:"paragraph_first_line_indent" json:"paragraph_first_line_indent"`

	ListSpacing float64 `mapstructure:"list_spacing" yaml:"list_spacing" json:"list_spacing"`
	ListIndent  float64 `mapstructure:"list_indent" yaml:"list_indent" json:"list_indent"`

	TableStyle   string `mapstructure:"table_style" yaml:"table_style" json:"table_style"`
	TableAutoFit bool   `mapstructure:"table_autofit" yaml:"table_autofit" json:"table_autofit"`

	CodeFont       string  `mapstructure:"code_font" yaml:"code_font" json:"code_font"`
	CodeSize       float64 `mapstructure:"code_size" yaml:"code_size" json:"code_size"`
	CodeBackground string  `mapstructure:"code_background" yaml:"code_background" json:"code_background"`

	UseBuiltinStyles bool              `mapstructure:"use_builtin_styles" yaml:"use_builtin_styles" json:"use_builtin_styles"`
	CustomStyleMap   map[string]string `mapstructure:"custom_style_map" yaml:"custom_style_map" json:"custom_style_map"`

	// Structural heuristics (see parser): line lengths at which repeated rule
	// characters and '=' fences are recognized.
	RuleMinLen      int `mapstructure:"rule_min_len" yaml:"rule_min_len" json:"rule_min_len"`
	HeaderBoxMinLen int `mapstructure:"header_box_min_len" yaml:"header_box_min_len" json:"header_box_min_len"`
}

// DefaultStyleConfig returns the fixed default catalogue.
func DefaultStyleConfig() StyleConfig {
	return StyleConfig{
		FontName:    DefaultFontName,
		FontSize:    DefaultFontSize,
		LineSpacing: DefaultLineSpacing,
		HeadingFont: DefaultHeadingFont,
		HeadingColors: map[int]string{
			1: "#2E75B6", 2: "#C55A11", 3: "#70AD47",
			4: "#7030A0", 5: "#264478", 6: "#E7E6E6",
		},
		HeadingSizes: map[int]float64{
			1: 16, 2: 14, 3: 12, 4: 11, 5: 11, 6: 10,
		},
		HeadingSpacingBefore: map[int]float64{
			1: 12, 2: 10, 3: 8, 4: 6, 5: 6, 6: 4,
		},
		HeadingSpacingAfter: map[int]float64{
			1: 6, 2: 6, 3: 4, 4: 4, 5: 2, 6: 2,
		},
		ParagraphSpacingAfter:    DefaultParagraphSpacing,
		ParagraphFirstLineIndent: DefaultFirstLineIndent,
		ListSpacing:              DefaultListSpacing,
		ListIndent:               DefaultListIndent,
		TableStyle:               DefaultTableStyle,
		TableAutoFit:             DefaultTableAutoFit,
		CodeFont:                 DefaultCodeFont,
		CodeSize:                 DefaultCodeSize,
		CodeBackground:           DefaultCodeBackground,
		UseBuiltinStyles:         DefaultUseBuiltinStyles,
		CustomStyleMap:           map[string]string{},
		RuleMinLen:               DefaultRuleMinLen,
		HeaderBoxMinLen:          DefaultHeaderBoxMinLen,
	}
}

// HeadingColor returns the configured color for a heading level without the
// leading '#', or "" if none is set or the value is malformed.
func (c *StyleConfig) HeadingColor(level int) string {
	hex := strings.TrimPrefix(c.HeadingColors[level], "#")
	if len(hex) != 6 {
		return ""
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return ""
		}
	}
	return strings.ToUpper(hex)
}

// HeadingSize returns the configured size for a heading level, defaulting to
// 12pt when the level has no entry.
func (c *StyleConfig) HeadingSize(level int) float64 {
	if s, ok := c.HeadingSizes[level]; ok {
		return s
	}
	return 12
}

// HeadingSpacing returns the configured before/after spacing for a heading
// level, defaulting to 6pt/3pt.
func (c *StyleConfig) HeadingSpacing(level int) (before, after float64) {
	before, after = 6, 3
	if v, ok := c.HeadingSpacingBefore[level]; ok {
		before = v
	}
	if v, ok := c.HeadingSpacingAfter[level]; ok {
		after = v
	}
	return before, after
}

// StyleOverrides is a sparse overlay decoded from a config file or markup
// front matter. Nil fields leave the base configuration untouched; unknown
// keys in the source document are ignored by the decoder.
type StyleOverrides struct {
	FontName    *string  `mapstructure:"font_name" yaml:"font_name" json:"font_name"`
	FontSize    *float64 `mapstructure:"font_size" yaml:"font_size" json:"font_size"`
	LineSpacing *float64 `mapstructure:"line_spacing" yaml:"line_spacing" json:"line_spacing"`

	HeadingFont          *string         `mapstructure:"heading_font" yaml:"heading_font" json:"heading_font"`
	HeadingColors        map[int]string  `mapstructure:"heading_colors" yaml:"heading_colors" json:"heading_colors"`
	HeadingSizes         map[int]float64 `mapstructure:"heading_sizes" yaml:"heading_sizes" json:"heading_sizes"`
	HeadingSpacingBefore map[int]float64 `mapstructure:"heading_spacing_before" yaml:"heading_spacing_before" json:"heading_spacing_before"`
	HeadingSpacingAfter  map[int]float64 `mapstructure:"heading_spacing_after" yaml:"heading_spacing_after" json:"heading_spacing_after"`

	ParagraphSpacingAfter    *float64 `mapstructure:"paragraph_spacing_after" yaml:"paragraph_spacing_after" json:"paragraph_spacing_after"`
	ParagraphFirstLineIndent *float64 `mapstructure:"paragraph_first_line_indent" yaml:"paragraph_first_line_indent" json:"paragraph_first_line_indent"`

	ListSpacing *float64 `mapstructure:"list_spacing" yaml:"list_spacing" json:"list_spacing"`
	ListIndent  *float64 `mapstructure:"list_indent" yaml:"list_indent" json:"list_indent"`

	TableStyle   *string `mapstructure:"table_style" yaml:"table_style" json:"table_style"`
	TableAutoFit *bool   `mapstructure:"table_autofit" yaml:"table_autofit" json:"table_autofit"`

	CodeFont       *string  `mapstructure:"code_font" yaml:"code_font" json:"code_font"`
	CodeSize       *float64 `mapstructure:"code_size" yaml:"code_size" json:"code_size"`
	CodeBackground *string  `mapstructure:"code_background" yaml:"code_background" json:"code_background"`

	UseBuiltinStyles *bool             `mapstructure:"use_builtin_styles" yaml:"use_builtin_styles" json:"use_builtin_styles"`
	CustomStyleMap   map[string]string `mapstructure:"custom_style_map" yaml:"custom_style_map" json:"custom_style_map"`

	RuleMinLen      *int `mapstructure:"rule_min_len" yaml:"rule_min_len" json:"rule_min_len"`
	HeaderBoxMinLen *int `mapstructure:"header_box_min_len" yaml:"header_box_min_len" json:"header_box_min_len"`
}

// Apply merges the overlay onto cfg and returns the result. Maps replace
// individual keys rather than the whole map so a front-matter block can
// recolor one heading level.
func (o *StyleOverrides) Apply(cfg StyleConfig) StyleConfig {
	if o == nil {
		return cfg
	}
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setB := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setI := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}

	setStr(&cfg.FontName, o.FontName)
	setF(&cfg.FontSize, o.FontSize)
	setF(&cfg.LineSpacing, o.LineSpacing)
	setStr(&cfg.HeadingFont, o.HeadingFont)
	setF(&cfg.ParagraphSpacingAfter, o.ParagraphSpacingAfter)
	setF(&cfg.ParagraphFirstLineIndent, o.ParagraphFirstLineIndent)
	setF(&cfg.ListSpacing, o.ListSpacing)
	setF(&cfg.ListIndent, o.ListIndent)
	setStr(&cfg.TableStyle, o.TableStyle)
	setB(&cfg.TableAutoFit, o.TableAutoFit)
	setStr(&cfg.CodeFont, o.CodeFont)
	setF(&cfg.CodeSize, o.CodeSize)
	setStr(&cfg.CodeBackground, o.CodeBackground)
	setB(&cfg.UseBuiltinStyles, o.UseBuiltinStyles)
	setI(&cfg.RuleMinLen, o.RuleMinLen)
	setI(&cfg.HeaderBoxMinLen, o.HeaderBoxMinLen)

	cfg.HeadingColors = mergeIntMap(cfg.HeadingColors, o.HeadingColors)
	cfg.HeadingSizes = mergeIntMap(cfg.HeadingSizes, o.HeadingSizes)
	cfg.HeadingSpacingBefore = mergeIntMap(cfg.HeadingSpacingBefore, o.HeadingSpacingBefore)
	cfg.HeadingSpacingAfter = mergeIntMap(cfg.HeadingSpacingAfter, o.HeadingSpacingAfter)
	if len(o.CustomStyleMap) > 0 {
		merged := make(map[string]string, len(cfg.CustomStyleMap)+len(o.CustomStyleMap))
		for k, v := range cfg.CustomStyleMap {
			merged[k] = v
		}
		for k, v := range o.CustomStyleMap {
			merged[k] = v
		}
		cfg.CustomStyleMap = merged
	}
	return cfg
}

func mergeIntMap[V any](base, overlay map[int]V) map[int]V {
	if len(overlay) == 0 {
		return base
	}
	merged := make(map[int]V, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}

// WriteSampleConfig writes the default StyleConfig to path as YAML or JSON,
// chosen by the file extension.
func WriteSampleConfig(path string) error {
	cfg := DefaultStyleConfig()
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(cfg, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	default:
		return fmt.Errorf("unsupported config format %q (want .yaml, .yml, or .json)", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("encode sample config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
