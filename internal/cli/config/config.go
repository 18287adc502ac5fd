// Package config assembles the conversion Options from defaults, an optional
// configuration file, environment variables, and command-line flags, in that
// precedence order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/FSSCoding/fss-parse-word/pkg/converter"
	"github.com/FSSCoding/fss-parse-word/pkg/converter/safety"
)

const (
	// EnvPrefix scopes environment overrides, e.g. FSSWORD_STYLE_FONT_NAME.
	EnvPrefix = "FSSWORD"
	// DefaultConfigName is the base name searched for config files.
	DefaultConfigName = "fss-parse-word"
)

// LoadAndValidate merges all configuration sources into a validated Options
// value and builds the application logger. Source and target paths are set by
// the caller from positional arguments afterwards.
func LoadAndValidate(cfgFile string, verbose bool, flags *pflag.FlagSet) (converter.Options, *slog.Logger, error) {
	opts := converter.NewDefaultOptions()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return opts, logger, fmt.Errorf("resolve home directory: %w", err)
		}
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(home, ".config", DefaultConfigName))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			logger.Debug("No configuration file found, using defaults")
		} else {
			return opts, logger, fmt.Errorf("read config file: %w", err)
		}
	} else {
		logger.Debug("Using configuration file", slog.String("path", v.ConfigFileUsed()))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := bindFlags(v, flags); err != nil {
		return opts, logger, err
	}

	// Weak typing lets the heading maps decode their stringified integer keys.
	weakDecode := func(dc *mapstructure.DecoderConfig) { dc.WeaklyTypedInput = true }
	if err := v.Unmarshal(&opts, weakDecode); err != nil {
		return opts, logger, fmt.Errorf("decode configuration: %w", err)
	}

	applyFlagPolicy(&opts, flags)
	opts.Logger = handler

	return opts, logger, nil
}

// setDefaults seeds viper with the library defaults so a partial config file
// only overrides what it names.
func setDefaults(v *viper.Viper) {
	v.SetDefault("direction", string(converter.DirectionAuto))
	v.SetDefault("verify_output", false)
	v.SetDefault("default_encoding", "")

	style := converter.DefaultStyleConfig()
	v.SetDefault("style.font_name", style.FontName)
	v.SetDefault("style.font_size", style.FontSize)
	v.SetDefault("style.line_spacing", style.LineSpacing)
	v.SetDefault("style.heading_font", style.HeadingFont)
	v.SetDefault("style.heading_colors", style.HeadingColors)
	v.SetDefault("style.heading_sizes", style.HeadingSizes)
	v.SetDefault("style.heading_spacing_before", style.HeadingSpacingBefore)
	v.SetDefault("style.heading_spacing_after", style.HeadingSpacingAfter)
	v.SetDefault("style.paragraph_spacing_after", style.ParagraphSpacingAfter)
	v.SetDefault("style.paragraph_first_line_indent", style.ParagraphFirstLineIndent)
	v.SetDefault("style.list_spacing", style.ListSpacing)
	v.SetDefault("style.list_indent", style.ListIndent)
	v.SetDefault("style.table_style", style.TableStyle)
	v.SetDefault("style.table_autofit", style.TableAutoFit)
	v.SetDefault("style.code_font", style.CodeFont)
	v.SetDefault("style.code_size", style.CodeSize)
	v.SetDefault("style.code_background", style.CodeBackground)
	v.SetDefault("style.use_builtin_styles", style.UseBuiltinStyles)
	v.SetDefault("style.rule_min_len", style.RuleMinLen)
	v.SetDefault("style.header_box_min_len", style.HeaderBoxMinLen)

	policy := converter.DefaultSafetyPolicy()
	v.SetDefault("safety.require_confirmation", policy.RequireConfirmation)
	v.SetDefault("safety.create_backup", policy.CreateBackup)
	v.SetDefault("safety.check_hash", policy.ValidateHash)
	v.SetDefault("safety.prevent_overwrite", policy.PreventOverwrite)
	v.SetDefault("safety.backup_suffix", policy.BackupSuffix)
}

// bindFlags maps command-line flags onto their viper keys.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"direction":        "direction",
		"template":         "template",
		"verify":           "verify_output",
		"default-encoding": "default_encoding",
	}
	for flagName, key := range bindings {
		flag := flags.Lookup(flagName)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag --%s: %w", flagName, err)
		}
	}
	return nil
}

// applyFlagPolicy translates the negative safety flags, which have no config
// counterpart of the same shape, onto the policy.
func applyFlagPolicy(opts *converter.Options, flags *pflag.FlagSet) {
	if flags == nil {
		return
	}
	if force, err := flags.GetBool("force"); err == nil && force {
		opts.Prompter = safety.AssumeYes{}
	}
	if noBackup, err := flags.GetBool("no-backup"); err == nil && noBackup {
		opts.Safety.CreateBackup = false
	}
	if noHash, err := flags.GetBool("no-hash-check"); err == nil && noHash {
		opts.Safety.ValidateHash = false
	}
}
