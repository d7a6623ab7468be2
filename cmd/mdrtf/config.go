package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"pkt.systems/mdrtf"
)

// configOption is one setting reachable from a flag, the config file and the
// MDRTF_* environment.
type configOption struct {
	Key     string
	Flag    string
	Short   string
	Default any
	Usage   string
}

func configOptions() []configOption {
	def := mdrtf.DefaultConfig()
	return []configOption{
		{Key: "font_size", Flag: "font-size", Short: "s", Default: def.FontSize, Usage: "Body font size in points"},
		{Key: "doc_width", Flag: "doc-width", Short: "w", Default: def.DocWidth, Usage: "Page width in millimeters (40 to 1000)"},
		{Key: "dialect", Flag: "dialect", Default: "default", Usage: "Markdown dialect: default|commonmark|github"},
		{Key: "tables", Flag: "tables", Default: false, Usage: "Enable pipe tables"},
		{Key: "strikethrough", Flag: "strikethrough", Default: false, Usage: "Enable ~~strikethrough~~"},
		{Key: "underline", Flag: "underline", Default: false, Usage: "Render _emphasis_ as underline"},
		{Key: "autolinks", Flag: "autolinks", Default: false, Usage: "Link bare URLs and e-mail addresses"},
		{Key: "task_lists", Flag: "task-lists", Default: false, Usage: "Enable [ ] and [x] task list items"},
		{Key: "hard_breaks", Flag: "hard-breaks", Default: false, Usage: "Render every line break as a hard break"},
		{Key: "named_entities", Flag: "named-entities", Default: false, Usage: "Resolve named entities such as &eacute;"},
		{Key: "verbatim_entities", Flag: "verbatim-entities", Default: false, Usage: "Write all entities as they appear in the source"},
		{Key: "keep_bom", Flag: "keep-bom", Default: false, Usage: "Keep a leading UTF-8 byte order mark"},
		{Key: "keep_front_matter", Flag: "keep-front-matter", Default: false, Usage: "Render YAML/TOML/JSON front matter as text"},
		{Key: "max_output", Flag: "max-output", Default: 0, Usage: "Fail when the RTF output exceeds this many bytes (0 is unlimited)"},
		{Key: "allow_binary", Flag: "allow-binary", Default: false, Usage: "Render input that looks binary"},
		{Key: "debug", Flag: "debug", Short: "d", Default: false, Usage: "Trace render events to stderr"},
	}
}

// registerFlags defines one flag per config option.
func registerFlags(fs *pflag.FlagSet) {
	for _, o := range configOptions() {
		switch d := o.Default.(type) {
		case uint:
			fs.UintP(o.Flag, o.Short, d, o.Usage)
		case int:
			fs.IntP(o.Flag, o.Short, d, o.Usage)
		case bool:
			fs.BoolP(o.Flag, o.Short, d, o.Usage)
		case string:
			fs.StringP(o.Flag, o.Short, d, o.Usage)
		}
	}
}

type settings struct {
	FontSize         uint
	DocWidth         uint
	Dialect          string
	Tables           bool
	Strikethrough    bool
	Underline        bool
	Autolinks        bool
	TaskLists        bool
	HardBreaks       bool
	NamedEntities    bool
	VerbatimEntities bool
	KeepBOM          bool
	KeepFrontMatter  bool
	MaxOutput        int
	AllowBinary      bool
	Debug            bool
	ConfigFile       string
}

// loadSettings resolves settings with precedence: defaults < file < env <
// flags. An explicit configPath must exist; otherwise config.{yaml,toml,json}
// is looked up under $XDG_CONFIG_HOME/mdrtf and ~/.config/mdrtf.
func loadSettings(v *viper.Viper, fs *pflag.FlagSet, configPath string) (settings, error) {
	for _, o := range configOptions() {
		v.SetDefault(o.Key, o.Default)
		if f := fs.Lookup(o.Flag); f != nil {
			if err := v.BindPFlag(o.Key, f); err != nil {
				return settings{}, fmt.Errorf("bind flag %s: %w", o.Flag, err)
			}
		}
	}

	if configPath != "" {
		v.SetConfigFile(normalizePath(configPath))
		if err := v.ReadInConfig(); err != nil {
			return settings{}, fmt.Errorf("read config %s: %w", configPath, err)
		}
	} else {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "mdrtf"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "mdrtf"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return settings{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("mdrtf")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	s := settings{
		FontSize:         v.GetUint("font_size"),
		DocWidth:         v.GetUint("doc_width"),
		Dialect:          strings.ToLower(strings.TrimSpace(v.GetString("dialect"))),
		Tables:           v.GetBool("tables"),
		Strikethrough:    v.GetBool("strikethrough"),
		Underline:        v.GetBool("underline"),
		Autolinks:        v.GetBool("autolinks"),
		TaskLists:        v.GetBool("task_lists"),
		HardBreaks:       v.GetBool("hard_breaks"),
		NamedEntities:    v.GetBool("named_entities"),
		VerbatimEntities: v.GetBool("verbatim_entities"),
		KeepBOM:          v.GetBool("keep_bom"),
		KeepFrontMatter:  v.GetBool("keep_front_matter"),
		MaxOutput:        v.GetInt("max_output"),
		AllowBinary:      v.GetBool("allow_binary"),
		Debug:            v.GetBool("debug"),
		ConfigFile:       v.ConfigFileUsed(),
	}
	if s.MaxOutput < 0 {
		return settings{}, fmt.Errorf("max_output must not be negative, got %d", s.MaxOutput)
	}
	return s, nil
}

// renderConfig turns settings into a library configuration. The dialect
// picks the base parser flags and the individual toggles add to it.
func (s settings) renderConfig() (mdrtf.Config, error) {
	cfg := mdrtf.DefaultConfig()
	cfg.FontSize = s.FontSize
	cfg.DocWidth = s.DocWidth
	switch s.Dialect {
	case "", "default":
		cfg.ParserFlags = mdrtf.DefaultParserFlags
	case "commonmark":
		cfg.ParserFlags = mdrtf.DialectCommonMark
	case "github", "gfm":
		cfg.ParserFlags = mdrtf.DialectGitHub
	default:
		return mdrtf.Config{}, fmt.Errorf("unknown dialect %q (expected default|commonmark|github)", s.Dialect)
	}
	toggles := []struct {
		on   bool
		flag mdrtf.ParserFlags
	}{
		{s.Tables, mdrtf.ParserTables},
		{s.Strikethrough, mdrtf.ParserStrikethrough},
		{s.Underline, mdrtf.ParserUnderline},
		{s.Autolinks, mdrtf.ParserPermissiveAutolinks},
		{s.TaskLists, mdrtf.ParserTaskLists},
		{s.HardBreaks, mdrtf.ParserHardSoftBreaks},
	}
	for _, t := range toggles {
		if t.on {
			cfg.ParserFlags |= t.flag
		}
	}
	if s.NamedEntities {
		cfg.Flags |= mdrtf.FlagNamedEntities
	}
	if s.VerbatimEntities {
		cfg.Flags |= mdrtf.FlagVerbatimEntities
	}
	if s.KeepBOM {
		cfg.Flags &^= mdrtf.FlagSkipUTF8BOM
	}
	if s.Debug {
		cfg.Flags |= mdrtf.FlagDebug
	}
	return cfg, nil
}

func (s settings) renderOptions() []mdrtf.RenderOption {
	return []mdrtf.RenderOption{
		mdrtf.WithMaxOutput(s.MaxOutput),
		mdrtf.WithFrontMatter(s.KeepFrontMatter),
	}
}
