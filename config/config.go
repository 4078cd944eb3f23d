// Package config loads uzudt settings from defaults, an optional YAML file
// and UZUDT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName      = "uzudt"
	configType      = "yaml"
	envPrefix       = "UZUDT"
	envKeySeparator = "_"
)

// Defaults.
const (
	DefaultSentences = "data/raw/uz_sentences.txt"
	DefaultCorpus    = "data/gold/uzudt_auto.conllu"
	DefaultLogs      = "data/logs"
	DefaultPrompt    = "prompts/uz_prompt.txt"

	DefaultModel  = "gpt-5-mini"
	DefaultAPIURL = "https://api.openai.com/v1"

	DefaultPython = "python"
	DefaultScript = "tools/ud-tools/validate.py"
	DefaultLang   = "uz"
	DefaultLevel  = 2

	DefaultWikiBaseURL  = "https://dumps.wikimedia.org/uzwiki"
	DefaultSnapshot     = "20251101"
	DefaultRawDir       = "data/wiki/raw"
	DefaultMetadata     = "data/wiki/metadata"
	DefaultExtractedDir = "data/wiki/extracted"
	DefaultSentencesDir = "data/wiki/sentences"

	DefaultTargetsFile = "data/wiki/metadata/target_categories.yaml"
	DefaultPerCategory = 20
	DefaultMinTokens   = 5
	DefaultMaxTokens   = 35

	DefaultLogLevel = "info"
)

// DefaultCategories are the sampling targets used when no targets file exists.
var DefaultCategories = []string{
	"ADOLAT SOTSIAL-DEMOKRATIK PARTIYASI",
	"OʻZBEKISTON XALQ BIRLIGI JAMOATCHILIK HARAKATI",
	"OʻZBEKISTON TARIXI",
	"BUYUK IPAK YOʻLI",
	"TURKIY TILLAR",
	"TARIX",
	"BOLALAR ADABIYOTI",
}

// DumpFiles are the dump file suffixes fetched for a snapshot.
var DumpFiles = []string{
	"pages-articles.xml.bz2",
	"page.sql.gz",
	"categorylinks.sql.gz",
}

type Config struct {
	Paths     PathsConfig     `mapstructure:"paths"`
	Annotate  AnnotateConfig  `mapstructure:"annotate"`
	Validator ValidatorConfig `mapstructure:"validator"`
	Wiki      WikiConfig      `mapstructure:"wiki"`
	Sample    SampleConfig    `mapstructure:"sample"`
	Log       LogConfig       `mapstructure:"log"`
}

type PathsConfig struct {
	// Sentences is the annotation input, one sentence per line.
	Sentences string `mapstructure:"sentences"`

	// Corpus is the append-only CoNLL-U output.
	Corpus string `mapstructure:"corpus"`

	// Logs holds the per-sentence diagnostic files of halted runs.
	Logs string `mapstructure:"logs"`

	// Prompt is the system instruction template.
	Prompt string `mapstructure:"prompt"`
}

type AnnotateConfig struct {
	Model  string `mapstructure:"model"`
	APIURL string `mapstructure:"api_url"`
	APIKey string `mapstructure:"api_key"`
}

type ValidatorConfig struct {
	Python string `mapstructure:"python"`
	Script string `mapstructure:"script"`
	Lang   string `mapstructure:"lang"`
	Level  int    `mapstructure:"level"`
}

type WikiConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	Snapshot string `mapstructure:"snapshot"`
	RawDir   string `mapstructure:"raw_dir"`

	// Metadata is a directory for JSON files, or a .db/.sqlite file.
	Metadata string `mapstructure:"metadata"`

	ExtractedDir string   `mapstructure:"extracted_dir"`
	SentencesDir string   `mapstructure:"sentences_dir"`
	Files        []string `mapstructure:"files"`
}

type SampleConfig struct {
	Categories  []string `mapstructure:"categories"`
	TargetsFile string   `mapstructure:"targets_file"`
	PerCategory int      `mapstructure:"per_category"`
	MinTokens   int      `mapstructure:"min_tokens"`
	MaxTokens   int      `mapstructure:"max_tokens"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise uzudt.yaml is searched in the working directory.
// Missing config file is not an error; defaults are used.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	v.AutomaticEnv()

	if err := v.BindEnv("annotate.api_key", envPrefix+"_ANNOTATE_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("paths.sentences", DefaultSentences)
	v.SetDefault("paths.corpus", DefaultCorpus)
	v.SetDefault("paths.logs", DefaultLogs)
	v.SetDefault("paths.prompt", DefaultPrompt)

	v.SetDefault("annotate.model", DefaultModel)
	v.SetDefault("annotate.api_url", DefaultAPIURL)
	v.SetDefault("annotate.api_key", "")

	v.SetDefault("validator.python", DefaultPython)
	v.SetDefault("validator.script", DefaultScript)
	v.SetDefault("validator.lang", DefaultLang)
	v.SetDefault("validator.level", DefaultLevel)

	v.SetDefault("wiki.base_url", DefaultWikiBaseURL)
	v.SetDefault("wiki.snapshot", DefaultSnapshot)
	v.SetDefault("wiki.raw_dir", DefaultRawDir)
	v.SetDefault("wiki.metadata", DefaultMetadata)
	v.SetDefault("wiki.extracted_dir", DefaultExtractedDir)
	v.SetDefault("wiki.sentences_dir", DefaultSentencesDir)
	v.SetDefault("wiki.files", DumpFiles)

	v.SetDefault("sample.categories", DefaultCategories)
	v.SetDefault("sample.targets_file", DefaultTargetsFile)
	v.SetDefault("sample.per_category", DefaultPerCategory)
	v.SetDefault("sample.min_tokens", DefaultMinTokens)
	v.SetDefault("sample.max_tokens", DefaultMaxTokens)

	v.SetDefault("log.level", DefaultLogLevel)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Paths.Sentences == "" || c.Paths.Corpus == "" || c.Paths.Logs == "" {
		return errors.New("paths.sentences, paths.corpus and paths.logs are required")
	}
	if c.Annotate.Model == "" {
		return errors.New("annotate.model is required")
	}
	if c.Validator.Lang == "" {
		return errors.New("validator.lang is required")
	}
	if c.Validator.Level < 1 || c.Validator.Level > 5 {
		return fmt.Errorf("validator.level must be in 1..5, got %d", c.Validator.Level)
	}
	if c.Sample.PerCategory <= 0 {
		return fmt.Errorf("sample.per_category must be positive, got %d", c.Sample.PerCategory)
	}
	if c.Sample.MinTokens > c.Sample.MaxTokens {
		return fmt.Errorf("sample.min_tokens %d greater than sample.max_tokens %d", c.Sample.MinTokens, c.Sample.MaxTokens)
	}
	return nil
}

// DumpName returns the file name of a dump file of the configured snapshot.
func (w WikiConfig) DumpName(suffix string) string {
	return fmt.Sprintf("uzwiki-%s-%s", w.Snapshot, suffix)
}

// DumpURL returns the download URL of a dump file.
func (w WikiConfig) DumpURL(suffix string) string {
	return strings.TrimRight(w.BaseURL, "/") + "/" + w.Snapshot + "/" + w.DumpName(suffix)
}

// DumpPath returns the local path of a dump file.
func (w WikiConfig) DumpPath(suffix string) string {
	return filepath.Join(w.RawDir, w.DumpName(suffix))
}
