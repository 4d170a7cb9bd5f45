package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	SourceCSV    = "csv"
	SourceSheets = "sheets"

	defaultCSVURL      = "https://docs.google.com/spreadsheets/d/e/2PACX-1vSOzwzMIUeddkwb2KcUgqBQL9rOicE7tyMM_SkxhzCO9BxO51yPm1lqk2iP9YacIsUvWBlt0IXqLAbk/pub?gid=0&single=true&output=csv"
	defaultCreateURL   = "https://docs.google.com/forms/d/e/1FAIpQLScghNhEmaN70rFxExNB0rkZWFrY9oLwMN3Y_6TTqa-ere7Zvw/viewform"
	defaultUpdateBase  = "https://docs.google.com/forms/d/e/1FAIpQLScghNhEmaN70rFxExNB0rkZWFrY9oLwMN3Y_6TTqa-ere7Zvw/viewform?usp=pp_url&entry.1360407807="
	defaultSheetsRange = "Sheet1!A:H"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Port            string
	Source          SourceConfig
	Forms           FormsConfig
	CacheTTL        time.Duration
	FetchTimeout    time.Duration
	RefreshInterval time.Duration
	DoneStatus      string
	Timezone        string
	TriageLimit     int
	Development     bool
}

type SourceConfig struct {
	Kind   string
	CSVURL string
	Sheets SheetsConfig
}

type SheetsConfig struct {
	SpreadsheetID   string
	Range           string
	APIKey          string
	CredentialsFile string
}

type FormsConfig struct {
	CreateURL  string
	UpdateBase string
}

// Load reads configuration from defaults, an optional YAML file on fs and
// the environment (TASKBOARD_ prefix, dots become underscores). PORT is
// honoured as well.
func Load(fs afero.Fs, path string) (Config, error) {
	v := viper.New()
	v.SetFs(fs)

	v.SetDefault("port", "8080")
	v.SetDefault("source.kind", SourceCSV)
	v.SetDefault("source.csv_url", defaultCSVURL)
	v.SetDefault("source.sheets.spreadsheet_id", "")
	v.SetDefault("source.sheets.range", defaultSheetsRange)
	v.SetDefault("source.sheets.api_key", "")
	v.SetDefault("source.sheets.credentials_file", "")
	v.SetDefault("forms.create_url", defaultCreateURL)
	v.SetDefault("forms.update_base", defaultUpdateBase)
	v.SetDefault("cache.ttl", 600*time.Second)
	v.SetDefault("fetch_timeout", 15*time.Second)
	v.SetDefault("refresh_interval", time.Duration(0))
	v.SetDefault("done_status", "Selesai")
	v.SetDefault("timezone", "Local")
	v.SetDefault("triage_limit", 3)
	v.SetDefault("log.development", false)

	v.SetEnvPrefix("TASKBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("port", "TASKBOARD_PORT", "PORT")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{
		Port: v.GetString("port"),
		Source: SourceConfig{
			Kind:   strings.ToLower(v.GetString("source.kind")),
			CSVURL: v.GetString("source.csv_url"),
			Sheets: SheetsConfig{
				SpreadsheetID:   v.GetString("source.sheets.spreadsheet_id"),
				Range:           v.GetString("source.sheets.range"),
				APIKey:          v.GetString("source.sheets.api_key"),
				CredentialsFile: v.GetString("source.sheets.credentials_file"),
			},
		},
		Forms: FormsConfig{
			CreateURL:  v.GetString("forms.create_url"),
			UpdateBase: v.GetString("forms.update_base"),
		},
		CacheTTL:        v.GetDuration("cache.ttl"),
		FetchTimeout:    v.GetDuration("fetch_timeout"),
		RefreshInterval: v.GetDuration("refresh_interval"),
		DoneStatus:      v.GetString("done_status"),
		Timezone:        v.GetString("timezone"),
		TriageLimit:     v.GetInt("triage_limit"),
		Development:     v.GetBool("log.development"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Location resolves the configured timezone used to interpret deadlines.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func (c Config) validate() error {
	switch c.Source.Kind {
	case SourceCSV:
		if c.Source.CSVURL == "" {
			return fmt.Errorf("%w: source.csv_url is empty", ErrInvalid)
		}
	case SourceSheets:
		if c.Source.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("%w: source.sheets.spreadsheet_id is empty", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown source.kind %q", ErrInvalid, c.Source.Kind)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("%w: cache.ttl must be positive", ErrInvalid)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("%w: fetch_timeout must be positive", ErrInvalid)
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("%w: refresh_interval must not be negative", ErrInvalid)
	}
	if c.TriageLimit <= 0 {
		return fmt.Errorf("%w: triage_limit must be positive", ErrInvalid)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalid, c.Timezone, err)
	}
	return nil
}
