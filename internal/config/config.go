package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/username/holidays-picker/internal/calendar"
	"github.com/username/holidays-picker/pkg/dateutil"
)

// Config represents application configuration
type Config struct {
	Picker   PickerConfig   `mapstructure:"picker"`
	Holidays HolidaysConfig `mapstructure:"holidays"`
	State    StateConfig    `mapstructure:"state"`
	Log      LogConfig      `mapstructure:"log"`
}

// PickerConfig represents the calendar window and selection configuration
type PickerConfig struct {
	DaysOfWeek   []string `mapstructure:"days_of_week"`
	MaxSize      int      `mapstructure:"max_size"`
	InitialMonth string   `mapstructure:"initial_month"` // YYYY-MM, empty for the current month
	Today        string   `mapstructure:"today"`         // YYYY-MM-DD override, empty for the system date
	ScrollBuffer int      `mapstructure:"scroll_buffer"`
}

// HolidaysConfig represents holiday sources shown in the calendar
type HolidaysConfig struct {
	Country     string `mapstructure:"country"`      // "us", "gb", "fr", "de" or empty
	PeriodsFile string `mapstructure:"periods_file"` // Holiday periods, one per line
}

// StateConfig represents state storage configuration
type StateConfig struct {
	File string `mapstructure:"file"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("picker.days_of_week", []string{
		"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
	})
	v.SetDefault("picker.max_size", 60)
	v.SetDefault("picker.scroll_buffer", 0)
	v.SetDefault("picker.initial_month", "")
	v.SetDefault("picker.today", "")
	v.SetDefault("holidays.country", "")
	v.SetDefault("holidays.periods_file", "")
	v.SetDefault("state.file", "picker-state.json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Load loads configuration from file. A missing file leaves the defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.holidays-picker")
	}

	// Read environment variables, e.g. HOLIDAYS_PICKER_MAX_SIZE
	v.SetEnvPrefix("holidays")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate Picker config
	if _, err := c.Picker.GetDaysOfWeek(); err != nil {
		return err
	}
	if c.Picker.MaxSize < 1 {
		return fmt.Errorf("picker.max_size must be positive")
	}
	if c.Picker.ScrollBuffer < 0 {
		return fmt.Errorf("picker.scroll_buffer must not be negative")
	}
	if c.Picker.InitialMonth != "" {
		if _, err := dateutil.ParseYearMonth(c.Picker.InitialMonth); err != nil {
			return fmt.Errorf("picker.initial_month: %w", err)
		}
	}
	if c.Picker.Today != "" {
		if _, err := dateutil.ParseDate(c.Picker.Today); err != nil {
			return fmt.Errorf("picker.today: %w", err)
		}
	}

	// Validate Holidays config
	if c.Holidays.Country != "" {
		country := strings.ToLower(c.Holidays.Country)
		supported := false
		for _, code := range calendar.Countries() {
			if code == country {
				supported = true
			}
		}
		if !supported {
			return fmt.Errorf("holidays.country must be one of %s, got '%s'",
				strings.Join(calendar.Countries(), ", "), c.Holidays.Country)
		}
	}

	// Validate State config
	if c.State.File == "" {
		return fmt.Errorf("state.file is required")
	}

	return nil
}

// GetDaysOfWeek returns the configured week columns
func (c *PickerConfig) GetDaysOfWeek() ([]time.Weekday, error) {
	if len(c.DaysOfWeek) == 0 {
		return nil, fmt.Errorf("picker.days_of_week must not be empty")
	}
	days := make([]time.Weekday, 0, len(c.DaysOfWeek))
	seen := make(map[time.Weekday]bool)
	for _, name := range c.DaysOfWeek {
		d, err := dateutil.ParseWeekday(name)
		if err != nil {
			return nil, fmt.Errorf("picker.days_of_week: %w", err)
		}
		if seen[d] {
			return nil, fmt.Errorf("picker.days_of_week: %s listed twice", d)
		}
		seen[d] = true
		days = append(days, d)
	}
	return days, nil
}

// GetInitialMonth returns the first generated month. Default: current month
func (c *PickerConfig) GetInitialMonth() dateutil.YearMonth {
	if c.InitialMonth == "" {
		return c.GetToday().YearMonth()
	}
	month, err := dateutil.ParseYearMonth(c.InitialMonth)
	if err != nil {
		return c.GetToday().YearMonth()
	}
	return month
}

// GetToday returns the reference day for the selection. Default: system date
func (c *PickerConfig) GetToday() dateutil.Date {
	if c.Today == "" {
		return dateutil.Today()
	}
	today, err := dateutil.ParseDate(c.Today)
	if err != nil {
		return dateutil.Today()
	}
	return today
}

// ExpandEnvVars expands environment variables in config paths
func (c *Config) ExpandEnvVars() {
	c.Holidays.PeriodsFile = os.ExpandEnv(c.Holidays.PeriodsFile)
	c.State.File = os.ExpandEnv(c.State.File)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
