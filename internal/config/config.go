// Package config loads cadence settings from a TOML file and CADENCE_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/alexanderramin/cadence/internal/analytics"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/pelletier/go-toml/v2"
)

// Duration is a time.Duration written as a Go duration string ("25m").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	if parsed < 0 {
		return fmt.Errorf("invalid duration %q: must not be negative", string(text))
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type TimerConfig struct {
	Work            Duration `toml:"work"`
	ShortBreak      Duration `toml:"short_break"`
	LongBreak       Duration `toml:"long_break"`
	CycleLength     int      `toml:"cycle_length"`
	AutoStartBreaks bool     `toml:"auto_start_breaks"`
	AutoStartWork   bool     `toml:"auto_start_work"`
	AutoStartDelay  Duration `toml:"auto_start_delay"`
	TickInterval    Duration `toml:"tick_interval"`
	Reverse         bool     `toml:"reverse"`
}

type ActivityConfig struct {
	// BucketOffsetHours is the UTC offset whose midnight ends a logical day.
	BucketOffsetHours *float64 `toml:"bucket_offset_hours"`
	FocusBands        []int    `toml:"focus_bands"`
	TodayGrace        *bool    `toml:"today_grace"`
}

// IntensityConfig overrides the intensity model's tuning constants. Unset
// fields keep the built-in values.
type IntensityConfig struct {
	LowMultiplier    *float64 `toml:"low_multiplier"`
	MediumMultiplier *float64 `toml:"medium_multiplier"`
	HighMultiplier   *float64 `toml:"high_multiplier"`
	ExpertMultiplier *float64 `toml:"expert_multiplier"`
	RatioWeight      *float64 `toml:"ratio_weight"`
	BaseWeight       *float64 `toml:"base_weight"`
	RecencyBonus     *int     `toml:"recency_bonus"`
	RecentDays       *int     `toml:"recent_days"`
}

type NotifyConfig struct {
	Bell    *bool  `toml:"bell"`
	Desktop bool   `toml:"desktop"`
	AppName string `toml:"app_name"`
}

type LogConfig struct {
	Debug bool   `toml:"debug"`
	File  string `toml:"file"`
}

type Config struct {
	UserID         string `toml:"user_id"`
	DBPath         string `toml:"db_path"`
	PersistRetries *int   `toml:"persist_retries"`

	Timer     TimerConfig     `toml:"timer"`
	Activity  ActivityConfig  `toml:"activity"`
	Intensity IntensityConfig `toml:"intensity"`
	Notify    NotifyConfig    `toml:"notify"`
	Log       LogConfig       `toml:"log"`
}

// DefaultConfig returns a Config with every field set. DBPath is left empty
// and resolved by DefaultDBPath at startup.
func DefaultConfig() Config {
	cfg := Config{}
	cfg.SetDefault()
	return cfg
}

// SetDefault fills every unset field with its default.
func (c *Config) SetDefault() {
	if c.UserID == "" {
		c.UserID = "local"
	}
	if c.PersistRetries == nil {
		c.PersistRetries = ptr(2)
	}

	def := domain.DefaultTimerSettings()
	if c.Timer.Work.Duration == 0 {
		c.Timer.Work.Duration = time.Duration(def.WorkSeconds) * time.Second
	}
	if c.Timer.ShortBreak.Duration == 0 {
		c.Timer.ShortBreak.Duration = time.Duration(def.ShortBreakSeconds) * time.Second
	}
	if c.Timer.LongBreak.Duration == 0 {
		c.Timer.LongBreak.Duration = time.Duration(def.LongBreakSeconds) * time.Second
	}
	if c.Timer.CycleLength == 0 {
		c.Timer.CycleLength = def.CycleLength
	}
	if c.Timer.AutoStartDelay.Duration == 0 {
		c.Timer.AutoStartDelay.Duration = 3 * time.Second
	}
	if c.Timer.TickInterval.Duration == 0 {
		c.Timer.TickInterval.Duration = 250 * time.Millisecond
	}

	opts := analytics.DefaultOptions()
	if c.Activity.BucketOffsetHours == nil {
		c.Activity.BucketOffsetHours = ptr(opts.Offset.Hours())
	}
	if c.Activity.FocusBands == nil {
		c.Activity.FocusBands = opts.FocusBands
	}
	if c.Activity.TodayGrace == nil {
		c.Activity.TodayGrace = ptr(opts.GraceToday)
	}

	if c.Notify.Bell == nil {
		c.Notify.Bell = ptr(true)
	}
	if c.Notify.AppName == "" {
		c.Notify.AppName = "cadence"
	}
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if c.Timer.Work.Duration < time.Second || c.Timer.ShortBreak.Duration < time.Second || c.Timer.LongBreak.Duration < time.Second {
		return errors.New("timer durations must be at least one second")
	}
	if c.Timer.CycleLength < domain.MinCycleLength {
		return fmt.Errorf("timer.cycle_length must be at least %d, got %d", domain.MinCycleLength, c.Timer.CycleLength)
	}
	if off := *c.Activity.BucketOffsetHours; off < -12 || off > 14 {
		return fmt.Errorf("activity.bucket_offset_hours out of range: %v", off)
	}
	if !slices.IsSorted(c.Activity.FocusBands) {
		return errors.New("activity.focus_bands must be ascending")
	}
	if *c.PersistRetries < 0 {
		return errors.New("persist_retries must not be negative")
	}
	return nil
}

// TimerSettings converts the [timer] section to engine settings.
func (c Config) TimerSettings() domain.TimerSettings {
	return domain.TimerSettings{
		WorkSeconds:       int(c.Timer.Work.Seconds()),
		ShortBreakSeconds: int(c.Timer.ShortBreak.Seconds()),
		LongBreakSeconds:  int(c.Timer.LongBreak.Seconds()),
		CycleLength:       c.Timer.CycleLength,
		AutoStartBreaks:   c.Timer.AutoStartBreaks,
		AutoStartWork:     c.Timer.AutoStartWork,
	}
}

// AnalyticsOptions converts the [activity] and [intensity] sections.
func (c Config) AnalyticsOptions() analytics.Options {
	opts := analytics.DefaultOptions()
	opts.Offset = time.Duration(*c.Activity.BucketOffsetHours * float64(time.Hour))
	opts.FocusBands = c.Activity.FocusBands
	opts.GraceToday = *c.Activity.TodayGrace

	in := c.Intensity
	t := &opts.Tuning
	setMultiplier(t, domain.TierLow, in.LowMultiplier)
	setMultiplier(t, domain.TierMedium, in.MediumMultiplier)
	setMultiplier(t, domain.TierHigh, in.HighMultiplier)
	setMultiplier(t, domain.TierExpert, in.ExpertMultiplier)
	if in.RatioWeight != nil {
		t.RatioWeight = *in.RatioWeight
	}
	if in.BaseWeight != nil {
		t.BaseWeight = *in.BaseWeight
	}
	if in.RecencyBonus != nil {
		t.RecencyBonus = *in.RecencyBonus
	}
	if in.RecentDays != nil {
		t.RecentDays = *in.RecentDays
	}
	return opts
}

func setMultiplier(t *analytics.IntensityTuning, tier domain.ActivityTier, v *float64) {
	if v != nil {
		t.TierMultipliers[tier] = *v
	}
}

// Load reads the TOML file at path, applies defaults and then CADENCE_*
// environment overrides. A missing file yields the defaults.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}
	cfg.SetDefault()
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromBytes parses a TOML document and applies defaults. The
// environment is not consulted.
func LoadFromBytes(data []byte) (Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	cfg.SetDefault()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Path returns the config file location: CADENCE_CONFIG, or
// ~/.cadence/config.toml.
func Path() (string, error) {
	if v := os.Getenv("CADENCE_CONFIG"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".cadence", "config.toml"), nil
}

// DefaultDBPath returns ~/.cadence/cadence.db.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".cadence", "cadence.db"), nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CADENCE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("CADENCE_USER"); v != "" {
		cfg.UserID = v
	}
	if v := os.Getenv("CADENCE_DEBUG"); v != "" {
		cfg.Log.Debug, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CADENCE_DEBUG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("CADENCE_CYCLE_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= domain.MinCycleLength {
			cfg.Timer.CycleLength = n
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}

// Encode renders the effective configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
