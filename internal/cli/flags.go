package cli

import (
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/spf13/pflag"
)

// dateFlag is an optional YYYY-MM-DD flag value.
type dateFlag struct {
	t   time.Time
	set bool
}

var _ pflag.Value = (*dateFlag)(nil)

func (f *dateFlag) String() string {
	if !f.set {
		return ""
	}
	return f.t.Format(domain.DateLayout)
}

func (f *dateFlag) Set(s string) error {
	t, err := domain.ParseDate(s)
	if err != nil {
		return err
	}
	f.t, f.set = t, true
	return nil
}

func (f *dateFlag) Type() string { return "date" }

// or returns the flag's date, or fallback when the flag was not given.
func (f *dateFlag) or(fallback time.Time) time.Time {
	if f.set {
		return f.t
	}
	return fallback
}
