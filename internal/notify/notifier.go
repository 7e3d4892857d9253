// Package notify delivers the end-of-period alert raised when a timer period
// runs to zero.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// Notice describes one completed period.
type Notice struct {
	Mode          domain.SessionMode
	Next          domain.SessionMode
	ActualSeconds int
}

// Title returns the headline shown for the notice.
func (n Notice) Title() string {
	return fmt.Sprintf("%s finished", n.Mode.Label())
}

// Body returns the detail line shown for the notice.
func (n Notice) Body() string {
	d := time.Duration(n.ActualSeconds) * time.Second
	if n.Next == "" {
		return fmt.Sprintf("%s done.", d.Round(time.Second))
	}
	return fmt.Sprintf("%s done. Up next: %s.", d.Round(time.Second), n.Next.Label())
}

// Notifier alerts the user that a period ended.
type Notifier interface {
	Notify(ctx context.Context, n Notice) error
}

// Noop discards every notice.
type Noop struct{}

func (Noop) Notify(context.Context, Notice) error { return nil }

// Bell rings the terminal bell.
type Bell struct {
	W io.Writer
}

// NewBell creates a Bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{W: w}
}

func (b *Bell) Notify(_ context.Context, _ Notice) error {
	_, err := io.WriteString(b.W, "\a")
	return err
}

// Multi fans a notice out to every notifier and joins their failures.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notice) error {
	var errs []error
	for _, nt := range m {
		if nt == nil {
			continue
		}
		if err := nt.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
