package system

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/julianstephens/growlog/internal/cli"
	"github.com/julianstephens/growlog/internal/notifier"
)

type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

// printSender writes notifications instead of sending them.
type printSender struct {
	w io.Writer
}

func (p printSender) Send(_ context.Context, text string) error {
	_, err := fmt.Fprintln(p.w, "[DryRun] "+text)
	return err
}

// sender is replaced in tests.
var sender = func() notifier.Sender { return notifier.New() }

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	b, err := ctx.Reminders.Classify(ctx.Ctx(), ctx.UID())
	if err != nil {
		return err
	}
	if len(b.Due()) == 0 {
		if c.DryRun {
			ctx.Println("Nothing due.")
		}
		return nil
	}

	var s notifier.Sender = printSender{w: ctx.Out}
	if !c.DryRun {
		s = sender()
	}
	sent, err := notifier.NotifyDue(ctx.Ctx(), s, time.Now(), b)
	if err != nil {
		return fmt.Errorf("sent %d of %d notification(s): %w", sent, len(b.Due()), err)
	}
	return nil
}
