package accounts

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/growlog/internal/account"
	"github.com/julianstephens/growlog/internal/cli"
	"github.com/julianstephens/growlog/internal/messages"
)

// confirm is replaced in tests.
var confirm = func(title string) (bool, error) {
	ok := false
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description("Documents move to the archive and disappear from the journal.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(huh.ThemeBase()).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

type AccountDeleteCmd struct {
	PurgePhotos bool `help:"Also delete every photo referenced by the journal."`
	Yes         bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *AccountDeleteCmd) Run(ctx *cli.Context) error {
	uid := ctx.UID()
	if !c.Yes {
		ok, err := confirm(ctx.Bundle.Get(messages.AccountConfirm, uid))
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			ctx.Println("Account deletion cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	res, err := ctx.Archiver.DeleteAccount(ctx.Ctx(), uid, account.Options{PurgePhotos: c.PurgePhotos})
	if err != nil {
		return err
	}
	ctx.Msg(messages.AccountDeleted, res.Archived, uid)
	if c.PurgePhotos {
		ctx.Printf("Purged %d photo(s)\n", res.PhotosPurged)
	}
	return nil
}
