package sessions

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/growlog/internal/cli"
	"github.com/julianstephens/growlog/internal/models"
)

type SessionAddCmd struct {
	Strain string  `arg:"" help:"Strain consumed."`
	Method string  `short:"m" help:"Consumption method." default:"joint" enum:"joint,pipe,bong,vaporizer,edible,other"`
	Amount float64 `help:"Amount consumed."`
	Unit   string  `help:"Unit for the amount." default:"g"`
	Rating int     `short:"r" help:"Rating from 0 to 5." default:"0"`
	Notes  string  `short:"n" help:"Notes."`
	Date   string  `help:"Date (YYYY-MM-DD). Defaults to now."`
}

func (c *SessionAddCmd) Validate() error {
	if c.Rating < 0 || c.Rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5")
	}
	return nil
}

func (c *SessionAddCmd) Run(ctx *cli.Context) error {
	date, err := cli.ParseDate(c.Date, time.Now())
	if err != nil {
		return err
	}
	s, err := ctx.Repo.AddSession(ctx.Ctx(), ctx.UID(), models.Session{
		Strain: c.Strain,
		Method: models.SessionMethod(c.Method),
		Amount: c.Amount,
		Unit:   c.Unit,
		Rating: c.Rating,
		Notes:  c.Notes,
		Date:   date,
	})
	if err != nil {
		return err
	}
	ctx.Printf("Added session: %s via %s (ID: %s)\n", s.Strain, s.Method, s.ID)
	return nil
}

type SessionListCmd struct{}

func (c *SessionListCmd) Run(ctx *cli.Context) error {
	sessions, err := ctx.Repo.GetAllSessions(ctx.Ctx(), ctx.UID())
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		ctx.Println("No sessions found")
		return nil
	}

	ctx.Println(cli.HeaderStyle.Render("Sessions:"))
	for _, s := range sessions {
		line := fmt.Sprintf("  %s  %s  %s via %s", cli.ShortID(s.ID), cli.FormatDate(s.Date), s.Strain, s.Method)
		if s.Amount > 0 {
			line += fmt.Sprintf(", %g %s", s.Amount, s.Unit)
		}
		if s.Rating > 0 {
			line += " " + strings.Repeat("*", s.Rating)
		}
		ctx.Println(line)
	}
	return nil
}

type SessionDeleteCmd struct {
	ID string `arg:"" help:"Session ID."`
}

func (c *SessionDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Repo.DeleteSession(ctx.Ctx(), ctx.UID(), c.ID); err != nil {
		return err
	}
	ctx.Println("Session deleted")
	return nil
}
