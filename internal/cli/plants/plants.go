package plants

import (
	"fmt"
	"time"

	"github.com/julianstephens/growlog/internal/cli"
	"github.com/julianstephens/growlog/internal/constants"
	"github.com/julianstephens/growlog/internal/models"
)

type PlantAddCmd struct {
	Name    string `arg:"" help:"Plant name."`
	Strain  string `short:"s" help:"Strain or cultivar."`
	Stage   string `help:"Growth stage." default:"seedling" enum:"seedling,vegetative,flowering,transplanted,harvested"`
	Started string `help:"Start date (YYYY-MM-DD). Defaults to today."`
}

func (c *PlantAddCmd) Run(ctx *cli.Context) error {
	started, err := cli.ParseDate(c.Started, time.Now())
	if err != nil {
		return err
	}

	plant, err := ctx.Repo.AddPlant(ctx.Ctx(), ctx.UID(), models.Plant{
		Name:      c.Name,
		Strain:    c.Strain,
		Stage:     c.Stage,
		StartedAt: started,
	})
	if err != nil {
		return err
	}

	ctx.Printf("Added plant: %s (ID: %s)\n", plant.DisplayName(), plant.ID)
	return nil
}

type PlantListCmd struct {
	All bool `short:"a" help:"Include ended plants."`
}

func (c *PlantListCmd) Run(ctx *cli.Context) error {
	plants, err := ctx.Repo.GetAllPlants(ctx.Ctx(), ctx.UID())
	if err != nil {
		return err
	}
	if len(plants) == 0 {
		ctx.Println("No plants found")
		return nil
	}

	now := time.Now()
	ctx.Println(cli.HeaderStyle.Render("Plants:"))
	for _, p := range plants {
		if p.Ended && !c.All {
			continue
		}
		line := fmt.Sprintf("  %s  %s - %s, day %d", cli.ShortID(p.ID), p.DisplayName(), p.Stage, p.AgeDays(now))
		if p.Ended {
			line = cli.MutedStyle.Render(line + " (ended " + cli.FormatDate(*p.EndedAt) + ")")
		}
		ctx.Println(line)
	}
	return nil
}

type PlantShowCmd struct {
	ID string `arg:"" help:"Plant ID."`
}

func (c *PlantShowCmd) Run(ctx *cli.Context) error {
	plant, err := ctx.Repo.GetPlant(ctx.Ctx(), ctx.UID(), c.ID)
	if err != nil {
		return err
	}
	logs, err := ctx.Repo.GetLogs(ctx.Ctx(), ctx.UID(), c.ID)
	if err != nil {
		return err
	}

	ctx.Println(cli.HeaderStyle.Render(plant.DisplayName()))
	ctx.Printf("  ID:      %s\n", plant.ID)
	ctx.Printf("  Stage:   %s\n", plant.Stage)
	ctx.Printf("  Started: %s (day %d)\n", cli.FormatDate(plant.StartedAt), plant.AgeDays(time.Now()))
	if plant.EndedAt != nil {
		ctx.Printf("  Ended:   %s\n", cli.FormatDate(*plant.EndedAt))
	}
	ctx.Printf("  Logs:    %d\n", len(logs))
	for _, l := range logs {
		line := fmt.Sprintf("    %s  %-11s", cli.FormatDate(l.Date), l.Type)
		if l.Amount > 0 {
			line += fmt.Sprintf(" %g %s", l.Amount, l.Unit)
		}
		if l.Notes != "" {
			line += "  " + l.Notes
		}
		ctx.Println(line)
	}
	return nil
}

type PlantEndCmd struct {
	ID   string `arg:"" help:"Plant ID."`
	Date string `help:"End date (YYYY-MM-DD). Defaults to today."`
}

func (c *PlantEndCmd) Run(ctx *cli.Context) error {
	plant, err := ctx.Repo.GetPlant(ctx.Ctx(), ctx.UID(), c.ID)
	if err != nil {
		return err
	}
	if plant.Ended {
		return fmt.Errorf("plant %s has already ended", plant.Name)
	}
	at, err := cli.ParseDate(c.Date, time.Now())
	if err != nil {
		return err
	}
	plant.End(at)
	if err := ctx.Repo.UpdatePlant(ctx.Ctx(), ctx.UID(), plant); err != nil {
		return err
	}
	ctx.Printf("Ended plant: %s\n", plant.Name)
	return nil
}

type PlantStageCmd struct {
	ID    string `arg:"" help:"Plant ID."`
	Stage string `arg:"" help:"New growth stage." enum:"seedling,vegetative,flowering,transplanted,harvested"`
}

func (c *PlantStageCmd) Run(ctx *cli.Context) error {
	plant, err := ctx.Repo.GetPlant(ctx.Ctx(), ctx.UID(), c.ID)
	if err != nil {
		return err
	}
	plant.Stage = c.Stage
	if c.Stage == constants.StageHarvested && !plant.Ended {
		plant.End(time.Now())
	}
	if err := ctx.Repo.UpdatePlant(ctx.Ctx(), ctx.UID(), plant); err != nil {
		return err
	}
	ctx.Printf("Plant %s is now %s\n", plant.Name, plant.Stage)
	return nil
}

type PlantDeleteCmd struct {
	ID string `arg:"" help:"Plant ID."`
}

func (c *PlantDeleteCmd) Run(ctx *cli.Context) error {
	plant, err := ctx.Repo.GetPlant(ctx.Ctx(), ctx.UID(), c.ID)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Repo.DeletePlant(ctx.Ctx(), ctx.UID(), c.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted plant %s with its logs and reminders\n", plant.Name)
	return nil
}
