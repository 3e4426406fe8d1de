package logs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/growlog/internal/batchlog"
	"github.com/julianstephens/growlog/internal/cli"
	"github.com/julianstephens/growlog/internal/logger"
	"github.com/julianstephens/growlog/internal/messages"
	"github.com/julianstephens/growlog/internal/models"
	"github.com/julianstephens/growlog/internal/storage"
	"github.com/julianstephens/growlog/internal/validation"
)

// LogAddCmd records one log entry for each selected plant.
type LogAddCmd struct {
	Type   string   `arg:"" help:"Log type (watering|feeding|training|environment|transplant|harvest|note|end)."`
	Plants []string `arg:"" help:"Plant IDs."`

	Date       string            `help:"Date (YYYY-MM-DD). Defaults to now."`
	Note       string            `short:"n" help:"Note copied to every plant."`
	PlantNote  map[string]string `help:"Per-plant notes as id=note. Replaces the shared note." mapsep:";"`
	Amount     string            `short:"a" help:"Amount for every plant."`
	PlantAmt   map[string]string `name:"plant-amount" help:"Per-plant amounts as id=amount." mapsep:";"`
	Unit       string            `short:"u" help:"Unit. Defaults from preferences."`
	Method     string            `help:"Training or watering method."`
	NPK        string            `help:"Nutrient N-P-K ratio."`
	Temp       string            `help:"Temperature."`
	Humidity   string            `help:"Relative humidity."`
	PH         string            `name:"ph" help:"pH."`
	Light      string            `help:"Light intensity."`
	LightHours string            `help:"Light schedule, e.g. 18/6."`
	Photo      string            `type:"existingfile" help:"Photo to attach to every entry."`
}

func (c *LogAddCmd) form(now time.Time) (batchlog.Form, error) {
	typ, err := models.ParseLogType(c.Type)
	if err != nil {
		return batchlog.Form{}, validation.Errors{"type": err.Error()}
	}
	date, err := cli.ParseDate(c.Date, now)
	if err != nil {
		return batchlog.Form{}, validation.Errors{"date": err.Error()}
	}

	f := batchlog.Form{
		Type:           typ,
		Date:           date,
		GlobalNote:     c.Note,
		CustomizeNotes: len(c.PlantNote) > 0,
		PlantIDs:       c.Plants,
		PerPlant:       make(map[string]batchlog.PlantInput),
		Common: batchlog.Common{
			Amount:        c.Amount,
			Unit:          c.Unit,
			Method:        c.Method,
			NPK:           c.NPK,
			Temperature:   c.Temp,
			Humidity:      c.Humidity,
			PH:            c.PH,
			Light:         c.Light,
			LightSchedule: c.LightHours,
		},
	}
	for id, note := range c.PlantNote {
		in := f.PerPlant[id]
		in.Note = note
		f.PerPlant[id] = in
	}
	for id, amt := range c.PlantAmt {
		in := f.PerPlant[id]
		in.Amount = amt
		f.PerPlant[id] = in
	}
	return f, nil
}

func (c *LogAddCmd) Run(ctx *cli.Context) error {
	f, err := c.form(time.Now())
	if err != nil {
		return report(ctx, err)
	}
	// A rejected form must not upload its photo.
	if err := f.Validate(); err != nil {
		return report(ctx, err)
	}

	var photoPath string
	if c.Photo != "" {
		path, url, err := uploadPhoto(ctx, c.Photo)
		if err != nil {
			return err
		}
		photoPath, f.PhotoURL = path, url
	}

	res, err := ctx.Writer.Submit(ctx.Ctx(), ctx.UID(), f)
	if err != nil {
		if photoPath != "" {
			if derr := ctx.Photos.Delete(ctx.Ctx(), photoPath); derr != nil {
				logger.Warn("Failed to remove unused photo", "path", photoPath, "error", derr)
			}
		}
		return report(ctx, err)
	}

	ctx.Msg(messages.LogsSaved, len(res.Logs), f.Type)
	for _, p := range res.Plants {
		if p.Ended {
			ctx.Printf("  %s ended (%s)\n", p.Name, p.Stage)
		} else {
			ctx.Printf("  %s is now %s\n", p.Name, p.Stage)
		}
	}
	return nil
}

// report prints field errors before returning err.
func report(ctx *cli.Context, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		ctx.Print(verrs.FormatReport())
	}
	return err
}

// uploadPhoto stores the file and returns its object path and download URL.
func uploadPhoto(ctx *cli.Context, path string) (string, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to open photo: %w", err)
	}
	defer f.Close()

	dst := strings.Join([]string{
		storage.UserPath(ctx.UID()).String(), "photos",
		uuid.New().String() + strings.ToLower(filepath.Ext(path)),
	}, "/")
	url, err := ctx.Photos.Put(ctx.Ctx(), dst, f)
	if err != nil {
		return "", "", err
	}
	return dst, url, nil
}

type LogListCmd struct {
	PlantID string `arg:"" help:"Plant ID."`
	Limit   int    `short:"l" help:"Show at most this many entries." default:"20"`
}

func (c *LogListCmd) Run(ctx *cli.Context) error {
	plant, err := ctx.Repo.GetPlant(ctx.Ctx(), ctx.UID(), c.PlantID)
	if err != nil {
		return err
	}
	entries, err := ctx.Repo.GetLogs(ctx.Ctx(), ctx.UID(), c.PlantID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		ctx.Printf("No logs for %s\n", plant.Name)
		return nil
	}

	ctx.Println(cli.HeaderStyle.Render("Logs for " + plant.DisplayName() + ":"))
	for i, l := range entries {
		if c.Limit > 0 && i >= c.Limit {
			ctx.Println(cli.MutedStyle.Render(fmt.Sprintf("  ... %d more", len(entries)-i)))
			break
		}
		ctx.Println("  " + describe(l))
	}
	return nil
}

func describe(l models.LogEntry) string {
	parts := []string{cli.FormatDate(l.Date), string(l.Type)}
	if l.Amount > 0 {
		parts = append(parts, fmt.Sprintf("%g %s", l.Amount, l.Unit))
	}
	if l.Method != "" {
		parts = append(parts, l.Method)
	}
	if l.NPK != "" {
		parts = append(parts, "NPK "+l.NPK)
	}
	if l.Temperature != 0 || l.Humidity != 0 {
		parts = append(parts, fmt.Sprintf("%g°/%g%%", l.Temperature, l.Humidity))
	}
	if l.PH != 0 {
		parts = append(parts, fmt.Sprintf("pH %g", l.PH))
	}
	if l.LightSchedule != "" {
		parts = append(parts, l.LightSchedule)
	}
	if l.Notes != "" {
		parts = append(parts, l.Notes)
	}
	return strings.Join(parts, "  ")
}
