package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/julianstephens/growlog/internal/account"
	"github.com/julianstephens/growlog/internal/batchlog"
	"github.com/julianstephens/growlog/internal/constants"
	"github.com/julianstephens/growlog/internal/models"
	"github.com/julianstephens/growlog/internal/reminders"
)

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": constants.Version})
}

func (s *Server) listReminders(c echo.Context) error {
	b, err := s.deps.Reminders.Classify(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

type reminderRequest struct {
	PlantID     string `json:"plant_id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Interval    int    `json:"interval"`
}

func (s *Server) createReminder(c echo.Context) error {
	var req reminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	r, err := s.deps.Reminders.Create(c.Request().Context(), c.Param("uid"), reminders.Draft{
		PlantID:     req.PlantID,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Interval:    req.Interval,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

func (s *Server) completeReminder(c echo.Context) error {
	r, err := s.deps.Reminders.Complete(c.Request().Context(), c.Param("uid"), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (s *Server) snoozeReminder(c echo.Context) error {
	hours := constants.DefaultSnoozeHours
	if q := c.QueryParam("hours"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			return invalid("hours", err)
		}
		hours = n
	}
	r, err := s.deps.Reminders.Snooze(c.Request().Context(), c.Param("uid"), c.Param("id"), hours)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (s *Server) deleteReminder(c echo.Context) error {
	if err := s.deps.Reminders.Delete(c.Request().Context(), c.Param("uid"), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listPlants(c echo.Context) error {
	plants, err := s.deps.Repo.GetAllPlants(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plants)
}

type plantRequest struct {
	Name      string    `json:"name"`
	Strain    string    `json:"strain"`
	Stage     string    `json:"stage"`
	StartedAt time.Time `json:"started_at"`
	PhotoURL  string    `json:"photo_url"`
}

func (s *Server) createPlant(c echo.Context) error {
	var req plantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	plant := models.Plant{
		Name:      req.Name,
		Strain:    req.Strain,
		Stage:     req.Stage,
		StartedAt: req.StartedAt,
		PhotoURL:  req.PhotoURL,
	}
	if plant.Stage == "" {
		plant.Stage = constants.StageSeedling
	}
	if err := plant.Validate(); err != nil {
		return invalid("name", err)
	}
	plant, err := s.deps.Repo.AddPlant(c.Request().Context(), c.Param("uid"), plant)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, plant)
}

func (s *Server) listLogs(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")
	if _, err := s.deps.Repo.GetPlant(ctx, uid, c.Param("id")); err != nil {
		return err
	}
	logs, err := s.deps.Repo.GetLogs(ctx, uid, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}

type batchRequest struct {
	batchlog.Form
	// ApplyAmount, when set, is copied to every selected plant before validation.
	ApplyAmount string `json:"applyAmountToAll,omitempty"`
}

func (s *Server) batchLogs(c echo.Context) error {
	var req batchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	if req.ApplyAmount != "" {
		req.Form.ApplyGlobalAmountToAll(req.ApplyAmount)
	}
	res, err := s.deps.Writer.Submit(c.Request().Context(), c.Param("uid"), req.Form)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

func (s *Server) deleteAccount(c echo.Context) error {
	purge, _ := strconv.ParseBool(c.QueryParam("purge_photos"))
	res, err := s.deps.Archiver.DeleteAccount(c.Request().Context(), c.Param("uid"), account.Options{PurgePhotos: purge})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
