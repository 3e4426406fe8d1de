package system

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/growlog/internal/api"
	"github.com/julianstephens/growlog/internal/cli"
	"github.com/julianstephens/growlog/internal/keyring"
	"github.com/julianstephens/growlog/internal/logger"
)

type ServeCmd struct {
	Addr   string `help:"Listen address. Defaults to api.addr from the config."`
	NoAuth bool   `help:"Serve without the api-token even when one is stored."`
}

func (c *ServeCmd) token() (string, error) {
	if c.NoAuth {
		return "", nil
	}
	token, err := keyring.Get(keyring.APIToken)
	if err == nil {
		return token, nil
	}
	if errors.Is(err, keyring.ErrNotFound) || errors.Is(err, keyring.ErrKeyringUnavailable) {
		logger.Warn("Serving without an API token", "reason", err)
		return "", nil
	}
	return "", err
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	addr := c.Addr
	if addr == "" {
		addr = ctx.Config.API.Addr
	}
	token, err := c.token()
	if err != nil {
		return err
	}

	srv := api.New(api.Deps{
		Repo:      ctx.Repo,
		Reminders: ctx.Reminders,
		Writer:    ctx.Writer,
		Archiver:  ctx.Archiver,
		Bundle:    ctx.Bundle,
		Token:     token,
	})

	sigCtx, stop := signal.NotifyContext(ctx.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	auth := "no auth"
	if token != "" {
		auth = "bearer token"
	}
	ctx.Printf("Serving growlog API on http://%s (%s)\n", addr, auth)
	if err := srv.Start(sigCtx, addr); err != nil {
		return fmt.Errorf("API server failed: %w", err)
	}
	return nil
}
