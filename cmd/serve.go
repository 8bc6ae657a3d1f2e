package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "net/http/pprof"

	"github.com/royalcat/polyquad/geom"
	"github.com/royalcat/polyquad/server"
	"github.com/urfave/cli/v3"
)

func serve(ctx *cli.Context) error {
	log := slog.Default()

	if pprofListen := ctx.String("pprof.listen"); pprofListen != "" {
		go func() {
			log.Info("Starting pprof server")
			err := http.ListenAndServe(pprofListen, nil)
			if err != nil {
				log.Error("Error starting pprof server", "error", err)
			}
		}()
	}

	tree, err := newTree(ctx)
	if err != nil {
		return err
	}
	defer tree.Destroy()

	runCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := server.ConfigDefault()
	cfg.Address = ctx.String("listen")
	return server.Run(runCtx, cfg, tree)
}

func query(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return fmt.Errorf("expected X and Y, got %d arguments", ctx.NArg())
	}
	var p geom.Point
	for i, c := range []*int32{&p.X, &p.Y} {
		v, err := strconv.ParseInt(ctx.Args().Get(i), 10, 32)
		if err != nil {
			return fmt.Errorf("bad coordinate %q: %w", ctx.Args().Get(i), err)
		}
		*c = int32(v)
	}

	tree, err := newTree(ctx)
	if err != nil {
		return err
	}
	defer tree.Destroy()

	ids, err := tree.Query(p)
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}
