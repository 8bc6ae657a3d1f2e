package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/royalcat/polyquad/internal/telemetry"
	"github.com/urfave/cli/v3"

	_ "github.com/KimMachineGun/automemlimit"
	_ "go.uber.org/automaxprocs"
)

const appName = "polyquad"

var telemetryClient *telemetry.Client

func main() {
	app := &cli.App{
		Name:        appName,
		Description: "Polygon quadtree: which stored polygons contain a point",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "otel.endpoint",
				Usage: "otlp http endpoint, the OTEL_* environment is used when empty",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log tree splits and merges",
			},
		},
		Before: setupTelemetry,
		After:  shutdownTelemetry,
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "serve a polygon index over http",
				Flags: append(treeFlags(),
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
					},
					&cli.StringFlag{
						Name:  "pprof.listen",
						Usage: "address of a pprof http server",
					},
				),
				Action: serve,
			},
			{
				Name:      "query",
				Usage:     "print the polygons containing a point",
				ArgsUsage: "X Y",
				Flags:     treeFlags(),
				Action:    query,
			},
			{
				Name:  "bench",
				Usage: "index random polygons and query them",
				Flags: append(treeFlags(),
					&cli.IntFlag{
						Name:  "polygons",
						Value: 100_000,
					},
					&cli.IntFlag{
						Name:  "queries",
						Value: 100_000,
						Usage: "approximate number of query points",
					},
					&cli.IntFlag{
						Name:  "max-size",
						Value: 1000,
						Usage: "largest polygon extent",
					},
					&cli.IntFlag{
						Name:  "seed",
						Value: 1,
					},
					&cli.BoolFlag{
						Name:  "verify",
						Usage: "check every query against a flat reference index",
					},
					&cli.StringFlag{
						Name:  "stats",
						Usage: "write a runtime report to this file",
					},
					&cli.BoolFlag{
						Name: "pprof.profile",
					},
					&cli.BoolFlag{
						Name: "pprof.heap",
					},
				),
				Action: bench,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupTelemetry(ctx *cli.Context) error {
	level := slog.LevelInfo
	if ctx.Bool("debug") {
		level = slog.LevelDebug
	}

	client, err := telemetry.Setup(ctx.Context, appName, ctx.String("otel.endpoint"), level)
	if err != nil {
		return err
	}
	telemetryClient = client
	return nil
}

func shutdownTelemetry(ctx *cli.Context) error {
	if telemetryClient == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := telemetryClient.Flush(shutdownCtx); err != nil {
		slog.Warn("failed to flush telemetry", "error", err)
	}
	telemetryClient.Shutdown(shutdownCtx)
	return nil
}
