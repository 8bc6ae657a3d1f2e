package main

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cheggaaa/pb/v3"
	"github.com/royalcat/polyquad/polyload"
	"github.com/royalcat/polyquad/quadtree"
	"github.com/urfave/cli/v3"
)

func treeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      "input",
			Aliases:   []string{"i"},
			Usage:     "GeoJSON feature collection, optionally .zst compressed",
			TakesFile: true,
		},
		&cli.BoolFlag{
			Name:  "skip-invalid",
			Usage: "skip input polygons the tree rejects",
		},
		&cli.IntFlag{Name: "min-x", Value: 0},
		&cli.IntFlag{Name: "min-y", Value: 0},
		&cli.IntFlag{Name: "max-x", Value: 1 << 20},
		&cli.IntFlag{Name: "max-y", Value: 1 << 20},
		&cli.IntFlag{
			Name:  "capacity",
			Value: quadtree.DefaultCapacity,
		},
		&cli.IntFlag{
			Name:  "max-depth",
			Value: quadtree.DefaultMaxDepth,
		},
		&cli.IntFlag{
			Name:        "max-nodes",
			DefaultText: "unlimited",
		},
		&cli.IntFlag{
			Name:        "threads",
			Aliases:     []string{"t"},
			DefaultText: "max",
		},
	}
}

func int32Flag(ctx *cli.Context, name string) (int32, error) {
	v := ctx.Int(name)
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%s: %d does not fit int32", name, v)
	}
	return int32(v), nil
}

// newTree creates the tree described by the tree flags and loads the input
// file into it when one is given.
func newTree(ctx *cli.Context) (*quadtree.Tree, error) {
	var corners [4]int32
	for i, name := range []string{"min-x", "min-y", "max-x", "max-y"} {
		v, err := int32Flag(ctx, name)
		if err != nil {
			return nil, err
		}
		corners[i] = v
	}

	tree, err := quadtree.Create(corners[0], corners[1], corners[2], corners[3],
		quadtree.WithCapacity(ctx.Int("capacity")),
		quadtree.WithMaxDepth(ctx.Int("max-depth")),
		quadtree.WithMaxNodes(ctx.Int("max-nodes")),
	)
	if err != nil {
		return nil, err
	}

	input := ctx.String("input")
	if input == "" {
		return tree, nil
	}

	log := slog.Default().With("input", input)
	log.Info("Loading polygons")

	features, err := polyload.ReadFile(input,
		polyload.WithThreads(ctx.Int("threads")),
		polyload.WithSkipInvalid(ctx.Bool("skip-invalid")),
	)
	if err != nil {
		tree.Destroy()
		return nil, err
	}

	bar := pb.StartNew(len(features))
	bar.Set("prefix", "indexing polygons")
	added, err := polyload.Load(tree, features,
		polyload.WithSkipInvalid(ctx.Bool("skip-invalid")),
		polyload.WithProgress(func() { bar.Increment() }),
	)
	bar.Finish()
	if err != nil {
		tree.Destroy()
		return nil, err
	}

	log.Info("Polygons loaded", "added", added, "skipped", len(features)-added)
	return tree, nil
}
