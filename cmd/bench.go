package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"slices"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/fogleman/poissondisc"
	"github.com/royalcat/polyquad/bordertree"
	"github.com/royalcat/polyquad/geom"
	"github.com/royalcat/polyquad/internal/stats"
	"github.com/royalcat/polyquad/quadtree"
	"github.com/urfave/cli/v3"
)

func bench(ctx *cli.Context) error {
	if ctx.Bool("pprof.profile") {
		f, err := os.OpenFile("profile.cpu.pprof", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("error creating pprof file: %w", err)
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			return fmt.Errorf("error starting pprof: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	collector, err := stats.NewCollector(100 * time.Millisecond)
	if err != nil {
		return err
	}
	collector.Start()

	tree, err := newTree(ctx)
	if err != nil {
		collector.Stop()
		return err
	}
	defer tree.Destroy()

	rnd := rand.New(rand.NewSource(int64(ctx.Int("seed"))))
	n := ctx.Int("polygons")
	maxSize := int32(max(ctx.Int("max-size"), 2))
	base := tree.Len()

	var ref *bordertree.BorderTree
	if ctx.Bool("verify") {
		ref = bordertree.NewBorderTree()
		for _, id := range tree.IDs() {
			poly, err := tree.Polygon(id)
			if err != nil {
				return err
			}
			ref.InsertBorder(id, poly)
		}
	}

	bar := pb.StartNew(n)
	bar.Set("prefix", "adding polygons")
	rejected := 0
	start := time.Now()
	for i := range n {
		id := int64(base + i)
		err := tree.Add(id, randomPolygon(rnd, tree.Bound(), maxSize))
		bar.Increment()
		switch {
		case err == nil:
			if ref != nil {
				poly, _ := tree.Polygon(id)
				ref.InsertBorder(id, poly)
			}
		case errors.Is(err, quadtree.ErrInvalidPolygon), errors.Is(err, quadtree.ErrDuplicateID):
			rejected++
		default:
			bar.Finish()
			collector.Stop()
			return err
		}
	}
	bar.Finish()
	addElapsed := time.Since(start)

	points := samplePoints(tree.Bound(), ctx.Int("queries"), rnd)
	hits := 0
	start = time.Now()
	for _, p := range points {
		ids, err := tree.Query(p)
		if err != nil {
			collector.Stop()
			return err
		}
		hits += len(ids)
	}
	queryElapsed := time.Since(start)

	if ref != nil {
		mismatches := 0
		for _, p := range points {
			ids, _ := tree.Query(p)
			if want := ref.QueryPoint(p); !slices.Equal(ids, want) {
				mismatches++
				slog.Error("query mismatch", "point", p.String(), "tree", ids, "reference", want)
			}
		}
		if mismatches > 0 {
			collector.Stop()
			return fmt.Errorf("%d of %d queries differ from the reference index", mismatches, len(points))
		}
		fmt.Printf("Verified %s queries against the reference index\n", humanize.Comma(int64(len(points))))
	}

	if ctx.Bool("pprof.heap") {
		if err := writeHeapProfile("profile"); err != nil {
			return fmt.Errorf("error writing heap profile: %w", err)
		}
	}

	treeStats := tree.Stats()
	runtimeStats := collector.Stop()

	fmt.Printf("Added %s polygons in %s (%s/op), %s rejected\n",
		humanize.Comma(int64(n-rejected)), addElapsed.Round(time.Millisecond), perOp(addElapsed, n), humanize.Comma(int64(rejected)))
	fmt.Printf("Ran %s queries in %s (%s/op), %s hits\n",
		humanize.Comma(int64(len(points))), queryElapsed.Round(time.Millisecond), perOp(queryElapsed, len(points)), humanize.Comma(int64(hits)))
	fmt.Printf("Tree: %s nodes (%s leaves, %s free, %s slots), depth %d\n",
		humanize.Comma(int64(treeStats.Nodes)), humanize.Comma(int64(treeStats.Leaves)),
		humanize.Comma(int64(treeStats.FreeNodes)), humanize.Comma(int64(treeStats.Arena)), treeStats.Depth)
	if err := runtimeStats.WriteReport(os.Stdout); err != nil {
		return err
	}

	if name := ctx.String("stats"); name != "" {
		if err := runtimeStats.SaveToFile(name); err != nil {
			return err
		}
	}
	return nil
}

func perOp(d time.Duration, n int) time.Duration {
	if n == 0 {
		return 0
	}
	return d / time.Duration(n)
}

// randomPolygon returns a star shaped polygon of 3 to 8 vertices with an
// extent of at most size, placed uniformly inside b. Vertices are sorted by
// angle around the center, so the polygon never self-intersects.
func randomPolygon(rnd *rand.Rand, b geom.Bound, size int32) []geom.Point {
	size = int32(min(int64(size), b.Width(), b.Height()))
	half := float64(size) / 2
	cx := float64(b.Min.X) + half + rnd.Float64()*float64(b.Width()-int64(size))
	cy := float64(b.Min.Y) + half + rnd.Float64()*float64(b.Height()-int64(size))

	angles := make([]float64, 3+rnd.Intn(6))
	for i := range angles {
		angles[i] = rnd.Float64() * 2 * math.Pi
	}
	slices.Sort(angles)

	vs := make([]geom.Point, len(angles))
	for i, a := range angles {
		r := half * (0.3 + 0.7*rnd.Float64())
		vs[i] = geom.Point{
			X: clamp(cx+r*math.Cos(a), b.Min.X, b.Max.X),
			Y: clamp(cy+r*math.Sin(a), b.Min.Y, b.Max.Y),
		}
	}
	return vs
}

func clamp(v float64, lo, hi int32) int32 {
	return int32(max(float64(lo), min(float64(hi), math.Round(v))))
}

// samplePoints spreads about n query points evenly over b.
func samplePoints(b geom.Bound, n int, rnd *rand.Rand) []geom.Point {
	if n <= 0 {
		return nil
	}
	area := float64(b.Width()) * float64(b.Height())
	// a poisson disc sample of radius r packs roughly area/(r*r*1.5) points
	r := math.Sqrt(area / (float64(n) * 1.5))

	sample := poissondisc.Sample(
		float64(b.Min.X), float64(b.Min.Y), float64(b.Max.X), float64(b.Max.Y),
		r, 30, rnd,
	)
	points := make([]geom.Point, 0, len(sample))
	for _, p := range sample {
		points = append(points, geom.Point{
			X: clamp(p.X, b.Min.X, b.Max.X),
			Y: clamp(p.Y, b.Min.Y, b.Max.Y),
		})
	}
	return points
}

func writeHeapProfile(name string) error {
	f, err := os.Create(name + ".heap.prof")
	if err != nil {
		return err
	}
	defer f.Close()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
