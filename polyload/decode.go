package polyload

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/royalcat/polyquad/geom"
	"github.com/sourcegraph/conc/pool"
)

var (
	ErrNoID            = errors.New("feature has no integer id")
	ErrUnsupported     = errors.New("unsupported geometry")
	ErrHolesNotAllowed = errors.New("polygon holes are not supported")
)

// Feature is one polygon ready to be added to a tree.
type Feature struct {
	ID       int64
	Vertices []geom.Point
}

type indexed struct {
	idx int
	Feature
}

// Decode parses a GeoJSON feature collection. Every feature must carry an
// integer id, either as the feature id or as an "id" property, and a
// Polygon (or single-polygon MultiPolygon) geometry without holes.
func Decode(data []byte, opts ...Option) ([]Feature, error) {
	o := loadOptions(opts...)

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("can`t parse feature collection: %w", err)
	}

	p := pool.NewWithResults[indexed]().WithErrors().WithMaxGoroutines(o.threads)
	for i, f := range fc.Features {
		p.Go(func() (indexed, error) {
			feature, err := convert(f)
			if err != nil {
				return indexed{}, fmt.Errorf("feature %d: %w", i, err)
			}
			return indexed{idx: i, Feature: feature}, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		if !o.skipInvalid {
			return nil, err
		}
		o.logger.Warn("skipped invalid features", "error", err)
	}

	slices.SortFunc(results, func(a, b indexed) int {
		return a.idx - b.idx
	})
	features := make([]Feature, len(results))
	for i, r := range results {
		features[i] = r.Feature
	}
	o.logger.Info("decoded features", "total", len(fc.Features), "valid", len(features))
	return features, nil
}

func convert(f *geojson.Feature) (Feature, error) {
	id, err := featureID(f)
	if err != nil {
		return Feature{}, err
	}

	var poly orb.Polygon
	switch g := f.Geometry.(type) {
	case orb.Polygon:
		poly = g
	case orb.MultiPolygon:
		if len(g) != 1 {
			return Feature{}, fmt.Errorf("%w: multipolygon with %d parts", ErrUnsupported, len(g))
		}
		poly = g[0]
	case nil:
		return Feature{}, fmt.Errorf("%w: no geometry", ErrUnsupported)
	default:
		return Feature{}, fmt.Errorf("%w: %s", ErrUnsupported, g.GeoJSONType())
	}
	if len(poly) == 0 {
		return Feature{}, fmt.Errorf("%w: empty polygon", ErrUnsupported)
	}
	if len(poly) > 1 {
		return Feature{}, ErrHolesNotAllowed
	}

	vs, err := geom.VerticesFromRing(poly[0])
	if err != nil {
		return Feature{}, err
	}
	return Feature{ID: id, Vertices: vs}, nil
}

func featureID(f *geojson.Feature) (int64, error) {
	if id, ok := toInt64(f.ID); ok {
		return id, nil
	}
	if id, ok := toInt64(f.Properties["id"]); ok {
		return id, nil
	}
	return 0, ErrNoID
}

func toInt64(v any) (int64, bool) {
	switch v := v.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		return id, err == nil
	}
	return 0, false
}
