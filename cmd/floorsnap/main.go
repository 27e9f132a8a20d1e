// Command floorsnap checks a furniture layout against a floorplan.
//
// It loads walls from a DXF file, a furniture catalog from CSV or Excel and
// placed items from CSV, optionally runs every item through the snapping
// pipeline, and prints the colliding, unresolved and out-of-bounds item IDs.
//
//	floorsnap -walls plan.dxf -catalog catalog.xlsx -items items.csv -snap -out layout.json
//
// Exit status is 1 when an input cannot be loaded and 2 when items collide.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/piwi3910/FloorSnap/internal/engine"
	"github.com/piwi3910/FloorSnap/internal/geometry"
	"github.com/piwi3910/FloorSnap/internal/importer"
	"github.com/piwi3910/FloorSnap/internal/logging"
	"github.com/piwi3910/FloorSnap/internal/model"
	"github.com/piwi3910/FloorSnap/internal/project"
)

const (
	exitOK         = 0
	exitLoadError  = 1
	exitCollisions = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	walls     string
	catalog   string
	items     string
	config    string
	out       string
	bounds    string
	thickness float64
	snap      bool
	logLevel  string
	logFormat string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("floorsnap", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.walls, "walls", "", "DXF floorplan with wall centerlines")
	fs.StringVar(&o.catalog, "catalog", "", "Furniture catalog (.csv or .xlsx)")
	fs.StringVar(&o.items, "items", "", "Placed items (.csv)")
	fs.StringVar(&o.config, "config", project.DefaultConfigPath(), "Settings file")
	fs.StringVar(&o.out, "out", "", "Write the resulting layout as JSON")
	fs.StringVar(&o.bounds, "bounds", "", "Floorplan bounds as x,y,width,height (default: wall extents)")
	fs.Float64Var(&o.thickness, "thickness", 0.1, "Wall thickness in meters")
	fs.BoolVar(&o.snap, "snap", false, "Run every item through the snapping pipeline")
	fs.StringVar(&o.logLevel, "log-level", "info", "debug, info, warn or error")
	fs.StringVar(&o.logFormat, "log-format", "console", "console or json")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.catalog == "" || o.items == "" {
		fs.Usage()
		return o, errors.New("-catalog and -items are required")
	}
	return o, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "floorsnap: %v\n", err)
		return exitLoadError
	}

	logger, err := logging.NewLogger(opts.logLevel, opts.logFormat)
	if err != nil {
		fmt.Fprintf(stderr, "floorsnap: cannot create logger: %v\n", err)
		return exitLoadError
	}
	defer func() { _ = logger.Sync() }()

	settings, err := project.LoadSettings(opts.config)
	if err != nil {
		logger.Error("cannot load settings", zap.String("path", opts.config), zap.Error(err))
		return exitLoadError
	}

	scene, err := loadScene(opts, logger)
	if err != nil {
		logger.Error("cannot load inputs", zap.Error(err))
		return exitLoadError
	}

	e := engine.New(settings, engine.WithLogger(logger))
	if opts.snap {
		settle(e, &scene, logger)
	}
	report := e.Evaluate(scene)

	if opts.out != "" {
		layout := project.NewLayout(scene.Bounds, scene.Walls, scene.Catalog, scene.Items)
		if err := project.SaveLayout(opts.out, layout); err != nil {
			logger.Error("cannot save layout", zap.String("path", opts.out), zap.Error(err))
			return exitLoadError
		}
		logger.Info("layout saved", zap.String("path", opts.out))
	}

	printReport(stdout, scene, report)
	if len(report.Collisions) > 0 {
		return exitCollisions
	}
	return exitOK
}

func loadScene(opts options, logger *zap.Logger) (engine.Scene, error) {
	var scene engine.Scene

	if opts.walls != "" {
		res := importer.ImportWallsDXF(opts.walls, opts.thickness)
		logWarnings(logger, opts.walls, res.Warnings)
		if len(res.Errors) > 0 {
			return scene, importError(opts.walls, res.Errors)
		}
		scene.Walls = res.Walls
	}

	var cat importer.CatalogImportResult
	switch strings.ToLower(filepath.Ext(opts.catalog)) {
	case ".xlsx", ".xlsm", ".xls":
		cat = importer.ImportCatalogExcel(opts.catalog)
	default:
		cat = importer.ImportCatalogCSV(opts.catalog)
	}
	logWarnings(logger, opts.catalog, cat.Warnings)
	if len(cat.Errors) > 0 {
		return scene, importError(opts.catalog, cat.Errors)
	}
	scene.Catalog = cat.Catalog()

	items := importer.ImportItemsCSV(opts.items)
	logWarnings(logger, opts.items, items.Warnings)
	if len(items.Errors) > 0 {
		return scene, importError(opts.items, items.Errors)
	}
	scene.Items = items.Items

	if opts.bounds != "" {
		b, err := parseBounds(opts.bounds)
		if err != nil {
			return scene, err
		}
		scene.Bounds = b
	} else {
		scene.Bounds = geometry.WallExtents(scene.Walls)
	}

	logger.Info("scene loaded",
		zap.Int("walls", len(scene.Walls)),
		zap.Int("catalog_entries", len(scene.Catalog)),
		zap.Int("items", len(scene.Items)))
	return scene, nil
}

// settle places each item in input order, so later items see the snapped
// positions of earlier ones.
func settle(e *engine.Engine, scene *engine.Scene, logger *zap.Logger) {
	for i, it := range scene.Items {
		res, err := e.Move(*scene, it.ID, it.X, it.Y)
		if err != nil {
			logger.Warn("item not placed", zap.String("item", it.ID), zap.Error(err))
			continue
		}
		scene.Items[i] = res.Item
		if res.Snapped {
			logger.Info("item snapped",
				zap.String("item", it.ID),
				zap.String("type", res.SnapType.String()),
				zap.String("target", res.SnapTarget))
		}
	}
}

func parseBounds(s string) (model.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return model.Rect{}, fmt.Errorf("invalid bounds %q: want x,y,width,height", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return model.Rect{}, fmt.Errorf("invalid bounds %q: %w", s, err)
		}
		v[i] = f
	}
	r := model.NewRect(v[0], v[1], v[2], v[3])
	if r.Empty() {
		return model.Rect{}, fmt.Errorf("invalid bounds %q: width and height must be positive", s)
	}
	return r, nil
}

func logWarnings(logger *zap.Logger, path string, warnings []string) {
	for _, w := range warnings {
		logger.Warn(w, zap.String("file", path))
	}
}

func importError(path string, errs []string) error {
	return fmt.Errorf("%s: %s", path, strings.Join(errs, "; "))
}

func printReport(w io.Writer, scene engine.Scene, report engine.Report) {
	fmt.Fprintf(w, "items: %d\n", len(scene.Items))
	fmt.Fprintf(w, "colliding: %s\n", joinOrNone(report.Collisions.Sorted()))
	fmt.Fprintf(w, "unresolved: %s\n", joinOrNone(report.Unresolved))
	fmt.Fprintf(w, "outside bounds: %s\n", joinOrNone(report.OutOfBounds))
}

func joinOrNone(ids []string) string {
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ", ")
}
