// Command digitize is a one-shot example CLI, grounded on cmd/extract's
// flag-parse-then-run shape: it reads a JSON design file, runs the
// digitization pipeline, and writes the resulting .dst/.exp siblings.
// The core package does not own a CLI (spec §6); this is a caller.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gmsr99/bordadosdosrlucasV2/config"
	"github.com/gmsr99/bordadosdosrlucasV2/digitizer"
	"github.com/gmsr99/bordadosdosrlucasV2/encoding/dst"
	"github.com/gmsr99/bordadosdosrlucasV2/encoding/exp"
	"github.com/gmsr99/bordadosdosrlucasV2/geometry"
	"github.com/gmsr99/bordadosdosrlucasV2/observability"
	"github.com/gmsr99/bordadosdosrlucasV2/stitch"
)

type options struct {
	designPath string
	outDir     string
	label      string
	verbose    bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "digitize: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "digitize: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: go run ./cmd/digitize [flags] <design.json>\n")
		flag.PrintDefaults()
	}
	outDir := flag.String("out", ".", "Directory for the .dst/.exp output files")
	label := flag.String("label", "DESIGN", "DST header label")
	verbose := flag.Bool("v", false, "Log per-layer build decisions")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return options{}, fmt.Errorf("missing design path")
	}
	opts.designPath = flag.Arg(0)
	opts.outDir = *outDir
	opts.label = *label
	opts.verbose = *verbose
	return opts, nil
}

// designFile is the on-disk JSON contract: layers plus the processing
// config, matching spec §6's external input shape field-for-field.
type designFile struct {
	Layers []jsonLayer          `json:"layers"`
	Config jsonProcessingConfig `json:"config"`
}

type jsonLayer struct {
	ColorHex string        `json:"color_hex"`
	Polygons [][][2]float64 `json:"polygons"`
}

type jsonProcessingConfig struct {
	DesignStyle        string   `json:"design_style"`
	WidthMM            float64  `json:"width_mm"`
	StitchType         string   `json:"stitch_type"`
	DensityMM          float64  `json:"density_mm"`
	SatinColumnWidthMM float64  `json:"satin_column_width_mm"`
	PullCompensationMM float64  `json:"pull_compensation_mm"`
	EnableUnderlay     bool     `json:"enable_underlay"`
	TatamiAngleDeg     *float64 `json:"tatami_angle_deg"`
	MaxStitchLengthMM  float64  `json:"max_stitch_length_mm"`
	MinStitchLengthMM  float64  `json:"min_stitch_length_mm"`
	TrimJumpDistanceMM float64  `json:"trim_jump_distance_mm"`
	ColorCount         int      `json:"color_count"`
}

func run(opts options) error {
	data, err := os.ReadFile(opts.designPath)
	if err != nil {
		return fmt.Errorf("read design: %w", err)
	}

	var df designFile
	if err := json.Unmarshal(data, &df); err != nil {
		return fmt.Errorf("parse design json: %w", err)
	}

	layers := toLayers(df.Layers)
	procCfg, err := toProcessingConfig(df.Config)
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(procCfg)
	if err != nil {
		return fmt.Errorf("resolve config: %w", err)
	}

	logger := observability.Logger(observability.NopLogger{})
	if opts.verbose {
		logger = verboseLogger{}
	}
	pipe := digitizer.New().WithLogger(logger)

	stitches, err := pipe.Run(layers, cfg)
	if err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(opts.designPath), filepath.Ext(opts.designPath))

	dstPath := filepath.Join(opts.outDir, base+".dst")
	if err := writeDST(dstPath, stitches, opts.label); err != nil {
		return err
	}

	expPath := filepath.Join(opts.outDir, base+".exp")
	if err := writeEXP(expPath, stitches); err != nil {
		return err
	}

	fmt.Printf("wrote %d stitch records to %s and %s\n", len(stitches), dstPath, expPath)
	return nil
}

func writeDST(path string, stitches []stitch.Stitch, label string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := dst.Encode(stitches, label, f); err != nil {
		return fmt.Errorf("encode dst: %w", err)
	}
	return nil
}

func writeEXP(path string, stitches []stitch.Stitch) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := exp.Encode(stitches, f); err != nil {
		return fmt.Errorf("encode exp: %w", err)
	}
	return nil
}

func toLayers(jls []jsonLayer) []stitch.VectorLayer {
	layers := make([]stitch.VectorLayer, 0, len(jls))
	for _, jl := range jls {
		polys := make([]geometry.Polygon, 0, len(jl.Polygons))
		for _, jp := range jl.Polygons {
			poly := make(geometry.Polygon, 0, len(jp))
			for _, xy := range jp {
				poly = append(poly, geometry.Point{X: xy[0], Y: xy[1]})
			}
			polys = append(polys, poly)
		}
		layers = append(layers, stitch.VectorLayer{ColorHex: jl.ColorHex, Polygons: polys})
	}
	return layers
}

func toProcessingConfig(jc jsonProcessingConfig) (stitch.ProcessingConfig, error) {
	stitchType, err := parseStitchType(jc.StitchType)
	if err != nil {
		return stitch.ProcessingConfig{}, err
	}
	return stitch.ProcessingConfig{
		DesignStyle:        parseDesignStyle(jc.DesignStyle),
		WidthMM:            jc.WidthMM,
		StitchType:         stitchType,
		DensityMM:          jc.DensityMM,
		SatinColumnWidthMM: jc.SatinColumnWidthMM,
		PullCompensationMM: jc.PullCompensationMM,
		EnableUnderlay:     jc.EnableUnderlay,
		TatamiAngleDeg:     tatamiAngleOrUnset(jc.TatamiAngleDeg),
		MaxStitchLengthMM:  jc.MaxStitchLengthMM,
		MinStitchLengthMM:  jc.MinStitchLengthMM,
		TrimJumpDistanceMM: jc.TrimJumpDistanceMM,
		ColorCount:         jc.ColorCount,
	}, nil
}

// tatamiAngleOrUnset maps a JSON field left out of the design file to
// config.UnsetTatamiAngleDeg so config.Resolve fills in the documented
// 45° default instead of silently running at 0°.
func tatamiAngleOrUnset(v *float64) float64 {
	if v == nil {
		return config.UnsetTatamiAngleDeg
	}
	return *v
}

func parseStitchType(s string) (stitch.StitchType, error) {
	switch strings.ToLower(s) {
	case "running":
		return stitch.TypeRunning, nil
	case "satin":
		return stitch.TypeSatin, nil
	case "tatami":
		return stitch.TypeTatami, nil
	default:
		return 0, fmt.Errorf("unknown stitch_type %q", s)
	}
}

func parseDesignStyle(s string) stitch.DesignStyle {
	switch strings.ToLower(s) {
	case "patch_line":
		return stitch.StylePatchLine
	case "patch_fill":
		return stitch.StylePatchFill
	default:
		return stitch.StyleVintage
	}
}

// verboseLogger writes Debug/Warn/Error fields to stderr; grounded on
// observability.NopLogger's shape, just with a real sink.
type verboseLogger struct{}

func (verboseLogger) Debug(msg string, fields ...observability.Field) { logFields("DEBUG", msg, fields) }
func (verboseLogger) Info(msg string, fields ...observability.Field)  { logFields("INFO", msg, fields) }
func (verboseLogger) Warn(msg string, fields ...observability.Field)  { logFields("WARN", msg, fields) }
func (verboseLogger) Error(msg string, fields ...observability.Field) { logFields("ERROR", msg, fields) }
func (l verboseLogger) With(fields ...observability.Field) observability.Logger { return l }

func logFields(level, msg string, fields []observability.Field) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteString(" ")
	b.WriteString(msg)
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key(), f.Value())
	}
	fmt.Fprintln(os.Stderr, b.String())
}
