// Package config loads vectorkit job files.
//
// A job is a YAML document naming an input image, how to trace it, a chain
// of transformations to apply to the traced paths, and where to write the
// rendered result. Fields missing from the file keep their defaults, and a
// few environment variables override the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
	"honnef.co/go/vectorkit"
	"honnef.co/go/vectorkit/deform"
	"honnef.co/go/vectorkit/trace"
)

type TraceConfig struct {
	TurdSize          int     `yaml:"turd_size"`
	TurnPolicy        string  `yaml:"turn_policy"`
	AlphaMax          float64 `yaml:"alpha_max"`
	OptimizeCurve     bool    `yaml:"optimize_curve"`
	OptimizeTolerance float64 `yaml:"optimize_tolerance"`
	// Threshold is "dark" or "opaque".
	Threshold string `yaml:"threshold"`
}

// Step is one transformation in a job's chain. Op selects the kind of
// transformation and which of the other fields it reads:
//
//	translate                      x, y
//	scale                          x, y
//	shear                          x, y (factors)
//	shear_degrees, shear_radians   x, y (angles)
//	rotate_degrees, rotate_radians angle
//	reflect                        across_x, across_y
//
// If At is set, the transformation is applied about that point instead of
// the origin. Omitted fields are zero, so a scale step needs both x and y;
// steps that are not invertible are rejected.
type Step struct {
	Op      string      `yaml:"op"`
	X       float64     `yaml:"x,omitempty"`
	Y       float64     `yaml:"y,omitempty"`
	Angle   float64     `yaml:"angle,omitempty"`
	At      *[2]float64 `yaml:"at,omitempty"`
	AcrossX bool        `yaml:"across_x,omitempty"`
	AcrossY bool        `yaml:"across_y,omitempty"`
}

type DeformConfig struct {
	// Output, if set, receives the input image resampled under the job's
	// transformation.
	Output        string `yaml:"output"`
	Interpolation string `yaml:"interpolation"`
	FitBounds     bool   `yaml:"fit_bounds"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type Job struct {
	Input       string        `yaml:"input"`
	Output      string        `yaml:"output"`
	Accuracy    float64       `yaml:"accuracy"`
	Fill        string        `yaml:"fill"`
	Stroke      string        `yaml:"stroke"`
	StrokeWidth float64       `yaml:"stroke_width"`
	Trace       TraceConfig   `yaml:"trace"`
	Transforms  []Step        `yaml:"transforms"`
	Deform      DeformConfig  `yaml:"deform"`
	Logging     LoggingConfig `yaml:"logging"`
}

// Defaults returns a job with every optional field set.
func Defaults() Job {
	tp := trace.Defaults()
	return Job{
		Accuracy:    vectorkit.DefaultAccuracy,
		Fill:        "#000000",
		StrokeWidth: 1,
		Trace: TraceConfig{
			TurdSize:          tp.TurdSize,
			TurnPolicy:        tp.TurnPolicy.String(),
			AlphaMax:          tp.AlphaMax,
			OptimizeCurve:     tp.OptimizeCurve,
			OptimizeTolerance: tp.OptimizeTolerance,
			Threshold:         "dark",
		},
		Deform: DeformConfig{
			Interpolation: deform.BiLinear.String(),
			FitBounds:     true,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Environment variables that override job fields.
const (
	EnvInput     = "VECTORKIT_INPUT"
	EnvOutput    = "VECTORKIT_OUTPUT"
	EnvAccuracy  = "VECTORKIT_ACCURACY"
	EnvLogLevel  = "VECTORKIT_LOG_LEVEL"
	EnvLogFormat = "VECTORKIT_LOG_FORMAT"
	EnvLogFile   = "VECTORKIT_LOG_FILE"
)

// Load reads the job file at path, fills in defaults, and applies
// environment overrides. The result is validated.
func Load(path string) (Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, fmt.Errorf("config: %w", err)
	}
	job, err := Parse(data)
	if err != nil {
		return Job{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return job, nil
}

// Parse decodes a job from YAML, fills in defaults, applies environment
// overrides and validates the result. Unknown fields are rejected.
func Parse(data []byte) (Job, error) {
	job := Defaults()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&job); err != nil && !errors.Is(err, io.EOF) {
		return Job{}, err
	}
	if err := job.applyEnv(); err != nil {
		return Job{}, err
	}
	if err := job.Validate(); err != nil {
		return Job{}, err
	}
	return job, nil
}

// Marshal encodes the job as YAML.
func (job Job) Marshal() ([]byte, error) {
	return yaml.Marshal(job)
}

func (job *Job) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvInput)); v != "" {
		job.Input = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutput)); v != "" {
		job.Output = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAccuracy)); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAccuracy, err)
		}
		job.Accuracy = f
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		job.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		job.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		job.Logging.File = v
	}
	return nil
}

// Validate checks that the job can be run. All problems are reported
// together.
func (job Job) Validate() error {
	var errs []error
	if job.Input == "" {
		errs = append(errs, errors.New("input is required"))
	}
	if job.Output == "" && job.Deform.Output == "" {
		errs = append(errs, errors.New("output or deform.output is required"))
	}
	if math.IsNaN(job.Accuracy) || job.Accuracy < 0 {
		errs = append(errs, fmt.Errorf("accuracy %g is negative", job.Accuracy))
	}
	if _, err := ParseColor(job.Fill); err != nil {
		errs = append(errs, fmt.Errorf("fill: %w", err))
	}
	if job.Stroke != "" {
		if _, err := ParseColor(job.Stroke); err != nil {
			errs = append(errs, fmt.Errorf("stroke: %w", err))
		}
	}
	if job.StrokeWidth < 0 {
		errs = append(errs, fmt.Errorf("stroke_width %g is negative", job.StrokeWidth))
	}
	if _, err := job.TraceParams(); err != nil {
		errs = append(errs, err)
	}
	if _, err := job.Transformation(); err != nil {
		errs = append(errs, err)
	}
	if _, err := job.DeformOptions(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// TraceParams converts the trace section into tracing parameters.
func (job Job) TraceParams() (trace.Params, error) {
	tc := job.Trace
	p := trace.Params{
		TurdSize:          tc.TurdSize,
		AlphaMax:          tc.AlphaMax,
		OptimizeCurve:     tc.OptimizeCurve,
		OptimizeTolerance: tc.OptimizeTolerance,
	}
	tp, err := trace.ParseTurnPolicy(tc.TurnPolicy)
	if err != nil {
		return trace.Params{}, err
	}
	p.TurnPolicy = tp
	switch strings.ToLower(tc.Threshold) {
	case "", "dark":
		p.Threshold = trace.Dark
	case "opaque":
		p.Threshold = trace.Opaque
	default:
		return trace.Params{}, fmt.Errorf("trace: unknown threshold %q: %w", tc.Threshold, vectorkit.ErrInvalidArgument)
	}
	if err := p.Validate(); err != nil {
		return trace.Params{}, err
	}
	return p, nil
}

// DeformOptions converts the deform section into resampling options.
func (job Job) DeformOptions() (*deform.Options, error) {
	interp, err := deform.ParseInterpolation(job.Deform.Interpolation)
	if err != nil {
		return nil, err
	}
	return &deform.Options{Interpolation: interp, FitBounds: job.Deform.FitBounds}, nil
}

// Transformation compiles the job's steps into a single transformation that
// applies them in order.
func (job Job) Transformation() (vectorkit.Transformation, error) {
	t := vectorkit.Identity
	for i, s := range job.Transforms {
		st, err := s.Transformation()
		if err != nil {
			return vectorkit.Transformation{}, fmt.Errorf("transforms[%d]: %w", i, err)
		}
		t = t.Then(st)
	}
	return t, nil
}

// Transformation returns the transformation described by s.
func (s Step) Transformation() (vectorkit.Transformation, error) {
	var t vectorkit.Transformation
	switch strings.ToLower(s.Op) {
	case "translate":
		t = vectorkit.Translate(s.X, s.Y)
	case "scale":
		t = vectorkit.Scale(s.X, s.Y)
	case "shear":
		t = vectorkit.Shear(s.X, s.Y)
	case "shear_degrees":
		t = vectorkit.ShearDegrees(s.X, s.Y)
	case "shear_radians":
		t = vectorkit.ShearRadians(s.X, s.Y)
	case "rotate_degrees":
		t = vectorkit.RotateDegrees(s.Angle)
	case "rotate_radians":
		t = vectorkit.RotateRadians(s.Angle)
	case "reflect":
		t = vectorkit.Reflect(s.AcrossX, s.AcrossY)
	default:
		return vectorkit.Transformation{}, fmt.Errorf("unknown op %q: %w", s.Op, vectorkit.ErrInvalidArgument)
	}
	if s.At != nil {
		t = vectorkit.TransformAt(vectorkit.Pt(s.At[0], s.At[1]), t)
	}
	if t.IsNaN() || t.IsInf() {
		return vectorkit.Transformation{}, fmt.Errorf("%s is not finite: %w", s.Op, vectorkit.ErrInvalidArgument)
	}
	if t.Determinant() == 0 {
		return vectorkit.Transformation{}, fmt.Errorf("%s collapses the plane (determinant 0): %w", s.Op, vectorkit.ErrInvalidArgument)
	}
	return t, nil
}

// ParseColor parses a hex color of the form #rgb, #rrggbb or #rrggbbaa. The
// leading # is optional.
func ParseColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]}) + "ff"
	case 6:
		h += "ff"
	case 8:
	default:
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, vectorkit.ErrInvalidArgument)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, vectorkit.ErrInvalidArgument)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
