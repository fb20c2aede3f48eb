// Command vectorkit traces a bitmap into vector paths, transforms them, and
// renders the result.
//
// Usage:
//
//	vectorkit -config job.yaml
//
// See package internal/config for the format of job files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"os"

	"honnef.co/go/vectorkit"
	"honnef.co/go/vectorkit/deform"
	"honnef.co/go/vectorkit/internal/config"
	applog "honnef.co/go/vectorkit/internal/log"
	"honnef.co/go/vectorkit/raster"
	"honnef.co/go/vectorkit/trace"
)

func main() {
	path := flag.String("config", "", "path of the job file")
	flag.Parse()
	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: vectorkit -config job.yaml")
		os.Exit(2)
	}

	job, err := config.Load(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applog.Init(applog.Options{
		Level:  job.Logging.Level,
		Format: job.Logging.Format,
		File:   job.Logging.File,
	})
	defer applog.Close()
	vectorkit.SetLogger(applog.WithComponent("vectorkit"))

	l := applog.WithComponent("cli")
	if err := run(job, l); err != nil {
		l.Error("job failed", slog.Any("err", err))
		applog.Close()
		os.Exit(1)
	}
}

func run(job config.Job, l *slog.Logger) error {
	img, err := readPNG(job.Input)
	if err != nil {
		return err
	}
	params, err := job.TraceParams()
	if err != nil {
		return err
	}
	t, err := job.Transformation()
	if err != nil {
		return err
	}

	pl, err := trace.Trace(img, params)
	if err != nil {
		return err
	}
	pl.TransformInPlace(t)
	l.Info("traced",
		slog.String("input", job.Input),
		slog.Int("paths", pl.Len()),
		slog.Float64("area", pl.Area()),
		slog.String("transformation", t.String()))

	if job.Output != "" {
		out, err := render(job, pl, img.Bounds())
		if err != nil {
			return err
		}
		if err := writePNG(job.Output, out); err != nil {
			return err
		}
		l.Info("rendered", slog.String("output", job.Output), slog.String("bounds", out.Bounds().String()))
	}

	if job.Deform.Output != "" {
		opts, err := job.DeformOptions()
		if err != nil {
			return err
		}
		out, err := deform.AffineTransformImage(img, t, opts)
		if err != nil {
			return err
		}
		if err := writePNG(job.Deform.Output, out); err != nil {
			return err
		}
		l.Info("deformed", slog.String("output", job.Deform.Output), slog.String("bounds", out.Bounds().String()))
	}
	return nil
}

// render draws pl onto a transparent canvas. Path coordinates are pixel
// coordinates of the canvas, which starts at the origin and reaches the far
// corner of the paths' bounding box; anything at negative coordinates is cut
// off. Without any paths in view, the canvas has the size of the input.
func render(job config.Job, pl *vectorkit.PathList, input image.Rectangle) (*image.RGBA, error) {
	fill, err := config.ParseColor(job.Fill)
	if err != nil {
		return nil, err
	}

	var r image.Rectangle
	if bb := pl.BoundingBox(); !bb.IsEmpty() {
		hw := 0.0
		if job.Stroke != "" {
			hw = job.StrokeWidth / 2
		}
		bb = bb.Inflate(hw, hw)
		r = image.Rect(0, 0, int(math.Ceil(max(bb.X1, 0))), int(math.Ceil(max(bb.Y1, 0))))
	}
	if r.Empty() {
		r = image.Rect(0, 0, input.Dx(), input.Dy())
	}
	dst := image.NewRGBA(r)

	raster.FillPathList(dst, pl, fill, job.Accuracy)
	if job.Stroke != "" {
		stroke, err := config.ParseColor(job.Stroke)
		if err != nil {
			return nil, err
		}
		raster.StrokePathList(dst, pl, stroke, job.StrokeWidth, job.Accuracy)
	}
	return dst, nil
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
