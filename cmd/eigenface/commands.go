// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/eigenface/pca"
	"github.com/katalvlaran/eigenface/ppm"
	"github.com/katalvlaran/eigenface/store"
)

func runTrain(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	name := fs.String("db", "", "database name in the store")
	configPath := fs.String("config", "", "configuration file (toml, yaml or json)")
	if err = parseFlags(fs, args, stderr); err != nil {
		return err
	}
	if *name == "" {
		return usageErr(fs, stderr, "-db is required")
	}
	if fs.NArg() == 0 {
		return usageErr(fs, stderr, "no training images")
	}

	e, err := newEnv("train", *configPath, stderr)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, e.close()) }()
	defer e.log.LogDuration(ctx, "train", "db", *name, "images", fs.NArg())()

	paths := fs.Args()
	images, err := ppm.LoadColumns(ctx, paths, e.conf.Backend.Workers)
	if err != nil {
		return err
	}
	db, err := pca.Train(ctx, images, labelsOf(paths), e.pcaOptions()...)
	if err != nil {
		return err
	}
	if err = store.SaveDatabase(ctx, e.store, *name, db); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "trained %s: %d images, %d pixels, %d components\n",
		*name, db.Len(), db.Pixels(), db.Components())

	return nil
}

func runRecognize(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	fs := flag.NewFlagSet("recognize", flag.ContinueOnError)
	name := fs.String("db", "", "database name in the store")
	configPath := fs.String("config", "", "configuration file (toml, yaml or json)")
	threshold := fs.Float64("threshold", -1, "reject matches farther than this; overrides recognition.threshold when >= 0")
	if err = parseFlags(fs, args, stderr); err != nil {
		return err
	}
	if *name == "" {
		return usageErr(fs, stderr, "-db is required")
	}
	if fs.NArg() == 0 {
		return usageErr(fs, stderr, "no query images")
	}

	e, err := newEnv("recognize", *configPath, stderr)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, e.close()) }()
	if *threshold >= 0 {
		e.conf.Recognition.Threshold = *threshold
	}

	db, err := store.LoadDatabase(ctx, e.store, *name)
	if err != nil {
		return err
	}
	rec, err := pca.NewRecognizer(db, e.pcaOptions()...)
	if err != nil {
		return err
	}
	paths := fs.Args()
	images, err := ppm.LoadColumns(ctx, paths, e.conf.Backend.Workers)
	if err != nil {
		return err
	}
	matches, err := rec.RecognizeBatch(ctx, images)
	if err != nil {
		return err
	}
	for i, m := range matches {
		verdict := "known"
		if !m.Known {
			verdict = "unknown"
		}
		fmt.Fprintf(stdout, "%s\t%s\t%.6g\t%s\n", paths[i], m.Label, m.Distance, verdict)
	}

	return nil
}

func runExport(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	name := fs.String("db", "", "database name in the store")
	configPath := fs.String("config", "", "configuration file (toml, yaml or json)")
	width := fs.Int("width", 0, "image width in pixels")
	height := fs.Int("height", 0, "image height in pixels")
	out := fs.String("out", "", "output directory")
	if err = parseFlags(fs, args, stderr); err != nil {
		return err
	}
	switch {
	case *name == "":
		return usageErr(fs, stderr, "-db is required")
	case *out == "":
		return usageErr(fs, stderr, "-out is required")
	case *width <= 0 || *height <= 0:
		return usageErr(fs, stderr, "-width and -height must be positive")
	}

	e, err := newEnv("export", *configPath, stderr)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, e.close()) }()

	db, err := store.LoadDatabase(ctx, e.store, *name)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(*out, 0o755); err != nil {
		return err
	}
	// the mean face is a real image; eigenfaces are rescaled to be visible
	if err = ppm.WriteColumnFile(filepath.Join(*out, "mean.ppm"), db.Mean, 0, *width, *height, false); err != nil {
		return err
	}
	for k := 0; k < db.Components(); k++ {
		path := filepath.Join(*out, fmt.Sprintf("eigenface-%03d.ppm", k))
		if err = ppm.WriteColumnFile(path, db.Eigenfaces, k, *width, *height, true); err != nil {
			return err
		}
	}
	fmt.Fprintf(stdout, "exported %s: mean and %d eigenfaces to %s\n", *name, db.Components(), *out)

	return nil
}

// labelsOf names each image after its file, without directory or extension.
func labelsOf(paths []string) []string {
	labels := make([]string, len(paths))
	for i, p := range paths {
		base := filepath.Base(p)
		labels[i] = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return labels
}
