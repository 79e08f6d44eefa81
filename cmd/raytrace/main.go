// Copyright © 2024 Galvanized Logic Inc.

// Command raytrace renders a scene file to an image. Usage:
//
//	raytrace [-out path] [-profile path.yaml] [-sky dir] scene.txt
//
// Exit code is 0 on success, nonzero on scene-load failure, per spec.md §6.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lumenray/raytrace"
	"github.com/lumenray/raytrace/load"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("raytrace", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	outPath := fs.String("out", "", "output image path (.ppm or .bmp); defaults to the scene's image_name")
	profilePath := fs.String("profile", "", "optional YAML render profile overriding numeric options")
	skyDir := fs.String("sky", "", "optional directory containing the six box_*.bmp skybox faces")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: raytrace [-out path] [-profile path.yaml] [-sky dir] scene.txt")
		return 2
	}
	scenePath := fs.Arg(0)

	sc, err := load.LoadSceneFile(scenePath)
	if err != nil {
		slog.Error("scene load failed", "scene", scenePath, "err", err)
		return 1
	}

	if *profilePath != "" {
		attrs, err := load.LoadProfile(*profilePath)
		if err != nil {
			slog.Error("profile load failed", "profile", *profilePath, "err", err)
			return 1
		}
		sc.Options = sc.Options.Apply(attrs...)
	}

	if *skyDir != "" {
		sky, err := load.LoadSkybox(*skyDir)
		if err != nil {
			slog.Error("skybox load failed", "dir", *skyDir, "err", err)
			return 1
		}
		sc.Sky = sky
	}

	dest := *outPath
	if dest == "" {
		dest = sc.ImageName
	}
	if dest == "" {
		dest = "out.ppm"
	}

	width, height := sc.Options.Dimensions()
	slog.Info("rendering", "scene", scenePath, "width", width, "height", height, "out", dest)

	fb := raytrace.Render(sc.Scene)

	out, err := os.Create(dest)
	if err != nil {
		slog.Error("could not create output file", "path", dest, "err", err)
		return 1
	}
	defer out.Close()

	if strings.EqualFold(filepath.Ext(dest), ".bmp") {
		err = load.WriteBMP(out, fb, width, height)
	} else {
		err = load.WritePPM(out, fb, width, height)
	}
	if err != nil {
		slog.Error("could not write output image", "path", dest, "err", err)
		return 1
	}
	slog.Info("render complete", "out", dest)
	return 0
}
