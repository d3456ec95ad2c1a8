// Command atlasdump warms a glyph cache and writes its atlas pages as PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/gogpu/glyphatlas"
	"github.com/gogpu/glyphatlas/atlas"
	"github.com/gogpu/glyphatlas/glyphcache"
	"github.com/gogpu/glyphatlas/raster"
)

type options struct {
	font     string
	size     int
	page     int
	text     string
	out      string
	backend  string
	rotate   bool
	scale    int
	sheet    bool
	verbose  bool
	listOnly bool
}

func main() {
	var opts options
	flag.StringVar(&opts.font, "font", raster.BuiltinFontName, "font name or file path")
	flag.IntVar(&opts.size, "size", 32, "pixel height")
	flag.IntVar(&opts.page, "page", 512, "atlas page size")
	flag.StringVar(&opts.text, "text", "", "extra text to load after ASCII")
	flag.StringVar(&opts.out, "out", ".", "output directory")
	flag.StringVar(&opts.backend, "backend", "ximage", "rasterizer: ximage or gotext")
	flag.BoolVar(&opts.rotate, "rotate", false, "allow rotated glyphs")
	flag.IntVar(&opts.scale, "scale", 1, "nearest-neighbor upscale factor for written images")
	flag.BoolVar(&opts.sheet, "sheet", false, "also write all pages side by side to atlas.png")
	flag.BoolVar(&opts.verbose, "v", false, "log cache activity to stderr")
	flag.BoolVar(&opts.listOnly, "list", false, "list system fonts and exit")
	flag.Parse()

	if opts.listOnly {
		for _, name := range raster.SystemFonts() {
			fmt.Println(name)
		}
		return
	}

	if opts.verbose {
		glyphatlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := run(opts, os.Stdout); err != nil {
		log.Fatalf("atlasdump: %v", err)
	}
}

func run(opts options, w io.Writer) error {
	var r raster.Rasterizer
	switch opts.backend {
	case "ximage":
		r = raster.NewXImage()
	case "gotext":
		r = raster.NewGoText()
	default:
		return fmt.Errorf("unknown backend %q", opts.backend)
	}

	cfg := glyphcache.DefaultConfig()
	cfg.FontName = opts.font
	cfg.PixelHeight = opts.size
	cfg.PageSize = opts.page
	cfg.AllowRotation = opts.rotate

	alloc := atlas.NewAlphaAllocator()
	cache, err := glyphcache.New(cfg, r, alloc)
	if err != nil {
		return err
	}
	if err := cache.Load(opts.text); err != nil {
		return err
	}

	if opts.scale < 1 {
		opts.scale = 1
	}
	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return err
	}

	pages := cache.Pages()
	images := make([]image.Image, 0, len(pages))
	for _, p := range pages {
		img, err := alloc.Image(p.Surface())
		if err != nil {
			return err
		}
		images = append(images, img)

		path := filepath.Join(opts.out, fmt.Sprintf("page-%d.png", p.Index()))
		if err := save(path, img, opts.scale); err != nil {
			return err
		}
		info := p.Info()
		fmt.Fprintf(w, "%s: %d glyphs, %.1f%% used\n", path, info.Placed, info.Utilization*100)
	}

	if opts.sheet && len(images) > 0 {
		path := filepath.Join(opts.out, "atlas.png")
		if err := save(path, contactSheet(images, cfg.PageSize), opts.scale); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %d pages\n", path, len(images))
	}

	st := cache.Stats()
	fmt.Fprintf(w, "%s @ %dpx: %d entries on %d pages\n", cache.FontName(), opts.size, st.Entries, st.Pages)
	return nil
}

// save writes img upscaled by scale. The format follows the file extension.
func save(path string, img image.Image, scale int) error {
	if scale > 1 {
		b := img.Bounds()
		img = imaging.Resize(img, b.Dx()*scale, b.Dy()*scale, imaging.NearestNeighbor)
	}
	return imaging.Save(img, path)
}

// contactSheet places the pages left to right on a black background, one
// pixel apart.
func contactSheet(pages []image.Image, size int) image.Image {
	sheet := imaging.New(len(pages)*(size+1)-1, size, image.Black)
	for i, p := range pages {
		sheet = imaging.Overlay(sheet, p, image.Pt(i*(size+1), 0), 1)
	}
	return sheet
}
