// Package media derives the gallery renditions: a JPEG thumbnail for grid
// views and a WebP copy of the full image for modern clients.
package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

// Renditions holds the derived file paths for one source image.
type Renditions struct {
	Source string
	Thumb  string
	Webp   string
}

const (
	thumbWidth  = 480
	thumbHeight = 480
	webpQuality = 85
)

// Derive creates the thumbnail and WebP renditions of srcPath in outDir.
// Both derivations run concurrently; if either fails the whole derivation
// fails and any partial output is left for the next run to overwrite.
func Derive(srcPath, outDir string) (*Renditions, error) {
	img, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	r := &Renditions{
		Source: srcPath,
		Thumb:  filepath.Join(outDir, base+"_thumb.jpg"),
		Webp:   filepath.Join(outDir, base+".webp"),
	}

	var g errgroup.Group
	g.Go(func() error {
		thumb := imaging.Fill(img, thumbWidth, thumbHeight, imaging.Center, imaging.Lanczos)
		if err := imaging.Save(thumb, r.Thumb, imaging.JPEGQuality(82)); err != nil {
			return fmt.Errorf("thumbnail: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		f, err := os.Create(r.Webp)
		if err != nil {
			return fmt.Errorf("webp: %w", err)
		}
		defer f.Close()
		if err := webp.Encode(f, img, &webp.Options{Quality: webpQuality}); err != nil {
			return fmt.Errorf("webp encode: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return r, nil
}

// DeriveAll processes several source images with bounded concurrency.
func DeriveAll(srcPaths []string, outDir string, parallel int) ([]*Renditions, error) {
	if parallel <= 0 {
		parallel = 4
	}
	out := make([]*Renditions, len(srcPaths))
	var g errgroup.Group
	g.SetLimit(parallel)
	for i, src := range srcPaths {
		i, src := i, src
		g.Go(func() error {
			r, err := Derive(src, outDir)
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
