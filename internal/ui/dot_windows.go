//go:build windows

package ui

import (
	"image"
	"image/color"
	"math"
	"os"

	"github.com/lxn/walk"

	"github.com/user/controlboard/internal/status"
)

var statusDotCache = make(map[bool]*walk.Bitmap)

func getStatusDot(ok bool) *walk.Bitmap {
	if bmp, found := statusDotCache[ok]; found {
		return bmp
	}
	c := healthColor(ok)
	bmp := createColoredDot(c.r, c.g, c.b, 12)
	if bmp != nil {
		statusDotCache[ok] = bmp
	}
	return bmp
}

func setDot(view *walk.ImageView, ok bool) {
	if view == nil {
		return
	}
	if dot := getStatusDot(ok); dot != nil {
		view.SetImage(dot)
	}
}

func createColoredDot(cr, cg, cb uint8, size int) *walk.Bitmap {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := color.RGBA{R: cr, G: cg, B: cb, A: 255}
	center := float64(size) / 2.0
	radius := center - 1.0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			if math.Sqrt(dx*dx+dy*dy) <= radius {
				img.Set(x, y, c)
			}
		}
	}
	bmp, err := walk.NewBitmapFromImage(img)
	if err != nil {
		return nil
	}
	return bmp
}

// createWindowIcon loads the all-green status badge as a walk.Icon.
func createWindowIcon() *walk.Icon {
	tmpFile, err := os.CreateTemp("", "controlboard-icon-*.ico")
	if err != nil {
		return nil
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(GetIcon(status.IconBoardNT)); err != nil {
		tmpFile.Close()
		return nil
	}
	tmpFile.Close()

	icon, err := walk.NewIconFromFile(tmpPath)
	if err != nil {
		return nil
	}
	return icon
}
