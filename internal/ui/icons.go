package ui

import (
	"math"
	"sync"

	"github.com/user/controlboard/internal/status"
)

const iconSize = 32

// rgb is a tray icon color.
type rgb struct{ r, g, b byte }

var (
	colorOK   = rgb{30, 200, 90}
	colorDown = rgb{220, 55, 55}
	colorGap  = rgb{40, 40, 40}
)

var (
	iconOnce  sync.Once
	iconCache map[status.IconState][]byte
)

// GetIcon returns the ICO data for the given icon state. Icons are
// generated once and cached.
func GetIcon(state status.IconState) []byte {
	iconOnce.Do(func() {
		iconCache = make(map[status.IconState][]byte, len(status.States()))
		for _, s := range status.States() {
			iconCache[s] = GenerateStatusIcon(s)
		}
	})
	return iconCache[state]
}

func healthColor(ok bool) rgb {
	if ok {
		return colorOK
	}
	return colorDown
}

// GenerateStatusIcon renders a round badge at 32x32 with transparent
// background. The left half shows the control board health, the right
// half the network-table health.
func GenerateStatusIcon(state status.IconState) []byte {
	pixels := make([]byte, iconSize*iconSize*4)

	setPx := func(x, y int, c rgb, a byte) {
		if x < 0 || x >= iconSize || y < 0 || y >= iconSize {
			return
		}
		off := ((iconSize-1-y)*iconSize + x) * 4
		ea := float64(pixels[off+3]) / 255.0
		na := float64(a) / 255.0
		oa := na + ea*(1-na)
		if oa > 0 {
			pixels[off+0] = byte((float64(c.b)*na + float64(pixels[off+0])*ea*(1-na)) / oa)
			pixels[off+1] = byte((float64(c.g)*na + float64(pixels[off+1])*ea*(1-na)) / oa)
			pixels[off+2] = byte((float64(c.r)*na + float64(pixels[off+2])*ea*(1-na)) / oa)
			pixels[off+3] = byte(oa * 255)
		}
	}

	left := healthColor(state.BoardOK())
	right := healthColor(state.NetworkTableOK())

	const c = iconSize / 2.0
	const radius = c - 1.0

	// Disc, anti-aliased on the rim.
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			d := math.Hypot(fx-c, fy-c)
			if d > radius {
				continue
			}
			a := byte(255)
			if d > radius-1.0 {
				a = byte((radius - d) * 255)
			}
			col := right
			if fx < c {
				col = left
			}
			setPx(x, y, col, a)
		}
	}

	// Divider between the halves.
	for y := 2; y < iconSize-2; y++ {
		setPx(iconSize/2-1, y, colorGap, 200)
		setPx(iconSize/2, y, colorGap, 200)
	}

	return buildICO(iconSize, pixels)
}

// buildICO creates a valid ICO file from BGRA pixel data
func buildICO(size int, pixels []byte) []byte {
	const dibHeaderSize = 40
	pixelDataSize := size * size * 4
	maskRowSize := ((size + 31) / 32) * 4
	maskSize := maskRowSize * size
	imageDataSize := dibHeaderSize + pixelDataSize + maskSize
	headerSize := 6 + 16

	buf := make([]byte, 0, headerSize+imageDataSize)

	// ICONDIR
	buf = append(buf, 0, 0)
	buf = append(buf, 1, 0) // ICO type
	buf = append(buf, 1, 0) // 1 image

	// ICONDIRENTRY
	buf = append(buf, byte(size))
	buf = append(buf, byte(size))
	buf = append(buf, 0)     // No palette
	buf = append(buf, 0)     // Reserved
	buf = append(buf, 1, 0)  // Planes
	buf = append(buf, 32, 0) // BPP

	imgSize := uint32(imageDataSize)
	buf = append(buf, byte(imgSize), byte(imgSize>>8), byte(imgSize>>16), byte(imgSize>>24))
	off := uint32(headerSize)
	buf = append(buf, byte(off), byte(off>>8), byte(off>>16), byte(off>>24))

	// BITMAPINFOHEADER
	buf = append(buf, 40, 0, 0, 0)
	buf = append(buf, byte(size), 0, 0, 0)
	h2 := size * 2
	buf = append(buf, byte(h2), 0, 0, 0)
	buf = append(buf, 1, 0)
	buf = append(buf, 32, 0)
	buf = append(buf, 0, 0, 0, 0) // No compression
	pxSize := uint32(pixelDataSize)
	buf = append(buf, byte(pxSize), byte(pxSize>>8), byte(pxSize>>16), byte(pxSize>>24))
	buf = append(buf, 0, 0, 0, 0)
	buf = append(buf, 0, 0, 0, 0)
	buf = append(buf, 0, 0, 0, 0)
	buf = append(buf, 0, 0, 0, 0)

	// Pixel data (already bottom-up BGRA)
	buf = append(buf, pixels...)

	// AND mask
	buf = append(buf, make([]byte, maskSize)...)

	return buf
}
