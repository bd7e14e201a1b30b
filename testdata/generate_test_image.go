// Test image generator for creating sample mockups for the image scanner
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

func main() {
	// Low-contrast mockup: a white canvas with a faint panel and the
	// classic near-miss body grey. Scanning this should flag pairs.
	write("mockup_low_contrast.png", []color.RGBA{
		{R: 255, G: 255, B: 255, A: 255}, // canvas
		{R: 240, G: 240, B: 240, A: 255}, // panel
		{R: 119, G: 119, B: 119, A: 255}, // body grey, 4.48:1 on white
	})

	// High-contrast mockup: dark canvas with white text and an amber
	// accent. Scanning this should come back clean at AA.
	write("mockup_high_contrast.png", []color.RGBA{
		{R: 17, G: 24, B: 39, A: 255}, // canvas
		{R: 255, G: 255, B: 255, A: 255},
		{R: 245, G: 158, B: 11, A: 255},
	})
}

// write renders the first colour as the dominant canvas (top 60%) and
// the rest as equal bands below, then saves the PNG next to this file.
func write(name string, colors []color.RGBA) {
	const width, height = 300, 200
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	canvasBottom := height * 6 / 10
	for y := 0; y < canvasBottom; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, colors[0])
		}
	}

	bands := colors[1:]
	bandHeight := (height - canvasBottom) / len(bands)
	for i, c := range bands {
		top := canvasBottom + i*bandHeight
		for y := top; y < top+bandHeight && y < height; y++ {
			for x := 0; x < width; x++ {
				img.Set(x, y, c)
			}
		}
	}

	f, err := os.Create(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", name, err)
		os.Exit(1)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding %s: %v\n", name, err)
		os.Exit(1)
	}
	fmt.Printf("Created %s\n", name)
}
