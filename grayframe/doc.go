// Package grayframe provides the 8-bit grayscale frame buffer held by the
// simulated SLM.
//
// A frame is a grid of unsigned 8-bit samples with exactly Height() rows and
// Width() columns. Frames are built wholesale from a flat buffer:
//
//	f, err := grayframe.Reshape(raw, 512, 512)
//	if errors.Is(err, grayframe.ErrShapeMismatch) {
//		// len(raw) != 512*512
//	}
//
//	// Row 50, column 50
//	v := f.Sample(50, 50)
//
// Frame implements image.Image and draw.Image, so it works with the standard
// image packages:
//
//	draw.Draw(f, f.Bounds(), image.NewUniform(color.Gray{Y: 128}), image.Point{}, draw.Src)
//	png.Encode(w, f.Gray())
package grayframe
