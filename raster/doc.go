// Package raster provides a small owned RGB image used as the input of the
// PPM codec and the image savers.
//
// Pixels are stored row-major with three bytes per pixel (R, G, B). An Image
// is owned by its creator; Clone returns an independent copy.
package raster
