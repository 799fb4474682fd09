// Package imgio reads source images and writes rendered canvases.
//
// It is the boundary between files (or byte streams) and the in-memory
// pixel data the decomposition works on:
//
//   - [Open] and [Decode] turn PNG, JPEG, GIF, BMP, TIFF or WebP data into a
//     [Source], which implements quadtree.PixelSource
//   - [FileSink] encodes a canvas by file extension or explicit [Format]
//
// Decoding applies EXIF orientation, so a portrait phone photo decomposes
// upright. Errors carry pkg/errors codes: INVALID_SOURCE for unreadable
// input and SINK_WRITE_FAILURE for output that cannot be encoded or written.
package imgio
