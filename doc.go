// Package texel is a pixel-data engine: it describes how logical color and
// alpha values map onto bit patterns stored in linear buffers, under plain,
// tiled, mirrored, transposed and cropped coordinate layouts, and how those
// encodings correspond to hardware texture formats.
//
// The work is split across sub-packages:
//
//   - [github.com/mrjoshuak/go-texel/numeric]: per-field numeric codecs
//   - [github.com/mrjoshuak/go-texel/format]: format descriptors
//   - [github.com/mrjoshuak/go-texel/layout]: coordinate layouts
//   - [github.com/mrjoshuak/go-texel/buffer]: typed primitive buffers
//   - [github.com/mrjoshuak/go-texel/pixel]: pixel arrays, views and bulk copy
//   - [github.com/mrjoshuak/go-texel/hwformat]: the hardware format catalog
//
// This package only holds the logger shared by the sub-packages. Texel
// produces no log output until [SetLogger] is called.
package texel
