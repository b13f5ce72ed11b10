// Package media moves frames between images, video files and gonum
// matrices.
//
// Still images are decoded and encoded with github.com/disintegration/imaging.
// Video goes through github.com/unixpickle/ffmpego, which shells out to an
// ffmpeg binary on PATH.
package media
