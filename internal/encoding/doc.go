// Package encoding turns classified input files into compressed outputs.
//
// Video work is policy driven: a VideoEncodingConfig selects the codec, rate
// control, and resize filter, BuildVideoArgs renders the ffmpeg argument list,
// and VideoEncoder runs the probe/encode sequence through a Toolchain so the
// argument list can be asserted without spawning processes. Still images are
// decoded and re-encoded in-process with the imaging library.
//
// Every failure carries one of the services sentinel markers so the pipeline
// can log it per file and keep going.
package encoding
