// Package spectrum turns a per-frame projection series into a magnitude
// spectrum and locates its dominant bin.
//
// [Transform] computes the unnormalised forward DFT
//
//	X[k] = sum_j x[j] * exp(-i*2*pi*j*k/N)
//
// with algo-fft, falling back to gonum for lengths algo-fft cannot plan.
// [Compute] returns |X[k]|. Peak extraction is a separate, caller-level step:
// [SuppressEdges] zeroes the first and last n bins (DC leakage and boundary
// artifacts) and [PeakBin] returns the lowest index of the maximum.
package spectrum
