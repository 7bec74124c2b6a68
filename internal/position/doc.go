// Package position reconstructs the wrapping position counter from the
// trailing payload field of status messages.
//
// The field is framed by a prefix ([1,7] or [9]) and a two-symbol
// delimiter ((7,9) or (9,9)) splitting it into two regions, each an
// active-low LSB-first binary waveform: every (L,H) symbol pair
// contributes L one-bits then H zero-bits. The region after the
// delimiter is the primary counter (9 bits, wraps mod 512); the region
// before it is a redundant check offset by a phase-dependent constant.
// Pairs inflated by carrier crosstalk are filtered out by an H-duration
// threshold before bit reconstruction.
package position
