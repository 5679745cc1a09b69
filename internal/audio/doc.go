// Package audio renders the ambient noise source: a looping buffer of white
// noise fed through a biquad low-pass filter and a gain stage, with the gain
// moved by linear ramps measured in rendered samples. Output is 16-bit mono
// PCM in a WAV container, suitable for an endless HTTP stream.
package audio
