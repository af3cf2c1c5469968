// Package view renders the splash sequence.
//
// Rendering is a pure function of a [Frame]: the animation state plus the
// viewport, animation progress and loaded assets. The same frame always
// renders to the same string, and exactly one [Variant] is chosen for a frame,
// by its phase alone:
//
//   - [WelcomeVariant]: the looping background under a translucent overlay,
//     with the welcome button fading in or out.
//   - [ZoomingVariant]: the same background scaled about its center by the
//     frame's zoom factor. No button.
//   - [BlackScreenVariant]: solid backdrop with centered text.
//
// A zero-sized viewport renders the empty string.
package view
