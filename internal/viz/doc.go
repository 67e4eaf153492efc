// Package viz renders the simulation in the terminal.
//
//   - [Model]: live Bubble Tea view of the zoomed-in box
//   - [Canvas]: braille pixel canvas used for the box, [Frame] draws one
//   - [RenderOrbital]: shaded text image of an orbital
//   - [PlotStates], [PlotSpectrum], [SpectrumBars]: plots of stored runs
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset atom and light
//	L     - Toggle the light
//	W / M - White or monochromatic light
//	←/→   - Wavelength by 1nm, [ ] by 10nm
//	S     - Cycle speed
//	?     - Show help overlay
package viz
