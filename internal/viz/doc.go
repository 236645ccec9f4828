// Package viz renders a scene in the terminal with Bubble Tea.
//
//   - [Model]: live view that steps the scene on every tick and forwards
//     edit keys to a [control.Manual]
//   - [Picker]: premade scene menu that opens a [Model]
//   - [Canvas]: braille pixel canvas
//   - [Camera]: orbit camera projecting world space onto the canvas
//
// # Key Bindings
//
//	Space    - Pause/Resume
//	.        - Single step while paused
//	< / >    - Halve / double steps per frame
//	r        - Reset to the loaded scene
//	e / q    - Select next / previous body
//	Esc      - Deselect
//	R / F    - Grow / shrink radius
//	t / g    - Raise / lower density
//	h j k l  - Move selected body along -x -y +y +x
//	u / i    - Move selected body along -z / +z
//	x y z    - Rotate camera (shift reverses)
//	+ / -    - Zoom
//	`        - Remove every simulated body
//	1..9     - Add a premade scene
//	Enter    - Launch the held body along the view axis
//	[ / ]    - Launch speed down / up, 0 stops
//	Tab      - Cycle themes
//	G        - Start / stop GIF recording
//	?        - Help
//	Ctrl+C   - Quit
package viz
