// Package control maps user input onto scene edits.
//
// Both renderers translate their own key events into an [Action] and hand it
// to a [Manual], which performs the edit between steps:
//
//	m := control.NewManual(sc, cfg.Interaction, cfg.Dt)
//	if a, ok := control.KeyAction("R"); ok {
//	    err := m.Apply(a) // grow the selected or held body
//	}
//
// Edits that lack a target report the scene package's sentinel errors so the
// renderer can show them in its status line.
package control
