package component

import "github.com/milk9111/platformer/script"

// ScriptInput replaces device input with a tengo program.
type ScriptInput struct {
	Script *script.InputScript
	Tick   int
	// JumpWasHeld tracks the previous tick for edge detection.
	JumpWasHeld bool
}

var ScriptInputComponent = NewComponent[ScriptInput]()
