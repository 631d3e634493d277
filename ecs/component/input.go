package component

// Input stores per-tick intent for an entity, whoever produced it.
type Input struct {
	MoveX float64
	// Jump is true while the jump control is held.
	Jump bool
	// JumpPressed is true only on the tick the jump control went down.
	JumpPressed bool
}

var InputComponent = NewComponent[Input]()
