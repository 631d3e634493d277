package component

import "github.com/milk9111/platformer/motor"

// CharacterMotor owns the motor driving an entity and remembers the ground
// state of the previous tick to detect landings.
type CharacterMotor struct {
	Motor        *motor.Motor
	WasGrounded  bool
	PrefabSource string
}

var CharacterMotorComponent = NewComponent[CharacterMotor]()
