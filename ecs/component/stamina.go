package component

import "github.com/milk9111/stamina/stamina"

// StaminaComponent holds an actor's stamina controller. The world releases
// the controller's regeneration timer when the component goes away.
var StaminaComponent = NewComponent[stamina.Controller]()

// Fatigued is a tag present while an actor's stamina sits at or under its
// fatigue threshold. It is toggled by the controller's fatigue signal.
type Fatigued struct{}

var FatiguedComponent = NewComponent[Fatigued]()
