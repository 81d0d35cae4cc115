package component

import "github.com/google/uuid"

// Actor identifies a simulated character. ID is stable for the life of the
// process and is attached to every log line about the actor.
type Actor struct {
	ID        uuid.UUID
	Name      string
	Archetype string
}

var ActorComponent = NewComponent[Actor]()
