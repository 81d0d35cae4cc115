package component

// ActorScript points an actor at a tengo behaviour script under prefabs/.
type ActorScript struct {
	Path string
}

var ActorScriptComponent = NewComponent[ActorScript]()
