package component

// StaminaConsumeRequest asks the stamina system to spend Cost on its next
// update. The request is removed once processed, successful or not.
type StaminaConsumeRequest struct {
	Cost int
}

var StaminaConsumeRequestComponent = NewComponent[StaminaConsumeRequest]()

// StaminaRestoreRequest asks the stamina system to restore Amount at once.
type StaminaRestoreRequest struct {
	Amount int
}

var StaminaRestoreRequestComponent = NewComponent[StaminaRestoreRequest]()
