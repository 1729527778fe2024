package wizard

// Trigger represents a user or network event that can cause a step transition
type Trigger string

const (
	TriggerNext    Trigger = "NEXT"
	TriggerBack    Trigger = "BACK"
	TriggerSubmit  Trigger = "SUBMIT"
	TriggerSucceed Trigger = "SUCCEED"
	TriggerFail    Trigger = "FAIL"
	TriggerCancel  Trigger = "CANCEL"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
