package assignment

// Events published after a lineage mutation commits. Subscribers get the
// version that is CURRENT (or just terminated) after the operation.

type CreatedEvent struct {
	Result Assignment
}

type UpdatedEvent struct {
	Previous Assignment
	Result   Assignment
}

type TerminatedEvent struct {
	Result Assignment
}
