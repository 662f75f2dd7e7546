package table

// ConfirmState tracks a row's delete confirmation:
// idle → confirm-pending (delete click) → idle (cancel) | confirmed.
type ConfirmState int

const (
	ConfirmIdle ConfirmState = iota
	ConfirmPending
)

// DeleteConfirm gates row deletion behind an explicit second action. The
// delete callback must only fire after Confirm returns ok.
type DeleteConfirm struct {
	state ConfirmState
	id    string
}

// Request moves to confirm-pending for the given row. Requesting a
// different row while pending re-targets the confirmation.
func (d *DeleteConfirm) Request(id string) {
	d.state = ConfirmPending
	d.id = id
}

// Confirm resolves a pending confirmation for the given row and reports
// whether the delete should proceed. Confirming a row that was never
// requested, or a different row than the pending one, is a no-op: the
// pending confirmation stays armed.
func (d *DeleteConfirm) Confirm(id string) bool {
	if d.state != ConfirmPending || d.id != id {
		return false
	}
	d.state = ConfirmIdle
	d.id = ""
	return true
}

// Cancel dismisses a pending confirmation with no effect.
func (d *DeleteConfirm) Cancel() {
	d.state = ConfirmIdle
	d.id = ""
}

// Pending reports whether id is awaiting confirmation.
func (d *DeleteConfirm) Pending(id string) bool {
	return d.state == ConfirmPending && d.id == id
}
