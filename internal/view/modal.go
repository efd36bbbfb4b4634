package view

// ModalResultKind tells the opener how a modal was closed.
type ModalResultKind int

// The zero value is ModalCancel.
const (
	ModalCancel ModalResultKind = iota
	ModalExit
)

// String returns "exit" or "cancel".
func (k ModalResultKind) String() string {
	if k == ModalExit {
		return "exit"
	}
	return "cancel"
}

// ModalResult is delivered to the opener of a modal when it closes.
type ModalResult struct {
	Kind ModalResultKind
	Data any
}

// Exit returns a result confirming the modal, optionally carrying data.
func Exit(data any) ModalResult {
	return ModalResult{Kind: ModalExit, Data: data}
}

// Cancel returns a result dismissing the modal.
func Cancel() ModalResult {
	return ModalResult{Kind: ModalCancel}
}

// Confirmed reports whether the modal was closed with Exit.
func (r ModalResult) Confirmed() bool {
	return r.Kind == ModalExit
}
