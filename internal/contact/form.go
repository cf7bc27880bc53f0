package contact

// State is a step of the submission flow.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSuccess
	StateFallbackSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFallbackSuccess:
		return "fallback_success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether s ends a submission.
func (s State) Terminal() bool {
	return s == StateSuccess || s == StateFallbackSuccess || s == StateError
}

// Form is the contact form as the visitor sees it: the draft, the in-flight
// flag, and the last outcome text. Error and Success are never both set.
type Form struct {
	Draft   Draft
	State   State
	Loading bool
	Error   string
	Success string

	// MailtoURI is set when the mail-client fallback was taken.
	MailtoURI string
}

// NewForm returns an empty, idle form.
func NewForm() *Form {
	return &Form{}
}

// Edit updates one field. Any edit puts the form back to idle.
func (f *Form) Edit(field Field, value string) {
	switch field {
	case FieldName:
		f.Draft.Name = value
	case FieldEmail:
		f.Draft.Email = value
	case FieldMessage:
		f.Draft.Message = value
	}
	f.State = StateIdle
}

// CanSubmit reports whether the submit control is interactive.
func (f *Form) CanSubmit() bool {
	return !f.Loading
}

// ButtonLabel is the submit control's text.
func (f *Form) ButtonLabel() string {
	if f.Loading {
		return "Sending..."
	}
	return "Send Message"
}

func (f *Form) reset() {
	f.Draft = Draft{}
}

func (f *Form) clearMessages() {
	f.Error = ""
	f.Success = ""
	f.MailtoURI = ""
}
