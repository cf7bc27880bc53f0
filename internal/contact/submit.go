package contact

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Outcome texts shown to the visitor.
const (
	MsgSent     = "Message sent — I will get back to you soon."
	MsgFallback = "Opened your mail client as a fallback."
)

// TransportErrorMessage is shown when the delivery endpoint could not be
// reached at all.
func TransportErrorMessage(address string) string {
	return "An error occurred while sending — please try again or email " + address
}

// RejectedError is returned by a Deliverer when the endpoint answered with a
// non-success status.
type RejectedError struct {
	StatusCode int
	Body       string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("contact endpoint rejected submission: status %d", e.StatusCode)
}

// Deliverer sends a validated draft to the delivery endpoint.
type Deliverer interface {
	Deliver(ctx context.Context, d Draft) error
}

// MailOpener hands a mailto URI to the visitor's mail client. It is best
// effort: a failure is logged and otherwise ignored.
type MailOpener interface {
	OpenMail(uri string) error
}

// MailOpenerFunc adapts a function to MailOpener.
type MailOpenerFunc func(uri string) error

func (f MailOpenerFunc) OpenMail(uri string) error {
	return f(uri)
}

// OutcomeRecorder is told how each submission ended. Draft content is never
// passed to it.
type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, id, outcome string) error
}

// Submitter drives a form through validation and delivery.
type Submitter struct {
	address          string
	deliverer        Deliverer
	clearOnRejection bool
	recorder         OutcomeRecorder
	logger           *zap.Logger
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithDeliverer sets the delivery endpoint client. Without one every
// submission goes straight to the mail-client fallback.
func WithDeliverer(d Deliverer) Option {
	return func(s *Submitter) {
		s.deliverer = d
	}
}

// WithClearOnRejection clears the draft when the endpoint rejects a
// submission and the fallback is used instead.
func WithClearOnRejection(clear bool) Option {
	return func(s *Submitter) {
		s.clearOnRejection = clear
	}
}

func WithRecorder(r OutcomeRecorder) Option {
	return func(s *Submitter) {
		s.recorder = r
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Submitter) {
		s.logger = l
	}
}

// NewSubmitter creates a Submitter that falls back to mailing address.
func NewSubmitter(address string, opts ...Option) *Submitter {
	s := &Submitter{
		address: address,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HasEndpoint reports whether submissions are posted before falling back.
func (s *Submitter) HasEndpoint() bool {
	return s.deliverer != nil
}

// Address is the mailbox used by the fallback.
func (s *Submitter) Address() string {
	return s.address
}

// Submit validates the form's draft and tries to deliver it, updating f in
// place. opener may be nil. Loading is false again when Submit returns, on
// every path.
func (s *Submitter) Submit(ctx context.Context, f *Form, opener MailOpener) State {
	f.clearMessages()
	f.State = StateValidating

	if err := f.Draft.Validate(); err != nil {
		f.Error = err.Error()
		f.State = StateIdle
		return f.State
	}

	id := uuid.NewString()
	logger := s.logger.With(zap.String("submission_id", id))

	f.State = StateSubmitting
	f.Loading = true
	defer func() {
		f.Loading = false
	}()
	defer s.record(ctx, id, f)

	if s.deliverer == nil {
		s.fallback(f, opener, logger)
		f.reset()
		return f.State
	}

	err := s.deliverer.Deliver(ctx, f.Draft)
	var rejected *RejectedError
	switch {
	case err == nil:
		logger.Info("contact message delivered")
		f.Success = MsgSent
		f.State = StateSuccess
		f.reset()
	case errors.As(err, &rejected):
		logger.Warn("contact endpoint error",
			zap.Int("status", rejected.StatusCode),
			zap.String("body", rejected.Body))
		s.fallback(f, opener, logger)
		if s.clearOnRejection {
			f.reset()
		}
	default:
		logger.Error("contact delivery failed", zap.Error(err))
		f.Error = TransportErrorMessage(s.address)
		f.State = StateError
	}

	return f.State
}

func (s *Submitter) fallback(f *Form, opener MailOpener, logger *zap.Logger) {
	uri := MailtoURI(s.address, f.Draft)
	f.MailtoURI = uri
	f.Success = MsgFallback
	f.State = StateFallbackSuccess

	if opener == nil {
		return
	}
	if err := openMail(opener, uri); err != nil {
		logger.Debug("mail client fallback did not open", zap.Error(err))
	}
}

func openMail(opener MailOpener, uri string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mail opener panicked: %v", r)
		}
	}()
	return opener.OpenMail(uri)
}

func (s *Submitter) record(ctx context.Context, id string, f *Form) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordOutcome(context.WithoutCancel(ctx), id, f.State.String()); err != nil {
		s.logger.Warn("failed to record contact outcome", zap.String("submission_id", id), zap.Error(err))
	}
}
