package language

import "github.com/featlab/featlab/internal/validate"

// Document is one open feature file: the path addressing its tree node
// and the full raw text. Text is replaced wholesale on every edit.
type Document struct {
	Path string
	Text string
}

// Session binds the service to one live document. Every content change
// updates the backing document, revalidates the full text, and replaces
// the diagnostic set. There is no incremental patching and no
// cross-document state.
type Session struct {
	service *Service
	doc     Document
	diags   []validate.Diagnostic
	closed  bool
}

// Open tears down any previous session and binds a fresh one to the
// given document, validating it immediately.
func (s *Service) Open(path, text string) *Session {
	if s.session != nil {
		s.session.Close()
	}
	sess := &Session{service: s, doc: Document{Path: path}}
	s.session = sess
	sess.SetText(text)
	return sess
}

// SetText replaces the document text and recomputes diagnostics in full.
func (sess *Session) SetText(text string) {
	if sess.closed {
		return
	}
	sess.doc.Text = text
	sess.diags = sess.service.Diagnostics(text)
}

// Document returns the bound document.
func (sess *Session) Document() Document {
	return sess.doc
}

// Diagnostics returns the current diagnostic set.
func (sess *Session) Diagnostics() []validate.Diagnostic {
	return sess.diags
}

// Close detaches the session; further SetText calls are no-ops.
func (sess *Session) Close() {
	sess.closed = true
	if sess.service != nil && sess.service.session == sess {
		sess.service.session = nil
	}
}
