package services

import "github.com/sirupsen/logrus"

// Mailer delivers notification emails. Delivery is best-effort: callers must
// never fail a request because Send returned an error.
type Mailer interface {
	Send(to, subject, body string) error
}

// LogMailer is a stand-in transport that writes the message to the process
// log instead of sending anything.
type LogMailer struct {
	logger logrus.FieldLogger
}

// NewLogMailer creates a LogMailer on the given logger.
func NewLogMailer(logger logrus.FieldLogger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message and reports success.
func (m *LogMailer) Send(to, subject, body string) error {
	m.logger.Infof("Sending email to %s", to)
	m.logger.Infof("Subject: %s", subject)
	m.logger.Infof("Body: %s", body)
	return nil
}
