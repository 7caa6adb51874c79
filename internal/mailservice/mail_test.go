package mailservice

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-mail/mail/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendEmail(t *testing.T) {
	mockParser := new(MockTemplate)
	mockDialer := new(MockDialer)

	mailer := Mail{
		dialer: mockDialer,
		parser: mockParser,
		sender: "sender@example.com",
	}

	subject := bytes.NewBufferString("Test Subject")
	plainBody := bytes.NewBufferString("Test Plain Body")
	htmlBody := bytes.NewBufferString("Test HTML Body")
	mockParser.On("ParseTemplate", "template.tmpl", mock.Anything).Return(subject, plainBody, htmlBody, nil)

	mockDialer.On("DialAndSend", mock.MatchedBy(func(msgs []*mail.Message) bool {
		if len(msgs) != 1 {
			return false
		}
		m := msgs[0]
		return m.GetHeader("To")[0] == "owner@example.com" &&
			m.GetHeader("From")[0] == "sender@example.com" &&
			m.GetHeader("Reply-To")[0] == "jane@example.com" &&
			m.GetHeader("Subject")[0] == "Test Subject"
	})).Return(nil)

	err := mailer.send("owner@example.com", "jane@example.com", nil, "template.tmpl")
	assert.NoError(t, err)

	mockParser.AssertExpectations(t)
	mockDialer.AssertExpectations(t)
}

func TestSendEmailWithoutReplyTo(t *testing.T) {
	mockParser := new(MockTemplate)
	mockDialer := new(MockDialer)

	mailer := Mail{dialer: mockDialer, parser: mockParser, sender: "sender@example.com"}

	mockParser.On("ParseTemplate", "template.tmpl", mock.Anything).
		Return(bytes.NewBufferString("s"), bytes.NewBufferString("p"), bytes.NewBufferString("h"), nil)
	mockDialer.On("DialAndSend", mock.MatchedBy(func(msgs []*mail.Message) bool {
		return len(msgs[0].GetHeader("Reply-To")) == 0
	})).Return(errors.New("smtp: connection refused"))

	err := mailer.send("owner@example.com", "", nil, "template.tmpl")
	assert.EqualError(t, err, "smtp: connection refused")

	mockDialer.AssertExpectations(t)
}

func TestSendEmailTemplateError(t *testing.T) {
	mockParser := new(MockTemplate)
	mockDialer := new(MockDialer)

	mailer := Mail{dialer: mockDialer, parser: mockParser, sender: "sender@example.com"}

	mockParser.On("ParseTemplate", "missing.tmpl", mock.Anything).Return(nil, nil, nil, errors.New("could not parse template"))

	err := mailer.send("owner@example.com", "", nil, "missing.tmpl")
	assert.Error(t, err)

	mockDialer.AssertNotCalled(t, "DialAndSend", mock.Anything)
}
