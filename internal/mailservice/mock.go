package mailservice

import (
	"bytes"

	"github.com/go-mail/mail/v2"
	"github.com/stretchr/testify/mock"
)

type MockTemplate struct {
	mock.Mock
}

func (m *MockTemplate) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	args := m.Called(name, data)
	if err := args.Error(3); err != nil {
		return nil, nil, nil, err
	}
	return args.Get(0).(*bytes.Buffer), args.Get(1).(*bytes.Buffer), args.Get(2).(*bytes.Buffer), nil
}

type MockDialer struct {
	mock.Mock
}

func (d *MockDialer) DialAndSend(m ...*mail.Message) error {
	args := d.Called(m)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) send(recipient, replyTo string, data any, templateFile string) error {
	args := m.Called(recipient, replyTo, data, templateFile)
	return args.Error(0)
}

type MockLogger struct {
	mock.Mock
}

func (l *MockLogger) Error(msg string, args ...any) {
	l.Called(msg, args)
}

func (l *MockLogger) Info(msg string, args ...any) {
	l.Called(msg, args)
}
