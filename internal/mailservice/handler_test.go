package mailservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendContactMessage(t *testing.T) {
	msg := ContactMessage{FirstName: "Jane", Phone: "555-0100", Email: " jane@example.com ", Message: "Hi"}

	testCases := []struct {
		name        string
		sendErr     error
		expectedLog string
	}{
		{name: "sent", expectedLog: "contact message sent"},
		{name: "relay failure", sendErr: errors.New("smtp: connection refused"), expectedLog: "could not send contact message"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockMailer := new(MockMailer)
			mockLogger := new(MockLogger)

			mockMailer.On("send", "owner@example.com", "jane@example.com", msg, contactFormTemplate).Return(tc.sendErr)
			if tc.sendErr != nil {
				mockLogger.On("Error", tc.expectedLog, mock.Anything).Return()
			} else {
				mockLogger.On("Info", tc.expectedLog, mock.Anything).Return()
			}

			s := &MailService{m: mockMailer, recipient: "owner@example.com", logger: mockLogger}

			err := s.SendContactMessage(context.Background(), msg)
			assert.Equal(t, tc.sendErr, err)

			mockMailer.AssertExpectations(t)
			mockLogger.AssertExpectations(t)
		})
	}
}

func TestSendContactMessageHeaderInjection(t *testing.T) {
	mockMailer := new(MockMailer)
	mockLogger := new(MockLogger)

	msg := ContactMessage{FirstName: "Jane", Email: "jane@example.com\r\nBcc: victim@example.com"}
	mockMailer.On("send", "owner@example.com", "", msg, contactFormTemplate).Return(nil)
	mockLogger.On("Info", "contact message sent", mock.Anything).Return()

	s := &MailService{m: mockMailer, recipient: "owner@example.com", logger: mockLogger}
	assert.NoError(t, s.SendContactMessage(context.Background(), msg))

	mockMailer.AssertExpectations(t)
}

func TestSendContactMessageCancelled(t *testing.T) {
	mockMailer := new(MockMailer)
	s := &MailService{m: mockMailer, recipient: "owner@example.com", logger: new(MockLogger)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.SendContactMessage(ctx, ContactMessage{}), context.Canceled)
	mockMailer.AssertNotCalled(t, "send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendContactMessageUnreachableRelay(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	s := NewMailService("127.0.0.1", 1, "user", "pass", "sender@example.com", "owner@example.com", logger)

	err := s.SendContactMessage(context.Background(), ContactMessage{FirstName: "Jane", Email: "jane@example.com", Message: "Hi"})
	assert.Error(t, err)
}
