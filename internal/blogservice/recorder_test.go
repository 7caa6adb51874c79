package blogservice

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sushihentaime/inkwell/internal/common"
)

type MockMessageProducer struct {
	mock.Mock
}

func (m *MockMessageProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	args := m.Called(msg, key, exchange)
	return args.Error(0)
}

func TestBrokerReadRecorder(t *testing.T) {
	msg, err := json.Marshal(common.ReadEvent{Username: "jane", Delta: 1})
	assert.NoError(t, err)

	mp := new(MockMessageProducer)
	mp.On("Publish", msg, common.BlogReadKey, common.BlogExchange).Return(nil).Once()
	mp.On("Publish", mock.Anything, common.BlogReadKey, common.BlogExchange).Return(errors.New("channel closed")).Once()

	r := NewBrokerReadRecorder(mp)

	assert.NoError(t, r.RecordRead(context.Background(), "jane"))
	assert.EqualError(t, r.RecordRead(context.Background(), "jane"), "channel closed")

	mp.AssertExpectations(t)
}
