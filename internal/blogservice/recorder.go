package blogservice

import (
	"context"
	"encoding/json"

	"github.com/sushihentaime/inkwell/internal/common"
)

// BrokerReadRecorder publishes author reads to the blog exchange instead of writing them
// inline.
type BrokerReadRecorder struct {
	mb common.MessageProducer
}

func NewBrokerReadRecorder(mb common.MessageProducer) *BrokerReadRecorder {
	return &BrokerReadRecorder{mb: mb}
}

func (r *BrokerReadRecorder) RecordRead(ctx context.Context, username string) error {
	msg, err := json.Marshal(common.ReadEvent{Username: username, Delta: 1})
	if err != nil {
		return err
	}

	return r.mb.Publish(ctx, msg, common.BlogReadKey, common.BlogExchange)
}
