// Package mqtt bridges massenger frames to an MQTT broker.
//
// Every received frame is published to <prefix>recv/<address>, and frames
// published to <prefix>send are sent out on the link. Payloads are
// protobuf encoded Frame messages.
package mqtt

import (
	"context"
	"strings"

	"github.com/golang/glog"

	"github.com/robotalks/massenger/pkg/massenger"
)

// Topics relative to the queue prefix.
const (
	TopicRecv = "recv"
	TopicSend = "send"
)

// Bridge forwards frames between a Poller and a Queue.
type Bridge struct {
	Queue  *Queue
	Poller *massenger.Poller
}

// NewBridge creates a Bridge. Frames the poller's router doesn't handle
// are published; without a router the bridge becomes the poller's handler.
func NewBridge(q *Queue, p *massenger.Poller) *Bridge {
	b := &Bridge{Queue: q, Poller: p}
	switch h := p.Handler.(type) {
	case nil:
		p.Handler = b
	case *massenger.Router:
		if h.Fallback == nil {
			h.Fallback = b
		}
	}
	return b
}

// RecvTopic gets the topic a frame with address is published to.
func RecvTopic(address string) string {
	if address == "" {
		return TopicRecv + "/_"
	}
	return TopicRecv + "/" + strings.NewReplacer("+", "_", "#", "_").Replace(address)
}

// HandleMessage implements massenger.Handler.
func (b *Bridge) HandleMessage(ctx context.Context, m *massenger.Massenger) {
	frame := FrameFrom(m)
	payload, err := frame.Encode()
	if err != nil {
		glog.Errorf("encode frame %q: %v", frame.Address, err)
		return
	}
	b.Queue.Pub(RecvTopic(frame.Address), payload)
}

// Run implements Runnable.
func (b *Bridge) Run(ctx context.Context) error {
	token := b.Queue.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return err
	}
	defer b.Queue.Close()
	b.Queue.Sub(TopicSend, b.handleSend)
	<-ctx.Done()
	return ctx.Err()
}

func (b *Bridge) handleSend(topic string, payload []byte) {
	frame, err := DecodeFrame(payload)
	if err != nil {
		glog.Warningf("%s: bad frame: %v", topic, err)
		return
	}
	if err = b.Poller.Do(frame.SendTo); err != nil {
		glog.Errorf("send %q: %v", frame.Address, err)
	}
}
