package sink

import (
	"context"
	"testing"
	"time"
	"webchat/domain/event"
	"webchat/errors"

	"github.com/stretchr/testify/require"
)

func TestConnectionSink_Keeps_Order(t *testing.T) {
	req := require.New(t)
	s := NewConnectionSink(4)
	ctx := context.Background()

	// When three events are consumed
	for _, text := range []string{"a", "b", "c"} {
		req.NoError(s.Consume(ctx, event.MessagePosted{Protocol: "010524100000", Text: text}))
	}
	req.Equal(3, s.Len())

	// Then they come out in the same order
	for _, text := range []string{"a", "b", "c"} {
		evt := <-s.Events()
		req.Equal(text, evt.(event.MessagePosted).Text)
	}
}

func TestConnectionSink_Full_Buffer_Times_Out(t *testing.T) {
	req := require.New(t)
	s := NewConnectionSink(1)
	req.NoError(s.Consume(context.Background(), event.ChatOpened{ChatID: "1"}))

	// Given nobody drains the queue
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := s.Consume(ctx, event.ChatOpened{ChatID: "2"})
	req.ErrorIs(err, errors.ErrSinkTimeout)
}

func TestConnectionSink_Closed(t *testing.T) {
	req := require.New(t)
	s := NewConnectionSink(1)

	s.Close()
	s.Close()

	req.ErrorIs(s.Consume(context.Background(), event.ChatOpened{}), errors.ErrSinkClosed)
	select {
	case <-s.Done():
	default:
		req.Fail("done should be closed")
	}
}
