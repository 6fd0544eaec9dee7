package broadcast

import (
	"testing"

	"WealthCompass/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_FanOut(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ch1, cancel1 := b.Subscribe()
	ch2, cancel2 := b.Subscribe()
	defer cancel1()
	defer cancel2()

	st := model.PortfolioState{PortfolioInputs: model.DefaultInputs()}
	st.FutureValue = 42
	b.Publish(st)

	got1 := <-ch1
	got2 := <-ch2
	assert.Equal(t, 42.0, got1.FutureValue)
	assert.Equal(t, 42.0, got2.FutureValue)
}

func TestBroker_CancelStopsDelivery(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ch, cancel := b.Subscribe()
	cancel()

	// Channel is closed on cancel; publish after cancel must not panic.
	b.Publish(model.PortfolioState{})
	_, open := <-ch
	assert.False(t, open)
}

func TestBroker_SlowSubscriberDoesNotBlockPublisher(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ch, cancel := b.Subscribe()
	defer cancel()

	// Overfill the buffer; extra messages are dropped, publisher never blocks.
	for i := 0; i < subscriberBuffer*3; i++ {
		b.Publish(model.PortfolioState{TargetYear: i})
	}
	require.Len(t, ch, subscriberBuffer)
}

func TestBroker_SubscribeAfterClose(t *testing.T) {
	b := NewBroker()
	b.Close()

	ch, cancel := b.Subscribe()
	defer cancel()
	_, open := <-ch
	assert.False(t, open)
}
