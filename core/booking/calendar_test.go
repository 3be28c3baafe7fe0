package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a Monday
var monday = time.Date(2025, time.September, 1, 7, 30, 0, 0, time.UTC)

func TestNewCalendar(t *testing.T) {
	c := NewCalendar(monday, 7, 0)
	slots := c.Slots()

	// 5 weekdays of 4 sessions
	require.Len(t, slots, 20)
	assert.Equal(t, "20250901-09", slots[0].ID)
	assert.Equal(t, time.Date(2025, time.September, 1, 9, 0, 0, 0, time.UTC), slots[0].Start)
	assert.Equal(t, "20250905-16", slots[len(slots)-1].ID)
	for i, s := range slots {
		assert.False(t, s.Booked)
		assert.NotEqual(t, time.Saturday, s.Start.Weekday())
		assert.NotEqual(t, time.Sunday, s.Start.Weekday())
		if i > 0 {
			assert.True(t, slots[i-1].Start.Before(s.Start))
		}
	}
}

func TestCalendar_Book(t *testing.T) {
	c := NewCalendar(monday, 1, time.Millisecond)
	ctx := context.Background()

	slot, err := c.Book(ctx, "20250901-11")
	require.NoError(t, err)
	assert.True(t, slot.Booked)
	assert.Equal(t, "Grace Mensah", slot.Counselor)

	_, err = c.Book(ctx, "20250901-11")
	assert.Equal(t, ErrSlotTaken, err)

	_, err = c.Book(ctx, "20250901-08")
	assert.Equal(t, ErrUnknownSlot, err)

	booked := 0
	for _, s := range c.Slots() {
		if s.Booked {
			booked++
			assert.Equal(t, "20250901-11", s.ID)
		}
	}
	assert.Equal(t, 1, booked)
}

func TestCalendar_Book_cancelled(t *testing.T) {
	c := NewCalendar(monday, 1, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Book(ctx, "20250901-09")
	assert.Equal(t, context.Canceled, err)
	assert.False(t, c.Slots()[0].Booked, "a cancelled booking must not take the slot")
}

func TestCalendar_Book_concurrent(t *testing.T) {
	c := NewCalendar(monday, 1, time.Millisecond)
	ctx := context.Background()

	const n = 8
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := c.Book(ctx, "20250901-14")
			errs <- err
		}()
	}

	var ok, taken int
	for i := 0; i < n; i++ {
		switch <-errs {
		case nil:
			ok++
		case ErrSlotTaken:
			taken++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, taken)
}
