package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrUnknownSlot = errors.New("unknown session slot")
	ErrSlotTaken   = errors.New("session slot already booked")
)

const slotDuration = 45 * time.Minute

// daily session start hours and the counselor holding them
var dailySessions = []struct {
	hour      int
	counselor string
}{
	{9, "Amani Kariuki"},
	{11, "Grace Mensah"},
	{14, "Amani Kariuki"},
	{16, "Tendai Moyo"},
}

type Slot struct {
	ID        string        `json:"id"`
	Start     time.Time     `json:"start"`
	Duration  time.Duration `json:"duration"`
	Counselor string        `json:"counselor"`
	Booked    bool          `json:"booked"`
}

// Calendar is a static grid of counseling sessions.
// Booking only checks set membership: a slot is either free or taken.
type Calendar struct {
	delay time.Duration

	mu     sync.Mutex
	slots  []Slot
	booked map[string]bool
}

// NewCalendar lays out sessions on the weekdays of the `days` days from start.
// Booking waits `delay` before taking the slot.
func NewCalendar(start time.Time, days int, delay time.Duration) *Calendar {
	c := &Calendar{delay: delay, booked: make(map[string]bool)}
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for d := 0; d < days; d++ {
		date := day.AddDate(0, 0, d)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		for _, s := range dailySessions {
			at := date.Add(time.Duration(s.hour) * time.Hour)
			c.slots = append(c.slots, Slot{
				ID:        fmt.Sprintf("%s-%02d", at.Format("20060102"), s.hour),
				Start:     at,
				Duration:  slotDuration,
				Counselor: s.counselor,
			})
		}
	}
	sort.SliceStable(c.slots, func(i, j int) bool { return c.slots[i].Start.Before(c.slots[j].Start) })
	return c
}

func (c *Calendar) Slots() []Slot {
	c.mu.Lock()
	defer c.mu.Unlock()
	slots := make([]Slot, len(c.slots))
	for i, s := range c.slots {
		s.Booked = c.booked[s.ID]
		slots[i] = s
	}
	return slots
}

// Book takes the slot after the simulated confirmation delay.
// It returns early with ctx's error when ctx is done first.
func (c *Calendar) Book(ctx context.Context, id string) (Slot, error) {
	slot, err := c.lookup(id)
	if err != nil {
		return Slot{}, err
	}

	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Slot{}, ctx.Err()
		case <-timer.C:
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.booked[id] {
		return Slot{}, ErrSlotTaken
	}
	c.booked[id] = true
	slot.Booked = true
	return slot, nil
}

func (c *Calendar) lookup(id string) (Slot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.slots {
		if s.ID == id {
			if c.booked[id] {
				return Slot{}, ErrSlotTaken
			}
			return s, nil
		}
	}
	return Slot{}, ErrUnknownSlot
}
