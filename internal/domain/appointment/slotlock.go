package appointment

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smartclinic/smartclinic/pkg/timeslot"
)

// slotLock serializes check-then-write booking sections per (doctor, date).
// Two concurrent bookings of the same slot cannot both observe it as free.
// The store's unique index backs this up across processes.
type slotLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSlotLock() *slotLock {
	return &slotLock{locks: make(map[string]*sync.Mutex)}
}

func (l *slotLock) lockFor(doctorID uuid.UUID, date time.Time) *sync.Mutex {
	key := doctorID.String() + "|" + timeslot.FormatDate(date)
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	return m
}
