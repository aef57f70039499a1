package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/clipperdesk/barber-booking/internal/httperr"
	"github.com/clipperdesk/barber-booking/internal/mailer"
	"github.com/clipperdesk/barber-booking/internal/models"
)

var (
	errSlotTaken = httperr.ErrBusiness("slot_taken")
	errStoreDown = errors.New("store down")
)

// ======================================================
// FAKES
// ======================================================

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time {
	return c.now
}

type slotKey struct {
	barberID uint
	startAt  int64
}

// fakeRepo reproduz em memória o contrato do repositório, incluindo
// o índice único (barber_id, start_at) sob mutex.
type fakeRepo struct {
	mu sync.Mutex

	rules *models.BusinessRules
	hours map[int]*models.BusinessHours

	services map[uint]*models.Service
	barbers  map[uint]*models.AdminUser

	customers      map[string]*models.Customer
	nextCustomerID uint

	appointments map[uint]*models.Appointment
	slots        map[slotKey]bool
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		hours:        make(map[int]*models.BusinessHours),
		services:     make(map[uint]*models.Service),
		barbers:      make(map[uint]*models.AdminUser),
		customers:    make(map[string]*models.Customer),
		appointments: make(map[uint]*models.Appointment),
		slots:        make(map[slotKey]bool),
	}
}

func (r *fakeRepo) GetBusinessRules(ctx context.Context) (*models.BusinessRules, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rules == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r.rules
	return &cp, nil
}

func (r *fakeRepo) GetBusinessHours(ctx context.Context, weekday int) (*models.BusinessHours, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.hours[weekday]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *h
	return &cp, nil
}

func (r *fakeRepo) GetService(ctx context.Context, id uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) GetBarber(ctx context.Context, id uint) (*models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.barbers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) GetOrCreateCustomer(ctx context.Context, email string) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.customers[email]; ok {
		cp := *c
		return &cp, nil
	}

	r.nextCustomerID++
	c := &models.Customer{
		ID:       r.nextCustomerID,
		Email:    email,
		UserType: "NEW",
	}
	r.customers[email] = c

	cp := *c
	return &cp, nil
}

func (r *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := slotKey{barberID: ap.BarberID, startAt: ap.StartAt.UnixNano()}
	if r.slots[key] {
		return errSlotTaken
	}
	r.slots[key] = true

	r.nextID++
	ap.ID = r.nextID

	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) FindActiveForCustomerOnDay(
	ctx context.Context,
	customerEmail string,
	dayStart time.Time,
	dayEnd time.Time,
) (*models.Appointment, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ap := range r.appointments {
		if ap.CustomerEmail != customerEmail {
			continue
		}
		if !statusActive(ap.Status) {
			continue
		}
		if ap.StartAt.Before(dayStart) || !ap.StartAt.Before(dayEnd) {
			continue
		}
		cp := *ap
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ap
	return &cp, nil
}

func (r *fakeRepo) GetAppointmentByTokenHash(ctx context.Context, tokenHash string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ap := range r.appointments {
		if ap.ConfirmationTokenHash != nil && *ap.ConfirmationTokenHash == tokenHash {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) ConfirmAppointment(ctx context.Context, id uint, customerID uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	ap.CustomerID = &customerID
	ap.Status = "confirmed"

	cp := *ap
	return &cp, nil
}

func (r *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) ListActiveAppointmentsBetween(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if !statusActive(ap.Status) {
			continue
		}
		if ap.StartAt.Before(start) || !ap.StartAt.Before(end) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.StartAt.Before(start) || !ap.StartAt.Before(end) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func statusActive(status string) bool {
	return status != "cancelled" && status != "expired"
}

// ======================================================
// RATE LIMIT STORES
// ======================================================

type memoryStore struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{attempts: make(map[string][]time.Time)}
}

func (s *memoryStore) CountSince(ctx context.Context, ip string, since time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, at := range s.attempts[ip] {
		if !at.Before(since) {
			count++
		}
	}
	return count, nil
}

func (s *memoryStore) Record(ctx context.Context, ip string, now time.Time, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts[ip] = append(s.attempts[ip], now)
	return nil
}

type failingStore struct{}

func (failingStore) CountSince(ctx context.Context, ip string, since time.Time) (int64, error) {
	return 0, errStoreDown
}

func (failingStore) Record(ctx context.Context, ip string, now time.Time, ttl time.Duration) error {
	return errStoreDown
}

// ======================================================
// MAIL CAPTURE
// ======================================================

type captureSender struct {
	ch chan mailer.Message
}

func newCaptureSender() *captureSender {
	return &captureSender{ch: make(chan mailer.Message, 10)}
}

func (s *captureSender) Send(msg mailer.Message) error {
	s.ch <- msg
	return nil
}

func (s *captureSender) wait(timeout time.Duration) (mailer.Message, bool) {
	select {
	case msg := <-s.ch:
		return msg, true
	case <-time.After(timeout):
		return mailer.Message{}, false
	}
}
