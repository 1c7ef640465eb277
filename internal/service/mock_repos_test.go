package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/symmetric-cedric/lesson-schedule-app/internal/model"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/repository"
)

// ── Mock StaffRepository ──

type mockStaffRepo struct {
	staff map[string]*model.Staff // key: staff_id 与 username
}

func newMockStaffRepo() *mockStaffRepo {
	return &mockStaffRepo{staff: make(map[string]*model.Staff)}
}

func (m *mockStaffRepo) Create(_ context.Context, s *model.Staff) error {
	if s.StaffID == "" {
		s.StaffID = "staff-" + s.Username
	}
	m.staff[s.StaffID] = s
	m.staff["username:"+s.Username] = s
	return nil
}

func (m *mockStaffRepo) GetByID(_ context.Context, id string) (*model.Staff, error) {
	if s, ok := m.staff[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStaffRepo) GetByUsername(_ context.Context, username string) (*model.Staff, error) {
	if s, ok := m.staff["username:"+username]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock CatalogRepository ──

type mockCatalogRepo struct {
	holidays []model.PublicHoliday
	prices   []model.CoursePrice
	spans    []model.WeekSpan
	rates    []model.ValueAddedRate
	optional []model.OptionalItemPrice
	err      error

	upserted []model.PublicHoliday
}

func (m *mockCatalogRepo) ListHolidays(_ context.Context) ([]model.PublicHoliday, error) {
	return m.holidays, m.err
}

func (m *mockCatalogRepo) ListCoursePrices(_ context.Context) ([]model.CoursePrice, error) {
	return m.prices, m.err
}

func (m *mockCatalogRepo) ListWeekSpans(_ context.Context) ([]model.WeekSpan, error) {
	return m.spans, m.err
}

func (m *mockCatalogRepo) ListValueAddedRates(_ context.Context) ([]model.ValueAddedRate, error) {
	return m.rates, m.err
}

func (m *mockCatalogRepo) ListActiveOptionalItems(_ context.Context) ([]model.OptionalItemPrice, error) {
	return m.optional, m.err
}

func (m *mockCatalogRepo) UpsertHolidays(_ context.Context, rows []model.PublicHoliday) error {
	if m.err != nil {
		return m.err
	}
	m.upserted = append(m.upserted, rows...)
	return nil
}

// ── Mock TokenRevoker ──

type mockRevoker struct {
	jti string
	ttl time.Duration
	err error
}

func (m *mockRevoker) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.jti = jti
	m.ttl = ttl
	return m.err
}

var errMockDB = errors.New("mock db error")

func newMockRepository(staff *mockStaffRepo, catalog *mockCatalogRepo) *repository.Repository {
	repo := &repository.Repository{}
	if staff != nil {
		repo.Staff = staff
	}
	if catalog != nil {
		repo.Catalog = catalog
	}
	return repo
}
