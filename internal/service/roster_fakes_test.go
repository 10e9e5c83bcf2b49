package service

import (
	"context"
	"errors"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/noah-isme/classroom-api/internal/models"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
)

// fakeRoster is an in-memory stand-in for the three roster tables.
type fakeRoster struct {
	mu        sync.Mutex
	nextID    int64
	teachers  map[string]*models.Teacher
	students  map[string]*models.Student
	links     map[models.TeacherStudent]struct{}
	linkCalls int

	failStudent string
	err         error
}

func newFakeRoster() *fakeRoster {
	return &fakeRoster{
		teachers: make(map[string]*models.Teacher),
		students: make(map[string]*models.Student),
		links:    make(map[models.TeacherStudent]struct{}),
	}
}

func (f *fakeRoster) ensureTeacher(email string) (*models.Teacher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if t, ok := f.teachers[email]; ok {
		return t, nil
	}
	f.nextID++
	t := &models.Teacher{ID: f.nextID, Email: email, CreatedAt: time.Now()}
	f.teachers[email] = t
	return t, nil
}

func (f *fakeRoster) ensureStudent(email string) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if email == f.failStudent {
		return nil, errors.New("insert student: connection reset")
	}
	if s, ok := f.students[email]; ok {
		return s, nil
	}
	f.nextID++
	s := &models.Student{ID: f.nextID, Email: email, CreatedAt: time.Now()}
	f.students[email] = s
	return s, nil
}

func (f *fakeRoster) Link(_ context.Context, link models.TeacherStudent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.linkCalls++
	f.links[link] = struct{}{}
	return nil
}

func (f *fakeRoster) Suspend(_ context.Context, email string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	s, ok := f.students[email]
	if !ok {
		return 0, nil
	}
	s.Suspended = true
	return 1, nil
}

// studentsOf returns the students linked to a teacher ordered by id.
func (f *fakeRoster) studentsOf(teacherEmail string) []*models.Student {
	t, ok := f.teachers[teacherEmail]
	if !ok {
		return nil
	}
	var out []*models.Student
	for _, s := range f.students {
		if _, linked := f.links[models.TeacherStudent{TeacherID: t.ID, StudentID: s.ID}]; linked {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeRoster) ListCommonStudentEmails(_ context.Context, teacherEmails []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	counts := make(map[int64]int)
	byID := make(map[int64]string)
	for _, teacher := range teacherEmails {
		for _, s := range f.studentsOf(teacher) {
			counts[s.ID]++
			byID[s.ID] = s.Email
		}
	}
	ids := make([]int64, 0, len(counts))
	for id, n := range counts {
		if n == len(teacherEmails) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := []string{}
	for _, id := range ids {
		out = append(out, byID[id])
	}
	return out, nil
}

func (f *fakeRoster) ListActiveStudentEmails(_ context.Context, teacherEmail string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []string{}
	for _, s := range f.studentsOf(teacherEmail) {
		if !s.Suspended {
			out = append(out, s.Email)
		}
	}
	return out, nil
}

func (f *fakeRoster) ListSuspendedEmails(_ context.Context, emails []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []string{}
	for _, email := range emails {
		if s, ok := f.students[email]; ok && s.Suspended {
			out = append(out, email)
		}
	}
	return out, nil
}

type fakeTeachers struct{ *fakeRoster }

func (f fakeTeachers) Ensure(_ context.Context, email string) (*models.Teacher, error) {
	return f.ensureTeacher(email)
}

type fakeStudents struct{ *fakeRoster }

func (f fakeStudents) Ensure(_ context.Context, email string) (*models.Student, error) {
	return f.ensureStudent(email)
}

// fakeTransactor snapshots the roster and restores it when fn fails.
type fakeTransactor struct {
	roster *fakeRoster
	calls  int
}

func (t *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	t.roster.mu.Lock()
	teachers := make(map[string]*models.Teacher, len(t.roster.teachers))
	for k, v := range t.roster.teachers {
		teachers[k] = v
	}
	students := make(map[string]*models.Student, len(t.roster.students))
	for k, v := range t.roster.students {
		students[k] = v
	}
	links := make(map[models.TeacherStudent]struct{}, len(t.roster.links))
	for k := range t.roster.links {
		links[k] = struct{}{}
	}
	t.roster.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.roster.mu.Lock()
		t.roster.teachers, t.roster.students, t.roster.links = teachers, students, links
		t.roster.mu.Unlock()
		return err
	}
	return nil
}

type rosterFixture struct {
	roster        *fakeRoster
	tx            *fakeTransactor
	registration  *RegistrationService
	common        *CommonStudentService
	suspension    *SuspensionService
	notifications *NotificationService
}

func newRosterFixture(atomic bool, cache *CacheService) *rosterFixture {
	roster := newFakeRoster()
	tx := &fakeTransactor{roster: roster}
	return &rosterFixture{
		roster:        roster,
		tx:            tx,
		registration:  NewRegistrationService(fakeTeachers{roster}, fakeStudents{roster}, roster, tx, atomic, cache, nil, nil, nil),
		common:        NewCommonStudentService(roster, cache, nil),
		suspension:    NewSuspensionService(roster, cache, nil, nil, nil),
		notifications: NewNotificationService(roster, roster, cache, nil, nil, nil),
	}
}

// memoryCache is a CacheRepository backed by a map with glob invalidation.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]string
	getErr  error
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]string)}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return m.getErr
	}
	v, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	ptr, ok := dest.(*[]string)
	if !ok {
		return errors.New("unexpected destination type")
	}
	*ptr = append([]string(nil), v...)
	return nil
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list, ok := value.([]string)
	if !ok {
		return errors.New("unexpected value type")
	}
	m.entries[key] = append([]string(nil), list...)
	return nil
}

func (m *memoryCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, pattern)
	for key := range m.entries {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.entries, key)
		}
	}
	return nil
}
