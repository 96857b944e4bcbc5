package app

import (
	"context"
	"sort"
	"sync"

	"sofia_aroma_bot/internal/domain/library"
	"sofia_aroma_bot/internal/domain/numerology"
	"sofia_aroma_bot/internal/domain/user"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gopkg.in/telebot.v3"
)

func testLogger() (*logrus.Entry, *test.Hook) {
	log, hook := test.NewNullLogger()
	return logrus.NewEntry(log), hook
}

type memUsers struct {
	mu    sync.Mutex
	users map[int64]*user.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[int64]*user.User)}
}

func (m *memUsers) Upsert(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.users[u.TelegramID]; ok {
		existing.FirstName = u.FirstName
		existing.Username = u.Username
		u.RemindersEnabled = existing.RemindersEnabled
		return nil
	}
	cp := *u
	m.users[u.TelegramID] = &cp
	return nil
}

func (m *memUsers) GetByTelegramID(ctx context.Context, id int64) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) SetReminders(ctx context.Context, id int64, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.RemindersEnabled = enabled
	return nil
}

// ListWithReminders ignores the saved recipe condition; services filter on
// their own reads.
func (m *memUsers) ListWithReminders(ctx context.Context) ([]*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*user.User, 0)
	for _, u := range m.users {
		if u.RemindersEnabled {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TelegramID < out[j].TelegramID })
	return out, nil
}

// memLibrary implements both library repositories over one store so that
// deleting a profile cascades to its recipes.
type memLibrary struct {
	mu       sync.Mutex
	profiles []*library.Profile
	recipes  []*library.SavedRecipe

	createRecipeErr error
}

type memProfiles struct{ *memLibrary }
type memRecipes struct{ *memLibrary }

func newMemLibrary() (*memLibrary, memProfiles, memRecipes) {
	l := &memLibrary{}
	return l, memProfiles{l}, memRecipes{l}
}

func (m memProfiles) Create(ctx context.Context, p *library.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.profiles {
		if existing.OwnerTelegramID == p.OwnerTelegramID && existing.Name == p.Name {
			return library.ErrDuplicateProfileName
		}
	}
	cp := *p
	m.profiles = append(m.profiles, &cp)
	return nil
}

func (m memProfiles) GetByID(ctx context.Context, owner int64, id uuid.UUID) (*library.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.ID == id && p.OwnerTelegramID == owner {
			cp := *p
			return &cp, nil
		}
	}
	return nil, library.ErrProfileNotFound
}

func (m memProfiles) FindByBirthDate(ctx context.Context, owner int64, b numerology.BirthDate) (*library.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.OwnerTelegramID == owner && p.BirthDate == b {
			cp := *p
			return &cp, nil
		}
	}
	return nil, library.ErrProfileNotFound
}

func (m memProfiles) ListByOwner(ctx context.Context, owner int64) ([]*library.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*library.Profile, 0)
	for _, p := range m.profiles {
		if p.OwnerTelegramID == owner {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m memProfiles) ListAll(ctx context.Context) ([]*library.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*library.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m memProfiles) UpdateAges(ctx context.Context, profiles []*library.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, upd := range profiles {
		for _, p := range m.profiles {
			if p.ID == upd.ID {
				p.Age = upd.Age
			}
		}
	}
	return nil
}

func (m memProfiles) Delete(ctx context.Context, owner int64, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.profiles {
		if p.ID == id && p.OwnerTelegramID == owner {
			m.profiles = append(m.profiles[:i], m.profiles[i+1:]...)
			m.dropRecipesOf(id)
			return nil
		}
	}
	return library.ErrProfileNotFound
}

func (m memProfiles) DeleteAllByOwner(ctx context.Context, owner int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	kept := m.profiles[:0]
	for _, p := range m.profiles {
		if p.OwnerTelegramID == owner {
			m.dropRecipesOf(p.ID)
			n++
			continue
		}
		kept = append(kept, p)
	}
	m.profiles = kept
	return n, nil
}

func (m *memLibrary) dropRecipesOf(profileID uuid.UUID) {
	kept := m.recipes[:0]
	for _, r := range m.recipes {
		if r.ProfileID != profileID {
			kept = append(kept, r)
		}
	}
	m.recipes = kept
}

func (m memRecipes) Create(ctx context.Context, r *library.SavedRecipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createRecipeErr != nil {
		return m.createRecipeErr
	}
	for _, p := range m.profiles {
		if p.ID == r.ProfileID && p.OwnerTelegramID == r.OwnerTelegramID {
			cp := *r
			cp.ProfileName = p.Name
			m.recipes = append(m.recipes, &cp)
			return nil
		}
	}
	return library.ErrProfileNotFound
}

func (m memRecipes) ListByOwner(ctx context.Context, owner int64) ([]*library.SavedRecipe, error) {
	return m.filter(func(r *library.SavedRecipe) bool { return r.OwnerTelegramID == owner }), nil
}

func (m memRecipes) ListByProfile(ctx context.Context, owner int64, profileID uuid.UUID) ([]*library.SavedRecipe, error) {
	return m.filter(func(r *library.SavedRecipe) bool {
		return r.OwnerTelegramID == owner && r.ProfileID == profileID
	}), nil
}

func (m memRecipes) filter(keep func(*library.SavedRecipe) bool) []*library.SavedRecipe {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*library.SavedRecipe, 0)
	for _, r := range m.recipes {
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out
}

func (m memRecipes) Delete(ctx context.Context, owner int64, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.recipes {
		if r.ID == id && r.OwnerTelegramID == owner {
			m.recipes = append(m.recipes[:i], m.recipes[i+1:]...)
			return nil
		}
	}
	return library.ErrRecipeNotFound
}

type sentMessage struct {
	chatID int64
	text   string
}

type fakeTelegramClient struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[int64]error
}

func (f *fakeTelegramClient) SendMessage(chatID int64, text string, options *telebot.SendOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failFor[chatID]; err != nil {
		return err
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}
