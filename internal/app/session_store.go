package app

import (
	"slices"
	"sync"
	"time"

	"sofia_aroma_bot/internal/domain/aroma"
	"sofia_aroma_bot/internal/domain/numerology"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Step is where a user currently is in the consultation flow. It decides how
// free text from the user is interpreted.
type Step string

const (
	StepIdle          Step = "idle"
	StepQuestionnaire Step = "questionnaire"
	StepRecipeChoice  Step = "recipe_choice"
	StepBirthDate     Step = "birth_date"
	StepFlower        Step = "flower"
	StepRecipe        Step = "recipe"
	StepProfileName   Step = "profile_name"
)

// Session is the consultation state of one user.
type Session struct {
	Step        Step
	Question    int      // zero-based index of the question being asked
	Votes       []string // one recipe name per answered question
	Recommended string
	Recipe      string

	HasBirthDate bool
	BirthDate    numerology.BirthDate
	Age          int
	Profile      numerology.Profile

	// ProfileID is set when the consultation runs for a saved profile.
	ProfileID uuid.UUID
	Composed  *aroma.ComposedRecipe
	Saved     bool // Composed is already stored
}

func (s Session) clone() Session {
	s.Votes = slices.Clone(s.Votes)
	return s
}

// SessionStore keeps sessions in memory. Entries expire after ttl of
// inactivity and the least recently used ones are evicted beyond capacity.
type SessionStore struct {
	mu    sync.Mutex
	cache *expirable.LRU[int64, Session]
}

func NewSessionStore(capacity int, ttl time.Duration) *SessionStore {
	return &SessionStore{cache: expirable.NewLRU[int64, Session](capacity, nil, ttl)}
}

// Get returns a copy of the session, or an idle one when none is stored.
func (s *SessionStore) Get(telegramID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.cache.Get(telegramID); ok {
		return sess.clone()
	}
	return Session{Step: StepIdle}
}

// Update applies fn to the stored session and saves the result unless fn
// fails. Updates of the store are serialized.
func (s *SessionStore) Update(telegramID int64, fn func(sess *Session) error) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.cache.Get(telegramID)
	if !ok {
		sess = Session{Step: StepIdle}
	}
	sess = sess.clone()
	if err := fn(&sess); err != nil {
		return Session{}, err
	}
	s.cache.Add(telegramID, sess)
	return sess.clone(), nil
}

// Reset drops the session.
func (s *SessionStore) Reset(telegramID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Remove(telegramID)
}

func (s *SessionStore) Len() int {
	return s.cache.Len()
}
