package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sofia_aroma_bot/internal/domain/aroma"
	"sofia_aroma_bot/internal/domain/library"
	"sofia_aroma_bot/internal/domain/numerology"
	"sofia_aroma_bot/internal/domain/questionnaire"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoActiveConsultation = fmt.Errorf("no consultation in progress")
	ErrStaleQuestion        = fmt.Errorf("answer is for a question that is no longer asked")
	ErrInvalidOption        = fmt.Errorf("no such answer option")
	ErrRecipeNotChosen      = fmt.Errorf("recipe has not been chosen")
	ErrBirthDateMissing     = fmt.Errorf("birth date has not been entered")
	ErrNothingToSave        = fmt.Errorf("no composed recipe to save")
	ErrRecipeAlreadySaved   = fmt.Errorf("composed recipe is already saved")
)

// AnswerResult is what follows an answer: either the next question or, after
// the last one, the recommended recipe.
type AnswerResult struct {
	Next        *questionnaire.Question
	Recommended string
}

// FlowerView is the numerology profile shown after the birth date is entered.
type FlowerView struct {
	BirthDate numerology.BirthDate
	Age       int
	Band      numerology.Band
	Profile   numerology.Profile
	Recipe    string
}

// SaveResult reports where a recipe was saved. When NeedsProfileName is set
// nothing was saved yet and the user has to name a new profile.
type SaveResult struct {
	Saved            *library.SavedRecipe
	Profile          *library.Profile
	NeedsProfileName bool
}

// ConsultationService drives the questionnaire → birth date → flower →
// recipe flow for each user.
type ConsultationService struct {
	sessions    *SessionStore
	profileRepo library.ProfileRepository
	recipeRepo  library.RecipeRepository
	log         *logrus.Entry
}

func NewConsultationService(
	sessions *SessionStore,
	pr library.ProfileRepository,
	rr library.RecipeRepository,
	log *logrus.Entry,
) *ConsultationService {
	return &ConsultationService{
		sessions:    sessions,
		profileRepo: pr,
		recipeRepo:  rr,
		log:         log,
	}
}

// Session returns a snapshot of the user's session.
func (s *ConsultationService) Session(telegramID int64) Session {
	return s.sessions.Get(telegramID)
}

// Begin starts the questionnaire from scratch.
func (s *ConsultationService) Begin(ctx context.Context, telegramID int64) (questionnaire.Question, error) {
	s.sessions.Reset(telegramID)
	_, err := s.sessions.Update(telegramID, func(sess *Session) error {
		sess.Step = StepQuestionnaire
		return nil
	})
	if err != nil {
		return questionnaire.Question{}, err
	}
	q, _ := questionnaire.QuestionAt(0)
	return q, nil
}

// Answer records the vote of the chosen option of question questionIdx.
func (s *ConsultationService) Answer(ctx context.Context, telegramID int64, questionIdx, optionIdx int) (*AnswerResult, error) {
	result := &AnswerResult{}
	_, err := s.sessions.Update(telegramID, func(sess *Session) error {
		if sess.Step != StepQuestionnaire {
			return ErrNoActiveConsultation
		}
		if questionIdx != sess.Question {
			return ErrStaleQuestion
		}
		q, ok := questionnaire.QuestionAt(questionIdx)
		if !ok {
			return ErrStaleQuestion
		}
		if optionIdx < 0 || optionIdx >= len(q.Options) {
			return fmt.Errorf("%w: %d for question %d", ErrInvalidOption, optionIdx, q.ID)
		}

		sess.Votes = append(sess.Votes, q.Options[optionIdx].Recipe)
		sess.Question++

		if next, ok := questionnaire.QuestionAt(sess.Question); ok {
			result.Next = &next
			return nil
		}

		winner, err := questionnaire.Select(sess.Votes)
		if err != nil {
			return err
		}
		sess.Recommended = winner
		sess.Step = StepRecipeChoice
		result.Recommended = winner
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Back removes the last vote and returns the question to answer again. On the
// first question it stays there.
func (s *ConsultationService) Back(ctx context.Context, telegramID int64) (questionnaire.Question, error) {
	sess, err := s.sessions.Update(telegramID, func(sess *Session) error {
		switch sess.Step {
		case StepQuestionnaire, StepRecipeChoice:
		default:
			return ErrNoActiveConsultation
		}
		if len(sess.Votes) > 0 {
			sess.Votes = sess.Votes[:len(sess.Votes)-1]
		}
		sess.Question = len(sess.Votes)
		sess.Recommended = ""
		sess.Step = StepQuestionnaire
		return nil
	})
	if err != nil {
		return questionnaire.Question{}, err
	}
	q, _ := questionnaire.QuestionAt(sess.Question)
	return q, nil
}

// AcceptRecommendation takes the recipe the questionnaire recommended.
func (s *ConsultationService) AcceptRecommendation(ctx context.Context, telegramID int64) (string, error) {
	sess := s.sessions.Get(telegramID)
	if sess.Recommended == "" {
		return "", ErrRecipeNotChosen
	}
	return s.ChooseRecipe(ctx, telegramID, sess.Recommended)
}

// ChooseRecipe selects the recipe to compose, overriding any recommendation,
// and asks for the birth date next.
func (s *ConsultationService) ChooseRecipe(ctx context.Context, telegramID int64, name string) (string, error) {
	if _, ok := aroma.LookupRecipe(name); !ok {
		return "", fmt.Errorf("%w: %q", aroma.ErrUnknownRecipe, name)
	}
	_, err := s.sessions.Update(telegramID, func(sess *Session) error {
		sess.Recipe = name
		sess.Composed = nil
		sess.Saved = false
		sess.Step = StepBirthDate
		sess.HasBirthDate = false
		sess.ProfileID = uuid.Nil
		return nil
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// SubmitBirthDate parses the birth date, derives the profile and returns the
// flower view.
func (s *ConsultationService) SubmitBirthDate(ctx context.Context, telegramID int64, text string, now time.Time) (*FlowerView, error) {
	b, err := numerology.ParseBirthDate(text)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Update(telegramID, func(sess *Session) error {
		if sess.Step != StepBirthDate {
			return ErrNoActiveConsultation
		}
		sess.BirthDate = b
		sess.HasBirthDate = true
		sess.Age = numerology.AgeOn(b, now)
		sess.Profile = numerology.Derive(b)
		sess.Step = StepFlower
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"telegram_id": telegramID, "age": sess.Age}).Debug("Birth date accepted")
	return &FlowerView{
		BirthDate: sess.BirthDate,
		Age:       sess.Age,
		Band:      numerology.BandForAge(sess.Age),
		Profile:   sess.Profile,
		Recipe:    sess.Recipe,
	}, nil
}

// Compose builds the chosen recipe for the session's profile and age.
func (s *ConsultationService) Compose(ctx context.Context, telegramID int64) (*aroma.ComposedRecipe, error) {
	var composed *aroma.ComposedRecipe
	_, err := s.sessions.Update(telegramID, func(sess *Session) error {
		if sess.Recipe == "" {
			return ErrRecipeNotChosen
		}
		if !sess.HasBirthDate {
			return ErrBirthDateMissing
		}
		c, err := aroma.Compose(sess.Recipe, sess.Profile, sess.Age)
		if err != nil {
			return err
		}
		sess.Composed = c
		sess.Saved = false
		sess.Step = StepRecipe
		composed = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return composed, nil
}

// SaveRecipe stores the composed recipe. It goes into the profile the
// consultation runs for, or into the owner's profile with the same birth
// date. Otherwise the session waits for a name for a new profile.
func (s *ConsultationService) SaveRecipe(ctx context.Context, telegramID int64, now time.Time) (*SaveResult, error) {
	sess := s.sessions.Get(telegramID)
	if sess.Composed == nil {
		return nil, ErrNothingToSave
	}
	if sess.Saved {
		return nil, ErrRecipeAlreadySaved
	}

	var profile *library.Profile
	var err error
	if sess.ProfileID != uuid.Nil {
		profile, err = s.profileRepo.GetByID(ctx, telegramID, sess.ProfileID)
	} else {
		profile, err = s.profileRepo.FindByBirthDate(ctx, telegramID, sess.BirthDate)
	}
	if errors.Is(err, library.ErrProfileNotFound) {
		if _, err := s.sessions.Update(telegramID, func(sess *Session) error {
			sess.Step = StepProfileName
			return nil
		}); err != nil {
			return nil, err
		}
		return &SaveResult{NeedsProfileName: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up profile for saving: %w", err)
	}

	saved, err := s.save(ctx, profile, sess.Composed, now)
	if err != nil {
		return nil, err
	}
	return &SaveResult{Saved: saved, Profile: profile}, nil
}

// SubmitProfileName creates a profile from the session's birth date and
// saves the composed recipe into it.
func (s *ConsultationService) SubmitProfileName(ctx context.Context, telegramID int64, name string, now time.Time) (*SaveResult, error) {
	sess := s.sessions.Get(telegramID)
	if sess.Step != StepProfileName {
		return nil, ErrNoActiveConsultation
	}
	if sess.Composed == nil || !sess.HasBirthDate {
		return nil, ErrNothingToSave
	}

	profile, err := library.NewProfile(telegramID, name, sess.BirthDate, now)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	s.log.WithFields(logrus.Fields{"telegram_id": telegramID, "profile_id": profile.ID}).Info("Profile created")

	saved, err := s.save(ctx, profile, sess.Composed, now)
	if err != nil {
		return nil, err
	}
	return &SaveResult{Saved: saved, Profile: profile}, nil
}

func (s *ConsultationService) save(ctx context.Context, profile *library.Profile, composed *aroma.ComposedRecipe, now time.Time) (*library.SavedRecipe, error) {
	owner := profile.OwnerTelegramID

	// The recipe is marked saved before the insert, so a repeated tap that
	// races this one gets ErrRecipeAlreadySaved instead of a second row.
	if _, err := s.sessions.Update(owner, func(sess *Session) error {
		if sess.Composed != composed {
			return ErrNothingToSave
		}
		if sess.Saved {
			return ErrRecipeAlreadySaved
		}
		sess.Saved = true
		return nil
	}); err != nil {
		return nil, err
	}

	saved := library.NewSavedRecipe(profile, composed, now)
	if err := s.recipeRepo.Create(ctx, saved); err != nil {
		_, _ = s.sessions.Update(owner, func(sess *Session) error {
			if sess.Composed == composed {
				sess.Saved = false
			}
			return nil
		})
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	if _, err := s.sessions.Update(owner, func(sess *Session) error {
		sess.ProfileID = profile.ID
		sess.Step = StepRecipe
		return nil
	}); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"telegram_id": owner,
		"profile_id":  profile.ID,
		"recipe":      saved.RecipeName,
	}).Info("Recipe saved")
	return saved, nil
}

// ComposeForProfile composes a recipe for a saved profile using its stored
// age. A following SaveRecipe saves into that profile.
func (s *ConsultationService) ComposeForProfile(ctx context.Context, telegramID int64, profileID uuid.UUID, recipeName string) (*aroma.ComposedRecipe, error) {
	profile, err := s.profileRepo.GetByID(ctx, telegramID, profileID)
	if err != nil {
		return nil, err
	}
	composed, err := aroma.Compose(recipeName, profile.Flower(), profile.Age)
	if err != nil {
		return nil, err
	}

	_, err = s.sessions.Update(telegramID, func(sess *Session) error {
		*sess = Session{
			Step:         StepRecipe,
			Recipe:       recipeName,
			HasBirthDate: true,
			BirthDate:    profile.BirthDate,
			Age:          profile.Age,
			Profile:      profile.Flower(),
			ProfileID:    profile.ID,
			Composed:     composed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return composed, nil
}

// Finish ends the consultation.
func (s *ConsultationService) Finish(ctx context.Context, telegramID int64) {
	s.sessions.Reset(telegramID)
}
