package app

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"sofia_aroma_bot/internal/domain/library"
	"sofia_aroma_bot/internal/domain/numerology"
	domainTelegram "sofia_aroma_bot/internal/domain/telegram"
	"sofia_aroma_bot/internal/domain/user"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// ReminderService runs the scheduled jobs.
type ReminderService struct {
	userRepo       user.Repository
	profileRepo    library.ProfileRepository
	recipeRepo     library.RecipeRepository
	telegramClient domainTelegram.Client
	log            *logrus.Entry
}

func NewReminderService(
	ur user.Repository,
	pr library.ProfileRepository,
	rr library.RecipeRepository,
	tc domainTelegram.Client,
	log *logrus.Entry,
) *ReminderService {
	return &ReminderService{
		userRepo:       ur,
		profileRepo:    pr,
		recipeRepo:     rr,
		telegramClient: tc,
		log:            log,
	}
}

// SendRitualReminders sends the daily aroma ritual reminder to every user who
// has reminders on and at least one saved recipe. A failed send is logged and
// does not stop the others.
func (s *ReminderService) SendRitualReminders(ctx context.Context) error {
	users, err := s.userRepo.ListWithReminders(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users for reminders: %w", err)
	}
	if len(users) == 0 {
		s.log.Info("No users to remind")
		return nil
	}

	sent := 0
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return err
		}
		log := s.log.WithField("telegram_id", u.TelegramID)

		recipes, err := s.recipeRepo.ListByOwner(ctx, u.TelegramID)
		if err != nil {
			log.WithError(err).Error("Failed to list recipes for reminder")
			continue
		}
		if len(recipes) == 0 {
			continue
		}

		text := RitualReminderText(u, recipes)
		if err := s.telegramClient.SendMessage(u.TelegramID, text, &telebot.SendOptions{ParseMode: telebot.ModeHTML}); err != nil {
			log.WithError(err).Error("Failed to send ritual reminder")
			continue
		}
		sent++
	}

	s.log.WithFields(logrus.Fields{"users": len(users), "sent": sent}).Info("Ritual reminders sent")
	return nil
}

// RitualReminderText lists the user's saved recipes, one line per recipe.
func RitualReminderText(u *user.User, recipes []*library.SavedRecipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌸 %s, время для аромаритуала.\n\n", html.EscapeString(u.DisplayName()))
	b.WriteString("Ваши рецепты:\n")
	for _, r := range recipes {
		fmt.Fprintf(&b, "• <b>%s</b> для %s (%d капель)\n", html.EscapeString(r.RecipeName), html.EscapeString(r.ProfileName), r.TotalDrops)
	}
	b.WriteString("\nНанесите 1-2 капли смеси на запястья, сделайте три медленных вдоха и задайте намерение на день.\n")
	b.WriteString("Отключить напоминания: /reminders off")
	return b.String()
}

// RefreshProfileAges recomputes the stored age of every profile as of now
// and writes back those that changed. It returns how many changed.
func (s *ReminderService) RefreshProfileAges(ctx context.Context, now time.Time) (int, error) {
	profiles, err := s.profileRepo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list profiles: %w", err)
	}

	changed := make([]*library.Profile, 0)
	for _, p := range profiles {
		age := numerology.AgeOn(p.BirthDate, now)
		if age == p.Age {
			continue
		}
		p.Age = age
		changed = append(changed, p)
	}

	if err := s.profileRepo.UpdateAges(ctx, changed); err != nil {
		return 0, fmt.Errorf("failed to update profile ages: %w", err)
	}
	s.log.WithFields(logrus.Fields{"profiles": len(profiles), "updated": len(changed)}).Info("Profile ages refreshed")
	return len(changed), nil
}
