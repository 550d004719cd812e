package settings

import (
	"fmt"

	"github.com/julianstephens/mindtrack/internal/calendar"
	"github.com/julianstephens/mindtrack/internal/cli"
	"github.com/julianstephens/mindtrack/internal/models"
)

// ProfileStats are the activity counts shown alongside the profile.
type ProfileStats struct {
	MoodEntries    int
	JournalEntries int
	ChatMessages   int
	AverageMood    float64
	DaysActive     int
}

// CollectStats counts the user's records across the store.
func CollectStats(ctx *cli.Context, p models.Profile) (ProfileStats, error) {
	moods, err := ctx.Store.ListMoodEntries(p.ID, 0)
	if err != nil {
		return ProfileStats{}, fmt.Errorf("failed to load mood entries: %w", err)
	}
	journal, err := ctx.Store.ListJournalEntries(p.ID)
	if err != nil {
		return ProfileStats{}, fmt.Errorf("failed to load journal entries: %w", err)
	}
	convs, err := ctx.Store.ListConversations(p.ID)
	if err != nil {
		return ProfileStats{}, fmt.Errorf("failed to load conversations: %w", err)
	}

	stats := ProfileStats{
		MoodEntries:    len(moods),
		JournalEntries: len(journal),
		AverageMood:    models.AverageMood(moods),
		DaysActive:     p.DaysActive(ctx.Now()),
	}
	for _, c := range convs {
		stats.ChatMessages += c.MessageCount
	}
	return stats, nil
}

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	p, err := ctx.Store.GetProfile(userID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	stats, err := CollectStats(ctx, p)
	if err != nil {
		return err
	}

	fmt.Println("Profile:")
	fmt.Printf("  ID:            %s\n", p.ID)
	fmt.Printf("  Name:          %s\n", orDash(p.FullName))
	fmt.Printf("  Email:         %s\n", orDash(p.Email))
	fmt.Printf("  Phone:         %s\n", orDash(p.Phone))
	fmt.Printf("  Location:      %s\n", orDash(p.Location))
	if p.DateOfBirth.IsZero() {
		fmt.Println("  Date of Birth: -")
	} else {
		fmt.Printf("  Date of Birth: %s\n", p.DateOfBirth)
	}
	fmt.Printf("  Picture URL:   %s\n", orDash(p.ProfilePictureURL))
	if p.Bio != "" {
		fmt.Printf("  Bio:           %s\n", p.Bio)
	}

	fmt.Println("\nStatistics:")
	fmt.Printf("  Mood Entries:    %d\n", stats.MoodEntries)
	fmt.Printf("  Journal Entries: %d\n", stats.JournalEntries)
	fmt.Printf("  Chat Messages:   %d\n", stats.ChatMessages)
	fmt.Printf("  Average Mood:    %.1f/10\n", stats.AverageMood)
	fmt.Printf("  Days Active:     %d\n", stats.DaysActive)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

type ProfileSetCmd struct {
	Name       *string `help:"Full name."`
	Email      *string `help:"Email address."`
	Phone      *string `help:"Phone number."`
	Location   *string `help:"Location."`
	Bio        *string `help:"Short bio."`
	Birthday   *string `name:"date-of-birth" help:"Date of birth (YYYY-MM-DD, empty to clear)."`
	PictureURL *string `name:"picture-url" help:"Profile picture URL."`
}

func (c *ProfileSetCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	p, err := ctx.Store.GetProfile(userID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	updated := false
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
			updated = true
		}
	}
	set(&p.FullName, c.Name)
	set(&p.Email, c.Email)
	set(&p.Phone, c.Phone)
	set(&p.Location, c.Location)
	set(&p.Bio, c.Bio)
	set(&p.ProfilePictureURL, c.PictureURL)
	if c.Birthday != nil {
		if *c.Birthday == "" {
			p.DateOfBirth = calendar.Date{}
		} else {
			dob, err := calendar.Parse(*c.Birthday)
			if err != nil {
				return fmt.Errorf("invalid date of birth %q (expected YYYY-MM-DD): %w", *c.Birthday, err)
			}
			today, err := ctx.Today()
			if err != nil {
				return err
			}
			if dob.After(today) {
				return fmt.Errorf("date of birth cannot be in the future")
			}
			p.DateOfBirth = dob
		}
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use 'mindtrack profile show' to view your profile.")
		return nil
	}
	p.UpdatedAt = ctx.Now().UTC()
	if err := ctx.Store.SaveProfile(p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	ctx.PerformAutomaticBackup()

	fmt.Println("Profile updated successfully.")
	return nil
}
