// Package main is the panchang command-line client: a local view of the
// same calendar engine the API serves, plus profile management.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rajatsoni/panchang-api/internal/choghadiya"
	"github.com/rajatsoni/panchang-api/internal/database"
	"github.com/rajatsoni/panchang-api/internal/muhurta"
	"github.com/rajatsoni/panchang-api/internal/panchang"
)

var dbPath string

var (
	good    = color.New(color.FgGreen).SprintFunc()
	bad     = color.New(color.FgRed).SprintFunc()
	neutral = color.New(color.FgYellow).SprintFunc()
	heading = color.New(color.Bold).SprintFunc()
)

func main() {
	home, _ := os.UserHomeDir()
	defaultDB := filepath.Join(home, ".panchang", "panchang.db")

	rootCmd := &cobra.Command{
		Use:   "panchang",
		Short: "Hindu calendar elements and auspicious-time lookup",
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "database path")

	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(choghadiyaCmd())
	rootCmd.AddCommand(slotsCmd())
	rootCmd.AddCommand(icsCmd())
	rootCmd.AddCommand(profileCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// argDate parses an optional positional YYYY-MM-DD argument, defaulting
// to today.
func argDate(args []string) (time.Time, error) {
	if len(args) == 0 {
		return time.Now(), nil
	}
	return panchang.ParseDateString(args[0])
}

func showCmd() *cobra.Command {
	var event string

	cmd := &cobra.Command{
		Use:   "show [date]",
		Short: "Show panchang elements and quality score for a date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := argDate(args)
			if err != nil {
				return err
			}

			ev := muhurta.ParseEventType(event)
			snap := panchang.Approximate(date)
			breakdown := muhurta.BreakdownFor(snap, ev)
			snap.QualityScore = breakdown.Total
			snap.IsAuspicious = muhurta.IsAuspicious(snap.QualityScore)

			fmt.Printf("%s  (%s)\n\n", heading(panchang.FormatDate(snap.Date)), snap.Date.Weekday())
			fmt.Printf("  Tithi:      %s (%s paksha)\n", snap.Tithi, snap.Paksha)
			fmt.Printf("  Nakshatra:  %s\n", snap.Nakshatra)
			fmt.Printf("  Yoga:       %s\n", snap.Yoga)
			fmt.Printf("  Karana:     %s\n", snap.Karana)
			fmt.Printf("  Masa:       %s\n", snap.Masa)
			fmt.Printf("  Moon sign:  %s\n", snap.MoonSign)
			fmt.Printf("  Sunrise:    %s    Sunset: %s\n\n", snap.Sunrise, snap.Sunset)

			verdict := bad("inauspicious")
			if snap.IsAuspicious {
				verdict = good("auspicious")
			}
			fmt.Printf("  Quality: %d/100 (%s)\n\n", snap.QualityScore, verdict)

			for _, f := range breakdown.Factors {
				marker := neutral("·")
				if f.Value > 0 {
					marker = good("+")
				} else if f.Value < 0 {
					marker = bad("-")
				}
				fmt.Printf("  %s %-16s %+3d  %s\n", marker, f.Name, f.Value, f.Reason)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&event, "event", "", "event type (marriage, housewarming, business, travel, naming)")
	return cmd
}

func choghadiyaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "choghadiya [date]",
		Short: "Show the day and night choghadiya periods for a date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := argDate(args)
			if err != nil {
				return err
			}

			sunrise, sunset := panchang.SunTimes(date)
			day, night := choghadiya.Partition(date, sunrise, sunset)

			printPeriods := func(title string, periods []choghadiya.Period) {
				fmt.Printf("%s\n", heading(title))
				for _, p := range periods {
					label := neutral(p.Name)
					switch p.Type {
					case choghadiya.Auspicious:
						label = good(p.Name)
					case choghadiya.Inauspicious:
						label = bad(p.Name)
					}
					fmt.Printf("  %s - %s  %-18s (%s) %s\n", p.Start, p.End, label, p.Ruler, p.Description)
				}
				fmt.Println()
			}

			printPeriods("Day", day)
			printPeriods("Night", night)

			if current := choghadiya.CurrentPeriod(append(day, night...), time.Now()); current != nil {
				fmt.Printf("Now: %s (%s)\n", current.Name, current.Type)
			}
			return nil
		},
	}
}

func slotsCmd() *cobra.Command {
	var width, step int
	var event string

	cmd := &cobra.Command{
		Use:   "slots [date]",
		Short: "Rank auspicious time slots within daylight hours",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := argDate(args)
			if err != nil {
				return err
			}

			slots := rankedSlots(date, muhurta.ParseEventType(event), width, step)
			if len(slots) == 0 {
				fmt.Println("No slots available.")
				return nil
			}

			for i, s := range slots {
				score := fmt.Sprintf("%3d", s.Score)
				if muhurta.IsAuspicious(s.Score) {
					score = good(score)
				}
				fmt.Printf("%2d. %s - %s  score %s\n", i+1, s.Start, s.End, score)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "slot width in minutes (default 60)")
	cmd.Flags().IntVar(&step, "step", 0, "slot step in minutes (default 30)")
	cmd.Flags().StringVar(&event, "event", "", "event type")
	return cmd
}

func icsCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "ics [date]",
		Short: "Export the best slot of a date as an iCalendar event",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := argDate(args)
			if err != nil {
				return err
			}

			slots := rankedSlots(date, muhurta.EventNone, 0, 0)
			if len(slots) == 0 {
				return fmt.Errorf("no slots available for %s", panchang.FormatDate(date))
			}

			fmt.Print(muhurta.WrapCalendar(muhurta.ToCalendarEvent(title, slots[0])))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "Auspicious time", "event title")
	return cmd
}

func rankedSlots(date time.Time, event muhurta.EventType, width, step int) []muhurta.Slot {
	snap := panchang.Approximate(date)
	base := float64(muhurta.Score(snap, event))

	return muhurta.RankSlots(muhurta.SlotInput{
		Date:        date,
		Sunrise:     snap.Sunrise,
		Sunset:      snap.Sunset,
		Tithi:       snap.Tithi,
		Nakshatra:   snap.Nakshatra,
		BaseQuality: &base,
	}, width, step)
}

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the stored user profile",
	}
	cmd.AddCommand(profileSetCmd(), profileShowCmd(), profileClearCmd())
	return cmd
}

func openStore() (*database.DB, error) {
	quiet := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	db, err := database.Open(database.DefaultConfig(dbPath), quiet)
	if err != nil {
		return nil, err
	}
	if _, err := db.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func profileSetCmd() *cobra.Command {
	var name, birthDate, birthTime, birthPlace string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or overwrite the profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := panchang.ParseDateString(birthDate)
			if err != nil {
				return fmt.Errorf("invalid --birth-date: %w", err)
			}

			db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			profile := &database.Profile{
				Name:      name,
				BirthDate: birthDate,
				MoonSign:  panchang.Approximate(parsed).MoonSign,
			}
			if birthTime != "" {
				profile.BirthTime = &birthTime
			}
			if birthPlace != "" {
				profile.BirthPlace = &birthPlace
			}

			if err := db.SaveProfile(context.Background(), profile); err != nil {
				return err
			}

			fmt.Printf("Saved profile for %s (moon sign %s)\n", profile.Name, good(profile.MoonSign))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&birthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&birthTime, "birth-time", "", "birth time (HH:MM)")
	cmd.Flags().StringVar(&birthPlace, "birth-place", "", "birth place")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("birth-date")
	return cmd
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			profile, err := db.GetProfile(context.Background())
			if err != nil {
				if database.IsNotFound(err) {
					fmt.Println("No profile saved.")
					return nil
				}
				return err
			}

			fmt.Printf("%s\n", heading(profile.Name))
			fmt.Printf("  Born:      %s", profile.BirthDate)
			if profile.BirthTime != nil {
				fmt.Printf(" at %s", *profile.BirthTime)
			}
			if profile.BirthPlace != nil {
				fmt.Printf(" in %s", *profile.BirthPlace)
			}
			fmt.Println()
			fmt.Printf("  Moon sign: %s\n", profile.MoonSign)
			return nil
		},
	}
}

func profileClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.DeleteProfile(context.Background()); err != nil {
				return err
			}
			fmt.Println("Profile deleted.")
			return nil
		},
	}
}
