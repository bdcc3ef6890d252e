package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rvachov/dayplan/internal/config"
	"github.com/rvachov/dayplan/internal/database"
	"github.com/rvachov/dayplan/internal/models"
	"github.com/rvachov/dayplan/internal/validation"
)

// NewPreferencesCmd creates the preferences command with get and set subcommands.
func NewPreferencesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preferences",
		Short: "Manage a user's scheduling preferences",
		Long:  "Inspect or update a user's complexity factors and default availability",
	}
	cmd.AddCommand(newPreferencesGetCmd())
	cmd.AddCommand(newPreferencesSetCmd())
	return cmd
}

func newPreferencesGetCmd() *cobra.Command {
	var userFlag string
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show a user's scheduling preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(userFlag)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}

			repo, closeDB, err := preferencesRepo()
			if err != nil {
				return err
			}
			defer closeDB()

			prefs, err := repo.GetOrDefault(context.Background(), userID)
			if err != nil {
				return fmt.Errorf("get preferences: %w", err)
			}

			fmt.Printf("Preferences for %s:\n", userID)
			fmt.Printf("  Morning complexity factor: %g\n", prefs.MorningComplexFactor)
			fmt.Printf("  Evening complexity factor: %g\n", prefs.EveningComplexFactor)
			fmt.Printf("  Morning available minutes: %d\n", prefs.MorningAvailableTime)
			fmt.Printf("  Evening available minutes: %d\n", prefs.EveningAvailableTime)
			return nil
		},
	}
	cmd.Flags().StringVar(&userFlag, "user", "", "User ID (required)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newPreferencesSetCmd() *cobra.Command {
	var (
		userFlag      string
		morningFactor float64
		eveningFactor float64
		morningTime   int
		eveningTime   int
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace a user's scheduling preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(userFlag)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
			if err := validation.ValidateComplexFactor("morning-factor", morningFactor); err != nil {
				return err
			}
			if err := validation.ValidateComplexFactor("evening-factor", eveningFactor); err != nil {
				return err
			}
			if morningTime < 0 || eveningTime < 0 {
				return fmt.Errorf("available minutes must be non-negative")
			}

			repo, closeDB, err := preferencesRepo()
			if err != nil {
				return err
			}
			defer closeDB()

			prefs := &models.UserPreferences{
				UserID:               userID,
				MorningComplexFactor: morningFactor,
				EveningComplexFactor: eveningFactor,
				MorningAvailableTime: morningTime,
				EveningAvailableTime: eveningTime,
			}
			if err := repo.Upsert(context.Background(), prefs); err != nil {
				return fmt.Errorf("set preferences: %w", err)
			}
			fmt.Println("Preferences updated.")
			return nil
		},
	}
	cmd.Flags().StringVar(&userFlag, "user", "", "User ID (required)")
	cmd.Flags().Float64Var(&morningFactor, "morning-factor", 1.0, "Morning complexity factor (0.5-1.5)")
	cmd.Flags().Float64Var(&eveningFactor, "evening-factor", 1.0, "Evening complexity factor (0.5-1.5)")
	cmd.Flags().IntVar(&morningTime, "morning-minutes", 120, "Default morning availability in minutes")
	cmd.Flags().IntVar(&eveningTime, "evening-minutes", 120, "Default evening availability in minutes")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func preferencesRepo() (*database.PreferencesRepository, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return database.NewPreferencesRepository(db), func() { _ = db.Close() }, nil
}
