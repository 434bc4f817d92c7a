package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/actions"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/config"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/seed"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "wilsons-cli",
	Short:         "Maintenance commands for the Wilson's Seafoods site",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// addUserCmd creates an admin login
var addUserCmd = &cobra.Command{
	Use:   "add-user",
	Short: "Create an admin user",
	RunE:  runAddUser,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		fmt.Println("Migrations applied.")
		return nil
	},
}

// seedCmd loads starter content from a YAML file
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load homepage content, settings and reviews from a YAML file",
	Long: `Load starter content from a YAML file.

The file may contain any of the sections "homepage", "settings" and
"reviews". Homepage content and settings replace the stored rows; reviews
are added. See seed.example.yaml.`,
	RunE: runSeed,
}

// addReviewCmd inserts a customer review directly
var addReviewCmd = &cobra.Command{
	Use:   "add-review",
	Short: "Add a customer review",
	RunE:  runAddReview,
}

var (
	username string
	password string

	seedFile string

	reviewName     string
	reviewRating   int
	reviewText     string
	reviewFeatured bool
)

func init() {
	addUserCmd.Flags().StringVar(&username, "username", "", "Username for the new user")
	addUserCmd.Flags().StringVar(&password, "password", "", "Password for the new user")
	addUserCmd.MarkFlagRequired("username")
	addUserCmd.MarkFlagRequired("password")

	seedCmd.Flags().StringVar(&seedFile, "file", "seed.yaml", "Seed file to load")

	addReviewCmd.Flags().StringVar(&reviewName, "name", "", "Customer name")
	addReviewCmd.Flags().IntVar(&reviewRating, "rating", 5, "Rating from 1 to 5")
	addReviewCmd.Flags().StringVar(&reviewText, "text", "", "Review text")
	addReviewCmd.Flags().BoolVar(&reviewFeatured, "featured", false, "Mark the review as featured")
	addReviewCmd.MarkFlagRequired("name")
	addReviewCmd.MarkFlagRequired("text")

	rootCmd.AddCommand(addUserCmd, migrateCmd, seedCmd, addReviewCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openStore connects with the server's configuration and makes sure the
// schema is current.
func openStore() (*store.Store, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	st, err := store.NewStore(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := st.Migrate(); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return st, nil
}

func runAddUser(cmd *cobra.Command, args []string) error {
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := st.CreateUser(cmd.Context(), username, string(hashedPassword)); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("User '%s' created successfully.\n", username)
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	f, err := os.Open(seedFile)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := seed.Load(f)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := seed.Apply(cmd.Context(), st, data); err != nil {
		return fmt.Errorf("failed to seed: %w", err)
	}
	fmt.Printf("Seeded from %s.\n", seedFile)
	return nil
}

func runAddReview(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	res := actions.New(st, nil).AddReview(cmd.Context(), models.Review{
		CustomerName: reviewName,
		Rating:       reviewRating,
		ReviewText:   reviewText,
		IsFeatured:   reviewFeatured,
		IsApproved:   true,
	})
	if !res.Success {
		return errors.New(res.Error)
	}
	fmt.Printf("Review %d added.\n", res.ID)
	return nil
}
