package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/allinhq/allin-backend/internal/app"
	"github.com/allinhq/allin-backend/internal/db"
	"github.com/allinhq/allin-backend/internal/logger"
	"github.com/allinhq/allin-backend/internal/repos"
	"github.com/allinhq/allin-backend/internal/services"
	"github.com/allinhq/allin-backend/internal/types"
)

// Development seeder. Creates ten demo users, one intake profile each and
// twenty days of daily survey history, all through the regular service
// layer so the same validation runs as in production.
func main() {
	log, err := logger.New("development")
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := app.LoadConfig(log)
	if err != nil {
		log.Error("Could not load config", "error", err)
		os.Exit(1)
	}

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	intakeProfileRepo := repos.NewIntakeProfileRepo(thePG, log)
	dailyStateRepo := repos.NewDailyStateRepo(thePG, log)

	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	intakeService := services.NewIntakeService(thePG, log, intakeProfileRepo, userRepo)
	dailyService := services.NewDailyStateService(thePG, log, dailyStateRepo, userRepo)

	ctx := context.Background()

	hobbies := []types.Hobby{
		types.HobbyReading, types.HobbyGaming, types.HobbyMusic,
		types.HobbyCookingBaking, types.HobbyHiking, types.HobbyYoga,
		types.HobbySports, types.HobbyPhotography, types.HobbyWriting,
		types.HobbyBoardGames,
	}
	colors := []types.FavoriteColor{
		types.ColorBlue, types.ColorGreen, types.ColorRed, types.ColorPurple,
		types.ColorOrange,
	}
	pronouns := []types.Pronouns{
		types.PronounsSheHer, types.PronounsHeHim, types.PronounsTheyThem,
	}

	for i := 0; i < 10; i++ {
		user := &types.User{
			Username:          fmt.Sprintf("demo%d", i+1),
			Email:             fmt.Sprintf("demo%d@example.com", i+1),
			Password:          "password123",
			FirstName:         fmt.Sprintf("Demo%d", i+1),
			PreferredLanguage: "en",
		}
		if err := authService.RegisterUser(ctx, user); err != nil {
			log.Warn("Skipping user, registration failed", "email", user.Email, "error", err)
			continue
		}

		profile := &types.IntakeProfile{
			UserID:                    user.ID,
			Pronouns:                  pronouns[i%len(pronouns)],
			FavoriteColor:             colors[i%len(colors)],
			Hobby:                     hobbies[i%len(hobbies)],
			AgeRange:                  types.Age25To34,
			ClosePersonPresence:       types.ClosePersonCloseFriend,
			FamilyRelationshipQuality: types.FamilyGood,
			CloseRelationshipsQuality: types.CloseGood,
		}
		if _, err := intakeService.Create(ctx, profile); err != nil && !errors.Is(err, services.ErrIntakeProfileExists) {
			log.Warn("Could not create intake profile", "email", user.Email, "error", err)
		}

		now := time.Now()
		for d := 20; d >= 1; d-- {
			day := now.AddDate(0, 0, -d)
			state := &types.DailyState{
				UserID:       user.ID,
				Satisfaction: 1 + (i+d)%5,
				Physical:     1 + (i+d+1)%5,
				Motivation:   1 + (i+d+2)%5,
				Focus:        1 + (i+d+3)%5,
				Openness:     1 + (i+d+4)%5,
				FilledAt:     time.Date(day.Year(), day.Month(), day.Day(), 18, 0, 0, 0, day.Location()),
			}
			if _, err := dailyService.Submit(ctx, state); err != nil {
				log.Warn("Could not submit daily state", "email", user.Email, "error", err)
			}
		}
		log.Info("Seeded user", "email", user.Email)
	}
	fmt.Println("Seed complete")
}
