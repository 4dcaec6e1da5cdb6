package main

import (
	"os"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/gratefultolord/daily_report_bot/internal/bot"
	"github.com/gratefultolord/daily_report_bot/internal/config"
	"github.com/gratefultolord/daily_report_bot/internal/db"
	"github.com/gratefultolord/daily_report_bot/internal/files"
	"github.com/gratefultolord/daily_report_bot/internal/media"
)

const sessionTTL = 12 * time.Hour

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	database, err := db.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to database")
	}
	defer database.Close()

	if err := db.RunMigrations(database.Conn, log, "db_scripts/init.sql"); err != nil {
		log.Fatal().Err(err).Msg("cannot run migrations")
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create telegram bot")
	}

	userRepo := db.NewUserRepository(database.Conn)
	reportRepo := db.NewReportRepository(database.Conn)
	taskRepo := db.NewTaskRepository(database.Conn)

	photoArchive, err := files.NewPhotoArchive(botAPI, cfg.PhotoDir)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create photo archive")
	}

	sessions := bot.NewSessionManager(sessionTTL)

	service := bot.New(
		botAPI,
		userRepo,
		reportRepo,
		taskRepo,
		sessions,
		cfg.AdminIDs,
		cfg.AccessCodes,
		photoArchive,
		media.NewLibrary(cfg.MediaDir),
		log,
	)

	scheduler := cron.New()

	// weekly digest to admins, Sunday midnight
	if _, err := scheduler.AddFunc("0 0 * * 0", func() {
		service.SendWeeklyDigest(time.Now())
	}); err != nil {
		log.Fatal().Err(err).Msg("cannot schedule weekly digest")
	}

	if _, err := scheduler.AddFunc("@every 1h", func() {
		if n := sessions.ExpireIdle(time.Now()); n > 0 {
			log.Info().Int("sessions", n).Msg("expired idle sessions")
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("cannot schedule session sweep")
	}

	scheduler.Start()
	defer scheduler.Stop()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	log.Info().Str("bot", botAPI.Self.UserName).Msg("bot started")

	service.Run(botAPI.GetUpdatesChan(u))
}
