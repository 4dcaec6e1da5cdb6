package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken    string
	AdminIDs    []int64
	AccessCodes []string
	DBUser      string
	DBPassword  string
	DBName      string
	DBHost      string
	DBPort      string
	MediaDir    string
	PhotoDir    string
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Printf("config.Load: no .env file found - using env variables")
	}

	cfg := &Config{
		BotToken:   os.Getenv("BOT_TOKEN"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		MediaDir:   os.Getenv("MEDIA_DIR"),
		PhotoDir:   os.Getenv("PHOTO_DIR"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("config.Load: BOT_TOKEN is required")
	}

	cfg.AdminIDs, err = parseAdminIDs(os.Getenv("ADMIN_IDS"))
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	cfg.AccessCodes = splitList(os.Getenv("ACCESS_CODES"))
	if len(cfg.AccessCodes) == 0 {
		return nil, fmt.Errorf("config.Load: ACCESS_CODES is required")
	}

	if cfg.DBUser == "" || cfg.DBPassword == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("config.Load: DB_USER, DB_PASSWORD, DB_NAME are required")
	}

	if cfg.DBHost == "" {
		cfg.DBHost = "localhost"
	}

	if cfg.DBPort == "" {
		cfg.DBPort = "5432"
	}

	if cfg.MediaDir == "" {
		cfg.MediaDir = "media"
	}

	if cfg.PhotoDir == "" {
		cfg.PhotoDir = "report_photos"
	}

	return cfg, nil
}

func parseAdminIDs(raw string) ([]int64, error) {
	parts := splitList(raw)
	if len(parts) == 0 {
		return nil, fmt.Errorf("ADMIN_IDS is required")
	}

	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_IDS: invalid chat id %q", p)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
