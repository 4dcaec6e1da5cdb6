package files

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

// PhotoArchive downloads submitted report photos to a local directory so they
// survive Telegram file-id expiry. Archiving is best effort: callers log
// failures and keep going.
type PhotoArchive struct {
	botAPI   *tgbotapi.BotAPI
	photoDir string
}

func NewPhotoArchive(botAPI *tgbotapi.BotAPI, photoDir string) (*PhotoArchive, error) {
	if err := os.MkdirAll(photoDir, 0755); err != nil {
		return nil, fmt.Errorf("files.NewPhotoArchive: cannot create dir %s: %w", photoDir, err)
	}

	return &PhotoArchive{
		botAPI:   botAPI,
		photoDir: photoDir,
	}, nil
}

func (a *PhotoArchive) Save(fileID string) (string, error) {
	file, err := a.botAPI.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("PhotoArchive.Save: cannot get file: %w", err)
	}

	fileExt := filepath.Ext(file.FilePath)
	if fileExt == "" {
		fileExt = ".jpg"
	}

	fileName := fmt.Sprintf("%s%s", uuid.New().String(), fileExt)
	filePath := filepath.Join(a.photoDir, fileName)

	resp, err := http.Get(file.Link(a.botAPI.Token))
	if err != nil {
		return "", fmt.Errorf("PhotoArchive.Save: cannot download file: %w", err)
	}

	defer resp.Body.Close()

	out, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("PhotoArchive.Save: cannot create file: %w", err)
	}

	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	if err != nil {
		return "", fmt.Errorf("PhotoArchive.Save: cannot save file: %w", err)
	}

	return filePath, nil
}
