package telegram

import (
	"context"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

const fetchTimeout = 30 * time.Second

// FileService downloads files uploaded to Telegram by their file ID.
// It implements trade.FileFetcher.
type FileService struct {
	api    *tgbotapi.BotAPI
	client *http.Client
}

// NewFileService creates a file service bound to the given bot API.
func NewFileService(api *tgbotapi.BotAPI) *FileService {
	return &FileService{
		api:    api,
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// Fetch resolves the file ID to a download URL and returns the file body.
func (f *FileService) Fetch(ctx context.Context, ref string) ([]byte, error) {
	url, err := f.api.GetFileDirectURL(ref)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve file %s", ref)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build file request")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "download file %s", ref)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("download file %s: unexpected status %d", ref, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read file %s", ref)
	}
	return data, nil
}
