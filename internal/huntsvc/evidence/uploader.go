package evidence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// Uploader hands photo/video blobs to the external evidence store, one file
// per request, and gets back a retrievable URL. This service never reads or
// deletes blobs.
type Uploader interface {
	Upload(ctx context.Context, teamID string, clueIndex int, filename string, r io.Reader) (string, error)
}

// HTTPUploader talks to the store over multipart POST. One shared client,
// reused across requests.
type HTTPUploader struct {
	baseURL string
	client  *http.Client
}

func NewHTTPUploader(baseURL string) *HTTPUploader {
	return &HTTPUploader{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (u *HTTPUploader) Upload(ctx context.Context, teamID string, clueIndex int, filename string, r io.Reader) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if err := w.WriteField("team_id", teamID); err != nil {
		return "", err
	}
	if err := w.WriteField("clue_index", fmt.Sprintf("%d", clueIndex)); err != nil {
		return "", err
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+"/upload", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("evidence store unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("evidence store returned %d for %s", resp.StatusCode, filename)
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("bad evidence store response: %w", err)
	}
	return out.URL, nil
}

// FileResult is the outcome of one file in a batch upload.
type FileResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// UploadAll pushes each file through the uploader in turn. A failure on one
// file does not abort the rest; callers get a per-file result either way.
func UploadAll(ctx context.Context, u Uploader, teamID string, clueIndex int, files map[string]io.Reader) []FileResult {
	results := make([]FileResult, 0, len(files))
	for name, r := range files {
		url, err := u.Upload(ctx, teamID, clueIndex, name, r)
		if err != nil {
			log.Warnf("evidence upload failed for %s: %v", name, err)
			results = append(results, FileResult{Filename: name, Error: err.Error()})
			continue
		}
		results = append(results, FileResult{Filename: name, URL: url})
	}
	return results
}
