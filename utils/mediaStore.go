package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"lms/config"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// UploadResult is the media store's answer to a successful upload.
type UploadResult struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

const mediaAPIBase = "https://api.cloudinary.com/v1_1"

func newMediaClient() *resty.Client {
	return resty.New().SetTimeout(30 * time.Second)
}

// signParams produces the request signature the media store expects: the
// sorted key=value pairs joined by &, with the API secret appended, hashed.
func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}

// UploadMedia stores a blob in the media store and returns its URL and
// public id. Resource type is auto-detected, so the same call handles
// thumbnails, photos and lecture videos.
func UploadMedia(file io.Reader, filename string) (*UploadResult, error) {
	cfg := config.AppConfig
	if cfg.CloudName == "" {
		return nil, fmt.Errorf("media store is not configured")
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := signParams(map[string]string{"timestamp": timestamp}, cfg.CloudAPISecret)

	resp, err := newMediaClient().R().
		SetFileReader("file", filename, file).
		SetFormData(map[string]string{
			"api_key":   cfg.CloudAPIKey,
			"timestamp": timestamp,
			"signature": signature,
		}).
		Post(fmt.Sprintf("%s/%s/auto/upload", mediaAPIBase, cfg.CloudName))
	if err != nil {
		return nil, fmt.Errorf("media upload failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("media store error: %s", resp.String())
	}

	var result UploadResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("invalid media store response: %w", err)
	}

	return &result, nil
}

// DeleteMedia removes an image blob by public id.
func DeleteMedia(publicID string) error {
	return destroyMedia(publicID, "image")
}

// DeleteVideo removes a video blob by public id.
func DeleteVideo(publicID string) error {
	return destroyMedia(publicID, "video")
}

func destroyMedia(publicID, resourceType string) error {
	cfg := config.AppConfig
	if cfg.CloudName == "" || publicID == "" {
		return nil
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := signParams(map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}, cfg.CloudAPISecret)

	resp, err := newMediaClient().R().
		SetFormData(map[string]string{
			"public_id": publicID,
			"api_key":   cfg.CloudAPIKey,
			"timestamp": timestamp,
			"signature": signature,
		}).
		Post(fmt.Sprintf("%s/%s/%s/destroy", mediaAPIBase, cfg.CloudName, resourceType))
	if err != nil {
		return fmt.Errorf("media delete failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("media store error: %s", resp.String())
	}

	return nil
}
