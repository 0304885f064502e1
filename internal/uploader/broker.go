package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FileMeta is the name/type pair the broker signs against.
type FileMeta struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// SignedUpload is one signed write URL plus its derived public read URL.
type SignedUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}

// Broker issues signed upload URLs for a batch of files, one result per input
// in the same order, or fails the whole call.
type Broker interface {
	SignBatch(ctx context.Context, files []FileMeta) ([]SignedUpload, error)
}

// APIBroker calls the storefront signing endpoint.
type APIBroker struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewAPIBroker(baseURL, token string) *APIBroker {
	return &APIBroker{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (b *APIBroker) SignBatch(ctx context.Context, files []FileMeta) ([]SignedUpload, error) {
	body, err := json.Marshal(map[string]any{"files": files})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		b.baseURL+"/api/v1/upload-urls", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.token)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("signing endpoint returned %s: %s", resp.Status, string(data))
	}

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Results []SignedUpload `json:"results"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode signing response: %w", err)
	}
	if !envelope.Success {
		return nil, fmt.Errorf("signing endpoint reported failure")
	}

	return envelope.Data.Results, nil
}
