package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"storefront/internal/uploader"
)

var (
	apiURL   string
	email    string
	password string
)

func main() {
	root := &cobra.Command{
		Use:   "storectl",
		Short: "Storefront command-line client",
	}
	root.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080", "API base URL")
	root.PersistentFlags().StringVar(&email, "email", "", "account email")
	root.PersistentFlags().StringVar(&password, "password", "", "account password")

	root.AddCommand(newProductCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newProductCmd() *cobra.Command {
	var (
		name        string
		description string
		price       string
		currency    string
		images      []string
		maxFiles    int
	)

	cmd := &cobra.Command{
		Use:   "product",
		Short: "Product operations",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Upload images and create a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := login(cmd.Context())
			if err != nil {
				return err
			}

			files, err := readFiles(images)
			if err != nil {
				return err
			}

			session, err := uploader.NewSession(
				uploader.NewAPIBroker(apiURL, token),
				uploader.NewHTTPTransport(),
				maxFiles,
			)
			if err != nil {
				return err
			}
			defer session.Close()

			session.OnChange(func(entries []uploader.Entry) {
				for _, e := range entries {
					switch e.Status {
					case uploader.StatusUploading:
						fmt.Printf("\r%-30s %3d%%", e.FileName, e.Progress)
					case uploader.StatusDone:
						fmt.Printf("\r%-30s done -> %s\n", e.FileName, e.Key)
					case uploader.StatusError:
						fmt.Printf("\r%-30s error: %s\n", e.FileName, e.ErrorMessage)
					}
				}
			})

			skipped, err := session.Add(cmd.Context(), files)
			if err != nil {
				return err
			}
			if skipped > 0 {
				fmt.Fprintf(os.Stderr, "warning: %d non-image file(s) skipped\n", skipped)
			}

			// Wait for every upload to settle before submitting, so nothing
			// is silently dropped from the product.
			session.Wait()

			entries := session.Entries()
			failed := 0
			for _, e := range entries {
				if e.Status == uploader.StatusError {
					failed++
				}
			}
			if failed > 0 {
				fmt.Fprintf(os.Stderr, "warning: %d upload(s) failed and will not be attached\n", failed)
			}

			id, err := createProduct(cmd.Context(), token, name, description, price, currency, entries)
			if err != nil {
				return err
			}

			fmt.Printf("product created: id=%d\n", id)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "product name (required)")
	create.Flags().StringVar(&description, "description", "", "product description")
	create.Flags().StringVar(&price, "price", "", "price, e.g. 100000 (required)")
	create.Flags().StringVar(&currency, "currency", "VND", "currency code")
	create.Flags().StringSliceVar(&images, "image", nil, "image file path, repeatable (required)")
	create.Flags().IntVar(&maxFiles, "max-files", 6, "maximum images per product")
	create.MarkFlagRequired("name")
	create.MarkFlagRequired("price")
	create.MarkFlagRequired("image")

	cmd.AddCommand(create)
	return cmd
}

func readFiles(paths []string) ([]uploader.File, error) {
	files := make([]uploader.File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		contentType := mime.TypeByExtension(filepath.Ext(p))
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}
		files = append(files, uploader.File{
			Name:        filepath.Base(p),
			ContentType: contentType,
			Data:        data,
		})
	}
	return files, nil
}

func login(ctx context.Context) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("--email and --password are required")
	}

	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/api/v1/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := (&http.Client{Timeout: 15 * time.Second}).Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed: %s", resp.Status)
	}

	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", err
	}
	return envelope.Data.Token, nil
}

func createProduct(ctx context.Context, token, name, description, price, currency string, entries []uploader.Entry) (int64, error) {
	images := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		images = append(images, map[string]any{
			"id":        e.ID,
			"file_name": e.FileName,
			"key":       e.Key,
			"url":       e.PublicURL,
			"status":    string(e.Status),
		})
	}

	payload := map[string]any{
		"name":     name,
		"price":    price,
		"currency": currency,
		"images":   images,
	}
	if description != "" {
		payload["description"] = description
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/api/v1/products", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := (&http.Client{Timeout: 15 * time.Second}).Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			ID int64 `json:"id"`
		} `json:"data"`
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return 0, err
	}
	if resp.StatusCode != http.StatusCreated || !envelope.Success {
		return 0, fmt.Errorf("create product failed: %s %s (%s)", resp.Status, envelope.Error.Message, envelope.Error.Code)
	}
	return envelope.Data.ID, nil
}
