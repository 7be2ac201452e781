// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package transfer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/curioswitch/cookbook/transfer/server/internal/cookbookdb"
	"github.com/curioswitch/cookbook/transfer/server/internal/image"
)

const (
	fullPathPrefix       = "img/recipes/full"
	compressedPathPrefix = "img/recipes/compressed"

	maxImageWidth  = 800
	maxImageHeight = 600
	jpegQuality    = 80
)

// FileWriter writes an object to blob storage, returning its public URL.
type FileWriter interface {
	WriteFile(ctx context.Context, path string, contentType string, data []byte) (string, error)
}

// NewIngestor returns an Ingestor writing through files. A nil client uses
// http.DefaultClient.
func NewIngestor(files FileWriter, client *http.Client) *Ingestor {
	if client == nil {
		client = http.DefaultClient
	}
	return &Ingestor{
		files:  files,
		client: client,
		now:    time.Now,
		newID: func() string {
			return "img-" + uuid.NewString()
		},
	}
}

// Ingestor downloads candidate images and stores full-size and compressed
// variants for a recipe.
type Ingestor struct {
	files  FileWriter
	client *http.Client

	now   func() time.Time
	newID func() string
}

// Ingest processes candidate images sequentially in submission order and
// returns a record for each image that was stored. A failed image is logged
// and skipped without affecting the others, so the result may be shorter
// than the input. The first image that succeeds becomes the recipe's
// primary image.
//
// Ingest writes to object storage only; attaching the records to the recipe
// document is the caller's responsibility.
func (ig *Ingestor) Ingest(ctx context.Context, recipeID string, category string, uploaderID string, images []ImageRef) ([]cookbookdb.RecipeImage, error) {
	processed := make([]cookbookdb.RecipeImage, 0, len(images))
	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return processed, fmt.Errorf("transfer: ingesting images: %w", err)
		}
		record, err := ig.ingestOne(ctx, recipeID, category, uploaderID, i, img, len(processed) == 0)
		if err != nil {
			slog.ErrorContext(ctx, "transfer: failed to process image",
				"index", i, "filename", img.Filename, "error", err)
			continue
		}
		processed = append(processed, *record)
	}
	slog.InfoContext(ctx, "transfer: processed recipe images",
		"recipeId", recipeID, "succeeded", len(processed), "total", len(images))
	return processed, nil
}

func (ig *Ingestor) ingestOne(ctx context.Context, recipeID string, category string, uploaderID string, index int, img ImageRef, primary bool) (*cookbookdb.RecipeImage, error) {
	data, err := ig.fetchImage(ctx, img.DownloadURL)
	if err != nil {
		return nil, err
	}

	fileName := img.Filename
	if fileName == "" {
		fileName = fmt.Sprintf("image-%d.jpg", index+1)
	}
	contentType := img.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	fullPath := fmt.Sprintf("%s/%s/%s/%s", fullPathPrefix, category, recipeID, fileName)
	if _, err := ig.files.WriteFile(ctx, fullPath, contentType, data); err != nil {
		return nil, fmt.Errorf("transfer: uploading full image: %w", err)
	}

	compressed, err := image.Compress(data, maxImageWidth, maxImageHeight, jpegQuality)
	if err != nil {
		// Degrade gracefully rather than dropping the image: the
		// compressed path then holds the original bytes.
		slog.WarnContext(ctx, "transfer: compression failed, using original",
			"filename", fileName, "error", err)
		compressed = data
	}

	compressedPath := fmt.Sprintf("%s/%s/%s/%s", compressedPathPrefix, category, recipeID, fileName)
	if _, err := ig.files.WriteFile(ctx, compressedPath, "image/jpeg", compressed); err != nil {
		return nil, fmt.Errorf("transfer: uploading compressed image: %w", err)
	}

	return &cookbookdb.RecipeImage{
		ID:              ig.newID(),
		FileName:        fileName,
		Full:            fullPath,
		Compressed:      compressedPath,
		IsPrimary:       primary,
		Access:          cookbookdb.ImageAccessPublic,
		UploadedBy:      uploaderID,
		UploadTimestamp: ig.now(),
	}, nil
}

func (ig *Ingestor) fetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("transfer: creating image request: %w", err)
	}
	res, err := ig.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transfer: failed to fetch image: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("transfer: failed to download image: status %d", res.StatusCode)
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("transfer: failed to read image body: %w", err)
	}
	return data, nil
}
