package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// AzurePhotoSource fetches uploaded profile photos from Azure Blob
// Storage. Photo URLs are expected in the form
// https://<account>.blob.core.windows.net/<container>/<blob>.
type AzurePhotoSource struct {
	client *azblob.Client
}

func NewAzurePhotoSource(accountName, accountKey string) (*AzurePhotoSource, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &AzurePhotoSource{client: client}, nil
}

func (s *AzurePhotoSource) FetchPhoto(ctx context.Context, photoURL string) ([]byte, error) {
	containerName, blobName, err := splitBlobPath(photoURL)
	if err != nil {
		return nil, err
	}

	downloadResponse, err := s.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return nil, fmt.Errorf("blob download failed: %w", err)
	}
	retryReader := downloadResponse.Body
	defer retryReader.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, retryReader); err != nil {
		return nil, fmt.Errorf("reading blob stream: %w", err)
	}
	return buf.Bytes(), nil
}

func splitBlobPath(photoURL string) (container, blob string, err error) {
	parsedURL, err := url.Parse(photoURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid blob URL: %w", err)
	}
	parts := strings.SplitN(strings.TrimPrefix(parsedURL.Path, "/"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("blob URL must contain container and blob name: %s", photoURL)
	}
	return parts[0], parts[1], nil
}
