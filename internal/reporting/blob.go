package reporting

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
)

// BlobUploader uploads report artifacts to an Azure Blob Storage container.
type BlobUploader struct {
	client *container.Client
	prefix string
}

// NewBlobUploader creates an uploader for the container at containerURL.
// A URL carrying a SAS signature is used as is; otherwise the default Azure
// credential chain authenticates. Blob names are prefix/<file name>.
func NewBlobUploader(containerURL, prefix string) (*BlobUploader, error) {
	u, err := url.Parse(containerURL)
	if err != nil {
		return nil, fmt.Errorf("parsing upload URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("upload URL %q must be an absolute container URL", containerURL)
	}

	var client *container.Client
	if u.Query().Has("sig") {
		client, err = container.NewClientWithNoCredential(containerURL, nil)
	} else {
		cred, credErr := azidentity.NewDefaultAzureCredential(nil)
		if credErr != nil {
			return nil, fmt.Errorf("creating Azure credential: %w", credErr)
		}
		client, err = container.NewClient(containerURL, cred, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("creating container client: %w", err)
	}
	return &BlobUploader{client: client, prefix: prefix}, nil
}

// Upload copies the file at path to the container and returns the blob URL.
func (u *BlobUploader) Upload(ctx context.Context, path string) (string, error) {
	name := filepath.Base(path)
	if u.prefix != "" {
		name = u.prefix + "/" + name
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close() //nolint:errcheck

	blob := u.client.NewBlockBlobClient(name)
	if _, err := blob.UploadFile(ctx, f, nil); err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) {
			return "", fmt.Errorf("uploading %s: %s (HTTP %d)", name, respErr.ErrorCode, respErr.StatusCode)
		}
		return "", fmt.Errorf("uploading %s: %w", name, err)
	}
	return blob.URL(), nil
}
