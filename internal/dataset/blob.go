package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/klauspost/compress/gzip"
)

// BlobSource loads the dataset from an Azure Blob Storage URL of the form
// https://<account>.blob.core.windows.net/<container>/<blob>, authenticating
// with the default credential chain (environment, managed identity, CLI).
type BlobSource struct {
	serviceURL string
	container  string
	blob       string
	rows       [2]int
}

func newBlobSource(rawURL string, o sourceOptions) (*BlobSource, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("dataset: parse URL %s: %w", rawURL, err)
	}
	if u.Scheme != "https" {
		return nil, fmt.Errorf("dataset: unsupported scheme %q (only https blob URLs are supported)", u.Scheme)
	}
	parts := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("dataset: blob URL %s must name a container and a blob", rawURL)
	}
	return &BlobSource{
		serviceURL: u.Scheme + "://" + u.Host,
		container:  parts[0],
		blob:       parts[1],
		rows:       o.rows,
	}, nil
}

// Load downloads the blob and parses it.
func (s *BlobSource) Load(ctx context.Context) (*Table, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("dataset: credential: %w", err)
	}
	client, err := azblob.NewClient(s.serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("dataset: blob client for %s: %w", s.serviceURL, err)
	}

	resp, err := client.DownloadStream(ctx, s.container, s.blob, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("dataset: blob %s/%s not found: %w", s.container, s.blob, err)
		}
		return nil, fmt.Errorf("dataset: download %s/%s: %w", s.container, s.blob, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	var r io.Reader = resp.Body
	if isGzip(s.blob) {
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("dataset: gunzip %s: %w", s.blob, err)
		}
		defer zr.Close() //nolint:errcheck
		r = zr
	}

	table, err := readTable(r, s.URL())
	if err != nil {
		return nil, err
	}
	return table.sliceRows(s.rows), nil
}

// URL reconstructs the full blob URL for display.
func (s *BlobSource) URL() string {
	return s.serviceURL + "/" + s.container + "/" + s.blob
}
