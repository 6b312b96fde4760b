// Package pin uploads content to an IPFS pinning service and returns
// content-addressed URIs.
package pin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

var (
	// ErrNoFile is returned when an upload is attempted without a file.
	// Checked before any network call.
	ErrNoFile = errors.New("no file provided")

	// ErrUpload is returned on a non-2xx response or transport failure.
	ErrUpload = errors.New("upload failed")
)

// Attribute is one display trait on a token.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// Metadata is the token metadata record. Attributes keep their insertion
// order when marshaled.
type Metadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Attributes  []Attribute `json:"attributes"`
}

// Pinner uploads assets and metadata to a pinning endpoint.
type Pinner struct {
	baseURL   string
	apiKey    string
	apiSecret string
	client    *http.Client
}

// NewPinner creates a Pinner for a Pinata-compatible endpoint.
func NewPinner(baseURL, apiKey, apiSecret string) *Pinner {
	return &Pinner{
		baseURL:   baseURL,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		client: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

// UploadAsset uploads a binary file and returns its ipfs:// URI. The URI
// keeps the scheme prefix exactly as constructed; gateway rewriting is the
// renderer's business.
func (p *Pinner) UploadAsset(ctx context.Context, name string, r io.Reader) (string, error) {
	if r == nil || name == "" {
		return "", ErrNoFile
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("building form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("closing form: %w", err)
	}

	return p.post(ctx, p.baseURL+"/pinning/pinFileToIPFS", mw.FormDataContentType(), &body)
}

// UploadMetadata uploads a metadata record as JSON and returns its
// ipfs:// URI. Call it only after the asset upload succeeded — the record
// references the asset URI.
func (p *Pinner) UploadMetadata(ctx context.Context, m Metadata) (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encoding metadata: %w", err)
	}
	return p.post(ctx, p.baseURL+"/pinning/pinJSONToIPFS", "application/json", bytes.NewReader(data))
}

func (p *Pinner) post(ctx context.Context, url, contentType string, body io.Reader) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("pinata_api_key", p.apiKey)
	req.Header.Set("pinata_secret_api_key", p.apiSecret)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrUpload, resp.StatusCode, msg)
	}

	var pr pinResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrUpload, err)
	}
	if pr.IpfsHash == "" {
		return "", fmt.Errorf("%w: empty content id", ErrUpload)
	}
	return "ipfs://" + pr.IpfsHash, nil
}
