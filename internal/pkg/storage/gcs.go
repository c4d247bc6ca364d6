package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	gcs "cloud.google.com/go/storage"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// GCSOptions configures GCS client initialization.
type GCSOptions struct {
	Bucket string
	// CredentialsJSON is a service account key. When empty the client uses
	// application default credentials and cannot sign URLs.
	CredentialsJSON []byte
	// Endpoint overrides the API endpoint, e.g. for an emulator.
	Endpoint string
}

// GCSAdapter implements Storage using Google Cloud Storage.
type GCSAdapter struct {
	bucket string
	client *gcs.Client
	signer *gcs.SignedURLOptions
}

// NewGCS constructs a GCS adapter. URL signing is enabled when the options
// carry a service account key.
func NewGCS(ctx context.Context, opts GCSOptions) (*GCSAdapter, error) {
	if opts.Bucket == "" {
		return nil, ErrBucketRequired
	}

	var clientOpts []option.ClientOption
	var signer *gcs.SignedURLOptions
	if len(opts.CredentialsJSON) > 0 {
		jwtCfg, err := google.JWTConfigFromJSON(opts.CredentialsJSON, gcs.ScopeReadWrite)
		if err != nil {
			return nil, fmt.Errorf("storage: gcs credentials: %w", err)
		}
		clientOpts = append(clientOpts, option.WithTokenSource(jwtCfg.TokenSource(ctx)))
		signer = &gcs.SignedURLOptions{
			GoogleAccessID: jwtCfg.Email,
			PrivateKey:     jwtCfg.PrivateKey,
			Method:         http.MethodGet,
			Scheme:         gcs.SigningSchemeV4,
		}
	}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	client, err := gcs.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, err
	}

	return &GCSAdapter{bucket: opts.Bucket, client: client, signer: signer}, nil
}

// PutObject streams r to the bucket.
func (g *GCSAdapter) PutObject(ctx context.Context, key string, r io.Reader, opts PutOptions) (ObjectInfo, error) {
	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	w.ContentType = opts.ContentType
	w.Metadata = opts.Metadata

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return ObjectInfo{}, err
	}
	if err := w.Close(); err != nil {
		return ObjectInfo{}, err
	}

	info := ObjectInfo{Bucket: g.bucket, Key: key, Size: opts.Size, ContentType: opts.ContentType}
	if attrs := w.Attrs(); attrs != nil {
		info.Size = attrs.Size
		info.ETag = attrs.Etag
	}
	return info, nil
}

// PresignGet returns a V4 signed download URL.
func (g *GCSAdapter) PresignGet(_ context.Context, key string, expiry time.Duration) (string, error) {
	if g.signer == nil {
		return "", ErrMissingSigner
	}

	opts := *g.signer
	opts.Expires = time.Now().Add(expiry)
	return g.client.Bucket(g.bucket).SignedURL(key, &opts)
}

// Close closes the GCS client.
func (g *GCSAdapter) Close() error {
	return g.client.Close()
}
