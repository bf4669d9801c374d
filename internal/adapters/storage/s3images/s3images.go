// Package s3images sube las fotos de mascotas que llegan como data URI a un
// bucket S3 (o MinIO) y devuelve la URL pública del objeto.
package s3images

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	pcfg "pet-adoption/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// MaxImageBytes limita el tamaño decodificado.
const MaxImageBytes = 5 << 20

var (
	ErrNotDataURI      = errors.New("image is not a base64 data URI")
	ErrUnsupportedMIME = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image too large")
)

var extensions = map[string]string{
	"image/png":     "png",
	"image/jpeg":    "jpg",
	"image/gif":     "gif",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
}

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store implementa pets.ImageStore.
type Store struct {
	client  putObjectAPI
	bucket  string
	baseURL string
}

// New arma el cliente S3 con credenciales estáticas; con BaseEndpoint
// (MinIO) usa path-style.
func New(ctx context.Context, c pcfg.S3Config) (*Store, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(c.Region)}
	if c.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3images: load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.BaseEndpoint)
			o.UsePathStyle = true
		}
	})
	return newStore(client, c), nil
}

func newStore(client putObjectAPI, c pcfg.S3Config) *Store {
	return &Store{client: client, bucket: c.Bucket, baseURL: publicBase(c)}
}

// Put sube dataURI bajo pets/<key>/ y devuelve su URL.
func (s *Store) Put(ctx context.Context, key, dataURI string) (string, error) {
	mime, body, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	objectKey := fmt.Sprintf("pets/%s/%s.%s", key, uuid.NewString(), extensions[mime])
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(mime),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return "", fmt.Errorf("s3images: put %s: %w", objectKey, err)
	}
	return s.baseURL + "/" + objectKey, nil
}

func decodeDataURI(raw string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(raw, "data:")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, ErrNotDataURI
	}
	mime = strings.ToLower(strings.TrimSpace(mime))
	if _, ok := extensions[mime]; !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedMIME, mime)
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageBytes+3 {
		return "", nil, ErrTooLarge
	}

	body, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrNotDataURI, err)
	}
	if len(body) > MaxImageBytes {
		return "", nil, ErrTooLarge
	}
	return mime, body, nil
}

func publicBase(c pcfg.S3Config) string {
	switch {
	case c.PublicBaseURL != "":
		return strings.TrimRight(c.PublicBaseURL, "/")
	case c.BaseEndpoint != "":
		return strings.TrimRight(c.BaseEndpoint, "/") + "/" + c.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.Bucket, c.Region)
	}
}
