package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Config credenciales y bucket de Cloudflare R2.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string // CDN o dominio público del bucket; vacío = https://pub-<bucket>.r2.dev
}

// R2Storage driver S3-compatible para Cloudflare R2.
type R2Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewR2Storage construye el cliente S3 apuntando al endpoint de la cuenta R2.
func NewR2Storage(ctx context.Context, cfg R2Config) (*R2Storage, error) {
	switch {
	case cfg.Bucket == "":
		return nil, fmt.Errorf("storage: R2_BUCKET es obligatorio")
	case cfg.AccountID == "":
		return nil, fmt.Errorf("storage: R2_ACCOUNT_ID es obligatorio")
	case cfg.AccessKeyID == "" || cfg.SecretAccessKey == "":
		return nil, fmt.Errorf("storage: credenciales de R2 incompletas")
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: configuración de R2: %w", err)
	}
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	public := strings.TrimSuffix(cfg.PublicURL, "/")
	if public == "" {
		public = fmt.Sprintf("https://pub-%s.r2.dev", cfg.Bucket)
	}
	return &R2Storage{client: client, bucket: cfg.Bucket, publicURL: public}, nil
}

// Put sube el objeto y devuelve su URL pública.
func (r *R2Storage) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	// el firmado de la petición necesita un cuerpo con Seek
	data, err := io.ReadAll(io.LimitReader(body, size+1))
	if err != nil {
		return "", fmt.Errorf("storage: leer objeto: %w", err)
	}
	if int64(len(data)) != size {
		return "", fmt.Errorf("storage: tamaño declarado %d, recibido %d", size, len(data))
	}
	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: subir a R2: %w", err)
	}
	return r.URL(key), nil
}

// Delete elimina el objeto del bucket.
func (r *R2Storage) Delete(ctx context.Context, key string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(strings.TrimPrefix(key, "/")),
	})
	if err != nil {
		return fmt.Errorf("storage: eliminar de R2: %w", err)
	}
	return nil
}

// URL pública de key.
func (r *R2Storage) URL(key string) string {
	return r.publicURL + "/" + strings.TrimPrefix(key, "/")
}
