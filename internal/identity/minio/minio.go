// minio предоставляет реализацию identity.AvatarResolver на базе MinIO/S3.
//
// Справочник профилей хранит для части пользователей только avatar_key —
// бакет не опубликован наружу, и ссылку для чтения приходится подписывать
// на стороне сервиса. TTL подписи задаётся конфигом; ссылка живёт дольше
// одного цикла перезагрузки выдачи, поэтому кэшировать её не нужно.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/config"
	"github.com/pribylovaa/go-coffee-shop/engagement-service/internal/identity"
)

// AvatarResolver — адаптер MinIO для подписи ссылок на аватары.
type AvatarResolver struct {
	cfg    *config.Config
	client *mclient.Client
}

// New создает и инициализирует клиент MinIO.
// Делает endpoint-перенастройку (убирает схему), подбирает Secure по схеме
// и выполняет fail-fast-проверку доступности бакета.
func New(ctx context.Context, cfg *config.Config) (*AvatarResolver, error) {
	const op = "identity/minio/New"

	endpoint := cfg.S3.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.S3.RootUser, cfg.S3.RootPassword, ""),
		Secure: secure,
	})

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.S3.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.S3.Bucket)
	}

	return &AvatarResolver{cfg: cfg, client: client}, nil
}

// AvatarURL подписывает GET-ссылку на объект аватара по ключу.
func (r *AvatarResolver) AvatarURL(ctx context.Context, key string) (string, error) {
	const op = "identity/minio/AvatarURL"

	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%s: empty key", op)
	}

	u, err := r.client.PresignedGetObject(ctx, r.cfg.S3.Bucket, key, r.cfg.S3.PresignTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return u.String(), nil
}

// Проверка выполнения контракта верхнего уровня.
var _ identity.AvatarResolver = (*AvatarResolver)(nil)
