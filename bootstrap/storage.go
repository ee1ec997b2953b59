package bootstrap

import (
	"context"
	"fmt"

	"github.com/newreleases/admin-console/domain/domain_release/release_interface"
	"github.com/newreleases/admin-console/repository/repository_storage"
)

func NewMediaStorage(ctx context.Context, env *Env) (release_interface.MediaStorage, error) {
	if env.StorageBucket == "" {
		return nil, fmt.Errorf("STORAGE_BUCKET is required")
	}
	client, err := repository_storage.NewS3Client(ctx, repository_storage.S3Config{
		Endpoint:        env.StorageEndpoint,
		Region:          env.StorageRegion,
		Bucket:          env.StorageBucket,
		AccessKeyID:     env.StorageAccessKeyID,
		SecretAccessKey: env.StorageSecretAccessKey,
		PublicURL:       env.StoragePublicURL,
	})
	if err != nil {
		return nil, err
	}
	return repository_storage.NewS3MediaStorage(client, env.StorageBucket, env.StoragePublicURL), nil
}
