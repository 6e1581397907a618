package s3store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/al1ce23/shitshop/internal/catalog/app"
	"github.com/al1ce23/shitshop/internal/catalog/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"
)

// API is the subset of the S3 client the repo needs.
type API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// ProductRepo reads the catalog from image objects directly under a
// bucket prefix, with optional <prefix><id>.json sidecar objects.
type ProductRepo struct {
	api         API
	bucket      string
	prefix      string
	publicBase  string
	concurrency int
	log         *slog.Logger
}

func NewProductRepo(api API, bucket, prefix, publicBase string, concurrency int, log *slog.Logger) *ProductRepo {
	if concurrency <= 0 {
		concurrency = 8
	}
	if log == nil {
		log = slog.Default()
	}
	return &ProductRepo{
		api:         api,
		bucket:      bucket,
		prefix:      prefix,
		publicBase:  strings.TrimRight(publicBase, "/"),
		concurrency: concurrency,
		log:         log,
	}
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	keys, err := r.listKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app.ErrCatalogUnavailable, err)
	}

	present := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		present[k] = struct{}{}
	}

	var images []string
	seen := make(map[string]struct{})
	for _, k := range keys {
		if !app.IsImage(k) {
			continue
		}
		id := app.ProductID(k)
		if _, dup := seen[id]; dup {
			r.log.Warn("duplicate product id, skipping object", slog.String("key", k))
			continue
		}
		seen[id] = struct{}{}
		images = append(images, k)
	}

	products := make([]domain.Product, len(images))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for idx := range images {
		idx := idx
		g.Go(func() error {
			products[idx] = r.load(ctx, images[idx], present)
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepo) listKeys(ctx context.Context) ([]string, error) {
	var keys []string
	p := s3.NewListObjectsV2Paginator(r.api, &s3.ListObjectsV2Input{
		Bucket:    aws.String(r.bucket),
		Prefix:    aws.String(r.prefix),
		Delimiter: aws.String("/"),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}

func (r *ProductRepo) load(ctx context.Context, key string, present map[string]struct{}) domain.Product {
	id := app.ProductID(key)
	base := app.DefaultProduct(id, r.imageURL(key))

	sidecarKey := r.prefix + id + ".json"
	if _, ok := present[sidecarKey]; !ok {
		return base
	}

	data, err := r.read(ctx, sidecarKey)
	if err != nil {
		r.log.Warn("sidecar unreadable, using defaults", slog.String("id", id), slog.Any("err", err))
		return base
	}

	p, err := app.ApplySidecar(base, data)
	if err != nil {
		r.log.Warn("sidecar rejected, using defaults", slog.String("id", id), slog.Any("err", err))
	}
	return p
}

func (r *ProductRepo) read(ctx context.Context, key string) ([]byte, error) {
	out, err := r.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(io.LimitReader(out.Body, app.MaxSidecarBytes+1))
}

func (r *ProductRepo) imageURL(key string) string {
	escaped := strings.TrimPrefix((&url.URL{Path: key}).EscapedPath(), "/")
	return r.publicBase + "/" + escaped
}
