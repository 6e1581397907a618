package fsdir

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/al1ce23/shitshop/internal/catalog/app"
	"github.com/al1ce23/shitshop/internal/catalog/domain"
	"golang.org/x/sync/errgroup"
)

// ProductRepo reads the catalog from a directory of images with optional
// <id>.json sidecars next to them.
type ProductRepo struct {
	dir         string
	imageRoute  string
	concurrency int
	log         *slog.Logger
}

func NewProductRepo(dir, imageRoute string, concurrency int, log *slog.Logger) *ProductRepo {
	if concurrency <= 0 {
		concurrency = 8
	}
	if log == nil {
		log = slog.Default()
	}
	return &ProductRepo{dir: dir, imageRoute: imageRoute, concurrency: concurrency, log: log}
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", app.ErrCatalogUnavailable, err)
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app.ErrCatalogUnavailable, err)
	}

	// ReadDir sorts by filename, so the first file wins an id collision.
	var images []string
	seen := make(map[string]struct{})
	for _, e := range entries {
		if e.IsDir() || !app.IsImage(e.Name()) {
			continue
		}
		id := app.ProductID(e.Name())
		if _, dup := seen[id]; dup {
			r.log.Warn("duplicate product id, skipping file", slog.String("file", e.Name()))
			continue
		}
		seen[id] = struct{}{}
		images = append(images, e.Name())
	}

	products := make([]domain.Product, len(images))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for idx := range images {
		idx := idx
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			products[idx] = r.load(images[idx])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepo) load(file string) domain.Product {
	id := app.ProductID(file)
	base := app.DefaultProduct(id, r.imageRoute+"/"+url.PathEscape(file))

	data, err := readLimited(filepath.Join(r.dir, id+".json"), app.MaxSidecarBytes)
	if errors.Is(err, fs.ErrNotExist) {
		return base
	}
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

// readLimited reads at most limit+1 bytes so oversized files are detected
// without loading them whole.
func readLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, limit+1))
}
