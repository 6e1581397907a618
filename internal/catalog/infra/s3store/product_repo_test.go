package s3store

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/al1ce23/shitshop/internal/catalog/app"
	"github.com/al1ce23/shitshop/pkg/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string]string
	keys    []string
	listErr error
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := &s3.ListObjectsV2Output{}
	for _, k := range f.keys {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
		}
	}
	return out, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestListProducts(t *testing.T) {
	api := &fakeS3{
		keys: []string{
			"shop/blue mug.jpg",
			"shop/blue mug.json",
			"shop/lamp.webp",
			"shop/lamp.json",
			"shop/readme.md",
		},
		objects: map[string]string{
			"shop/blue mug.json": `{"name":"Blue Mug","price":"9.90","category":"kitchen"}`,
			"shop/lamp.json":     `{"price": "free", "name": 1}`,
		},
	}

	repo := NewProductRepo(api, "bucket", "shop/", "https://cdn.example.com/", 4, logger.Discard())
	products, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	mug := products[0]
	assert.Equal(t, "blue mug", mug.ID)
	assert.Equal(t, "Blue Mug", mug.Name)
	assert.True(t, mug.Price.Equal(decimal.RequireFromString("9.90")))
	assert.Equal(t, "https://cdn.example.com/shop/blue%20mug.jpg", mug.Image)

	lamp := products[1]
	assert.Equal(t, "lamp", lamp.Name)
	assert.True(t, lamp.Price.IsZero())
}

func TestListUnavailable(t *testing.T) {
	repo := NewProductRepo(&fakeS3{listErr: errors.New("access denied")}, "bucket", "", "", 1, logger.Discard())
	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, app.ErrCatalogUnavailable)
}
