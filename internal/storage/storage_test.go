package storage

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── LocalStore ─────────────────────────────────────────

func TestLocalStore_PutGet(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	require.NoError(t, store.Put(ctx, "orders/1_Sami.xlsx", []byte("xlsx"), "application/octet-stream"))

	data, err := store.Get(ctx, "orders/1_Sami.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
}

func TestLocalStore_GetMissing(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	_, err := store.Get(context.Background(), "orders/missing.xlsx")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_RejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	assert.Error(t, store.Put(ctx, "../outside.xlsx", []byte("x"), ""))
	_, err := store.Get(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_List(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	require.NoError(t, store.Put(ctx, "orders/2_b.xlsx", []byte("b"), ""))
	require.NoError(t, store.Put(ctx, "orders/1_a.xlsx", []byte("a"), ""))
	require.NoError(t, store.Put(ctx, "other/x.txt", []byte("x"), ""))

	keys, err := store.List(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, []string{"orders/1_a.xlsx", "orders/2_b.xlsx"}, keys)
}

func TestLocalStore_ListMissingPrefix(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	keys, err := store.List(context.Background(), "orders")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

// ─── S3Store ────────────────────────────────────────────

type fakeS3 struct {
	objects      map[string][]byte
	contentTypes map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, contentTypes: map[string]string{}}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	f.contentTypes[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := &s3.ListObjectsV2Output{}
	for _, k := range keys {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}

func TestS3Store_PutGet(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	store := &S3Store{Client: fake, Bucket: "orders-bucket"}

	require.NoError(t, store.Put(ctx, "orders/1_Sami.xlsx", []byte("xlsx"), "application/vnd.ms-excel"))
	assert.Equal(t, "application/vnd.ms-excel", fake.contentTypes["orders/1_Sami.xlsx"])

	data, err := store.Get(ctx, "orders/1_Sami.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
}

func TestS3Store_GetMissing(t *testing.T) {
	store := &S3Store{Client: newFakeS3(), Bucket: "orders-bucket"}

	_, err := store.Get(context.Background(), "orders/none.xlsx")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestS3Store_List(t *testing.T) {
	ctx := context.Background()
	store := &S3Store{Client: newFakeS3(), Bucket: "orders-bucket"}
	require.NoError(t, store.Put(ctx, "orders/a.xlsx", []byte("a"), ""))
	require.NoError(t, store.Put(ctx, "misc/b.txt", []byte("b"), ""))

	keys, err := store.List(ctx, "orders/")
	require.NoError(t, err)
	assert.Equal(t, []string{"orders/a.xlsx"}, keys)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(&types.NoSuchKey{}))
	assert.True(t, isNotFound(&smithy.GenericAPIError{Code: "NotFound"}))
	assert.False(t, isNotFound(&smithy.GenericAPIError{Code: "AccessDenied"}))
	assert.False(t, isNotFound(io.EOF))
}
