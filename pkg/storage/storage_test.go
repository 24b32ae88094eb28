package storage_test

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/germanamz/genai/pkg/content"
	"github.com/germanamz/genai/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	puts   []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.puts = append(f.puts, params)
	body, _ := io.ReadAll(params.Body)
	f.bodies = append(f.bodies, body)

	return &s3.PutObjectOutput{}, nil
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".png", storage.Extension("image/png"))
	assert.Equal(t, ".jpg", storage.Extension("image/jpeg"))
	assert.Equal(t, ".pcm", storage.Extension("audio/L16;codec=pcm;rate=24000"))
	assert.Equal(t, ".bin", storage.Extension("application/x-genai-unknown"))
	assert.Equal(t, ".bin", storage.Extension(""))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "cat-2.png", storage.FileName("cat", 2, "image/png"))
}

func TestDir_Put(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out", "nested")
	d := storage.NewDir(root)

	loc, err := d.Put(context.Background(), "a.png", "image/png", []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a.png"), loc)

	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "img", string(data))
}

func TestDir_PutStripsDirectories(t *testing.T) {
	root := t.TempDir()
	loc, err := storage.NewDir(root).Put(context.Background(), "../../escape.png", "", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "escape.png"), loc)
}

func TestS3_Put(t *testing.T) {
	fake := &fakeS3{}
	u := storage.NewS3WithClient("media", "/generated/", fake)
	assert.Equal(t, "media", u.Bucket())
	assert.Equal(t, "generated", u.Prefix())

	loc, err := u.Put(context.Background(), "cat-0.png", "image/png", []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "s3://media/generated/cat-0.png", loc)

	require.Len(t, fake.puts, 1)
	assert.Equal(t, "media", *fake.puts[0].Bucket)
	assert.Equal(t, "generated/cat-0.png", *fake.puts[0].Key)
	assert.Equal(t, "image/png", *fake.puts[0].ContentType)
	assert.Equal(t, "img", string(fake.bodies[0]))
}

func TestS3_KeyWithoutPrefix(t *testing.T) {
	u := storage.NewS3WithClient("media", "", &fakeS3{})
	assert.Equal(t, "x.wav", u.Key("x.wav"))
}

func TestS3_KeyStaysUnderPrefix(t *testing.T) {
	u := storage.NewS3WithClient("media", "generated", &fakeS3{})
	assert.Equal(t, "generated/x.png", u.Key("../../x.png"))
	assert.Equal(t, "generated/x.png", u.Key("/etc/x.png"))

	assert.Equal(t, "x.png", storage.NewS3WithClient("media", "", &fakeS3{}).Key("a/../../x.png"))
}

func TestS3_PutAPIError(t *testing.T) {
	apiErr := &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"}
	u := storage.NewS3WithClient("media", "", &fakeS3{err: apiErr})

	_, err := u.Put(context.Background(), "x.png", "image/png", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDenied")

	var got smithy.APIError
	assert.True(t, errors.As(err, &got))
}

func TestNewS3_RequiresBucket(t *testing.T) {
	_, err := storage.NewS3(context.Background(), "", "p", "")
	assert.ErrorContains(t, err, "bucket is required")
}

func TestOpen_Dir(t *testing.T) {
	root := t.TempDir()
	sink, err := storage.Open(context.Background(), root, "")
	require.NoError(t, err)

	d, ok := sink.(*storage.Dir)
	require.True(t, ok)
	assert.Equal(t, root, d.Root())
}

func TestSave(t *testing.T) {
	fake := &fakeS3{}
	sink := storage.NewS3WithClient("media", "run", fake)

	media := []content.GeneratedMedia{
		{InlineData: content.NewBlob("image/png", []byte("one"))},
		{FileData: &content.FileData{FileURI: "https://files/2"}},
	}

	locs, err := storage.Save(context.Background(), sink, "img", media)
	require.NoError(t, err)
	assert.Equal(t, []string{"s3://media/run/img-0.png", "https://files/2"}, locs)
	require.Len(t, fake.bodies, 1)
	assert.Equal(t, "one", string(fake.bodies[0]))
}

func TestSave_Errors(t *testing.T) {
	sink := storage.NewDir(t.TempDir())

	_, err := storage.Save(context.Background(), sink, "x", []content.GeneratedMedia{{}})
	assert.ErrorIs(t, err, storage.ErrNoMedia)

	bad := content.GeneratedMedia{InlineData: &content.Blob{MIMEType: "image/png", Data: "!!not base64"}}
	_, err = storage.Save(context.Background(), sink, "x", []content.GeneratedMedia{bad})
	assert.ErrorContains(t, err, "decode inline data")

	good := content.GeneratedMedia{InlineData: &content.Blob{MIMEType: "image/png", Data: base64.StdEncoding.EncodeToString([]byte("ok"))}}
	locs, err := storage.Save(context.Background(), sink, "x", []content.GeneratedMedia{good})
	require.NoError(t, err)
	assert.Len(t, locs, 1)
}
