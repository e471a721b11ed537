package media

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

// fileHeaders builds real multipart headers for name → content pairs.
func fileHeaders(t *testing.T, files map[string][]byte, order ...string) []*multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, name := range order {
		part, err := writer.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write(files[name])
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["images"]
}

type fakeStore struct {
	failOn   string
	uploaded []string
	deleted  []string
}

func (f *fakeStore) Upload(_ context.Context, file *multipart.FileHeader) (Image, error) {
	if file.Filename == f.failOn {
		return Image{}, errors.New("boom")
	}
	f.uploaded = append(f.uploaded, file.Filename)
	return Image{URL: "https://cdn.test/" + file.Filename, PublicID: "id-" + file.Filename}, nil
}

func (f *fakeStore) Delete(_ context.Context, ids []string) error {
	f.deleted = append(f.deleted, ids...)
	return nil
}
