package service

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	name string
	size int
}

func (f *fakeUploader) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.name = name
	f.size = len(data)
	return "https://cdn.example.com/" + name, nil
}

func TestUploadProofAcceptsPDF(t *testing.T) {
	uploader := &fakeUploader{}
	svc := NewUploadService(uploader, testLogger())

	payload := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("a"), 128)...)
	proof, err := svc.UploadProof(context.Background(), Actor{ID: 7}, "certificate.pdf", bytes.NewReader(payload))
	require.NoError(t, err)
	require.Equal(t, "application/pdf", proof.ContentType)
	require.Equal(t, int64(len(payload)), proof.Size)
	require.Equal(t, "certificate.pdf", uploader.name)
	require.Contains(t, proof.URL, "certificate.pdf")
}

func TestUploadProofRejectsUnsupportedType(t *testing.T) {
	svc := NewUploadService(&fakeUploader{}, testLogger())

	_, err := svc.UploadProof(context.Background(), Actor{ID: 7}, "notes.txt", bytes.NewReader([]byte("plain text file")))
	require.ErrorIs(t, err, ErrProofUnsupported)
}

func TestUploadProofRejectsOversizedFile(t *testing.T) {
	svc := NewUploadService(&fakeUploader{}, testLogger())

	oversized := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("a"), maxProofSize)...)
	_, err := svc.UploadProof(context.Background(), Actor{ID: 7}, "huge.pdf", bytes.NewReader(oversized))
	require.ErrorIs(t, err, ErrProofTooLarge)
}

func TestUploadProofRequiresActor(t *testing.T) {
	svc := NewUploadService(&fakeUploader{}, testLogger())

	_, err := svc.UploadProof(context.Background(), Actor{}, "certificate.pdf", bytes.NewReader([]byte("%PDF-1.4")))
	require.ErrorIs(t, err, ErrUnauthorized)
}
