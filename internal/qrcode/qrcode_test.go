package qrcode_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"governor/internal/qrcode"
)

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "http://host:8080/?game=abc", qrcode.JoinURL("http://host:8080/", "abc"))
	assert.Equal(t, "http://h/?game=a+b", qrcode.JoinURL("http://h", "a b"))
}

func TestJoinPNG(t *testing.T) {
	png, err := qrcode.JoinPNG("http://localhost:8080", "abc12345")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
