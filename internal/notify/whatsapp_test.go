package notify

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type recordingOpener struct {
	link string
	err  error
}

func (o *recordingOpener) Open(ctx context.Context, link string) error {
	o.link = link
	return o.err
}

// --- Tests ---

func TestBuildLink_NormalizesRecipient(t *testing.T) {
	d := NewDispatcher("", NewLogOpener(newTestLogger()), newTestLogger())

	link, err := d.BuildLink("+34 600-111-222", "hola")

	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/34600111222?text=hola", link)
}

func TestBuildLink_EncodesMessage(t *testing.T) {
	d := NewDispatcher("", NewLogOpener(newTestLogger()), newTestLogger())

	message := "🛒 *NUEVO PEDIDO*\n\n📱 *Teléfono:* +34600111222"
	link, err := d.BuildLink("34600111222", message)

	require.NoError(t, err)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", parsed.Host)
	assert.Equal(t, "/34600111222", parsed.Path)
	assert.Equal(t, message, parsed.Query().Get("text"))

	// The raw link must not leak unencoded whitespace or newlines.
	assert.False(t, strings.ContainsAny(link, " \n"))
}

func TestBuildLink_CustomHost(t *testing.T) {
	d := NewDispatcher("api.whatsapp.com", NewLogOpener(newTestLogger()), newTestLogger())

	link, err := d.BuildLink("34600111222", "hola")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://api.whatsapp.com/34600111222?"))
}

func TestBuildLink_RecipientWithoutDigits(t *testing.T) {
	d := NewDispatcher("", NewLogOpener(newTestLogger()), newTestLogger())

	_, err := d.BuildLink("no-phone", "hola")

	assert.Error(t, err)
}

func TestDispatch_Success(t *testing.T) {
	opener := &recordingOpener{}
	d := NewDispatcher("", opener, newTestLogger())

	link, ok := d.Dispatch(context.Background(), "34600111222", "hola")

	assert.True(t, ok)
	assert.Equal(t, link, opener.link)
}

func TestDispatch_OpenerFailureStillReturnsLink(t *testing.T) {
	opener := &recordingOpener{err: errors.New("no browser")}
	d := NewDispatcher("", opener, newTestLogger())

	link, ok := d.Dispatch(context.Background(), "34600111222", "hola")

	assert.False(t, ok)
	assert.NotEmpty(t, link)
}

func TestDispatch_BadRecipient(t *testing.T) {
	d := NewDispatcher("", &recordingOpener{}, newTestLogger())

	link, ok := d.Dispatch(context.Background(), "???", "hola")

	assert.False(t, ok)
	assert.Empty(t, link)
}
