package restyutil

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestFormatHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("x-rapidapi-key", "secret")
	headers.Set("Content-Type", "application/json")
	headers.Add("Accept", "text/html")
	headers.Add("Accept", "application/json")

	require.Equal(
		t,
		"Accept: text/html\nAccept: application/json\nContent-Type: application/json\nX-Rapidapi-Key: <redacted>",
		formatHeaders(headers),
	)
}

type memoryOutput struct {
	mutex    sync.Mutex
	messages map[string]string
}

func (o *memoryOutput) Write(id string, contents string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.messages[id] = contents
}

func TestInstrumentClientDumps(t *testing.T) {
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	output := &memoryOutput{messages: map[string]string{}}
	client := resty.New()
	InstrumentClient(client, nil, output)

	_, err := client.R().
		SetHeader("x-rapidapi-key", "secret").
		SetBody(map[string]string{"post_url": "https://example.com/post"}).
		Post(server.URL + "/reactions")
	require.NoError(t, err)

	require.Len(t, output.messages, 1)
	dump := output.messages["1"]
	require.Contains(t, dump, "POST "+server.URL+"/reactions")
	require.Contains(t, dump, "X-Rapidapi-Key: <redacted>")
	require.NotContains(t, dump, "secret")
	require.Contains(t, dump, `"post_url":"https://example.com/post"`)
	require.True(t, strings.HasSuffix(dump, `{"ok":true}`))
}

func TestFilesystemOutput(t *testing.T) {
	dir := t.TempDir()
	output, err := NewFilesystemOutput(dir)
	require.NoError(t, err)

	output.Write("7", "contents")
	written, err := os.ReadFile(dir + "/7.txt")
	require.NoError(t, err)
	require.Equal(t, "contents", string(written))
}
