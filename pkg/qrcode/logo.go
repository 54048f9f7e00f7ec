package qr

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/jasu-us/business-card/pkg/logger/types"
	_ "golang.org/x/image/webp"
)

const maxLogoBytes = 4 << 20

// LogoAsset is a remote logo resolved at most once into a data URI. Until it
// resolves, Href falls back to the remote URL.
type LogoAsset struct {
	url    string
	client *http.Client
	logger *types.Logger

	mu      sync.Mutex
	dataURI string
	started bool
	settled bool
	closed  bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewLogoAsset(url string, client *http.Client, logger *types.Logger) *LogoAsset {
	if client == nil {
		client = http.DefaultClient
	}
	return &LogoAsset{
		url:    url,
		client: client,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Resolve starts the fetch in the background. Only the first call fetches;
// later calls and calls after Close are no-ops. Cancelling ctx discards the
// result and leaves the asset unresolved.
func (a *LogoAsset) Resolve(ctx context.Context) {
	a.mu.Lock()
	if a.started || a.closed {
		a.mu.Unlock()
		return
	}
	a.started = true
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.mu.Unlock()

	go func() {
		defer cancel()
		uri, err := FetchDataURI(ctx, a.client, a.url)
		a.publish(ctx, uri, err)
	}()
}

func (a *LogoAsset) publish(ctx context.Context, uri string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.settled {
		return
	}
	a.settled = true
	defer close(a.done)

	if a.closed || ctx.Err() != nil {
		return
	}
	if err != nil {
		a.logger.Warnf("logo %s stays remote: %v", a.url, err)
		return
	}
	a.dataURI = uri
	a.logger.Debugf("logo %s embedded (%d bytes)", a.url, len(uri))
}

// Close cancels a pending fetch. A result arriving afterwards is dropped.
func (a *LogoAsset) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closed = true
	if a.cancel != nil {
		a.cancel()
	}
	if !a.settled {
		a.settled = true
		close(a.done)
	}
}

// Done is closed once the asset settles, resolved or not.
func (a *LogoAsset) Done() <-chan struct{} {
	return a.done
}

// Embedded returns the data URI when the fetch succeeded.
func (a *LogoAsset) Embedded() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dataURI, a.dataURI != ""
}

// Href is the reference to render: the data URI or the remote URL.
func (a *LogoAsset) Href() string {
	if uri, ok := a.Embedded(); ok {
		return uri
	}
	return a.url
}

// Wait blocks until the asset settles or ctx ends.
func (a *LogoAsset) Wait(ctx context.Context) (string, bool) {
	select {
	case <-a.done:
	case <-ctx.Done():
	}
	return a.Embedded()
}

// FetchDataURI downloads src and returns it as a base64 data URI.
func FetchDataURI(ctx context.Context, client *http.Client, src string) (string, error) {
	data, contentType, err := fetch(ctx, client, src)
	if err != nil {
		return "", err
	}
	return EncodeDataURI(contentType, data), nil
}

func fetch(ctx context.Context, client *http.Client, src string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build logo request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrLogoUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: unexpected status %d", ErrLogoUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("%w: read body: %v", ErrLogoUnavailable, err)
	}
	if len(data) > maxLogoBytes {
		return nil, "", fmt.Errorf("%w: larger than %d bytes", ErrLogoUnavailable, maxLogoBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mt
	} else {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}

// EncodeDataURI returns data as a base64 data URI of the given media type.
func EncodeDataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI parses a data URI into its media type and payload.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data uri")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data uri without payload")
	}

	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if mediaType == "" {
		mediaType = "text/plain"
	}
	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, fmt.Errorf("decode data uri: %w", err)
		}
		return mediaType, data, nil
	}

	text, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data uri: %w", err)
	}
	return mediaType, []byte(text), nil
}

// LogoLoader decodes a logo from a data URI or fetches it from a remote URL.
type LogoLoader struct {
	Client *http.Client
}

func (l LogoLoader) DecodeLogo(ctx context.Context, src string) (image.Image, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(src, "data:") {
		_, data, err = DecodeDataURI(src)
	} else {
		client := l.Client
		if client == nil {
			client = http.DefaultClient
		}
		data, _, err = fetch(ctx, client, src)
	}
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	return img, nil
}
