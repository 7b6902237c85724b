package download

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"unicode"

	"musicminds/services/backend"

	"github.com/gabriel-vasile/mimetype"
)

const (
	sniffLen        = 3072
	defaultBaseName = "download"
)

// Open fetches fileURL and returns its body for streaming. The upstream
// Content-Type is passed through; only a missing one is sniffed from the bytes.
func (s *DefaultDownloadService) Open(ctx context.Context, fileURL, name string) (*Download, error) {
	u, err := s.checkURL(fileURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, ErrBadURL
	}
	resp, err := s.HTTP.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &backend.NetworkError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, &backend.UpstreamError{Status: resp.StatusCode, Message: "Failed to fetch file"}
	}
	if s.MaxBytes > 0 && resp.ContentLength > s.MaxBytes {
		_ = resp.Body.Close()
		return nil, ErrTooLarge
	}

	var body io.ReadCloser = resp.Body
	if s.MaxBytes > 0 {
		body = &limitedBody{rc: resp.Body, remaining: s.MaxBytes}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		br := bufio.NewReaderSize(body, sniffLen)
		head, _ := br.Peek(sniffLen)
		contentType = mimetype.Detect(head).String()
		body = readCloser{Reader: br, Closer: body}
	}

	return &Download{
		Body:        body,
		ContentType: contentType,
		Filename:    Filename(name, u, contentType),
		Length:      resp.ContentLength,
	}, nil
}

func (s *DefaultDownloadService) checkURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrMissingURL
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return nil, ErrBadURL
	}
	if !hostAllowed(u.Hostname(), s.AllowedHosts) {
		return nil, ErrHostNotAllowed
	}
	return u, nil
}

// hostAllowed matches host against exact entries and their subdomains.
func hostAllowed(host string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	host = strings.ToLower(host)
	for _, a := range allowed {
		a = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(a), "*."))
		if host == a || strings.HasSuffix(host, "."+a) {
			return true
		}
	}
	return false
}

// Filename picks the attachment name: the explicit name, else the last URL path
// segment, else "download" with an extension for the content type. It is never
// empty.
func Filename(name string, u *url.URL, contentType string) string {
	if n := sanitize(name); n != "" {
		return n
	}
	if u != nil {
		if base := path.Base(u.Path); base != "." && base != "/" {
			if n := sanitize(base); n != "" {
				return n
			}
		}
	}
	if m := mimetype.Lookup(mediaType(contentType)); m != nil && m.Extension() != "" {
		return defaultBaseName + m.Extension()
	}
	return defaultBaseName
}

// ContentDisposition renders the attachment header for name.
func ContentDisposition(name string) string {
	ascii := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return '_'
		}
		return r
	}, name)
	if ascii == name {
		return fmt.Sprintf("attachment; filename=%q", name)
	}
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", ascii, encodeExtValue(name))
}

// encodeExtValue percent-encodes every byte outside the RFC 5987 attr-char set.
func encodeExtValue(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAttrChar(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isAttrChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", c) >= 0
}

func sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '"' || r == '\\' || r == '/':
			return -1
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, name)
	return strings.TrimSpace(name)
}

func mediaType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.TrimSpace(strings.ToLower(contentType))
}

type readCloser struct {
	io.Reader
	io.Closer
}

// limitedBody fails the stream instead of silently truncating it.
type limitedBody struct {
	rc        io.ReadCloser
	remaining int64
}

func (l *limitedBody) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		var probe [1]byte
		if n, _ := l.rc.Read(probe[:]); n > 0 {
			return 0, ErrTooLarge
		}
		return 0, io.EOF
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.rc.Read(p)
	l.remaining -= int64(n)
	return n, err
}

func (l *limitedBody) Close() error {
	return l.rc.Close()
}
