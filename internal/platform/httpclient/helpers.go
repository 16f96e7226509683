package httpclient

import (
	"bytes"
	"io"
	"net"
	"net/http"

	"vita/internal/platform/errors"
)

func withJSON(headers map[string]string, hasBody bool) map[string]string {
	out := make(map[string]string, len(headers)+2)
	out["Accept"] = "application/json"
	if hasBody {
		out["Content-Type"] = "application/json"
	}
	for k, v := range headers {
		out[k] = v
	}
	return out
}

func bytesReader(b []byte) io.Reader {
	return bytes.NewReader(b)
}

// drain discards a small remainder so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.CopyN(io.Discard, resp.Body, 4<<10)
	resp.Body.Close()
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
