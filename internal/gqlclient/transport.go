// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gqlclient

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirseerhq/sirseer-linear/pkg/version"
)

// DefaultMaxResponseBytes caps response bodies at 10MB.
const DefaultMaxResponseBytes int64 = 10 * 1024 * 1024

// personalKeyPrefix marks Linear personal API keys, which are sent without a scheme.
const personalKeyPrefix = "lin_api_"

// limitedReader wraps a ReadCloser with a size limit to prevent excessive memory usage.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("response size exceeded limit of %d bytes", lr.limit)
	}

	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)

	return n, err
}

// authTransport adds the authorization header and safety limits to HTTP requests.
type authTransport struct {
	token    string
	maxBytes int64
	base     http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())

	if t.token != "" {
		req.Header.Set("Authorization", authorizationValue(t.token))
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.Body != nil {
		resp.Body = &limitedReader{
			ReadCloser: resp.Body,
			limit:      t.maxBytes,
		}
	}

	return resp, nil
}

// authorizationValue formats token for the Authorization header. Personal API
// keys and values that already name a scheme go out unchanged; anything else
// is treated as an OAuth access token.
func authorizationValue(token string) string {
	if strings.HasPrefix(token, personalKeyPrefix) || strings.Contains(token, " ") {
		return token
	}
	return "Bearer " + token
}
