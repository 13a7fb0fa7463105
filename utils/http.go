// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// NewHTTPClient builds the client used for backend calls.
// A zero timeout leaves requests unbounded; a hung call only stalls its own cycle.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}
