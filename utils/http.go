// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// HTTPClient is shared by the sync workers talking to sibling services.
var HTTPClient = &http.Client{
	Timeout: 30 * time.Second,
}
