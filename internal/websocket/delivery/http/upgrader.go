package http

import (
	"net/http"
	"net/url"
	"strings"

	gorillaws "github.com/gorilla/websocket"
)

// newUpgrader builds an environment-aware upgrader. Production accepts only
// same-host origins; everything else also accepts localhost for local
// frontend development.
func newUpgrader(environment string) gorillaws.Upgrader {
	if environment == "" {
		environment = "production"
	}

	upgrader := gorillaws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	if environment == "production" {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return isSameHostOrigin(r)
		}
	} else {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return isSameHostOrigin(r) || isLocalhostOrigin(r.Header.Get("Origin"))
		}
	}

	return upgrader
}

func isSameHostOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// Non-browser clients send no Origin.
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

func isLocalhostOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}
