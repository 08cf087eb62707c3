package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tolatiles/tola-tiles-api/config"
)

// proxyHTTPClient performs the upstream login calls. Replaceable in tests.
var proxyHTTPClient = &http.Client{Timeout: 10 * time.Second}

// ProxyLoginRequest is the payload for logging in against a client site
type ProxyLoginRequest struct {
	ClientDomain string `json:"client_domain" binding:"required"`
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password" binding:"required"`
}

type proxyUpstreamResponse struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

// ProxyClientLogin handles POST /auth/proxy-login. It forwards credentials
// to a configured client site's login endpoint so browser clients avoid
// cross-origin restrictions. Upstream failures are reported distinctly:
// timeouts as 504, connection failures as 502, anything else as 500.
func ProxyClientLogin(c *gin.Context) {
	var req ProxyLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"client_domain, username, and password are required")
		return
	}

	endpoint, ok := config.GetConfig().ProxyClientSites[req.ClientDomain]
	if !ok {
		respondError(c, http.StatusBadRequest, "UNSUPPORTED_CLIENT",
			fmt.Sprintf("Client domain %s is not supported", req.ClientDomain))
		return
	}

	payload, _ := json.Marshal(gin.H{
		"username": req.Username,
		"password": req.Password,
	})

	upstream, err := proxyHTTPClient.Post(endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			respondError(c, http.StatusGatewayTimeout, "UPSTREAM_TIMEOUT",
				"Request timeout. The client website may be unavailable.")
			return
		}
		respondError(c, http.StatusBadGateway, "UPSTREAM_UNREACHABLE",
			"Unable to connect to the client website. Please try again later.")
		return
	}
	defer upstream.Body.Close()

	switch upstream.StatusCode {
	case http.StatusOK:
		var body proxyUpstreamResponse
		if err := json.NewDecoder(upstream.Body).Decode(&body); err != nil || body.Token == "" {
			respondError(c, http.StatusInternalServerError, "UPSTREAM_ERROR",
				"No token received from client site")
			return
		}
		respondData(c, http.StatusOK, gin.H{
			"token":         body.Token,
			"user":          body.User,
			"client_domain": req.ClientDomain,
		})
	case http.StatusUnauthorized:
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS",
			"Invalid username or password")
	case http.StatusForbidden:
		respondError(c, http.StatusForbidden, "ACCESS_DENIED",
			"Access denied. You may not have permission to access this site.")
	default:
		respondError(c, http.StatusInternalServerError, "UPSTREAM_ERROR",
			fmt.Sprintf("Login failed: %d", upstream.StatusCode))
	}
}
