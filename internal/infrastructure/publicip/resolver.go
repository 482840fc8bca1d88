package publicip

import (
	"context"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/context/ctxhttp"
)

const DefaultServiceURL = "https://ifconfig.me"

// Resolver asks an external echo service which address our requests come from.
type Resolver struct {
	url    string
	client *http.Client
}

func NewResolver(url string) *Resolver {
	if url == "" {
		url = DefaultServiceURL
	}
	return &Resolver{url: url, client: &http.Client{Timeout: 10 * time.Second}}
}

func (r *Resolver) PublicIP(ctx context.Context) (string, error) {
	request, err := http.NewRequest(http.MethodGet, r.url, nil)
	if err != nil {
		return "", err
	}
	// ifconfig.me answers with an HTML page unless it believes it talks to curl
	request.Header.Set("User-Agent", "curl/7.64.1")
	request.Header.Set("Accept", "text/plain")

	response, err := ctxhttp.Do(ctx, r.client, request)
	if err != nil {
		return "", fmt.Errorf("unable to reach %s: %w", r.url, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", fmt.Errorf("%s responded with %s", r.url, response.Status)
	}

	body, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("unable to read response from %s: %w", r.url, err)
	}

	address := strings.TrimSpace(string(body))
	if net.ParseIP(address) == nil {
		return "", fmt.Errorf("%s did not respond with an ip address: %q", r.url, address)
	}

	log.Debugf("public ip address is %s", address)
	return address, nil
}
