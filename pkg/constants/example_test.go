package constants_test

import (
	"fmt"
	"net/http"

	"github.com/optimade/optimade-go/pkg/constants"
)

// Example_timeouts demonstrates the provider fetch timeout
func Example_timeouts() {
	client := &http.Client{
		Timeout: constants.ProviderFetchTimeout,
	}
	fmt.Printf("Provider fetch timeout: %v\n", client.Timeout)
	// Output:
	// Provider fetch timeout: 10s
}

// Example_paging shows the default and maximum page sizes
func Example_paging() {
	fmt.Printf("default=%d max=%d\n", constants.DefaultPageLimit, constants.MaxPageLimit)
	// Output:
	// default=20 max=500
}

// Example_versionPrefixes lists the versioned mount points
func Example_versionPrefixes() {
	for _, p := range constants.VersionPrefixes() {
		fmt.Println(p)
	}
	// Output:
	// /v1
	// /v1.1
	// /v1.1.0
}

// Example_providerListURLs lists the remote provider sources in fallback order
func Example_providerListURLs() {
	for i, u := range constants.ProviderListURLs() {
		fmt.Println(i, u)
	}
	// Output:
	// 0 https://providers.optimade.org/v1/links
	// 1 https://raw.githubusercontent.com/Materials-Consortia/providers/master/src/links/v1/providers.json
}
