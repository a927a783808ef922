// Package precheck probes the local environment before the SD-WAN
// automation playbooks run: credentials, tools, directories, playbooks,
// network reachability and vManage API access.
package precheck

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/arunsidharrth/SDWAN/internal/checks"
	"github.com/arunsidharrth/SDWAN/internal/projectconfig"
)

// Resolver resolves host names. *net.Resolver satisfies it.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Dialer opens network connections. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Suite holds the collaborators shared by every pre-check probe.
type Suite struct {
	Config   *projectconfig.ProjectConfig
	WorkDir  string
	Getenv   func(string) string
	Runner   CommandRunner
	Resolver Resolver
	Dialer   Dialer
	// HTTPClient performs the API request. Its own timeout is not used;
	// the configured API timeout bounds each request.
	HTTPClient *http.Client
}

// New returns a suite wired to the real environment.
func New(cfg *projectconfig.ProjectConfig, workDir string) *Suite {
	return &Suite{
		Config:     cfg,
		WorkDir:    workDir,
		Getenv:     os.Getenv,
		Runner:     ExecRunner{},
		Resolver:   net.DefaultResolver,
		Dialer:     &net.Dialer{},
		HTTPClient: NewInsecureClient(),
	}
}

// NewInsecureClient returns an HTTP client that skips TLS verification, as
// vManage appliances commonly present self-signed certificates.
func NewInsecureClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	return &http.Client{Transport: transport}
}

// Steps returns the probes in execution order.
func (s *Suite) Steps() []checks.Checker {
	return []checks.Checker{
		checks.Step{Title: "Environment Variables", Probe: s.checkEnvironment},
		checks.Step{Title: "Required Tools", Probe: s.checkTools},
		checks.Step{Title: "Directory Structure", Probe: s.checkDirectories},
		checks.Step{Title: "Playbook Files", Probe: s.checkPlaybooks},
		checks.Step{Title: "Network Connectivity", Probe: s.checkNetwork},
		checks.Step{Title: "vManage API Access", Probe: s.checkAPI},
	}
}

// Host returns the configured controller host, empty when unset.
func (s *Suite) Host() string {
	return s.Getenv(s.Config.Controller.HostEnv)
}

// Port returns the configured controller port, falling back to the default.
func (s *Suite) Port() string {
	if p := s.Getenv(s.Config.Controller.PortEnv); p != "" {
		return p
	}
	return strconv.Itoa(s.Config.Controller.DefaultPort)
}

// Target describes the controller for report metadata.
func (s *Suite) Target() string {
	host := s.Host()
	if host == "" {
		return "(" + s.Config.Controller.HostEnv + " not set)"
	}
	return net.JoinHostPort(host, s.Port())
}
