package precheck

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/arunsidharrth/SDWAN/internal/checks"
)

func (s *Suite) checkNetwork(ctx context.Context, rec *checks.Recorder) {
	host := s.Host()
	if host == "" {
		rec.Fail("Network Connectivity", fmt.Sprintf("Cannot test - %s not set", s.Config.Controller.HostEnv))
		return
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.Config.NetworkTimeout())
	addrs, err := s.Resolver.LookupHost(lookupCtx, host)
	cancel()
	if err != nil {
		rec.Fail("DNS Resolution", fmt.Sprintf("Cannot resolve %s: %v", host, err))
		return
	}
	slog.Debug("Resolved controller", "host", host, "addrs", addrs)
	rec.Pass("DNS Resolution", "Successfully resolved "+host)

	port := s.Port()
	addr := net.JoinHostPort(host, port)
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		rec.Fail("Port Connectivity", fmt.Sprintf("Cannot connect to %s - invalid port %q", addr, port))
		return
	}

	dialCtx, cancel := context.WithTimeout(ctx, s.Config.NetworkTimeout())
	defer cancel()
	conn, err := s.Dialer.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		rec.Fail("Port Connectivity", fmt.Sprintf("Cannot connect to %s - %v", addr, err))
		return
	}
	conn.Close() //nolint:errcheck
	rec.Pass("Port Connectivity", "Can connect to "+addr)
}
