package precheck

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"

	"github.com/go-viper/mapstructure/v2"
	"github.com/tidwall/gjson"

	"github.com/arunsidharrth/SDWAN/internal/checks"
	"github.com/arunsidharrth/SDWAN/internal/models"
)

const apiCheck = "vManage API Access"

// maxResponseBytes bounds how much of the API response is read.
const maxResponseBytes = 8 << 20

// Controller is one entry of the vManage controllers listing.
type Controller struct {
	DeviceType   string `mapstructure:"deviceType"`
	HostName     string `mapstructure:"host-name"`
	SystemIP     string `mapstructure:"system-ip"`
	Reachability string `mapstructure:"reachability"`
	Version      string `mapstructure:"version"`
}

// APIURL returns the controller listing endpoint for the configured host.
func (s *Suite) APIURL() string {
	u := url.URL{
		Scheme: "https",
		Host:   net.JoinHostPort(s.Host(), s.Port()),
		Path:   s.Config.Controller.APIPath,
	}
	return u.String()
}

func (s *Suite) checkAPI(ctx context.Context, rec *checks.Recorder) {
	c := s.Config.Controller
	host, user, pass := s.Getenv(c.HostEnv), s.Getenv(c.UsernameEnv), s.Getenv(c.PasswordEnv)
	if host == "" || user == "" || pass == "" {
		rec.Fail(apiCheck, "Cannot test - Missing required environment variables")
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.Config.APITimeout())
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, s.APIURL(), nil)
	if err != nil {
		rec.Fail(apiCheck, fmt.Sprintf("Unexpected error: %v", err))
		return
	}
	req.SetBasicAuth(user, pass)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		rec.Fail(apiCheck, describeRequestError(err))
		return
	}
	defer resp.Body.Close() //nolint:errcheck
	slog.Debug("API response", "status", resp.StatusCode, "url", s.APIURL())

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		rec.Fail(apiCheck, "Authentication failed - Check username/password")
		return
	case http.StatusForbidden:
		rec.Fail(apiCheck, "Access forbidden - Check user permissions")
		return
	default:
		rec.Fail(apiCheck, fmt.Sprintf("API returned status code %d", resp.StatusCode))
		return
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		rec.Fail(apiCheck, describeRequestError(err))
		return
	}
	if !gjson.ValidBytes(body) {
		rec.Warn(apiCheck, "Authentication successful but response not JSON")
		return
	}

	count := int(gjson.GetBytes(body, "data.#").Int())
	rec.Metrics().Controllers = models.Ptr(count)
	rec.Pass(apiCheck, fmt.Sprintf("Successfully authenticated - Found %d controllers", count))

	controllers, err := DecodeControllers(body)
	if err != nil {
		slog.Debug("Could not decode controller entries", "error", err)
		return
	}
	reachable := 0
	for _, ctrl := range controllers {
		if ctrl.Reachability == "reachable" {
			reachable++
		}
		rec.Note("- %s %s (%s)", ctrl.DeviceType, ctrl.HostName, orUnknown(ctrl.Reachability))
	}
	if len(controllers) > 0 {
		rec.Metrics().Set("controllers_reachable", reachable)
	}
}

// DecodeControllers extracts the data[] entries of a controller listing.
func DecodeControllers(body []byte) ([]Controller, error) {
	data := gjson.GetBytes(body, "data")
	if !data.IsArray() {
		return nil, nil
	}
	var out []Controller
	if err := mapstructure.WeakDecode(data.Value(), &out); err != nil {
		return nil, fmt.Errorf("decoding controllers: %w", err)
	}
	return out, nil
}

func describeRequestError(err error) string {
	var (
		certErr   *tls.CertificateVerificationError
		unknownCA x509.UnknownAuthorityError
		headerErr tls.RecordHeaderError
		netErr    net.Error
	)
	switch {
	case errors.As(err, &certErr), errors.As(err, &unknownCA), errors.As(err, &headerErr),
		errors.Is(err, http.ErrSchemeMismatch):
		return "SSL Certificate error - Check vManage certificate"
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return "Connection timeout - Check network connectivity"
	case errors.As(err, new(*net.OpError)), errors.As(err, new(*net.DNSError)):
		return fmt.Sprintf("Connection error: %v", err)
	default:
		return fmt.Sprintf("Unexpected error: %v", err)
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
