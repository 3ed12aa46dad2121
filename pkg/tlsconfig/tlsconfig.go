// Package tlsconfig builds mTLS credentials for the panel's gRPC endpoints.
package tlsconfig

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"google.golang.org/grpc/credentials"
)

// ErrIncomplete is returned when only some of the certificate files are set
var ErrIncomplete = errors.New("TLS needs a certificate, a key and a CA file")

// Files names the PEM files of one endpoint
type Files struct {
	Cert string
	Key  string
	CA   string
}

// Enabled reports whether any TLS file is configured
func (f Files) Enabled() bool {
	return f.Cert != "" || f.Key != "" || f.CA != ""
}

func (f Files) load() (tls.Certificate, *x509.CertPool, error) {
	if f.Cert == "" || f.Key == "" || f.CA == "" {
		return tls.Certificate{}, nil, ErrIncomplete
	}

	cert, err := tls.LoadX509KeyPair(f.Cert, f.Key)
	if err != nil {
		return tls.Certificate{}, nil, fmt.Errorf("load key pair: %w", err)
	}

	caPEM, err := os.ReadFile(f.CA)
	if err != nil {
		return tls.Certificate{}, nil, fmt.Errorf("read CA cert: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return tls.Certificate{}, nil, fmt.Errorf("failed to parse CA certificate %s", f.CA)
	}
	return cert, pool, nil
}

// Server returns a tls.Config that requires client certificates signed by the CA
func (f Files) Server() (*tls.Config, error) {
	cert, pool, err := f.load()
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		ClientCAs:    pool,
		ClientAuth:   tls.RequireAndVerifyClientCert,
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// Client returns a tls.Config presenting the client certificate
// serverName overrides the name verified against the server certificate when set.
func (f Files) Client(serverName string) (*tls.Config, error) {
	cert, pool, err := f.load()
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      pool,
		ServerName:   serverName,
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// ServerCredentials wraps Server for grpc.Creds
func (f Files) ServerCredentials() (credentials.TransportCredentials, error) {
	cfg, err := f.Server()
	if err != nil {
		return nil, err
	}
	return credentials.NewTLS(cfg), nil
}

// ClientCredentials wraps Client for grpc.WithTransportCredentials
func (f Files) ClientCredentials(serverName string) (credentials.TransportCredentials, error) {
	cfg, err := f.Client(serverName)
	if err != nil {
		return nil, err
	}
	return credentials.NewTLS(cfg), nil
}
