package main

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yadav-krish/ticket-booking-prediction/internal/infrastructure/config"
	grpcpresentation "github.com/yadav-krish/ticket-booking-prediction/internal/presentation/grpc"
	"github.com/yadav-krish/ticket-booking-prediction/pkg/observability"
	"github.com/yadav-krish/ticket-booking-prediction/pkg/tlsutil"
)

func startGRPC(t *testing.T, tlsOpts tlsutil.ServerOptions) int {
	t.Helper()
	logger := observability.DiscardLogger()
	handler := grpcpresentation.NewPredictionServiceHandler(nil, nil, logger)
	srv, err := grpcpresentation.NewServer(handler, grpcpresentation.ServerConfig{TLS: tlsOpts}, logger)
	require.NoError(t, err)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	return lis.Addr().(*net.TCPAddr).Port
}

func TestRunHealthcheck_Plaintext(t *testing.T) {
	cfg := config.Load()
	cfg.GRPCPort = startGRPC(t, tlsutil.ServerOptions{})

	require.NoError(t, runHealthcheck(context.Background(), cfg))
}

func TestRunHealthcheck_DevCertificates(t *testing.T) {
	dir := t.TempDir()
	certs, err := tlsutil.GenerateDevCertificates([]string{"localhost", "127.0.0.1"}, dir)
	require.NoError(t, err)

	cfg := config.Load()
	cfg.GRPC.DevCertsDir = dir
	cfg.GRPCPort = startGRPC(t, tlsutil.ServerOptions{CertFile: certs.CertFile, KeyFile: certs.KeyFile})

	require.NoError(t, runHealthcheck(context.Background(), cfg))

	// A plaintext client cannot talk to the TLS listener.
	cfg.GRPC.DevCertsDir = ""
	assert.Error(t, runHealthcheck(context.Background(), cfg))
}

func TestRunHealthcheck_Rejected(t *testing.T) {
	tests := []struct {
		mutate  func(c *config.Config)
		name    string
		wantErr string
	}{
		{name: "grpc disabled", mutate: func(c *config.Config) { c.GRPCPort = 0 }, wantErr: "disabled"},
		{name: "mtls listener", mutate: func(c *config.Config) { c.GRPC.TLSClientCAFile = "ca.pem" }, wantErr: "client certificate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Load()
			tt.mutate(&cfg)
			err := runHealthcheck(context.Background(), cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
