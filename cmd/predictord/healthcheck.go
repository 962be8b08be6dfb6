package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/yadav-krish/ticket-booking-prediction/internal/infrastructure/config"
	grpcpresentation "github.com/yadav-krish/ticket-booking-prediction/internal/presentation/grpc"
	"github.com/yadav-krish/ticket-booking-prediction/pkg/tlsutil"
)

// runHealthcheck asks the local gRPC listener whether the prediction service
// is serving. Used as the container HEALTHCHECK command.
func runHealthcheck(ctx context.Context, cfg config.Config) error {
	if cfg.GRPCPort == 0 {
		return errors.New("gRPC is disabled (GRPC_PORT=0)")
	}
	if cfg.GRPC.TLSClientCAFile != "" {
		return errors.New("healthcheck cannot present a client certificate to an mTLS listener")
	}

	var creds credentials.TransportCredentials = insecure.NewCredentials()
	if cfg.GRPCTLSEnabled() {
		caFile := cfg.GRPC.TLSCAFile
		if caFile == "" && cfg.GRPC.DevCertsDir != "" {
			caFile = tlsutil.DevCertificatePaths(cfg.GRPC.DevCertsDir).CAFile
		}
		var err error
		creds, err = tlsutil.ClientTLSConfig(caFile, "localhost")
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return grpcpresentation.CheckHealth(ctx, fmt.Sprintf("127.0.0.1:%d", cfg.GRPCPort),
		grpc.WithTransportCredentials(creds))
}
