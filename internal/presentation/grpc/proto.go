package grpc

// Service definition for booking.v1.PredictionService. Messages travel with
// the JSON codec registered in json_codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// PredictionServiceServer is the server API for PredictionService.
type PredictionServiceServer interface {
	Predict(context.Context, *PredictRequest) (*PredictResponse, error)
	GetPrediction(context.Context, *GetPredictionRequest) (*GetPredictionResponse, error)
	mustEmbedUnimplementedPredictionServiceServer()
}

// UnimplementedPredictionServiceServer provides forward-compatible default implementations.
type UnimplementedPredictionServiceServer struct{}

func (UnimplementedPredictionServiceServer) Predict(context.Context, *PredictRequest) (*PredictResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Predict not implemented")
}
func (UnimplementedPredictionServiceServer) GetPrediction(context.Context, *GetPredictionRequest) (*GetPredictionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetPrediction not implemented")
}
func (UnimplementedPredictionServiceServer) mustEmbedUnimplementedPredictionServiceServer() {}

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "booking.v1.PredictionService"

// RegisterPredictionServiceServer registers the PredictionServiceServer with the gRPC server.
func RegisterPredictionServiceServer(s grpclib.ServiceRegistrar, srv PredictionServiceServer) {
	s.RegisterService(&predictionServiceDesc, srv)
}

var predictionServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PredictionServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "Predict", Handler: predictHandler},
		{MethodName: "GetPrediction", Handler: getPredictionHandler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "booking/v1/prediction.proto",
}

func predictHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(PredictRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PredictionServiceServer).Predict(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/Predict"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PredictionServiceServer).Predict(ctx, req.(*PredictRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func getPredictionHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(GetPredictionRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PredictionServiceServer).GetPrediction(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetPrediction"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PredictionServiceServer).GetPrediction(ctx, req.(*GetPredictionRequest))
	}
	return interceptor(ctx, req, info, handler)
}
