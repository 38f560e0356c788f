package genome

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "oripheon.genome.v1.GenomeService"

// Full method names.
const (
	MethodGenerate    = "/" + ServiceName + "/Generate"
	MethodReroll      = "/" + ServiceName + "/Reroll"
	MethodCompare     = "/" + ServiceName + "/Compare"
	MethodExport      = "/" + ServiceName + "/Export"
	MethodDisclose    = "/" + ServiceName + "/Disclose"
	MethodGetGenome   = "/" + ServiceName + "/GetGenome"
	MethodListGenomes = "/" + ServiceName + "/ListGenomes"
)

// GenomeServiceServer is the server API for the genome service. Messages
// travel with the json codec.
type GenomeServiceServer interface {
	Generate(context.Context, *GenerateRequest) (*GenomeResponse, error)
	Reroll(context.Context, *RerollRequest) (*GenomeResponse, error)
	Compare(context.Context, *CompareRequest) (*CompareResponse, error)
	Export(context.Context, *ExportRequest) (*ExportResponse, error)
	Disclose(context.Context, *DiscloseRequest) (*DiscloseResponse, error)
	GetGenome(context.Context, *GetGenomeRequest) (*GenomeResponse, error)
	ListGenomes(context.Context, *ListGenomesRequest) (*ListGenomesResponse, error)
}

// RegisterGenomeServiceServer registers srv on s.
func RegisterGenomeServiceServer(s grpc.ServiceRegistrar, srv GenomeServiceServer) {
	s.RegisterService(&GenomeServiceDesc, srv)
}

// GenomeServiceDesc describes the genome service for grpc.Server.
var GenomeServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GenomeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Generate", MethodGenerate, GenomeServiceServer.Generate),
		unary("Reroll", MethodReroll, GenomeServiceServer.Reroll),
		unary("Compare", MethodCompare, GenomeServiceServer.Compare),
		unary("Export", MethodExport, GenomeServiceServer.Export),
		unary("Disclose", MethodDisclose, GenomeServiceServer.Disclose),
		unary("GetGenome", MethodGetGenome, GenomeServiceServer.GetGenome),
		unary("ListGenomes", MethodListGenomes, GenomeServiceServer.ListGenomes),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "oripheon/genome/v1/genome.json",
}

func unary[Req, Resp any](name, fullMethod string, call func(GenomeServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(GenomeServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(GenomeServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
