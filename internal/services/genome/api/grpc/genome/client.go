package genome

import (
	"context"

	"google.golang.org/grpc"

	"github.com/louisbranch/oripheon/internal/platform/grpc/jsoncodec"
)

// GenomeServiceClient is the client API for the genome service.
type GenomeServiceClient interface {
	Generate(ctx context.Context, in *GenerateRequest, opts ...grpc.CallOption) (*GenomeResponse, error)
	Reroll(ctx context.Context, in *RerollRequest, opts ...grpc.CallOption) (*GenomeResponse, error)
	Compare(ctx context.Context, in *CompareRequest, opts ...grpc.CallOption) (*CompareResponse, error)
	Export(ctx context.Context, in *ExportRequest, opts ...grpc.CallOption) (*ExportResponse, error)
	Disclose(ctx context.Context, in *DiscloseRequest, opts ...grpc.CallOption) (*DiscloseResponse, error)
	GetGenome(ctx context.Context, in *GetGenomeRequest, opts ...grpc.CallOption) (*GenomeResponse, error)
	ListGenomes(ctx context.Context, in *ListGenomesRequest, opts ...grpc.CallOption) (*ListGenomesResponse, error)
}

// Client calls the genome service over a connection. Every call uses the
// json codec.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *Client, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{jsoncodec.CallOption()}, opts...)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Generate(ctx context.Context, in *GenerateRequest, opts ...grpc.CallOption) (*GenomeResponse, error) {
	return invoke[GenomeResponse](ctx, c, MethodGenerate, in, opts)
}

func (c *Client) Reroll(ctx context.Context, in *RerollRequest, opts ...grpc.CallOption) (*GenomeResponse, error) {
	return invoke[GenomeResponse](ctx, c, MethodReroll, in, opts)
}

func (c *Client) Compare(ctx context.Context, in *CompareRequest, opts ...grpc.CallOption) (*CompareResponse, error) {
	return invoke[CompareResponse](ctx, c, MethodCompare, in, opts)
}

func (c *Client) Export(ctx context.Context, in *ExportRequest, opts ...grpc.CallOption) (*ExportResponse, error) {
	return invoke[ExportResponse](ctx, c, MethodExport, in, opts)
}

func (c *Client) Disclose(ctx context.Context, in *DiscloseRequest, opts ...grpc.CallOption) (*DiscloseResponse, error) {
	return invoke[DiscloseResponse](ctx, c, MethodDisclose, in, opts)
}

func (c *Client) GetGenome(ctx context.Context, in *GetGenomeRequest, opts ...grpc.CallOption) (*GenomeResponse, error) {
	return invoke[GenomeResponse](ctx, c, MethodGetGenome, in, opts)
}

func (c *Client) ListGenomes(ctx context.Context, in *ListGenomesRequest, opts ...grpc.CallOption) (*ListGenomesResponse, error) {
	return invoke[ListGenomesResponse](ctx, c, MethodListGenomes, in, opts)
}

var _ GenomeServiceClient = (*Client)(nil)
