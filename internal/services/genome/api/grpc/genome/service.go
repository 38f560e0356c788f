// Package genome exposes the genome engine over gRPC.
package genome

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	grpccodes "google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	apperrors "github.com/louisbranch/oripheon/internal/platform/errors"
	"github.com/louisbranch/oripheon/internal/platform/grpc/pagination"
	"github.com/louisbranch/oripheon/internal/platform/metrics"
	platformotel "github.com/louisbranch/oripheon/internal/platform/otel"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/compat"
	"github.com/louisbranch/oripheon/internal/services/genome/domain/disclosure"
	domain "github.com/louisbranch/oripheon/internal/services/genome/domain/genome"
	"github.com/louisbranch/oripheon/internal/services/genome/events"
	"github.com/louisbranch/oripheon/internal/services/genome/storage"
)

// LocaleMetadataKey carries the caller's preferred locale for error messages.
const LocaleMetadataKey = "accept-language"

var listGenomesPageSize = pagination.PageSizeConfig{Default: 10, Max: 50}

// Deps are the collaborators a Service reports to. Every field is optional.
type Deps struct {
	Store     storage.GenomeStore
	Publisher events.Publisher
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

// Service implements GenomeServiceServer.
type Service struct {
	store     storage.GenomeStore
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
	tracer    trace.Tracer
	clock     func() time.Time
}

// NewService creates a genome service.
func NewService(deps Deps) *Service {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = events.Nop{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     deps.Store,
		publisher: publisher,
		metrics:   deps.Metrics,
		logger:    logger,
		tracer:    platformotel.Tracer("github.com/louisbranch/oripheon/genome"),
		clock:     time.Now,
	}
}

// Generate assembles a genome, drawing a seed when none is given.
func (s *Service) Generate(ctx context.Context, in *GenerateRequest) (*GenomeResponse, error) {
	defer s.metrics.ObserveRPC("Generate", time.Now())
	if in == nil {
		return nil, status.Error(grpccodes.InvalidArgument, "generate request is required")
	}
	ctx, span := s.tracer.Start(ctx, "genome.Generate")
	defer span.End()

	g, seed, err := domain.Generate(in.Seed, in.Overrides)
	span.SetAttributes(attribute.Int64("genome.seed", seed))
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}
	if err := s.record(ctx, g, events.TypeGenerated, in.Persist); err != nil {
		return nil, s.fail(ctx, span, err)
	}
	return &GenomeResponse{Genome: g, Seed: seed}, nil
}

// Reroll regenerates the genome for a known seed under new overrides.
func (s *Service) Reroll(ctx context.Context, in *RerollRequest) (*GenomeResponse, error) {
	defer s.metrics.ObserveRPC("Reroll", time.Now())
	if in == nil {
		return nil, status.Error(grpccodes.InvalidArgument, "reroll request is required")
	}
	ctx, span := s.tracer.Start(ctx, "genome.Reroll", trace.WithAttributes(attribute.Int64("genome.seed", in.Seed)))
	defer span.End()

	g, err := domain.Reroll(in.Seed, in.Overrides)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}
	if err := s.record(ctx, g, events.TypeRerolled, in.Persist); err != nil {
		return nil, s.fail(ctx, span, err)
	}
	return &GenomeResponse{Genome: g, Seed: in.Seed}, nil
}

// Compare scores two genomes.
func (s *Service) Compare(ctx context.Context, in *CompareRequest) (*CompareResponse, error) {
	defer s.metrics.ObserveRPC("Compare", time.Now())
	if in == nil {
		return nil, status.Error(grpccodes.InvalidArgument, "compare request is required")
	}
	ctx, span := s.tracer.Start(ctx, "genome.Compare")
	defer span.End()

	a, err := s.resolve(ctx, in.Source)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}
	b, err := s.resolve(ctx, in.Target)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}
	var only *compat.Context
	if value := strings.TrimSpace(in.Context); value != "" {
		c := compat.Context(value)
		only = &c
	}
	result, err := compat.Compare(a, b, only)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}
	s.metrics.Compared(string(result.Label))
	span.SetAttributes(attribute.String("genome.relationship", string(result.Label)))
	event := s.event(events.TypeCompared, a)
	event.TargetID = b.ID
	event.Label = string(result.Label)
	s.publish(ctx, event)
	return &CompareResponse{Result: result}, nil
}

// Export renders a genome in one format.
func (s *Service) Export(ctx context.Context, in *ExportRequest) (*ExportResponse, error) {
	defer s.metrics.ObserveRPC("Export", time.Now())
	if in == nil {
		return nil, status.Error(grpccodes.InvalidArgument, "export request is required")
	}
	ctx, span := s.tracer.Start(ctx, "genome.Export", trace.WithAttributes(attribute.String("genome.format", in.Format)))
	defer span.End()

	g, err := s.resolve(ctx, in.Genome)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}
	content, err := disclosure.Export(g, in.Format, in.Locale)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}
	s.metrics.Exported(in.Format)
	return &ExportResponse{Format: in.Format, Content: content}, nil
}

// Disclose projects a genome to one visibility tier.
func (s *Service) Disclose(ctx context.Context, in *DiscloseRequest) (*DiscloseResponse, error) {
	defer s.metrics.ObserveRPC("Disclose", time.Now())
	if in == nil {
		return nil, status.Error(grpccodes.InvalidArgument, "disclose request is required")
	}
	ctx, span := s.tracer.Start(ctx, "genome.Disclose", trace.WithAttributes(attribute.String("genome.tier", in.Tier)))
	defer span.End()

	g, err := s.resolve(ctx, in.Genome)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}
	view, err := disclosure.Disclose(g, in.Tier)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}
	s.metrics.Disclosed(in.Tier)
	return &DiscloseResponse{View: view}, nil
}

// GetGenome returns one stored genome.
func (s *Service) GetGenome(ctx context.Context, in *GetGenomeRequest) (*GenomeResponse, error) {
	defer s.metrics.ObserveRPC("GetGenome", time.Now())
	if in == nil {
		return nil, status.Error(grpccodes.InvalidArgument, "get genome request is required")
	}
	ctx, span := s.tracer.Start(ctx, "genome.GetGenome")
	defer span.End()

	g, err := s.load(ctx, in.GenomeID)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}
	return &GenomeResponse{Genome: g, Seed: g.Seed}, nil
}

// ListGenomes returns one page of stored genomes ordered by id.
func (s *Service) ListGenomes(ctx context.Context, in *ListGenomesRequest) (*ListGenomesResponse, error) {
	defer s.metrics.ObserveRPC("ListGenomes", time.Now())
	if in == nil {
		return nil, status.Error(grpccodes.InvalidArgument, "list genomes request is required")
	}
	if s.store == nil {
		return nil, status.Error(grpccodes.Internal, "genome store is not configured")
	}

	page, err := s.store.ListGenomes(
		ctx,
		pagination.ClampPageSize(in.PageSize, listGenomesPageSize),
		strings.TrimSpace(in.PageToken),
	)
	if err != nil {
		return nil, status.Errorf(grpccodes.Internal, "list genomes: %v", err)
	}
	resp := &ListGenomesResponse{
		Genomes:       make([]GenomeSummary, 0, len(page.Genomes)),
		NextPageToken: page.NextPageToken,
	}
	for _, record := range page.Genomes {
		resp.Genomes = append(resp.Genomes, GenomeSummary{
			GenomeID:    record.GenomeID,
			Seed:        record.Seed,
			Primary:     record.Primary,
			DisplayName: record.DisplayName,
			CreatedAt:   record.CreatedAt,
		})
	}
	return resp, nil
}

// resolve loads a stored genome or rebuilds one from its seed.
func (s *Service) resolve(ctx context.Context, ref GenomeRef) (domain.CharacterGenome, error) {
	if id := strings.TrimSpace(ref.GenomeID); id != "" {
		return s.load(ctx, id)
	}
	if ref.Seed == nil {
		return domain.CharacterGenome{}, apperrors.New(apperrors.CodeGenomeIDRequired, "genome id or seed is required")
	}
	var o domain.OverrideSet
	if ref.Overrides != nil {
		o = *ref.Overrides
	}
	return domain.Reroll(*ref.Seed, o)
}

func (s *Service) load(ctx context.Context, genomeID string) (domain.CharacterGenome, error) {
	genomeID = strings.TrimSpace(genomeID)
	if genomeID == "" {
		return domain.CharacterGenome{}, apperrors.New(apperrors.CodeGenomeIDRequired, "genome id is required")
	}
	if s.store == nil {
		return domain.CharacterGenome{}, status.Error(grpccodes.Internal, "genome store is not configured")
	}
	record, err := s.store.GetGenome(ctx, genomeID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.CharacterGenome{}, apperrors.WithMetadata(
				apperrors.CodeNotFound,
				"genome not found",
				map[string]string{"GenomeID": genomeID},
			)
		}
		return domain.CharacterGenome{}, status.Errorf(grpccodes.Internal, "get genome: %v", err)
	}
	return record.Genome()
}

// record counts, optionally persists, and announces a generated genome.
// Storing a genome that already exists is not an error: ids are derived
// from seed and overrides, so the stored copy is identical.
func (s *Service) record(ctx context.Context, g domain.CharacterGenome, kind events.Type, persist bool) error {
	s.metrics.Generated(string(g.Archetype.Primary))
	if persist {
		if s.store == nil {
			return status.Error(grpccodes.FailedPrecondition, "genome store is not configured")
		}
		rec, err := storage.NewRecord(g, s.clock())
		if err != nil {
			return status.Errorf(grpccodes.Internal, "encode genome: %v", err)
		}
		if err := s.store.PutGenome(ctx, rec); err != nil && !errors.Is(err, storage.ErrAlreadyExists) {
			return status.Errorf(grpccodes.Internal, "put genome: %v", err)
		}
	}
	s.publish(ctx, s.event(kind, g))
	return nil
}

func (s *Service) event(kind events.Type, g domain.CharacterGenome) events.Event {
	return events.Event{
		Type:       kind,
		GenomeID:   g.ID,
		Seed:       g.Seed,
		Primary:    string(g.Archetype.Primary),
		OccurredAt: s.clock().UTC(),
	}
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish genome event failed",
			zap.String("type", string(event.Type)),
			zap.String("genome_id", event.GenomeID),
			zap.Error(err),
		)
	}
}

// fail converts err to a gRPC status, counting domain failures by code.
func (s *Service) fail(ctx context.Context, span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if _, ok := status.FromError(err); ok {
		return err
	}
	code := apperrors.GetCode(err)
	s.metrics.Failed(string(code))
	if code == apperrors.CodeUnknown {
		s.logger.Error("genome request failed", zap.Error(err))
	}
	return apperrors.HandleError(err, localeFrom(ctx))
}

func localeFrom(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(LocaleMetadataKey)
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(strings.Split(values[0], ",")[0])
}

var _ GenomeServiceServer = (*Service)(nil)
