// Package api implements the FlowQueryService gRPC server and its HTTP
// gateway over the persisted flow store.
package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	v1 "github.com/steelegbr/flowgraph/api/gen/v1"
	"github.com/steelegbr/flowgraph/internal/model"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// FlowQueryServer answers wide and deep searches against the flow store.
type FlowQueryServer struct {
	v1.UnimplementedFlowQueryServiceServer
	store  model.Searcher
	logger *zap.Logger
}

// NewFlowQueryServer wraps a flow store in the query service.
func NewFlowQueryServer(store model.Searcher, logger *zap.Logger) *FlowQueryServer {
	return &FlowQueryServer{store: store, logger: logger}
}

func (s *FlowQueryServer) HealthCheck(ctx context.Context, req *v1.HealthCheckRequest) (*v1.HealthCheckResponse, error) {
	return &v1.HealthCheckResponse{Status: "ok"}, nil
}

// WideSearch returns every flow with the given protocol and destination port.
func (s *FlowQueryServer) WideSearch(ctx context.Context, req *v1.WideSearchRequest) (*v1.SearchResponse, error) {
	if err := validatePortProtocol(req.GetProtocol(), req.GetDestinationPort()); err != nil {
		return nil, err
	}
	flows, err := s.store.WideSearch(ctx, uint8(req.GetProtocol()), uint16(req.GetDestinationPort()))
	if err != nil {
		s.logger.Error("wide search failed", zap.Error(err))
		return nil, status.Error(codes.Internal, "flow store query failed")
	}
	return searchResponse(flows), nil
}

// DeepSearch returns flows from a given source that also fall inside the
// requested start-time window.
func (s *FlowQueryServer) DeepSearch(ctx context.Context, req *v1.DeepSearchRequest) (*v1.SearchResponse, error) {
	if err := validatePortProtocol(req.GetProtocol(), req.GetDestinationPort()); err != nil {
		return nil, err
	}
	if req.GetSourceAddress() == "" {
		return nil, status.Error(codes.InvalidArgument, "source_address is required")
	}
	notBefore, notAfter := timeBounds(req.GetNotBefore(), req.GetNotAfter())
	flows, err := s.store.DeepSearch(ctx, uint8(req.GetProtocol()), uint16(req.GetDestinationPort()), req.GetSourceAddress(), notBefore, notAfter)
	if err != nil {
		s.logger.Error("deep search failed", zap.Error(err))
		return nil, status.Error(codes.Internal, "flow store query failed")
	}
	return searchResponse(flows), nil
}

func validatePortProtocol(protocol, port uint32) error {
	if protocol > 255 {
		return status.Error(codes.InvalidArgument, "protocol must fit in 8 bits")
	}
	if port == 0 || port > 65535 {
		return status.Error(codes.InvalidArgument, "destination_port must be between 1 and 65535")
	}
	return nil
}

func timeBounds(before, after *timestamppb.Timestamp) (time.Time, time.Time) {
	notBefore := time.Unix(0, 0).UTC()
	if before != nil {
		notBefore = before.AsTime()
	}
	notAfter := time.Now().UTC()
	if after != nil {
		notAfter = after.AsTime()
	}
	return notBefore, notAfter
}

func searchResponse(flows []model.PersistedFlow) *v1.SearchResponse {
	resp := &v1.SearchResponse{Flows: make([]*v1.Flow, 0, len(flows))}
	for _, flow := range flows {
		resp.Flows = append(resp.Flows, &v1.Flow{
			Id:                 flow.ID.String(),
			SourceAddress:      flow.SrcAddr,
			DestinationAddress: flow.DstAddr,
			SourcePort:         uint32(flow.SrcPort),
			DestinationPort:    uint32(flow.DstPort),
			Protocol:           uint32(flow.Protocol),
			StartTime:          timestamppb.New(flow.Start),
			EndTime:            timestamppb.New(flow.End),
		})
	}
	return resp
}

// NewHTTPHandler exposes the query service over plain HTTP for tooling that
// does not speak gRPC. Responses are protojson renderings of SearchResponse.
func NewHTTPHandler(s *FlowQueryServer) http.Handler {
	r := mux.NewRouter()
	marshal := protojson.MarshalOptions{EmitUnpopulated: true}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		resp, _ := s.HealthCheck(req.Context(), &v1.HealthCheckRequest{})
		writeProtoJSON(w, marshal, resp)
	}).Methods("GET")

	r.HandleFunc("/v1/flows/wide", func(w http.ResponseWriter, req *http.Request) {
		protocol, port, err := parsePortProtocol(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp, err := s.WideSearch(req.Context(), &v1.WideSearchRequest{
			Protocol:        protocol,
			DestinationPort: port,
		})
		if err != nil {
			writeStatusError(w, err)
			return
		}
		writeProtoJSON(w, marshal, resp)
	}).Methods("GET")

	r.HandleFunc("/v1/flows/deep", func(w http.ResponseWriter, req *http.Request) {
		protocol, port, err := parsePortProtocol(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		grpcReq := &v1.DeepSearchRequest{
			Protocol:        protocol,
			DestinationPort: port,
			SourceAddress:   req.URL.Query().Get("source_address"),
		}
		if raw := req.URL.Query().Get("not_before"); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				http.Error(w, "not_before must be RFC 3339", http.StatusBadRequest)
				return
			}
			grpcReq.NotBefore = timestamppb.New(t)
		}
		if raw := req.URL.Query().Get("not_after"); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				http.Error(w, "not_after must be RFC 3339", http.StatusBadRequest)
				return
			}
			grpcReq.NotAfter = timestamppb.New(t)
		}
		resp, err := s.DeepSearch(req.Context(), grpcReq)
		if err != nil {
			writeStatusError(w, err)
			return
		}
		writeProtoJSON(w, marshal, resp)
	}).Methods("GET")

	return r
}

func parsePortProtocol(req *http.Request) (uint32, uint32, error) {
	protocol, err := strconv.ParseUint(req.URL.Query().Get("protocol"), 10, 32)
	if err != nil {
		return 0, 0, err
	}
	port, err := strconv.ParseUint(req.URL.Query().Get("destination_port"), 10, 32)
	if err != nil {
		return 0, 0, err
	}
	return uint32(protocol), uint32(port), nil
}

func writeProtoJSON(w http.ResponseWriter, marshal protojson.MarshalOptions, msg proto.Message) {
	data, err := marshal.Marshal(msg)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func writeStatusError(w http.ResponseWriter, err error) {
	st, ok := status.FromError(err)
	if !ok {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	code := http.StatusInternalServerError
	if st.Code() == codes.InvalidArgument {
		code = http.StatusBadRequest
	}
	http.Error(w, st.Message(), code)
}
