// Command-line client for the flowgraph query API. Handy for poking at a
// running fg-api instance without a gRPC tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/timestamppb"

	v1 "github.com/steelegbr/flowgraph/api/gen/v1"
)

func main() {
	serverAddr := flag.String("addr", "localhost:50051", "The gRPC server address")
	mode := flag.String("mode", "wide", "Query mode: 'health', 'wide' or 'deep'")
	protocol := flag.Uint("protocol", 6, "IP protocol number")
	port := flag.Uint("port", 22, "Destination port")
	source := flag.String("source", "", "Source address for deep mode")
	notBeforeStr := flag.String("not-before", "", "Window start in RFC3339 format (deep mode)")
	notAfterStr := flag.String("not-after", "", "Window end in RFC3339 format (deep mode)")
	flag.Parse()

	conn, err := grpc.NewClient(*serverAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("did not connect: %v", err)
	}
	defer conn.Close()

	client := v1.NewFlowQueryServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	switch *mode {
	case "health":
		resp, err := client.HealthCheck(ctx, &v1.HealthCheckRequest{})
		if err != nil {
			log.Fatalf("HealthCheck failed: %v", err)
		}
		fmt.Printf("status: %s\n", resp.Status)
	case "wide":
		resp, err := client.WideSearch(ctx, &v1.WideSearchRequest{
			Protocol:        uint32(*protocol),
			DestinationPort: uint32(*port),
		})
		if err != nil {
			log.Fatalf("WideSearch failed: %v", err)
		}
		printFlows(resp)
	case "deep":
		if *source == "" {
			log.Fatal("Error: -source flag is required for deep mode")
		}
		req := &v1.DeepSearchRequest{
			Protocol:        uint32(*protocol),
			DestinationPort: uint32(*port),
			SourceAddress:   *source,
		}
		if *notBeforeStr != "" {
			t, err := time.Parse(time.RFC3339, *notBeforeStr)
			if err != nil {
				log.Fatalf("Invalid -not-before: %v", err)
			}
			req.NotBefore = timestamppb.New(t)
		}
		if *notAfterStr != "" {
			t, err := time.Parse(time.RFC3339, *notAfterStr)
			if err != nil {
				log.Fatalf("Invalid -not-after: %v", err)
			}
			req.NotAfter = timestamppb.New(t)
		}
		resp, err := client.DeepSearch(ctx, req)
		if err != nil {
			log.Fatalf("DeepSearch failed: %v", err)
		}
		printFlows(resp)
	default:
		log.Fatalf("Unknown mode: %s. Use 'health', 'wide' or 'deep'", *mode)
	}
}

func printFlows(resp *v1.SearchResponse) {
	if len(resp.Flows) == 0 {
		fmt.Println("no flows found")
		return
	}
	for _, f := range resp.Flows {
		fmt.Printf("%s  %s:%d -> %s:%d proto %d  %s .. %s\n",
			f.Id,
			f.SourceAddress, f.SourcePort,
			f.DestinationAddress, f.DestinationPort,
			f.Protocol,
			f.StartTime.AsTime().Format(time.RFC3339),
			f.EndTime.AsTime().Format(time.RFC3339),
		)
	}
}
