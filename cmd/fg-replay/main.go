// fg-replay reads a capture file and replays the UDP datagrams in it to a
// running collector. Useful for feeding recorded exporter traffic through
// the full pipeline.
package main

import (
	"flag"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/steelegbr/flowgraph/internal/logging"
	"github.com/steelegbr/flowgraph/pkg/pcap"
)

func main() {
	filePath := flag.String("file", "", "path to the pcap file to replay")
	target := flag.String("target", "127.0.0.1:2055", "collector address to send datagrams to")
	srcPort := flag.Int("src-port", 0, "only replay datagrams sent from this UDP port (0 for all)")
	interval := flag.Duration("interval", 10*time.Millisecond, "delay between datagrams")
	flag.Parse()

	logger, err := logging.New(logging.FromEnv())
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if *filePath == "" {
		logger.Fatal("-file is required")
	}

	reader, err := pcap.NewReader(*filePath)
	if err != nil {
		logger.Fatal("failed to open capture", zap.String("file", *filePath), zap.Error(err))
	}
	defer reader.Close()

	conn, err := net.Dial("udp", *target)
	if err != nil {
		logger.Fatal("failed to dial collector", zap.String("target", *target), zap.Error(err))
	}
	defer conn.Close()

	datagrams := make(chan pcap.Datagram)
	go reader.ReadDatagrams(datagrams)

	sent := 0
	for dg := range datagrams {
		if *srcPort != 0 && int(dg.SrcPort) != *srcPort {
			continue
		}
		if _, err := conn.Write(dg.Payload); err != nil {
			logger.Fatal("send failed", zap.Error(err))
		}
		sent++
		time.Sleep(*interval)
	}

	logger.Info("replay complete", zap.Int("datagrams", sent), zap.String("target", *target))
}
