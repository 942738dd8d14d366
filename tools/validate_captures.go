//go:build ignore

// Replays overdrive-bridge capture files through the message decoder.
//
//	go run tools/validate_captures.go captures/
//	go run tools/validate_captures.go captures/capture-20260301-101500.jsonl
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/overdrivekit/overdrive/internal/protocol"
	"github.com/overdrivekit/overdrive/internal/server"
	"github.com/overdrivekit/overdrive/internal/wire"
)

// Statistics tracks decode results
type Statistics struct {
	TotalFiles     int
	TotalFrames    int
	Skipped        int // text frames (command requests)
	DecodeSuccess  int
	DecodeFailure  int
	MessageTypes   map[protocol.MessageType]int
	FrameLengths   map[int]int
	FailedMessages []FailedMessage
}

// FailedMessage stores information about a decode failure
type FailedMessage struct {
	File       string
	LineNumber int
	MessageNum int
	PayloadHex string
	Error      string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: validate_captures <directory-or-file>")
		os.Exit(1)
	}

	files, err := captureFiles(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	stats := Statistics{
		MessageTypes: make(map[protocol.MessageType]int),
		FrameLengths: make(map[int]int),
	}

	fmt.Printf("=== Overdrive Capture Validator ===\n")
	fmt.Printf("Files to process: %d\n\n", len(files))

	for _, file := range files {
		processFile(file, &stats)
	}

	printStatistics(&stats)
	if stats.DecodeFailure > 0 {
		os.Exit(1)
	}
}

func captureFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("accessing path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	files, err := filepath.Glob(filepath.Join(path, "*.jsonl"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no JSONL files found in %s", path)
	}
	return files, nil
}

func processFile(filename string, stats *Statistics) {
	stats.TotalFiles++

	f, err := os.Open(filename)
	if err != nil {
		fmt.Printf("Error reading file %s: %v\n", filename, err)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec server.CaptureRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			fmt.Printf("Error parsing JSON in %s line %d: %v\n", filename, lineNum, err)
			continue
		}
		stats.TotalFrames++

		if rec.FrameType != "binary" {
			stats.Skipped++
			continue
		}

		fail := func(err error) {
			stats.DecodeFailure++
			stats.FailedMessages = append(stats.FailedMessages, FailedMessage{
				File:       filename,
				LineNumber: lineNum,
				MessageNum: rec.MessageNum,
				PayloadHex: rec.PayloadHex,
				Error:      err.Error(),
			})
		}

		payload, err := rec.Payload()
		if err != nil {
			fail(fmt.Errorf("hex decode error: %w", err))
			continue
		}
		stats.FrameLengths[len(payload)]++

		order, err := wire.ParseEndian(rec.ByteOrder)
		if err != nil {
			order = wire.LittleEndian
		}

		msg, err := protocol.DecodeMessage(payload, order)
		if err != nil {
			fail(err)
			continue
		}
		if recorded, ok := rec.DecodedType(); ok && recorded != msg.Type() {
			fail(fmt.Errorf("decoded as %s, bridge recorded %s", msg.Type(), recorded))
			continue
		}
		stats.DecodeSuccess++
		stats.MessageTypes[msg.Type()]++
	}
	if err := scanner.Err(); err != nil {
		fmt.Printf("Error reading file %s: %v\n", filename, err)
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func printStatistics(stats *Statistics) {
	decoded := stats.TotalFrames - stats.Skipped

	fmt.Printf("\n========================================\n")
	fmt.Printf("VALIDATION RESULTS\n")
	fmt.Printf("========================================\n\n")

	fmt.Printf("Files Processed:    %d\n", stats.TotalFiles)
	fmt.Printf("Total Frames:       %d\n", stats.TotalFrames)
	fmt.Printf("Command Frames:     %d (skipped)\n", stats.Skipped)
	fmt.Printf("Decode Success:     %d (%.2f%%)\n", stats.DecodeSuccess, percent(stats.DecodeSuccess, decoded))
	fmt.Printf("Decode Failure:     %d (%.2f%%)\n", stats.DecodeFailure, percent(stats.DecodeFailure, decoded))

	fmt.Printf("\n----------------------------------------\n")
	fmt.Printf("MESSAGE TYPE DISTRIBUTION\n")
	fmt.Printf("----------------------------------------\n")
	types := make([]protocol.MessageType, 0, len(stats.MessageTypes))
	for t := range stats.MessageTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		count := stats.MessageTypes[t]
		fmt.Printf("Type 0x%02x (%s): %d (%.2f%%)\n", uint8(t), t, count, percent(count, stats.DecodeSuccess))
	}

	fmt.Printf("\n----------------------------------------\n")
	fmt.Printf("FRAME LENGTH DISTRIBUTION\n")
	fmt.Printf("----------------------------------------\n")
	lengths := make([]int, 0, len(stats.FrameLengths))
	for l := range stats.FrameLengths {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)
	for _, l := range lengths {
		fmt.Printf("%2d bytes: %d frames\n", l, stats.FrameLengths[l])
	}

	if len(stats.FailedMessages) > 0 {
		fmt.Printf("\n----------------------------------------\n")
		fmt.Printf("DECODE FAILURES (%d total)\n", len(stats.FailedMessages))
		fmt.Printf("----------------------------------------\n")

		maxShow := 10
		if len(stats.FailedMessages) > maxShow {
			fmt.Printf("(Showing first %d of %d failures)\n", maxShow, len(stats.FailedMessages))
		}
		for i, failed := range stats.FailedMessages {
			if i >= maxShow {
				break
			}
			fmt.Printf("\nFailure #%d:\n", i+1)
			fmt.Printf("  File: %s (line %d, msg #%d)\n", failed.File, failed.LineNumber, failed.MessageNum)
			fmt.Printf("  Error: %s\n", failed.Error)
			fmt.Printf("  Payload: %s\n", failed.PayloadHex)
		}
	}

	fmt.Printf("\n========================================\n")
	if stats.DecodeFailure == 0 {
		fmt.Printf("✅ SUCCESS: All vehicle frames decoded\n")
	} else {
		fmt.Printf("⚠️  ISSUES FOUND: %d frames failed to decode\n", stats.DecodeFailure)
	}
	fmt.Printf("========================================\n")
}
