// Command sidewalk-analyzer analyzes one or more street-level images for
// sidewalk presence and quality, printing the assessment as JSON.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	sidewalkanalyzer "github.com/safestreets/sidewalk-analyzer"
	"github.com/safestreets/sidewalk-analyzer/internal/utils"
	"github.com/safestreets/sidewalk-analyzer/pkg/assessment"
	"github.com/safestreets/sidewalk-analyzer/pkg/processing"
	"github.com/safestreets/sidewalk-analyzer/pkg/segformer"
)

func main() {
	var in, id, batchFile, serverURL, model, sendFmt string
	var sendSize, sendQ, timeout int

	flag.StringVar(&in, "in", "", "input image path or URL (jpg/png/webp)")
	flag.StringVar(&id, "id", "", "image id for the result (defaults to the input basename)")
	flag.StringVar(&batchFile, "batch", "", "file with one image URL per line (max 10 analyzed)")
	flag.StringVar(&serverURL, "url", "http://localhost:8500", "segmentation server URL")
	flag.StringVar(&model, "model", segformer.DefaultModel, "model name")
	flag.StringVar(&sendFmt, "sendfmt", "jpg", "format sent to the segmenter: jpg|png")
	flag.IntVar(&sendSize, "sendsize", 1024, "max long side sent to the segmenter (px), 0=original")
	flag.IntVar(&sendQ, "sendq", 85, "JPEG quality for the image sent to the segmenter (1-100)")
	flag.IntVar(&timeout, "timeout", 60, "segmentation request timeout in seconds")

	flag.Parse()
	if in == "" && batchFile == "" {
		log.Fatalf("usage: %s -in input.jpg|URL [-id image-id] [-url server_url] | -batch urls.txt",
			filepath.Base(os.Args[0]))
	}

	segmenter, err := segformer.NewClient(serverURL,
		segformer.WithModel(model),
		segformer.WithTimeout(time.Duration(timeout)*time.Second),
	)
	if err != nil {
		log.Fatalf("failed to create segmentation client: %v", err)
	}

	analyzer := sidewalkanalyzer.New(segmenter,
		sidewalkanalyzer.WithSendOptions(sendFmt, sendSize, sendQ),
	)

	ctx := context.Background()

	if batchFile != "" {
		requests, err := readBatchFile(batchFile)
		if err != nil {
			log.Fatal(err)
		}
		printJSON(analyzer.AnalyzeBatch(ctx, requests))
		return
	}

	if id == "" {
		id = strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	}

	if !strings.HasPrefix(in, "http://") && !strings.HasPrefix(in, "https://") && !utils.IsImageFile(in) {
		log.Fatalf("unsupported input file type: %s", in)
	}

	// Local files skip the fetch path entirely.
	processor := processing.NewProcessor()
	img, err := processor.LoadImageSmart(ctx, in)
	if err != nil {
		log.Fatal(err)
	}

	result, err := analyzer.AnalyzeImage(ctx, id, img)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}
	printJSON(result)
}

// readBatchFile parses one image URL per line; blank lines and #-comments
// are skipped. Image ids are derived from the URL basename.
func readBatchFile(path string) ([]sidewalkanalyzer.Request, error) {
	if !utils.FileExists(path) {
		return nil, fmt.Errorf("batch file not found: %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var requests []sidewalkanalyzer.Request
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		requests = append(requests, sidewalkanalyzer.Request{
			ImageID:  strings.TrimSuffix(filepath.Base(line), filepath.Ext(line)),
			ImageURL: line,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(requests) > assessment.MaxBatchSize {
		log.Printf("batch file has %d entries, analyzing the first %d", len(requests), assessment.MaxBatchSize)
	}
	return requests, nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}
