package client

import (
	"encoding/csv"
	"fmt"
	"github.com/benjmnxu/ngram/cmd/util"
	"github.com/benjmnxu/ngram/rpc/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"log"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for archive servers",
		Long:    "Runs publish, search and retrieve benchmarks against a running server. Every published test document stays in the archive.",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfWordPrefix    = "perfword"
	perfLargeDocKB    = 100
	perfNumThreads    = 10
	perfWordSpread    = 100
	perfSkip          = make([]string, 0)
	perfPublishedDocs []uint64
)

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. publish,search)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "large-doc-size"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How large the document for the publish-large test should be (in KB)"))
	key = "words"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different words to use for the tests"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfLargeDocKB = viper.GetInt("large-doc-size")
	perfWordSpread = max(viper.GetInt("words"), 1)
	perfNumThreads = viper.GetInt("threads")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func runPerf(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for archive servers")

	config, err := util.GetClientConfig()
	if err != nil {
		return err
	}

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(config.String())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Println()

	fmt.Println("starting tests...")

	// Create results map
	results := make(map[string]testing.BenchmarkResult)

	words := perfWords()

	publishResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("publish") {
			return
		}

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				if _, err := rpcArchive.Publish(words[counter%len(words)]); err != nil {
					log.Printf("(publish) - error publishing document: %v\n", err)
				}
				counter++
			}
		})
	})

	results["publish"] = publishResult
	printResult("publish", publishResult)

	publishLargeResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("publish-large") {
			return
		}

		// prepare large document
		doc := strings.Repeat(strings.Join(words, " ")+" ", perfLargeDocKB*1024/(len(words)*len(perfWordPrefix))+1)

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				if _, err := rpcArchive.Publish(doc); err != nil {
					log.Printf("(publish-large) - error publishing document: %v\n", err)
				}
			}
		})
	})

	results["publish-large"] = publishLargeResult
	printResult("publish-large", publishLargeResult)

	searchResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("search") {
			return
		}

		// make sure every word is indexed
		seedDocuments(words)

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				if _, err := rpcArchive.Search(words[counter%len(words)]); err != nil {
					log.Printf("(search) - error searching word: %v\n", err)
				}
				counter++
			}
		})
	})

	results["search"] = searchResult
	printResult("search", searchResult)

	retrieveResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("retrieve") {
			return
		}

		ids := seedDocuments(words)
		if len(ids) == 0 {
			return
		}

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				if _, _, err := rpcArchive.Retrieve(ids[counter%len(ids)]); err != nil {
					log.Printf("(retrieve) - error retrieving document: %v\n", err)
				}
				counter++
			}
		})
	})

	results["retrieve"] = retrieveResult
	printResult("retrieve", retrieveResult)

	mixedUsageResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("mixed") {
			return
		}

		ids := seedDocuments(words)
		if len(ids) == 0 {
			return
		}

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				var err error
				switch counter % 3 {
				case 0: // publish
					_, err = rpcArchive.Publish(words[counter%len(words)])
				case 1: // search
					_, err = rpcArchive.Search(words[counter%len(words)])
				case 2: // retrieve
					_, _, err = rpcArchive.Retrieve(ids[counter%len(ids)])
				}

				if err != nil {
					log.Printf("(mixed) - error performing operation (%d): %v\n", counter%3, err)
				}
				counter++
			}
		})
	})

	results["mixed"] = mixedUsageResult
	printResult("mixed", mixedUsageResult)

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results, config); err != nil {
			return fmt.Errorf("failed to export results to CSV: %w", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	return slices.Contains(perfSkip, test)
}

// perfWords creates the distinct words used as documents and search terms
func perfWords() []string {
	words := make([]string, perfWordSpread)
	for i := range words {
		words[i] = fmt.Sprintf("%s%d", perfWordPrefix, i)
	}
	return words
}

// seedDocuments publishes one document per word once and returns the ids of all seeded documents
func seedDocuments(words []string) []uint64 {
	if perfPublishedDocs != nil {
		return perfPublishedDocs
	}
	perfPublishedDocs = make([]uint64, 0, len(words))
	for _, word := range words {
		id, err := rpcArchive.Publish(word)
		if err != nil {
			log.Printf("(seed) - error publishing document: %v\n", err)
			continue
		}
		perfPublishedDocs = append(perfPublishedDocs, id)
	}
	return perfPublishedDocs
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result testing.BenchmarkResult) {
	if result.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	// Print the formatted result
	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\n", test, nsPerOp, time.Duration(nsPerOp), opsPerSec)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]testing.BenchmarkResult, config *common.ClientConfig) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "Skipped",
		"Endpoint", "Transport", "TimeoutSec",
		"Threads", "LargeDocSizeKB", "Words",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write test results
	for test, result := range results {
		var nsPerOp float64
		var opsPerSec float64
		var skipped string

		if result.NsPerOp() == 0 {
			skipped = "true"
		} else {
			skipped = "false"
			nsPerOp = math.Max(float64(result.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			skipped,
			config.Endpoint,
			config.Transport,
			strconv.Itoa(config.TimeoutSecond),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfLargeDocKB),
			strconv.Itoa(perfWordSpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %w", test, err)
		}
	}

	return nil
}
