package main

import (
	"fmt"
	"log"
	"os"

	"github.com/cadtrace/cadvec/internal/pipeline"
	"github.com/cadtrace/cadvec/internal/raster"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("cadvec %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		}
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if os.Getenv("CADVEC_LOG_LEVEL") == "debug" {
		log.Printf("cadvec v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("conversion error: %v", err)
	}
}

func printUsage() {
	fmt.Println("cadvec - CAD raster-to-vector converter")
	fmt.Println()
	fmt.Println("Usage: cadvec <input-image> [-o output-file]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println("  -o FILE          Write the vector document to FILE instead of stdout")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  CADVEC_LOG_LEVEL=debug    Enable debug logging")
}

func run(args []string) error {
	if len(args) == 0 {
		printUsage()
		return fmt.Errorf("missing input image path")
	}

	var inputPath, outputPath string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-o":
			if i+1 >= len(args) {
				return fmt.Errorf("-o requires a file path argument")
			}
			i++
			outputPath = args[i]
		default:
			if inputPath == "" {
				inputPath = args[i]
			}
		}
	}
	if inputPath == "" {
		return fmt.Errorf("missing input image path")
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}

	img, format, err := raster.Decode(data)
	if err != nil {
		return fmt.Errorf("decode input image: %w", err)
	}
	if os.Getenv("CADVEC_LOG_LEVEL") == "debug" {
		log.Printf("decoded %s image: %dx%d", format, img.Width, img.Height)
	}

	result, err := pipeline.Convert(img, pipeline.Defaults())
	if err != nil {
		return fmt.Errorf("convert image: %w", err)
	}

	if outputPath == "" {
		fmt.Print(result.Document)
		return nil
	}
	if err := os.WriteFile(outputPath, []byte(result.Document), 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}
