// Command inspect analyzes local image or PDF files for scan quality and
// prints the document verdict as JSON. The exit code is non-zero when the
// document fails the quality policy.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"os"

	"github.com/urfave/cli/v2"

	"go-doc-inspector/internal/analyzer"
	"go-doc-inspector/internal/capability"
	"go-doc-inspector/internal/config"
	"go-doc-inspector/internal/factory"
	"go-doc-inspector/internal/logger"
	"go-doc-inspector/internal/ocr"
	"go-doc-inspector/internal/render"
	"go-doc-inspector/internal/repository"
	"go-doc-inspector/pkg/models"
	"go-doc-inspector/pkg/validation"
)

func main() {
	app := &cli.App{
		Name:      "inspect",
		Usage:     "analyze document pages for blur and scan quality",
		ArgsUsage: "FILE [FILE...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "method",
				Value: "edge",
				Usage: "blur method: edge, variance, or both",
			},
			&cli.Float64Flag{
				Name:  "edge-threshold",
				Value: 0.5,
				Usage: "edge width threshold as percent of page width",
			},
			&cli.Float64Flag{
				Name:  "variance-threshold",
				Value: 120.0,
				Usage: "Laplacian variance blur threshold",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log per-step estimator details",
			},
			&cli.BoolFlag{
				Name:  "ocr",
				Usage: "extract text from raster pages with Tesseract",
			},
			&cli.StringFlag{
				Name:  "ocr-language",
				Value: "eng",
				Usage: "Tesseract language",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "sqlite file for persisting the verdict",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("at least one input file is required", 2)
	}

	analysisCfg := config.AnalysisConfig{
		Method:             models.Method(c.String("method")),
		EdgeWidthThreshold: c.Float64("edge-threshold"),
		VarianceThreshold:  c.Float64("variance-threshold"),
		Debug:              c.Bool("debug"),
	}
	if !analysisCfg.Method.Valid() {
		return cli.Exit(fmt.Sprintf("unknown method %q", c.String("method")), 2)
	}

	doc, payloads, err := openInputs(c.Args().Slice())
	if err != nil {
		return err
	}

	if c.Bool("ocr") {
		if err := attachOCRText(doc, payloads, c.String("ocr-language")); err != nil {
			return err
		}
	}

	analysis := analyzeDocument(c.Context, doc, analyzer.FromAnalysisConfig(analysisCfg))

	if dbPath := c.String("db"); dbPath != "" {
		repo, err := repository.NewSQLiteRepository(dbPath)
		if err != nil {
			return err
		}
		defer repo.Close()
		if _, err := repo.SaveDocumentAnalysis(c.Context, c.Args().First(), analysis); err != nil {
			return err
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(analysis); err != nil {
		return err
	}

	validator := validation.NewQualityValidator()
	issues := validator.ValidateDocumentResult(analysis, doc.PageCount())
	for _, msg := range validation.ConvertIssuesToMessages(issues) {
		fmt.Fprintln(os.Stderr, msg)
	}
	if !analysis.IsQualityGood {
		return cli.Exit("document quality is poor", 1)
	}
	return nil
}

// openInputs builds a document from the given files. A single PDF keeps its
// text layer; one or more images become one page each.
func openInputs(paths []string) (render.Document, [][]byte, error) {
	if len(paths) == 1 {
		data, err := os.ReadFile(paths[0])
		if err != nil {
			return nil, nil, err
		}
		doc, err := factory.OpenDocument(data)
		if err != nil {
			return nil, nil, err
		}
		return doc, [][]byte{data}, nil
	}

	images := make([]image.Image, 0, len(paths))
	payloads := make([][]byte, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, nil, fmt.Errorf("decode %s: %w", path, err)
		}
		images = append(images, img)
		payloads = append(payloads, data)
	}
	return render.NewImageDocument(images), payloads, nil
}

func attachOCRText(doc render.Document, payloads [][]byte, language string) error {
	setter, ok := doc.(interface {
		SetPageText(pageIndex int, items []models.TextItem) error
	})
	if !ok {
		// PDF inputs carry their own text layer
		return nil
	}

	extractor, err := ocr.NewExtractor(language)
	if err != nil {
		return err
	}
	defer extractor.Close()

	for pageIndex := 1; pageIndex <= doc.PageCount() && pageIndex <= len(payloads); pageIndex++ {
		items, err := extractor.ExtractTextItems(payloads[pageIndex-1])
		if err != nil {
			logger.WithPage(pageIndex).WithError(err).Warn("OCR extraction failed")
			continue
		}
		if err := setter.SetPageText(pageIndex, items); err != nil {
			return err
		}
	}
	return nil
}

func analyzeDocument(ctx context.Context, doc render.Document, cfg analyzer.Config) models.DocumentAnalysis {
	capCfg := config.CapabilityConfig{}
	loader := capability.NewVisionLoader(capability.NewLaplacianVision, capCfg.LoadTimeout, capCfg.PollInterval)

	edge := analyzer.NewEdgeWidthEstimator()
	combinator := analyzer.NewMethodCombinator(edge, analyzer.NewVarianceEstimator(loader, edge))
	pageAnalyzer := analyzer.NewMultiScalePageAnalyzer(
		combinator,
		analyzer.NewTextSharpnessEstimator(),
		analyzer.NewPageContentClassifier(),
		render.NewImageRenderer(),
		render.NewSurface(),
	)
	aggregator := analyzer.NewDocumentQualityAggregator()

	var (
		pages              []models.PageAnalysis
		totalTextLength    int
		anyPageWithoutText bool
	)
	for pageIndex := 1; pageIndex <= doc.PageCount(); pageIndex++ {
		if items, err := doc.PageText(pageIndex); err == nil {
			totalTextLength += analyzer.TrimmedTextLength(items)
			if len(items) == 0 {
				anyPageWithoutText = true
			}
		} else {
			anyPageWithoutText = true
		}

		page, err := pageAnalyzer.AnalyzePage(ctx, doc, pageIndex, cfg)
		if err != nil {
			logger.WithPage(pageIndex).WithError(err).Warn("Skipping page after analysis failure")
			continue
		}
		pages = append(pages, page)
	}

	return aggregator.Aggregate(pages, totalTextLength, anyPageWithoutText)
}
