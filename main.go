package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mcudoc/refdoc/internal/classify"
	"github.com/mcudoc/refdoc/internal/docast"
	"github.com/mcudoc/refdoc/internal/geom"
	"github.com/mcudoc/refdoc/internal/htmlout"
	"github.com/mcudoc/refdoc/internal/logging"
	"github.com/mcudoc/refdoc/internal/normalize"
	"github.com/mcudoc/refdoc/internal/pdfmodel"
	"github.com/mcudoc/refdoc/internal/watch"
)

// intList is a repeatable -page flag, collecting one 0-based page number
// per occurrence.
type intList []int

func (l *intList) String() string { return fmt.Sprint([]int(*l)) }
func (l *intList) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("page %q: %w", s, err)
	}
	*l = append(*l, n-1)
	return nil
}

// rangeList is a repeatable -range flag, each occurrence an "A:B" 1-based
// inclusive page range,
type rangeList [][2]int

func (l *rangeList) String() string { return fmt.Sprint([][2]int(*l)) }
func (l *rangeList) Set(s string) error {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("range %q must be A:B", s)
	}
	a, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("range %q: %w", s, err)
	}
	b, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("range %q: %w", s, err)
	}
	*l = append(*l, [2]int{a - 1, b - 1})
	return nil
}

// verbs bundles the per-pipeline-stage emit flags names.
type verbs struct {
	html, pdfOverlay, ast, tree, tags, chapters, all bool
	pages intList
	ranges rangeList
}

func (v verbs) anyEmit() bool {
	return v.html || v.pdfOverlay || v.ast || v.tree || v.tags
}

func main() {
	var input, outputDir, configPath, logLevel string
	var watchMode bool
	var v verbs

	flag.StringVar(&input, "i", "", "Input PDF file or directory")
	flag.StringVar(&input, "input", "", "Input PDF file or directory")
	flag.StringVar(&outputDir, "o", "", "Output directory")
	flag.StringVar(&outputDir, "output", "", "Output directory")
	flag.StringVar(&configPath, "config", "config.toml", "Path to config file (TOML)")
	flag.BoolVar(&watchMode, "watch", false, "Run as daemon, watching [watch].location from config")
	flag.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, or warn")
	flag.Var(&v.pages, "page", "Convert only this 1-based page (repeatable)")
	flag.Var(&v.ranges, "range", "Convert only this 1-based A:B page range (repeatable)")
	flag.BoolVar(&v.html, "html", false, "Emit HTML output")
	flag.BoolVar(&v.pdfOverlay, "pdf", false, "Emit an overlay-annotated debug PDF")
	flag.BoolVar(&v.ast, "ast", false, "Dump the pre-normalization AST to stdout")
	flag.BoolVar(&v.tree, "tree", false, "Dump the normalized tree to stdout")
	flag.BoolVar(&v.tags, "tags", false, "Dump the PDF structure tag tree to stdout")
	flag.BoolVar(&v.chapters, "chapters", false, "Split HTML output into one file per chapter")
	flag.BoolVar(&v.all, "all", false, "Include boilerplate pages (contents/index) that are otherwise skipped")
	flag.Parse()

	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if !v.anyEmit() {
		v.html = true
	}

	if watchMode {
		if cfg.Watch.Location == "" {
			fmt.Fprintln(os.Stderr, "Error: [watch] location must be set in config for --watch mode")
			os.Exit(1)
		}
		if err := runWatchMode(cfg, v, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if input == "" || outputDir == "" {
		fmt.Fprintln(os.Stderr, "Usage: refdoc -i <input.pdf|dir> -o <outputDir> [--html] [--pdf] [--ast] [--tree] [--tags] [--chapters] [--all]")
		fmt.Fprintln(os.Stderr, " refdoc --watch [--config config.toml]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	info, err := os.Stat(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: input path '%s' does not exist.\n", input)
		os.Exit(1)
	}

	if info.IsDir() {
		err = processDirectory(input, outputDir, cfg, v, logger)
	} else {
		err = processSingleFile(input, outputDir, cfg, v, logger)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runWatchMode(cfg *Config, v verbs, logger logging.Logger) error {
	convert := func(path string) error {
		if !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return nil
		}
		return convertDocument(path, cfg.Output.Dir, cfg, v, logger)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	fmt.Printf("Watching '%s' for PDF changes...\n", cfg.Watch.Location)
	return watch.Run(ctx, []string{cfg.Watch.Location}, cfg.Watch.PollDuration(), convert)
}

func processSingleFile(inputFile, outputDir string, cfg *Config, v verbs, logger logging.Logger) error {
	if !strings.EqualFold(filepath.Ext(inputFile), ".pdf") {
		return fmt.Errorf("input file '%s' must have a .pdf extension", inputFile)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}
	if isUpToDate(inputFile, outputDir) {
		fmt.Printf("'%s' is already up-to-date. Skipping.\n", inputFile)
		return nil
	}
	fmt.Println("Converting...")
	start := time.Now()
	if err := convertDocument(inputFile, outputDir, cfg, v, logger); err != nil {
		return err
	}
	fmt.Printf("Successfully converted '%s' into '%s' in %.2fs\n", inputFile, outputDir, time.Since(start).Seconds())
	return nil
}

type convJob struct {
	input, outputDir string
}

func processDirectory(inputDir, outputRoot string, cfg *Config, v verbs, logger logging.Logger) error {
	fmt.Printf("Scanning for .pdf files in '%s'...\n", inputDir)

	var jobs []convJob
	var numSkipped int
	err := filepath.WalkDir(inputDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return nil
		}
		rel, _ := filepath.Rel(inputDir, path)
		out := filepath.Join(outputRoot, strings.TrimSuffix(rel, filepath.Ext(rel)))
		if isUpToDate(path, out) {
			numSkipped++
		} else {
			jobs = append(jobs, convJob{input: path, outputDir: out})
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(jobs) == 0 && numSkipped == 0 {
		fmt.Println("No .pdf files found. Exiting.")
		return nil
	}
	if len(jobs) == 0 {
		fmt.Printf("All %d files are already up-to-date. Nothing to do.\n", numSkipped)
		return nil
	}

	fmt.Printf("Found %d modified files to convert (%d up-to-date, skipped).\n", len(jobs), numSkipped)
	start := time.Now()

	var completed atomic.Int64
	var wg sync.WaitGroup
	total := int64(len(jobs))
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	errCh := make(chan string, len(jobs))

	for _, j := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(j convJob) {
			defer func() { <-sem; wg.Done() }()
			if err := os.MkdirAll(j.outputDir, 0755); err != nil {
				errCh <- fmt.Sprintf("failed to create directory '%s': %v", j.outputDir, err)
				return
			}
			if err := convertDocument(j.input, j.outputDir, cfg, v, logger); err != nil {
				errCh <- fmt.Sprintf("failed to convert '%s': %v", j.input, err)
			}
			n := completed.Add(1)
			fmt.Printf("\r[%d/%d] Converted %s", n, total, filepath.Base(j.input))
		}(j)
	}
	wg.Wait()
	close(errCh)

	fmt.Println()
	for msg := range errCh {
		fmt.Fprintln(os.Stderr, msg)
	}
	fmt.Printf("Converted %d files in %.2fs\n", len(jobs), time.Since(start).Seconds())
	return nil
}

func isUpToDate(input, outputDir string) bool {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	marker := filepath.Join(outputDir, base+".html")
	outInfo, err := os.Stat(marker)
	if err != nil {
		return false
	}
	inInfo, err := os.Stat(input)
	if err != nil {
		return false
	}
	return !outInfo.ModTime().Before(inInfo.ModTime())
}

// convertDocument runs the full reconstruction pipeline for one PDF,
// emitting whatever v selects into outputDir.
func convertDocument(inputPath, outputDir string, cfg *Config, v verbs, logger logging.Logger) error {
	provider, err := pdfmodel.OpenPDFCPUProvider(inputPath)
	if err != nil {
		return err
	}
	doc := pdfmodel.NewDocument(provider)
	defer doc.Close()

	tmpl, ok := selectTemplate(doc.Producer(), cfg.Template.Override)
	if !ok {
		logger.Warning(inputPath, 0, geom.Rectangle{}, "unrecognized PDF producer %q, defaulting to %s template", doc.Producer(), tmpl.Name())
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	pageIndices := selectedPageIndices(v, doc.PageCount())

	var pagesRoots [][]*docast.Node
	boxesByPage := map[int][]pdfmodel.BoxAnnotation{}

	for _, idx := range pageIndices {
		page, err := doc.Page(idx)
		if err != nil {
			logger.Error(inputPath, "pdfmodel", "page load", err)
			continue
		}

		if !v.all && isBoilerplatePage(page, tmpl) {
			continue
		}

		roots := docast.BuildPage(page, tmpl, idx+1, page)
		pagesRoots = append(pagesRoots, roots)

		if v.pdfOverlay {
			collectBoxes(roots, idx+1, boxesByPage)
		}
	}

	document := docast.Assemble(pagesRoots)
	document = docast.ApplyPatches(document, cfg.Patches)

	if v.ast {
		if err := writeOrPrint(outputDir, base+".ast.txt", docast.Dump(document)); err != nil {
			return err
		}
	}

	document = normalize.Normalize(document)

	if v.tree {
		if err := writeOrPrint(outputDir, base+".tree.txt", docast.Dump(document)); err != nil {
			return err
		}
	}

	if v.tags {
		var b strings.Builder
		for _, idx := range pageIndices {
			page, err := doc.Page(idx)
			if err != nil {
				continue
			}
			for _, s := range page.Structures() {
				b.WriteString(s.Describe())
			}
		}
		if err := writeOrPrint(outputDir, base+".tags.txt", b.String()); err != nil {
			return err
		}
	}

	if v.chapters {
		document = normalize.Chapters(document)
	}

	if v.html {
		if err := writeHTML(document, outputDir, base, cfg.Output.StylesheetHref, v.chapters); err != nil {
			return err
		}
	}

	if v.pdfOverlay {
		outPath := filepath.Join(outputDir, base+".debug.pdf")
		if err := pdfmodel.WriteDebugPDF(inputPath, outPath, boxesByPage); err != nil {
			return err
		}
	}

	return nil
}

func selectTemplate(producer, override string) (classify.Template, bool) {
	switch override {
	case "black_white":
		return classify.NewBlackWhite(), true
	case "blue_gray":
		return classify.NewBlueGray(), true
	}
	return classify.Select(producer)
}

func selectedPageIndices(v verbs, pageCount int) []int {
	set := map[int]bool{}
	for _, p := range v.pages {
		set[p] = true
	}
	for _, r := range v.ranges {
		for i := r[0]; i <= r[1]; i++ {
			set[i] = true
		}
	}
	if len(set) == 0 {
		out := make([]int, pageCount)
		for i := range out {
			out[i] = i
		}
		return out
	}
	out := make([]int, 0, len(set))
	for i := 0; i < pageCount; i++ {
		if set[i] {
			out = append(out, i)
		}
	}
	return out
}

func isBoilerplatePage(page *pdfmodel.Page, tmpl classify.Template) bool {
	for _, area := range tmpl.Areas(page.Width(), page.Height(), page.Rotation()) {
		if area.ID != "top" || len(area.Content) == 0 {
			continue
		}
		if classify.IsBoilerplate(page.TextInArea(area.Content[0])) {
			return true
		}
	}
	return false
}

func collectBoxes(roots []*docast.Node, pageNumber int, boxesByPage map[int][]pdfmodel.BoxAnnotation) {
	for _, root := range roots {
		root.PreOrder(func(n *docast.Node) {
			switch n.Kind {
			case docast.KindTable:
				bbox := n.BBox
				if n.Table != nil {
					bbox = n.Table.BBox
				}
				boxesByPage[pageNumber] = append(boxesByPage[pageNumber], pdfmodel.BoxAnnotation{
					BBox: bbox, Color: pdfmodel.ColorTable, Label: n.AttrString("table_type"),
				})
			case docast.KindFigure:
				boxesByPage[pageNumber] = append(boxesByPage[pageNumber], pdfmodel.BoxAnnotation{
					BBox: n.BBox, Color: pdfmodel.ColorFigure, Label: "figure",
				})
			}
		})
	}
}

func writeOrPrint(outputDir, filename, content string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outputDir, filename), []byte(content), 0644)
}

func writeHTML(document *docast.Node, outputDir, base, stylesheetHref string, chapters bool) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}
	if !chapters {
		root := htmlout.FormatDocument(document, stylesheetHref)
		return htmlout.WriteFile(root, filepath.Join(outputDir, base+".html"))
	}
	for _, chapter := range document.Children {
		if chapter.Kind != docast.KindChapter {
			continue
		}
		root := htmlout.FormatDocument(chapter, stylesheetHref)
		filename := chapter.AttrString("filename")
		if filename == "" {
			filename = base
		}
		if err := htmlout.WriteFile(root, filepath.Join(outputDir, filename+".html")); err != nil {
			return err
		}
	}
	return nil
}
