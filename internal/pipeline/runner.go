package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"mediapress/internal/discovery"
	"mediapress/internal/encoding"
	"mediapress/internal/fileutil"
	"mediapress/internal/logging"
	"mediapress/internal/media"
	"mediapress/internal/output"
	"mediapress/internal/services"
)

type videoEncoder interface {
	Encode(ctx context.Context, req encoding.VideoRequest) (encoding.Stats, error)
}

type imageEncoder interface {
	EncodeJPEG(ctx context.Context, req encoding.ImageRequest) (encoding.Stats, error)
	OptimizePNG(ctx context.Context, req encoding.PNGRequest) (encoding.Stats, error)
}

// Runner drives a batch: discover, classify, map, skip-check, encode.
type Runner struct {
	cfg      RunConfig
	fs       afero.Fs
	video    videoEncoder
	images   imageEncoder
	logger   *slog.Logger
	progress func(Progress)
}

// Progress is reported after each candidate is handled.
type Progress struct {
	Done  int
	Total int
	File  string
	// Outcome of the file just handled.
	Outcome Outcome
}

// Option customizes a Runner.
type Option func(*Runner)

// WithFs replaces the filesystem used for discovery, output directories and
// skip checks. Encoders always write through the operating system.
func WithFs(fsys afero.Fs) Option {
	return func(r *Runner) {
		if fsys != nil {
			r.fs = fsys
		}
	}
}

// WithProgress registers fn to be called after each candidate.
func WithProgress(fn func(Progress)) Option {
	return func(r *Runner) {
		r.progress = fn
	}
}

// NewRunner wires a Runner for cfg. tools backs every video subprocess call.
func NewRunner(cfg RunConfig, tools encoding.Toolchain, logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		cfg:    cfg,
		fs:     afero.NewOsFs(),
		video:  encoding.NewVideoEncoder(tools, logger),
		images: encoding.NewImageEncoder(logger),
		logger: logging.NewComponentLogger(logger, "pipeline"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Plan is the resolved work list for a batch.
type Plan struct {
	Root       string
	OutputRoot string
	Candidates []discovery.InputFile
	// Rejected holds explicit inputs that could not be resolved.
	Rejected []FileResult
}

// HasVideo reports whether any candidate is a video.
func (p Plan) HasVideo() bool {
	for _, c := range p.Candidates {
		if c.Kind() == media.Video {
			return true
		}
	}
	return false
}

// Run plans and executes a batch.
func (r *Runner) Run(ctx context.Context, inputs []string) (Summary, error) {
	plan, err := r.Plan(ctx, inputs)
	if err != nil {
		return Summary{}, err
	}
	return r.Execute(ctx, plan), nil
}

// Plan resolves the roots and enumerates inputs, or every file under the root
// when inputs is empty. The output root is created so it can be canonicalized
// and pruned from discovery.
func (r *Runner) Plan(ctx context.Context, inputs []string) (Plan, error) {
	rootArg := r.cfg.Root
	if rootArg == "" {
		rootArg = "."
	}
	root, err := fileutil.ResolveAbsolute(rootArg)
	if err != nil {
		return Plan{}, err
	}
	outputRoot, err := r.prepareOutputRoot()
	if err != nil {
		return Plan{}, err
	}

	candidates, rejected, err := r.collect(ctx, r.logger, root, outputRoot, inputs)
	if err != nil {
		return Plan{}, err
	}
	return Plan{Root: root, OutputRoot: outputRoot, Candidates: candidates, Rejected: rejected}, nil
}

// Execute processes every candidate in plan. Per-file failures are recorded in
// the Summary and do not stop the batch. Cancellation stops the batch between
// files and marks the Summary interrupted.
func (r *Runner) Execute(ctx context.Context, plan Plan) Summary {
	start := time.Now()
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := r.logger.With(logging.String(logging.FieldRunID, runID))

	summary := Summary{RunID: runID, Root: plan.Root, OutputRoot: plan.OutputRoot}
	mapper := output.NewMapper(r.fs, plan.OutputRoot)

	logger.Info("batch starting",
		logging.String("root", plan.Root),
		logging.String("output", plan.OutputRoot),
		logging.Bool("force", r.cfg.Force),
		logging.Int("candidates", len(plan.Candidates)),
	)

	for _, rejected := range plan.Rejected {
		summary.record(rejected)
	}

	for i, file := range plan.Candidates {
		if ctx.Err() != nil {
			summary.Interrupted = true
			logging.WarnWithContext(logger, "batch interrupted", "batch_interrupted",
				logging.Int("processed", i),
				logging.Int("remaining", len(plan.Candidates)-i),
				logging.String(logging.FieldErrorHint, "rerun to continue; finished files are skipped"),
				logging.String(logging.FieldImpact, "remaining files were not compressed"),
			)
			break
		}
		var result FileResult
		if insideOutput(plan, file) {
			result = FileResult{RelPath: file.RelPath, Kind: file.Kind(), Outcome: OutcomeSkipped, Reason: reasonInsideOutput}
		} else {
			result = r.processFile(services.WithFile(ctx, file.RelPath), logger, mapper, file)
		}
		if result.Outcome == OutcomeFailed && ctx.Err() != nil {
			// The failure came from cancellation, not from the file.
			summary.Interrupted = true
		}
		summary.record(result)
		if r.progress != nil {
			r.progress(Progress{Done: i + 1, Total: len(plan.Candidates), File: file.RelPath, Outcome: result.Outcome})
		}
	}

	summary.Elapsed = time.Since(start)
	logger.Info("batch complete",
		logging.Int("total", summary.Stats.Total),
		logging.Int("encoded", summary.Stats.Encoded),
		logging.Int("skipped", summary.Stats.Skipped),
		logging.Int("unsupported", summary.Stats.Unsupported),
		logging.Int("failed", summary.Stats.Failed),
		logging.Bytes("saved", summary.Stats.SpaceSaved()),
		logging.Duration("elapsed", summary.Elapsed),
	)
	return summary
}

// PreviewEntry is the planned handling of one candidate.
type PreviewEntry struct {
	RelPath string
	AbsPath string
	Kind    media.Kind
	Output  string
	// Action is "encode", "skip", "unsupported", or "error".
	Action string
	Reason string
	Err    error
}

// Preview reports what Execute would do with each candidate without encoding.
// Output directories are created through the Runner's filesystem, so callers
// wanting a side-effect free preview should supply a copy-on-write Fs.
func (r *Runner) Preview(plan Plan) []PreviewEntry {
	mapper := output.NewMapper(r.fs, plan.OutputRoot)
	entries := make([]PreviewEntry, 0, len(plan.Candidates)+len(plan.Rejected))
	for _, rejected := range plan.Rejected {
		entries = append(entries, PreviewEntry{RelPath: rejected.RelPath, Kind: rejected.Kind, Action: "error", Err: rejected.Err})
	}
	for _, file := range plan.Candidates {
		entry := PreviewEntry{RelPath: file.RelPath, AbsPath: file.AbsPath, Kind: file.Kind()}
		switch {
		case insideOutput(plan, file):
			entry.Action, entry.Reason = "skip", reasonInsideOutput
		case !entry.Kind.Supported():
			entry.Action = "unsupported"
		default:
			target, err := mapper.Map(file.RelPath, entry.Kind)
			if err != nil {
				entry.Action, entry.Err = "error", err
				break
			}
			entry.Output = target.Path
			entry.Action = "encode"
			if output.ShouldSkip(r.fs, target, r.cfg.Force) {
				entry.Action = "skip"
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

const reasonInsideOutput = "inside output directory"

// insideOutput reports whether file, with symlinks evaluated, lives in the
// output tree. Such files are never re-encoded.
func insideOutput(plan Plan, file discovery.InputFile) bool {
	return fileutil.WithinResolved(plan.OutputRoot, file.AbsPath)
}

func (r *Runner) prepareOutputRoot() (string, error) {
	outputDir := r.cfg.OutputDir
	if outputDir == "" {
		return "", services.Wrap(services.ErrConfiguration, "pipeline", "output root", "output directory is empty", nil)
	}
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return "", services.Wrap(services.ErrPath, "pipeline", "output root", outputDir, err)
	}
	if err := output.NewMapper(r.fs, abs).EnsureRoot(); err != nil {
		return "", err
	}
	return fileutil.ResolvePending(abs)
}

func (r *Runner) collect(ctx context.Context, logger *slog.Logger, root, outputRoot string, inputs []string) ([]discovery.InputFile, []FileResult, error) {
	if len(inputs) == 0 {
		files, err := discovery.Walk(ctx, r.fs, root, discovery.Options{
			Exclude: []string{outputRoot},
			Logger:  logger,
		})
		return files, nil, err
	}

	var (
		files    []discovery.InputFile
		failures []FileResult
	)
	for _, input := range inputs {
		file, err := discovery.FromPath(root, input)
		if err != nil {
			logging.ErrorWithContext(logger, "input rejected", "input_rejected",
				logging.String(logging.FieldFile, input),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "name files that exist under the input root"),
			)
			failures = append(failures, FileResult{RelPath: input, Kind: media.Classify(media.Ext(input)), Outcome: OutcomeFailed, Err: err})
			continue
		}
		files = append(files, file)
	}
	return files, failures, nil
}

func (r *Runner) processFile(ctx context.Context, batchLogger *slog.Logger, mapper *output.Mapper, file discovery.InputFile) FileResult {
	logger := logging.WithContext(ctx, batchLogger)
	result := FileResult{RelPath: file.RelPath, Kind: file.Kind()}

	if !result.Kind.Supported() {
		logger.Debug("unsupported file", logging.String("ext", file.Ext))
		result.Outcome = OutcomeUnsupported
		return result
	}

	target, err := mapper.Map(file.RelPath, result.Kind)
	if err != nil {
		return r.fail(logger, result, err)
	}
	result.Output = target.Path

	if output.ShouldSkip(r.fs, target, r.cfg.Force) {
		logging.LogDecision(logger, "skip decision",
			logging.Decision{Type: "output_exists", Result: "skip", Reason: "target already exists"},
			logging.String("output", target.Path),
		)
		result.Outcome = OutcomeSkipped
		result.Reason = "output exists"
		return result
	}

	ctx = services.WithStage(ctx, "encode")
	var stats encoding.Stats
	switch result.Kind {
	case media.RGBImage:
		stats, err = r.images.EncodeJPEG(ctx, encoding.ImageRequest{Input: file.AbsPath, Output: target.Path, Quality: r.cfg.Quality})
	case media.RGBAImage:
		stats, err = r.images.OptimizePNG(ctx, encoding.PNGRequest{Input: file.AbsPath, Output: target.Path, Preset: r.cfg.PNGPreset, Force: r.cfg.PNGForce})
	case media.Video:
		stats, err = r.video.Encode(ctx, encoding.VideoRequest{Input: file.AbsPath, Output: target.Path, Config: r.cfg.Video})
	default:
		err = services.Wrap(services.ErrUnsupportedFormat, "pipeline", "dispatch", fmt.Sprintf("no encoder for %s", result.Kind), nil)
	}
	if err != nil {
		return r.fail(logger, result, err)
	}

	result.Outcome = OutcomeEncoded
	result.Stats = stats
	logger.Info("file compressed",
		logging.String("kind", result.Kind.String()),
		logging.Bytes("original", stats.OriginalSize),
		logging.Bytes("compressed", stats.CompressedSize),
		logging.String("reduction", fmt.Sprintf("%.1f%%", stats.ReductionPercent)),
		logging.Duration("elapsed", stats.Elapsed),
	)
	return result
}

func (r *Runner) fail(logger *slog.Logger, result FileResult, err error) FileResult {
	logging.ErrorWithContext(logger, "file failed", "file_failed",
		logging.String("kind", result.Kind.String()),
		logging.String("error_kind", services.Kind(err)),
		logging.Error(err),
	)
	result.Outcome = OutcomeFailed
	result.Err = err
	return result
}
