package qrbatch

import (
	"context"
	"io"
	"os"

	"github.com/onlybana/qr-code-generator/pkg/qrbatch/archive"
	"github.com/onlybana/qr-code-generator/pkg/qrbatch/models"
	"github.com/onlybana/qr-code-generator/pkg/qrbatch/parser"
	"github.com/onlybana/qr-code-generator/pkg/qrbatch/synth"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Request is the input of the entry operation.
type Request struct {
	// File is the uploaded workbook. Nil means no file was supplied.
	File io.Reader
	// Theme is "light" or "dark". Anything else is light; empty keeps
	// the configured theme.
	Theme string
}

// Response is the output of the entry operation. Exactly one field is set.
type Response struct {
	Archive string `json:"archive,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Process runs the whole conversion for one request and reports the
// outcome as a Response instead of an error.
func Process(ctx context.Context, req Request, opts Options) Response {
	resp, _ := Handle(ctx, req, opts)
	return resp
}

// Handle is Process that also returns the underlying error, so transports
// can map it to their own status codes. An empty request theme keeps
// opts.Theme.
func Handle(ctx context.Context, req Request, opts Options) (Response, error) {
	if req.File == nil {
		return Response{Error: ErrNoFile.Error()}, ErrNoFile
	}
	if req.Theme != "" {
		opts.Theme = synth.ParseTheme(req.Theme)
	}

	result, err := Convert(ctx, req.File, opts)
	if err != nil {
		return Response{Error: err.Error()}, err
	}
	return Response{Archive: result.Base64()}, nil
}

// ConvertFile converts the workbook at path.
func ConvertFile(ctx context.Context, path string, opts Options) (*models.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Convert(ctx, f, opts)
}

// Convert decodes the workbook in r and generates its archive.
func Convert(ctx context.Context, r io.Reader, opts Options) (*models.Result, error) {
	if r == nil {
		return nil, ErrNoFile
	}
	grid, err := parser.OpenGrid(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return Generate(ctx, grid, opts)
}

// outcome is the slot one synthesis task writes into.
type outcome struct {
	artifact models.Artifact
	err      *SynthesisError
}

// Generate extracts tokens from grid, synthesizes one artifact per token
// concurrently and packages the successful ones. A failing token is logged,
// recorded in the result and left out of the archive.
func Generate(ctx context.Context, grid models.Grid, opts Options) (*models.Result, error) {
	logger := opts.logger()
	theme := opts.theme()
	ext := opts.extension()
	s := synth.New(opts.encoder(), opts.BaseURL)

	tokens := parser.ExtractTokens(grid, opts.prefix())
	logger.Debug("Extracted tokens", zap.Int("count", len(tokens)), zap.String("theme", string(theme)))

	// Tasks never return an error, so no sibling is ever cancelled.
	outcomes := make([]outcome, len(tokens))
	var g errgroup.Group
	for i, token := range tokens {
		g.Go(func() error {
			art, err := s.Synthesize(ctx, token, theme)
			if err != nil {
				outcomes[i].err = &SynthesisError{Token: token, Err: err}
				return nil
			}
			art.FileName = archive.FileName(token, ext)
			outcomes[i].artifact = art
			return nil
		})
	}
	_ = g.Wait()

	result := &models.Result{Tokens: tokens}
	pkg := archive.NewPackager()
	for _, o := range outcomes {
		if o.err != nil {
			logger.Warn("Skipping token", zap.String("token", o.err.Token), zap.Error(o.err.Err))
			result.Failures = append(result.Failures, models.Failure{
				Token:  o.err.Token,
				Reason: o.err.Err.Error(),
			})
			continue
		}
		if pkg.Add(o.artifact.FileName, o.artifact.Content) {
			logger.Warn("Duplicate token overwrites entry", zap.String("file", o.artifact.FileName))
		}
	}

	data, err := pkg.Bytes()
	if err != nil {
		return nil, &PackagingError{Err: err}
	}
	result.Archive = data
	result.Entries = pkg.Len()

	logger.Info("Generated archive",
		zap.Int("tokens", len(tokens)),
		zap.Int("entries", result.Entries),
		zap.Int("failures", len(result.Failures)),
		zap.Int("bytes", len(data)))
	return result, nil
}
