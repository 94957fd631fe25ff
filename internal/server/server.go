// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the conversion pipeline over HTTP: an upload form,
// a conversion endpoint returning the transformed document, and a health
// probe. One job (and one citation engine) is created per request.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/meshintel/notesmith/internal/citation"
	"github.com/meshintel/notesmith/internal/convert"
	"github.com/meshintel/notesmith/pkg/types"
)

const (
	defaultMaxUpload = 100 << 20
	staleWorkAge     = time.Hour
)

// Server wires the conversion pipeline to an echo instance.
type Server struct {
	echo    *echo.Echo
	cfg     types.ServerConfig
	workDir string
	sources citation.Sources
	log     *zap.Logger
}

// New builds a Server. log may be nil.
func New(cfg types.Config, sources citation.Sources, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Server.MaxUploadBytes <= 0 {
		cfg.Server.MaxUploadBytes = defaultMaxUpload
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(strconv.FormatInt(cfg.Server.MaxUploadBytes, 10)))

	s := &Server{
		echo:    e,
		cfg:     cfg.Server,
		workDir: cfg.Convert.WorkDir,
		sources: sources,
		log:     log,
	}
	e.GET("/", s.handleForm)
	e.POST("/convert", s.handleConvert)
	e.GET("/healthz", s.handleHealth)
	return s
}

// Start sweeps stale working storage left by crashed jobs, then serves until
// Shutdown.
func (s *Server) Start() error {
	s.sweepStaleWork()
	s.log.Info("listening", zap.String("addr", s.cfg.Addr))
	err := s.echo.Start(s.cfg.Addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the routing tree, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleForm(c echo.Context) error {
	return c.HTML(http.StatusOK, uploadForm)
}

func (s *Server) handleConvert(c echo.Context) error {
	fh, err := c.FormFile("document")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no document uploaded")
	}
	opts := optionsFromForm(c)

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	defer src.Close()

	input, err := os.CreateTemp(s.workDir, "upload-*.docx")
	if err != nil {
		return fmt.Errorf("staging upload: %w", err)
	}
	defer os.Remove(input.Name())
	if _, err := io.Copy(input, src); err != nil {
		input.Close()
		return fmt.Errorf("staging upload: %w", err)
	}
	input.Close()

	job, err := convert.NewJob(opts, s.sources, s.workDir, s.log)
	if err != nil {
		return err
	}
	output := filepath.Join(os.TempDir(), "notesmith-out-"+job.ID+".docx")
	defer os.Remove(output)

	if err := job.Run(c.Request().Context(), input.Name(), output); err != nil {
		if errors.Is(err, convert.ErrNoEndnotes) || errors.Is(err, convert.ErrNoBody) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		s.log.Error("conversion failed", zap.String("job", job.ID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "conversion failed")
	}

	name := strings.TrimSuffix(fh.Filename, ".docx") + "-notes.docx"
	return c.Attachment(output, name)
}

// optionsFromForm reads conversion options from the upload form, clamping
// out-of-range values instead of erroring.
func optionsFromForm(c echo.Context) types.ConvertOptions {
	wordCount, err := strconv.Atoi(c.FormValue("word_count"))
	if err != nil || wordCount < 1 {
		wordCount = 3
	} else if wordCount > 10 {
		wordCount = 10
	}
	style := types.StyleBold
	if c.FormValue("format_style") == string(types.StyleItalic) {
		style = types.StyleItalic
	}
	return types.ConvertOptions{
		WordCount:       wordCount,
		FormatStyle:     style,
		ExtractIncipit:  formFlag(c, "extract_incipit"),
		ApplyFormatting: formFlag(c, "apply_formatting"),
		CitationStyle:   c.FormValue("citation_style"),
	}
}

func formFlag(c echo.Context, name string) bool {
	v := strings.ToLower(c.FormValue(name))
	return v == "on" || v == "true" || v == "1"
}

// sweepStaleWork removes job directories older than an hour, left behind by
// crashed processes. Live jobs are younger than that by construction.
func (s *Server) sweepStaleWork() {
	if s.workDir == "" {
		return
	}
	entries, err := os.ReadDir(s.workDir)
	if err != nil {
		return
	}
	cutoff := time.Now().Add(-staleWorkAge)
	for _, ent := range entries {
		if !strings.HasPrefix(ent.Name(), "notesmith-") && !strings.HasPrefix(ent.Name(), "upload-") {
			continue
		}
		info, err := ent.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		p := filepath.Join(s.workDir, ent.Name())
		if err := os.RemoveAll(p); err == nil {
			s.log.Info("removed stale work", zap.String("path", p))
		}
	}
}
