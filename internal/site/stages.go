package site

import (
	"context"
	"fmt"
	"time"
)

// StageName identifies a discrete unit of work in the site build.
type StageName string

const (
	StageResetOutput  StageName = "reset_output"
	StageCollectPosts StageName = "collect_posts"
	StageConvertPages StageName = "convert_pages"
	StageConvertPosts StageName = "convert_posts"
	StageCopyJS       StageName = "copy_js"
	StageCopyImg      StageName = "copy_img"
	StageCompileCSS   StageName = "compile_css"
)

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}
func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// Stage is one step of the build pipeline.
type Stage func(ctx context.Context, bs *buildState) error

type stageDef struct {
	name StageName
	fn   Stage
}

// BuildReport summarizes one build run.
type BuildReport struct {
	BuildID        string
	StageDurations map[StageName]time.Duration
	Warnings       []error
	Duration       time.Duration
}

// buildState carries mutable state across stages of a single build.
type buildState struct {
	gen       *Generator
	postIndex string
	report    *BuildReport
	start     time.Time
}
