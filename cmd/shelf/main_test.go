package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	platformerrors "github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/shelf/internal/adapters/telemetry"
	"go.trai.ch/shelf/internal/app"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type appMocks struct {
	loader  *mocks.MockConfigLoader
	storage *mocks.MockCacheStorage
	logger  *mocks.MockLogger
}

func newProvider(t *testing.T) (ComponentProvider, *appMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &appMocks{
		loader:  mocks.NewMockConfigLoader(ctrl),
		storage: mocks.NewMockCacheStorage(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
	}

	a := app.New(
		m.loader,
		mocks.NewMockDirectoryNamer(ctrl),
		nil,
		nil,
		m.storage,
		mocks.NewMockRunStateStore(ctrl),
		mocks.NewMockReplacementRegistry(ctrl),
		mocks.NewMockMetrics(ctrl),
		telemetry.NewNoOpTracer(),
		m.logger,
		&domain.Settings{Home: t.TempDir(), Tunables: domain.DefaultCacheTunables()},
	).WithWorkDir(t.TempDir())

	provider := func(context.Context) (*app.Components, func(), error) {
		return &app.Components{App: a, Logger: m.logger}, func() {}, nil
	}
	return provider, m
}

func TestRun_Version(t *testing.T) {
	provider, _ := newProvider(t)

	var stderr bytes.Buffer
	assert.Equal(t, 0, run(context.Background(), []string{"version"}, &stderr, provider))
	assert.Empty(t, stderr.String())
}

func TestRun_InitError(t *testing.T) {
	provider := func(context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	var stderr bytes.Buffer
	assert.Equal(t, 1, run(context.Background(), []string{"version"}, &stderr, provider))
	assert.Contains(t, stderr.String(), "Error: init failed")
}

func TestRun_CommandErrorIsLogged(t *testing.T) {
	provider, m := newProvider(t)
	listErr := errors.New("disk on fire")
	m.storage.EXPECT().Keys().Return(nil, listErr)
	m.logger.EXPECT().Error(listErr)

	var stderr bytes.Buffer
	assert.Equal(t, 1, run(context.Background(), []string{"cache", "list"}, &stderr, provider))
}

func TestRun_UserConfigErrorExitCode(t *testing.T) {
	provider, m := newProvider(t)
	m.loader.EXPECT().Load(gomock.Any()).Return(&domain.Config{}, nil)
	m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrLibraryNotFound)
	})

	var stderr bytes.Buffer
	assert.Equal(t, 2, run(context.Background(), []string{"resolve", "missing@v1"}, &stderr, provider))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "user config", err: domain.NewLibraryError(domain.ErrVersionOverrideNotPermitted, "stuff"), want: exitUsage},
		{
			name: "transient fetch",
			err:  fmt.Errorf("%w: %w", domain.ErrFetchFailed, platformerrors.New(platformerrors.CodeNetwork, "clone failed")),
			want: exitTransient,
		},
		{
			name: "permanent fetch",
			err:  fmt.Errorf("%w: %w", domain.ErrFetchFailed, platformerrors.New(platformerrors.CodeNotFound, "version not found")),
			want: exitUsage,
		},
		{name: "cache io", err: domain.ErrCacheIO, want: exitFailure},
		{name: "other", err: errors.New("boom"), want: exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
