// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/eigenface/backend"
	"github.com/katalvlaran/eigenface/internal/config"
	"github.com/katalvlaran/eigenface/internal/logging"
	"github.com/katalvlaran/eigenface/internal/metrics"
	"github.com/katalvlaran/eigenface/matrix"
	"github.com/katalvlaran/eigenface/pca"
	"github.com/katalvlaran/eigenface/store"
)

// env is everything a subcommand needs, built from one configuration.
type env struct {
	conf    *config.Config
	log     *logging.Logger
	metrics *metrics.Metrics
	store   store.Store
	backend backend.Backend
}

func newEnv(module, configPath string, stderr io.Writer) (*env, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log := logging.New(logging.Config{
		Service:    "eigenface",
		Module:     module,
		Level:      conf.Log.Level,
		Format:     conf.Log.Format,
		File:       conf.Log.File,
		MaxSize:    conf.Log.MaxSize,
		MaxBackups: conf.Log.MaxBackups,
		MaxAge:     conf.Log.MaxAge,
		Compress:   conf.Log.Compress,
		Writer:     stderr,
	})
	st, err := store.New(store.Config{
		Driver: conf.Storage.Driver,
		Dir:    conf.Storage.Dir,
		MinIO: store.MinIOConfig{
			Endpoint:        conf.Storage.MinIO.Endpoint,
			AccessKeyID:     conf.Storage.MinIO.AccessKeyID,
			SecretAccessKey: conf.Storage.MinIO.SecretAccessKey,
			Bucket:          conf.Storage.MinIO.Bucket,
			UseSSL:          conf.Storage.MinIO.UseSSL,
		},
	})
	if err != nil {
		_ = log.Close()
		return nil, err
	}
	be, err := backend.New(conf.Backend.Name, conf.Backend.Workers, matrix.WithMaxSweeps(conf.Training.MaxSweeps))
	if err != nil {
		_ = log.Close()
		return nil, err
	}

	return &env{conf: conf, log: log, metrics: metrics.New("eigenface"), store: st, backend: be}, nil
}

// pcaOptions maps the configuration onto pipeline options.
func (e *env) pcaOptions() []pca.Option {
	return []pca.Option{
		pca.WithBackend(e.backend),
		pca.WithComponents(e.conf.Training.Components),
		pca.WithSortEigen(e.conf.Training.SortEigen),
		pca.WithEigenTolerance(e.conf.Training.EigenTolerance),
		pca.WithThreshold(e.conf.Recognition.Threshold),
		pca.WithWorkers(e.conf.Backend.Workers),
		pca.WithLogger(e.log.Logger),
		pca.WithObserver(e.metrics),
	}
}

// close flushes the metrics textfile, if configured, and the log file.
func (e *env) close() error {
	var err error
	if path := e.conf.Metrics.Textfile; path != "" {
		err = e.metrics.WriteTextfile(path)
	}
	if cerr := e.log.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("close log: %w", cerr))
	}

	return err
}
