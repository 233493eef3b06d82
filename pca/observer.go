// SPDX-License-Identifier: MIT

package pca

import "time"

// Stage names reported to Observer.ObserveStage.
const (
	StageCenter    = "center"
	StageSurrogate = "surrogate"
	StageEigen     = "eigen"
	StageLift      = "lift"
	StageProject   = "project"
	StageRecognize = "recognize"
)

// Observer receives pipeline measurements. Implementations must be safe for
// concurrent use: RecognizeBatch reports from several goroutines.
type Observer interface {
	ObserveStage(stage string, d time.Duration)
	ObserveRecognition(known bool, distance float64)
}

// NopObserver discards every measurement.
type NopObserver struct{}

// ObserveStage implements Observer.
func (NopObserver) ObserveStage(string, time.Duration) {}

// ObserveRecognition implements Observer.
func (NopObserver) ObserveRecognition(bool, float64) {}
