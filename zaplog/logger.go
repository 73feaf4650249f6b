// Package zaplog adapts a *zap.Logger to rankedcache.Logger.
//
// The cache never logs on its hot path (GetOrAdd hits/misses); the only
// event it emits is an Info message when Dispose succeeds.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package zaplog

import (
	"github.com/aerolith/rankedcache"
	"go.uber.org/zap"
)

// Logger adapts *zap.Logger to rankedcache.Logger. keyvals are treated as
// alternating key/value pairs, mirroring rankedcache.Logger's convention;
// an odd trailing element is logged under the key "extra".
type Logger struct {
	z *zap.Logger
}

// New wraps z. Passing nil panics, mirroring zap's own nil-logger misuse
// being a programmer error rather than a recoverable condition.
func New(z *zap.Logger) *Logger {
	if z == nil {
		panic("zaplog: nil *zap.Logger")
	}
	return &Logger{z: z}
}

func toFields(keyvals []interface{}) []zap.Field {
	fields := make([]zap.Field, 0, (len(keyvals)+1)/2)
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = "key"
		}
		fields = append(fields, zap.Any(key, keyvals[i+1]))
	}
	if len(keyvals)%2 == 1 {
		fields = append(fields, zap.Any("extra", keyvals[len(keyvals)-1]))
	}
	return fields
}

// Debug implements rankedcache.Logger.
func (l *Logger) Debug(msg string, keyvals ...interface{}) { l.z.Debug(msg, toFields(keyvals)...) }

// Info implements rankedcache.Logger.
func (l *Logger) Info(msg string, keyvals ...interface{}) { l.z.Info(msg, toFields(keyvals)...) }

// Warn implements rankedcache.Logger.
func (l *Logger) Warn(msg string, keyvals ...interface{}) { l.z.Warn(msg, toFields(keyvals)...) }

// Error implements rankedcache.Logger.
func (l *Logger) Error(msg string, keyvals ...interface{}) { l.z.Error(msg, toFields(keyvals)...) }

var _ rankedcache.Logger = (*Logger)(nil)
