// Package tracing wraps OpenTelemetry so that conversion operations can be
// traced without the rest of the module importing the SDK directly. Tracing
// is inactive until Init or InitWithExporter installs a provider.
package tracing
