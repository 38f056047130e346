// Package logger provides structured logging built on zerolog, with a
// global default, component-tagged loggers, and field constants shared
// across the registry and resolution packages.
package logger
