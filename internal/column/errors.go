package column

import "errors"

// Column errors.
var (
	// ErrReadOnly indicates the column has no setter.
	ErrReadOnly = errors.New("column cannot be changed")

	// ErrConversion indicates a raw value could not be converted to the column type.
	ErrConversion = errors.New("column: conversion failed")

	// ErrNoValues indicates an aggregator received no values to combine.
	ErrNoValues = errors.New("column: no values to aggregate")

	// ErrUnknownAggregator indicates an aggregator name is not registered.
	ErrUnknownAggregator = errors.New("column: unknown aggregator")

	// ErrUnknownType indicates a type name is not registered.
	ErrUnknownType = errors.New("column: unknown type")
)
