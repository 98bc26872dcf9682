package odf

import "errors"

var (
	ErrNotFound          = errors.New("odf: not found")
	ErrIO                = errors.New("odf: io failure")
	ErrParse             = errors.New("odf: malformed markup")
	ErrEncoding          = errors.New("odf: unencodable text")
	ErrConversion        = errors.New("odf: conversion failed")
	ErrUnsupportedFormat = errors.New("odf: unsupported format")
	ErrValidation        = errors.New("odf: validation failed")
	ErrLimitExceeded     = errors.New("odf: limit exceeded")
)
