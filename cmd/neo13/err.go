package main

import (
	"errors"

	"github.com/ezrec/neo13/translate"
)

var f = translate.From

var (
	ErrLogLevel = errors.New(f("invalid log level"))
)
