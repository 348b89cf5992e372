package utils

import "errors"

var ErrorRecordNotFound = errors.New("record not found")

// ErrorSurfaceUnavailable means the quote template could not be rasterized.
// Exports abort wholesale on this; no partial file is ever produced.
var ErrorSurfaceUnavailable = errors.New("render surface unavailable")

// ErrorStorageFailed means the saved-quotes bucket could not be written.
var ErrorStorageFailed = errors.New("storage write failed")

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
