package net

import (
	"net/http"

	perr "prospector/internal/platform/errors"
)

// HTTPStatus maps a coded error to an http status. nil is 200
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return perr.HTTPStatus(err)
}
