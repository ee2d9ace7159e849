package application

import "errors"

var ErrRunInProgress = errors.New("snapshot run already in progress")
