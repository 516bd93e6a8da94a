package command

import "errors"

var errNoSource = errors.New("no registry configured")
