package models

import "github.com/taigrr/prism/pkg/log"

var logger = log.New("models")
