package handler

import (
	"github.com/sirupsen/logrus"
	"ollamabench/logging"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}
