package main

import "time"

type Config struct {
	LogLevel         string        `env:"LOG_LEVEL,default=INFO"`
	BadgerFilepath   string        `env:"BADGER_FILEPATH,required=true"`
	Host             string        `env:"HOST,default=localhost"`
	Port             int           `env:"PORT,default=8080"`
	EventBufferSize  int           `env:"EVENT_BUFFER_SIZE,default=256"`
	SinkTimeout      time.Duration `env:"SINK_TIMEOUT,default=2s"`
	LimitMessages    *int          `env:"LIMIT_MESSAGES"`
	ClickHistorySize int           `env:"CLICK_HISTORY_SIZE,default=100"`
}
