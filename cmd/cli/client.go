package main

import (
	"os"

	"github.com/hairizuanbinnoorazman/script-tracker/apiclient"
	"github.com/hairizuanbinnoorazman/script-tracker/logger"
)

// cliLogger logs to stderr so stdout stays clean for command output. Only
// warnings are shown unless --debug is set.
func cliLogger() logger.Logger {
	level := "warn"
	if flagDebug {
		level = "debug"
	}
	return logger.NewLogrusLoggerWithOptions(level, "text", os.Stderr)
}

func getClient() *apiclient.Client {
	return apiclient.New(getConfigURL(),
		apiclient.WithTimeout(getConfigTimeout()),
		apiclient.WithLogger(cliLogger()),
	)
}

// result turns an API call into data or an error. Business rejections come
// back as *apiclient.APIError carrying the backend's message.
func result[T any](env *apiclient.Envelope[T], err error) (*apiclient.Envelope[T], error) {
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}
	return env, nil
}
