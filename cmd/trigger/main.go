// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Command trigger is the Lambda function that starts the pipeline's DataSync
// tasks. Build it for provided.al2023 as "bootstrap":
//
//	GOOS=linux GOARCH=arm64 go build -tags lambda.norpc -o dist/trigger/bootstrap ./cmd/trigger
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	awsx "github.com/tfctl/dsctl/internal/aws"
	"github.com/tfctl/dsctl/internal/log"
	"github.com/tfctl/dsctl/internal/trigger"
)

func main() {
	log.InitLogger("info")

	cfg, err := awsx.LoadAWSConfig(context.Background())
	if err != nil {
		log.WithError(err).Error("failed to load AWS config")
		os.Exit(1)
	}

	h := trigger.NewHandlerFromEnv(os.LookupEnv, awsx.NewDataSync(cfg))
	log.Debugf("task list: %v", h.Config().TaskArns)

	lambda.Start(h.Handle)
}
